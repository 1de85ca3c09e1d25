package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stayhub/internal/database"
	"stayhub/internal/models"
)

// ErrNoDocument is returned by lookups when nothing matches.
var ErrNoDocument = errors.New("document not found")

type userRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *database.DB) UserRepository {
	return &userRepository{users: db.Users}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if user.Rooms == nil {
		user.Rooms = []primitive.ObjectID{}
	}

	result, err := r.users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}
	return nil
}

func (r *userRepository) getOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User

	err := r.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("could not get user: %w", err)
	}

	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.getOne(ctx, bson.M{"_id": id})
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, bson.M{"account.username": username})
}

func (r *userRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, bson.M{"token": token})
}

// Update applies one merge patch in a single write.
func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error {
	result, err := r.users.UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("could not update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("could not delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *userRepository) PushRoom(ctx context.Context, userID, roomID primitive.ObjectID) error {
	_, err := r.users.UpdateByID(ctx, userID, bson.M{"$push": bson.M{"rooms": roomID}})
	if err != nil {
		return fmt.Errorf("could not attach room to user: %w", err)
	}
	return nil
}

func (r *userRepository) PullRoom(ctx context.Context, userID, roomID primitive.ObjectID) error {
	_, err := r.users.UpdateByID(ctx, userID, bson.M{"$pull": bson.M{"rooms": roomID}})
	if err != nil {
		return fmt.Errorf("could not detach room from user: %w", err)
	}
	return nil
}
