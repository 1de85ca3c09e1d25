package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stayhub/internal/database"
	"stayhub/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByToken(ctx context.Context, token string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushRoom(ctx context.Context, userID, roomID primitive.ObjectID) error
	PullRoom(ctx context.Context, userID, roomID primitive.ObjectID) error
}

// RoomFilter carries the /rooms query parameters. Nil pointer means the
// parameter was not supplied.
type RoomFilter struct {
	Title    string
	PriceMin *float64
	PriceMax *float64
	Sort     string
	Page     *int
}

// Empty reports whether no filter, sort or page parameter was supplied.
func (f RoomFilter) Empty() bool {
	return f.Title == "" && f.PriceMin == nil && f.PriceMax == nil && f.Sort == "" && f.Page == nil
}

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error)
	Find(ctx context.Context, filter RoomFilter) ([]models.Room, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Room, error)
	FindNear(ctx context.Context, latitude, longitude float64) ([]models.Room, error)
	FindAll(ctx context.Context) ([]models.Room, error)
	Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushPicture(ctx context.Context, id primitive.ObjectID, picture models.Picture) error
	PullPicture(ctx context.Context, id primitive.ObjectID, pictureID string) error
}

type Repository struct {
	User UserRepository
	Room RoomRepository
}

func NewRepository(db *database.DB) *Repository {
	return &Repository{
		User: NewUserRepository(db),
		Room: NewRoomRepository(db),
	}
}
