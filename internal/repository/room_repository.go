package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stayhub/internal/database"
	"stayhub/internal/models"
)

// PageSize is the fixed /rooms page size.
const PageSize = 5

// ProximityRadius is the fixed $maxDistance for nearby queries, in
// coordinate-space units.
const ProximityRadius = 0.1

type roomRepository struct {
	rooms *mongo.Collection
}

func NewRoomRepository(db *database.DB) RoomRepository {
	return &roomRepository{rooms: db.Rooms}
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	if room.Pictures == nil {
		room.Pictures = []models.Picture{}
	}
	if room.CreatedAt.IsZero() {
		room.CreatedAt = time.Now()
	}

	result, err := r.rooms.InsertOne(ctx, room)
	if err != nil {
		return fmt.Errorf("could not create room: %w", err)
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		room.ID = id
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Room, error) {
	var room models.Room

	err := r.rooms.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("could not get room: %w", err)
	}

	return &room, nil
}

func buildFilter(f RoomFilter) bson.M {
	filter := bson.M{}

	if f.Title != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}
	}

	if f.PriceMin != nil || f.PriceMax != nil {
		price := bson.M{}
		if f.PriceMin != nil {
			price["$gte"] = *f.PriceMin
		}
		if f.PriceMax != nil {
			price["$lte"] = *f.PriceMax
		}
		filter["price"] = price
	}

	return filter
}

func buildSort(sort string) bson.D {
	switch sort {
	case "price-asc":
		return bson.D{{Key: "price", Value: 1}}
	case "price-desc":
		return bson.D{{Key: "price", Value: -1}}
	case "date-asc":
		return bson.D{{Key: "created", Value: 1}}
	case "date-desc":
		return bson.D{{Key: "created", Value: -1}}
	}
	return nil
}

// Find runs the filtered /rooms query. A page outside [1, totalPages] is
// ignored and the whole filtered set is returned, matching the documented
// endpoint behavior.
func (r *roomRepository) Find(ctx context.Context, f RoomFilter) ([]models.Room, error) {
	filter := buildFilter(f)

	opts := options.Find()
	if sort := buildSort(f.Sort); sort != nil {
		opts.SetSort(sort)
	}

	if f.Page != nil {
		total, err := r.rooms.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("could not count rooms: %w", err)
		}

		if skip, limit, ok := pageWindow(*f.Page, int(total)); ok {
			opts.SetSkip(skip)
			opts.SetLimit(limit)
		}
	}

	return r.findMany(ctx, filter, opts)
}

// pageWindow maps a 1-based page over total matches to a skip/limit window.
// ok is false when the page falls outside [1, totalPages]; the caller then
// returns the whole set.
func pageWindow(page, total int) (skip, limit int64, ok bool) {
	totalPages := (total + PageSize - 1) / PageSize
	if page < 1 || page > totalPages {
		return 0, 0, false
	}
	return int64((page - 1) * PageSize), PageSize, true
}

func (r *roomRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Room, error) {
	return r.findMany(ctx, bson.M{"user": userID}, options.Find())
}

// FindNear returns rooms within ProximityRadius of the point, nearest first.
// The legacy-coordinate $near on a 2d index sorts by distance on its own.
func (r *roomRepository) FindNear(ctx context.Context, latitude, longitude float64) ([]models.Room, error) {
	filter := bson.M{
		"location": bson.M{
			"$near":        []float64{latitude, longitude},
			"$maxDistance": ProximityRadius,
		},
	}
	return r.findMany(ctx, filter, options.Find())
}

func (r *roomRepository) FindAll(ctx context.Context) ([]models.Room, error) {
	return r.findMany(ctx, bson.M{}, options.Find())
}

func (r *roomRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Room, error) {
	cursor, err := r.rooms.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("could not query rooms: %w", err)
	}

	rooms := []models.Room{}
	if err := cursor.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("could not decode rooms: %w", err)
	}

	return rooms, nil
}

func (r *roomRepository) Update(ctx context.Context, id primitive.ObjectID, patch bson.M) error {
	result, err := r.rooms.UpdateByID(ctx, id, bson.M{"$set": patch})
	if err != nil {
		return fmt.Errorf("could not update room: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *roomRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.rooms.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("could not delete room: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNoDocument
	}
	return nil
}

func (r *roomRepository) PushPicture(ctx context.Context, id primitive.ObjectID, picture models.Picture) error {
	_, err := r.rooms.UpdateByID(ctx, id, bson.M{"$push": bson.M{"pictures": picture}})
	if err != nil {
		return fmt.Errorf("could not attach picture to room: %w", err)
	}
	return nil
}

func (r *roomRepository) PullPicture(ctx context.Context, id primitive.ObjectID, pictureID string) error {
	_, err := r.rooms.UpdateByID(ctx, id, bson.M{"$pull": bson.M{"pictures": bson.M{"public_id": pictureID}}})
	if err != nil {
		return fmt.Errorf("could not detach picture from room: %w", err)
	}
	return nil
}
