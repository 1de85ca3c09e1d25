package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"stayhub/internal/config"
)

type DB struct {
	Client *mongo.Client
	Users  *mongo.Collection
	Rooms  *mongo.Collection
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("Connecting to MongoDB: database=%s", cfg.Mongo.Database)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, fmt.Errorf("could not connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}

	db := client.Database(cfg.Mongo.Database)
	dbStruct := &DB{
		Client: client,
		Users:  db.Collection("users"),
		Rooms:  db.Collection("rooms"),
	}

	if err := dbStruct.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("could not create indexes: %w", err)
	}

	log.Println("Connected to MongoDB")
	return dbStruct, nil
}

// EnsureIndexes creates the unique email/username indexes and the legacy 2d
// index backing $near proximity queries.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "account.username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Rooms.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "location", Value: "2d"}},
		},
	})
	if err != nil {
		return fmt.Errorf("rooms indexes: %w", err)
	}

	return nil
}

func (db *DB) HealthCheck(ctx context.Context) error {
	if db == nil || db.Client == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return db.Client.Ping(ctx, readpref.Primary())
}

func (db *DB) CloseDB(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}
