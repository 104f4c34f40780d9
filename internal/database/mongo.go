package database

import (
	"context"
	"fmt"
	"time"

	"socialnet/internal/config"
	"socialnet/internal/middleware"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names shared by the Mongo repositories.
const (
	UsersCollection    = "users"
	ThoughtsCollection = "thoughts"
)

// ConnectMongo dials MongoDB, verifies the connection and ensures indexes.
func ConnectMongo(ctx context.Context, cfg *config.Config) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.MongoURI)
	if cfg.DBMaxOpenConns > 0 {
		opts.SetMaxPoolSize(uint64(cfg.DBMaxOpenConns))
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)
	if err := EnsureMongoIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	middleware.Logger.Info("MongoDB connected successfully", "database", cfg.MongoDatabase)
	return client, db, nil
}

// EnsureMongoIndexes creates the unique username/email indexes and the lookup
// indexes used by the cross-collection updates.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	unique := func(name string) *options.IndexOptions {
		return options.Index().SetUnique(true).SetName(name)
	}

	_, err := db.Collection(UsersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: unique("idx_users_username")},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique("idx_users_email")},
		{Keys: bson.D{{Key: "thoughts", Value: 1}}, Options: options.Index().SetName("idx_users_thoughts")},
		{Keys: bson.D{{Key: "friends", Value: 1}}, Options: options.Index().SetName("idx_users_friends")},
	})
	if err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}

	_, err = db.Collection(ThoughtsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetName("idx_thoughts_username")},
		{Keys: bson.D{{Key: "reactions.username", Value: 1}}, Options: options.Index().SetName("idx_thoughts_reactions_username")},
	})
	if err != nil {
		return fmt.Errorf("failed to create thought indexes: %w", err)
	}
	return nil
}
