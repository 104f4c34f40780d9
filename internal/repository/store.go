package repository

import (
	"context"

	"socialnet/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/gorm"
)

// NewGormStore wires the GORM repositories over db.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:    NewUserRepository(db),
		Thoughts: NewThoughtRepository(db),
		Backend:  db.Dialector.Name(),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func(context.Context) error {
			return database.Close(db)
		},
	}
}

// NewMongoStore wires the MongoDB repositories over db.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Users:    NewMongoUserRepository(db),
		Thoughts: NewMongoThoughtRepository(db),
		Backend:  backendMongo,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		close: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	}
}
