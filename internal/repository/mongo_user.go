package repository

import (
	"context"
	"errors"
	"time"

	"socialnet/internal/database"
	"socialnet/internal/models"
	"socialnet/internal/observability"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const backendMongo = "mongo"

type mongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository returns a MongoDB-backed UserRepository.
func NewMongoUserRepository(db *mongo.Database) UserRepository {
	return &mongoUserRepository{coll: db.Collection(database.UsersCollection)}
}

var creationOrder = bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func (r *mongoUserRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.list")()

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	users := make([]models.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.model())
	}
	return users, nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.get")()

	return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, id)
}

func (r *mongoUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.get_by_username")()

	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "username", Value: username}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &models.AppError{Code: models.CodeNotFound, Message: "User " + username + " not found"}
		}
		return nil, models.NewInternalError(err)
	}
	user := doc.model()
	return &user, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackStoreOp(backendMongo, "users.create")()

	user.Prepare()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, newUserDoc(user)); err != nil {
		return mapUserWriteError(err)
	}
	return nil
}

func (r *mongoUserRepository) Update(ctx context.Context, id string, upd UserUpdate) (*models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.update")()

	if upd.Empty() {
		return r.findOne(ctx, bson.D{{Key: "_id", Value: id}}, id)
	}

	set := bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}
	if upd.Username != nil {
		set = append(set, bson.E{Key: "username", Value: *upd.Username})
	}
	if upd.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *upd.Email})
	}

	var doc userDoc
	err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, bson.D{{Key: "$set", Value: set}}, returnAfter()).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, mapUserWriteError(err)
	}
	user := doc.model()
	return &user, nil
}

func (r *mongoUserRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.delete")()

	var doc userDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	user := doc.model()
	return &user, nil
}

func (r *mongoUserRepository) AddThought(ctx context.Context, userID, username, thoughtID string) error {
	defer observability.TrackStoreOp(backendMongo, "users.add_thought")()

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}, {Key: "username", Value: username}},
		bson.D{
			{Key: "$addToSet", Value: bson.D{{Key: "thoughts", Value: thoughtID}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
		},
	)
	if err != nil {
		return models.NewInternalError(err)
	}
	if res.MatchedCount == 0 {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

func (r *mongoUserRepository) AddFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.add_friend")()

	return r.updateOne(ctx, userID, "$addToSet", "friends", friendID)
}

func (r *mongoUserRepository) RemoveFriend(ctx context.Context, userID, friendID string) (*models.User, error) {
	defer observability.TrackStoreOp(backendMongo, "users.remove_friend")()

	return r.updateOne(ctx, userID, "$pull", "friends", friendID)
}

func (r *mongoUserRepository) PullThought(ctx context.Context, thoughtID string) (int64, error) {
	defer observability.TrackStoreOp(backendMongo, "users.pull_thought")()

	return r.pullAll(ctx, "thoughts", thoughtID)
}

func (r *mongoUserRepository) PullFriend(ctx context.Context, friendID string) (int64, error) {
	defer observability.TrackStoreOp(backendMongo, "users.pull_friend")()

	return r.pullAll(ctx, "friends", friendID)
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.D, id string) (*models.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	user := doc.model()
	return &user, nil
}

func (r *mongoUserRepository) updateOne(ctx context.Context, id, operator, field, value string) (*models.User, error) {
	update := bson.D{
		{Key: operator, Value: bson.D{{Key: field, Value: value}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	}

	var doc userDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, returnAfter()).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	user := doc.model()
	return &user, nil
}

func (r *mongoUserRepository) pullAll(ctx context.Context, field, value string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: field, Value: value}},
		bson.D{{Key: "$pull", Value: bson.D{{Key: field, Value: value}}}},
	)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return res.ModifiedCount, nil
}
