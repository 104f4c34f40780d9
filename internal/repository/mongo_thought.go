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

type mongoThoughtRepository struct {
	coll *mongo.Collection
}

// NewMongoThoughtRepository returns a MongoDB-backed ThoughtRepository.
func NewMongoThoughtRepository(db *mongo.Database) ThoughtRepository {
	return &mongoThoughtRepository{coll: db.Collection(database.ThoughtsCollection)}
}

func (r *mongoThoughtRepository) List(ctx context.Context) ([]models.Thought, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.list")()

	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(creationOrder))
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	var docs []thoughtDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, models.NewInternalError(err)
	}

	thoughts := make([]models.Thought, 0, len(docs))
	for _, d := range docs {
		thoughts = append(thoughts, d.model())
	}
	return thoughts, nil
}

func (r *mongoThoughtRepository) GetByID(ctx context.Context, id string) (*models.Thought, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.get")()

	var doc thoughtDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, thoughtLookupError(err, id)
	}
	thought := doc.model()
	return &thought, nil
}

func (r *mongoThoughtRepository) Create(ctx context.Context, thought *models.Thought) error {
	defer observability.TrackStoreOp(backendMongo, "thoughts.create")()

	thought.Prepare()
	thought.UpdatedAt = time.Now().UTC()
	if _, err := r.coll.InsertOne(ctx, newThoughtDoc(thought)); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *mongoThoughtRepository) UpdateText(ctx context.Context, id, text string) (*models.Thought, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.update")()

	return r.update(ctx, id, bson.D{{Key: "$set", Value: bson.D{
		{Key: "thoughtText", Value: text},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}})
}

func (r *mongoThoughtRepository) Delete(ctx context.Context, id string) (*models.Thought, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.delete")()

	var doc thoughtDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		return nil, thoughtLookupError(err, id)
	}
	thought := doc.model()
	return &thought, nil
}

func (r *mongoThoughtRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.delete_many")()

	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.coll.DeleteMany(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}})
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return res.DeletedCount, nil
}

func (r *mongoThoughtRepository) AddReaction(ctx context.Context, thoughtID string, reaction models.Reaction) (*models.Thought, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.add_reaction")()

	return r.update(ctx, thoughtID, bson.D{
		{Key: "$push", Value: bson.D{{Key: "reactions", Value: newReactionDoc(reaction)}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
}

func (r *mongoThoughtRepository) RemoveReaction(ctx context.Context, thoughtID, reactionID string) (*models.Thought, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.remove_reaction")()

	return r.update(ctx, thoughtID, bson.D{
		{Key: "$pull", Value: bson.D{{Key: "reactions", Value: bson.D{{Key: "reactionId", Value: reactionID}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now().UTC()}}},
	})
}

func (r *mongoThoughtRepository) RenameAuthor(ctx context.Context, oldName, newName string) (int64, error) {
	defer observability.TrackStoreOp(backendMongo, "thoughts.rename_author")()

	if oldName == newName {
		return 0, nil
	}

	authored, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "username", Value: oldName}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "username", Value: newName}}}},
	)
	if err != nil {
		return 0, models.NewInternalError(err)
	}

	reacted, err := r.coll.UpdateMany(ctx,
		bson.D{{Key: "reactions.username", Value: oldName}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "reactions.$[r].username", Value: newName}}}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.D{{Key: "r.username", Value: oldName}}},
		}),
	)
	if err != nil {
		return authored.ModifiedCount, models.NewInternalError(err)
	}
	return authored.ModifiedCount + reacted.ModifiedCount, nil
}

func (r *mongoThoughtRepository) update(ctx context.Context, id string, update bson.D) (*models.Thought, error) {
	var doc thoughtDoc
	if err := r.coll.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: id}}, update, returnAfter()).Decode(&doc); err != nil {
		return nil, thoughtLookupError(err, id)
	}
	thought := doc.model()
	return &thought, nil
}

func thoughtLookupError(err error, id string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.NewNotFoundError("Thought", id)
	}
	return models.NewInternalError(err)
}
