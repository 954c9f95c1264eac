package settings

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no value is stored under a key.
var ErrNotFound = errors.New("setting not found")

// Repository is the key-value persistence used for site settings and
// drafts. Values are opaque serialized documents.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// record is the Mongo representation of one setting row.
type record struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoRepository implements Repository using a Mongo collection keyed by
// setting name.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

func (r *MongoRepository) Get(ctx context.Context, key string) (string, error) {
	var rec record
	if err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&rec); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", ErrNotFound
		}
		return "", err
	}
	return rec.Value, nil
}

func (r *MongoRepository) Put(ctx context.Context, key, value string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"value": value, "updatedAt": time.Now().UTC()}}
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateOne(ctx, filter, update, opts)
	return err
}

func (r *MongoRepository) Delete(ctx context.Context, key string) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": key})
	return err
}
