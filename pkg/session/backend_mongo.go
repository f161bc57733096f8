package session

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	mongoopts "go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultMongoCollection holds one document per session.
const DefaultMongoCollection = "user_sessions"

// MongoBackend stores records in a collection with a unique session_id index.
type MongoBackend struct {
	coll *mongo.Collection
}

// NewMongoBackend ensures the unique index on session_id exists and returns the backend.
func NewMongoBackend(ctx context.Context, db *mongo.Database, collection string) (*MongoBackend, error) {
	if collection == "" {
		collection = DefaultMongoCollection
	}
	coll := db.Collection(collection)

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "session_id", Value: 1}},
		Options: mongoopts.Index().SetUnique(true).SetName("session_id_unique"),
	})
	if err != nil {
		return nil, fmt.Errorf("create session index: %w", err)
	}

	return &MongoBackend{coll: coll}, nil
}

func (b *MongoBackend) Save(ctx context.Context, rec Record) error {
	if !rec.valid() {
		return ErrInvalidRecord
	}
	_, err := b.coll.ReplaceOne(ctx,
		bson.D{{Key: "session_id", Value: rec.ID}},
		rec,
		mongoopts.Replace().SetUpsert(true),
	)
	return err
}

func (b *MongoBackend) Load(ctx context.Context, sessionID string) (*Record, error) {
	var rec Record
	err := b.coll.FindOne(ctx, bson.D{{Key: "session_id", Value: sessionID}}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	return &rec, nil
}

func (b *MongoBackend) Delete(ctx context.Context, sessionID string) (bool, error) {
	res, err := b.coll.DeleteOne(ctx, bson.D{{Key: "session_id", Value: sessionID}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
