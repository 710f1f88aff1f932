package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore persists screen documents in a MongoDB collection, for hosted
// deployments where several API instances serve the same screens.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// MongoConfig configures the MongoDB backend.
type MongoConfig struct {
	URI        string // defaults to mongodb://localhost:27017
	Database   string // defaults to "loomui"
	Collection string // defaults to "screens"
}

// screenDoc is the stored shape of one screen.
type screenDoc struct {
	ID        string    `bson:"_id"`
	Document  []byte    `bson:"document"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "loomui"
	}
	if cfg.Collection == "" {
		cfg.Collection = "screens"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Put stores or replaces a document.
func (s *MongoStore) Put(ctx context.Context, screenID string, doc []byte) error {
	if err := ValidateID(screenID); err != nil {
		return err
	}
	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": screenID},
		screenDoc{ID: screenID, Document: doc, UpdatedAt: time.Now().UTC()},
		options.Replace().SetUpsert(true))
	return err
}

// Get returns the stored document or ErrNotFound.
func (s *MongoStore) Get(ctx context.Context, screenID string) ([]byte, error) {
	if err := ValidateID(screenID); err != nil {
		return nil, err
	}
	var sd screenDoc
	err := s.coll.FindOne(ctx, bson.M{"_id": screenID}).Decode(&sd)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return sd.Document, nil
}

// List returns all screen ids.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var ids []string
	for cur.Next(ctx) {
		var sd screenDoc
		if err := cur.Decode(&sd); err != nil {
			return nil, err
		}
		ids = append(ids, sd.ID)
	}
	return ids, cur.Err()
}

// Delete removes a document. Missing ids are not an error.
func (s *MongoStore) Delete(ctx context.Context, screenID string) error {
	if err := ValidateID(screenID); err != nil {
		return err
	}
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": screenID})
	return err
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
