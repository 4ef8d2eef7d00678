// Package mongo loads the entity dataset from a MongoDB collection, for
// deployments where the extraction pipeline writes directly to a database
// instead of a JSON file.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/craftlens/craftlens/pkg/dataset"
)

// DefaultTimeout bounds the initial connect and ping.
const DefaultTimeout = 10 * time.Second

// Config describes the MongoDB connection.
type Config struct {
	URI        string // e.g. mongodb://localhost:27017
	Database   string
	Collection string
	Timeout    time.Duration // zero means DefaultTimeout
}

// Store is a Source backed by a MongoDB collection of entity records.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// New connects to MongoDB and verifies the connection with a ping.
func New(ctx context.Context, cfg Config) (*Store, error) {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

// Load fetches every entity record in the collection.
func (s *Store) Load(ctx context.Context) ([]dataset.EntityRecord, error) {
	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find entities: %w", err)
	}
	defer cursor.Close(ctx)

	var records []dataset.EntityRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode entities: %w", err)
	}
	return records, nil
}

// Close disconnects from MongoDB.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
