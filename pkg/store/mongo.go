package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/radialtree/pkg/graph"
)

// DefaultCollection is the MongoDB collection holding layouts.
const DefaultCollection = "layouts"

// MongoOptions configures a MongoStore.
type MongoOptions struct {
	URI        string
	Database   string
	Collection string        // Defaults to DefaultCollection
	Timeout    time.Duration // Connect and ping timeout; defaults to 10s
}

// MongoStore stores layouts as documents keyed by their ID.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to MongoDB, pings the server and ensures an index
// on created_at for listing.
func NewMongoStore(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.URI == "" || opts.Database == "" {
		return nil, fmt.Errorf("mongo uri and database are required")
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetTimeout(opts.Timeout))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(opts.Database).Collection(opts.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &MongoStore{client: client, coll: coll}, nil
}

func (s *MongoStore) Put(ctx context.Context, l graph.Layout) (string, error) {
	l = prepare(l)
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
	if err != nil {
		return "", fmt.Errorf("store layout: %w", err)
	}
	return l.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (graph.Layout, error) {
	var l graph.Layout
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&l)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return graph.Layout{}, ErrNotFound
	}
	if err != nil {
		return graph.Layout{}, fmt.Errorf("load layout: %w", err)
	}
	return l, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete layout: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Summary, error) {
	findOpts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetProjection(bson.M{"created_at": 1, "nodes.id": 1, "paths.from": 1, "issues.kind": 1})
	if limit > 0 {
		findOpts.SetLimit(int64(limit))
	}

	cur, err := s.coll.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	defer cur.Close(ctx)

	var out []Summary
	for cur.Next(ctx) {
		var l graph.Layout
		if err := cur.Decode(&l); err != nil {
			return nil, fmt.Errorf("decode layout: %w", err)
		}
		out = append(out, Summarize(l))
	}
	return out, cur.Err()
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
