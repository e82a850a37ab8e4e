// Package store persists computed layouts so they can be fetched by ID.
//
// This package defines the [Store] interface with implementations for
// different backends:
//   - [MemoryStore]: in-process storage for development and tests
//   - [FileStore]: JSON files in a directory, for single-host servers
//   - [MongoStore]: a MongoDB collection, for multi-instance deployments
//
// # Usage
//
//	st, err := store.NewMongoStore(ctx, store.MongoOptions{URI: uri, Database: "radialtree"})
//	if err != nil {
//	    return err
//	}
//	defer st.Close(ctx)
//
//	id, err := st.Put(ctx, layout)   // assigns a UUID and creation time
//	l, err := st.Get(ctx, id)        // ErrNotFound when absent
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/radialtree/pkg/errors"
	"github.com/matzehuels/radialtree/pkg/graph"
)

// ErrNotFound is returned when a layout does not exist. It carries
// errors.ErrCodeNotFound.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "layout not found")

// Store is the interface for layout storage backends.
type Store interface {
	// Put stores l and returns its ID. A new UUID is assigned when l.ID is
	// empty; CreatedAt is set when zero.
	Put(ctx context.Context, l graph.Layout) (string, error)

	// Get retrieves a layout by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (graph.Layout, error)

	// Delete removes a layout. Deleting a missing layout is not an error.
	Delete(ctx context.Context, id string) error

	// List returns up to limit summaries, newest first. limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Summary, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// Summary describes a stored layout without its geometry.
type Summary struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Nodes     int       `json:"nodes" bson:"nodes"`
	Paths     int       `json:"paths" bson:"paths"`
	Issues    int       `json:"issues" bson:"issues"`
}

// Summarize builds the summary of l.
func Summarize(l graph.Layout) Summary {
	return Summary{
		ID:        l.ID,
		CreatedAt: l.CreatedAt,
		Nodes:     len(l.Nodes),
		Paths:     len(l.Paths),
		Issues:    len(l.Issues),
	}
}

// prepare assigns an ID and creation time where missing.
func prepare(l graph.Layout) graph.Layout {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	return l
}

// ValidID reports whether id is a well-formed layout ID.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}
