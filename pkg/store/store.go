// Package store persists diagram documents together with their computed
// layouts.
//
// The [LayoutStore] interface has two implementations: [MemoryStore] for
// tests and single-process usage, and [MongoStore] for the serve command,
// where saved layouts outlive the process. Records are keyed by an
// identifier generated on save.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/saxonthune/flowgrid/pkg/graph"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("layout not found")

// Record is a saved document with its computed layout.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name,omitempty" bson:"name,omitempty"`
	Document  graph.Document `json:"document" bson:"document"`
	Layout    graph.Layout   `json:"layout" bson:"layout"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// LayoutStore persists layout records.
// Implementations must be safe for concurrent use.
type LayoutStore interface {
	// Save inserts or replaces a record. A record with an empty ID gets a
	// generated one; the stored record is returned either way.
	Save(ctx context.Context, rec Record) (Record, error)

	// Get retrieves a record by ID. Returns [ErrNotFound] when absent.
	Get(ctx context.Context, id string) (Record, error)

	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]Record, error)

	// Delete removes a record. Returns [ErrNotFound] when absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
