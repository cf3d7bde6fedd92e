package storage

import (
	"context"

	"github.com/poiesic/askcampus/core"
)

// DocumentRepository is the source of truth for the document corpus.
// Implementations must be thread-safe and support concurrent access.
//
// The API is deliberately coarse-grained: ingestion always produces full
// replacement documents, so there is no per-document update operation.
type DocumentRepository interface {
	// ReplaceAll replaces the entire corpus atomically from the caller's
	// perspective: readers never observe a partial set.
	ReplaceAll(ctx context.Context, docs []*core.Document) error

	// All returns every currently known document.
	All(ctx context.Context) ([]*core.Document, error)

	// Get retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	Get(ctx context.Context, id core.ID) (*core.Document, error)

	// Count returns the number of documents in the corpus.
	Count(ctx context.Context) (int, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// PageCache stores fetched documents keyed by their content-addressed ID so
// repeated ingestion runs within the validity window avoid refetching.
// Recency policy lives with the caller, which inspects FetchedAt.
type PageCache interface {
	// Get retrieves a cached document. The second result reports whether
	// the entry exists.
	Get(ctx context.Context, id core.ID) (*core.Document, bool, error)

	// Put stores a document under its own ID, overwriting any prior entry.
	Put(ctx context.Context, doc *core.Document) error
}

// IndexRepository persists index snapshots as opaque single-blob bundles.
// Each bundle carries both the ranking structure and its aligned ID list,
// so the two can never be persisted or read separately.
type IndexRepository interface {
	// PutSnapshot stores a snapshot blob under the given index name.
	PutSnapshot(ctx context.Context, name string, blob []byte) error

	// GetSnapshot retrieves a snapshot blob.
	// Returns ErrNotFound if no snapshot exists for the name.
	GetSnapshot(ctx context.Context, name string) ([]byte, error)
}
