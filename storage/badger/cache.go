package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/askcampus/core"
	"github.com/poiesic/askcampus/storage"
)

// PageCache implements storage.PageCache using BadgerDB.
//
// Each entry lives under its own content-addressed key, so parallel fetch
// workers writing different pages never collide.
type PageCache struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.PageCache = (*PageCache)(nil)

// NewPageCache creates a page cache on the given backend.
func NewPageCache(backend *Backend) (storage.PageCache, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &PageCache{
		backend: backend,
		logger:  slog.Default().With("component", "page-cache"),
	}, nil
}

// Get retrieves a cached document by ID.
func (c *PageCache) Get(ctx context.Context, id core.ID) (*core.Document, bool, error) {
	var doc *core.Document

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeCacheKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			doc, err = storage.UnmarshalDocument(val)
			return err
		})
	}, false)
	if err != nil {
		// An undecodable entry is indistinguishable from a miss for the
		// caller; it will be overwritten by the next fetch.
		c.logger.Warn("discarding unreadable cache entry", "id", id, "err", err)
		return nil, false, nil
	}
	if doc == nil {
		return nil, false, nil
	}

	return doc, true, nil
}

// Put stores a document under its own ID.
func (c *PageCache) Put(ctx context.Context, doc *core.Document) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCacheKey(doc.Id), storage.MarshalDocument(doc)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
