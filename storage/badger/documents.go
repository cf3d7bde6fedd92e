package badger

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/askcampus/core"
	"github.com/poiesic/askcampus/storage"
)

// DocumentRepository implements storage.DocumentRepository using BadgerDB.
type DocumentRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a document repository on the given backend.
func NewDocumentRepository(backend *Backend) (storage.DocumentRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &DocumentRepository{
		backend: backend,
		logger:  slog.Default().With("component", "document-repository"),
	}, nil
}

// currentGeneration reads the live corpus generation inside tx. A missing
// pointer means no corpus has been published yet.
func currentGeneration(tx *badger.Txn) (uint64, error) {
	item, err := tx.Get([]byte(generationKey))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var gen uint64
	err = item.Value(func(val []byte) error {
		parsed, perr := strconv.ParseUint(string(val), 10, 64)
		gen = parsed
		return perr
	})
	return gen, err
}

// ReplaceAll replaces the whole corpus atomically. A full corpus does not
// fit in one badger transaction, so the new records are bulk-loaded under a
// fresh generation prefix with a write batch, then published by flipping
// the generation pointer in a single small commit. Readers resolve the
// pointer and the records in one read transaction, so they observe either
// the previous corpus or the new one, never a mix. The stale generation is
// swept afterwards.
func (r *DocumentRepository) ReplaceAll(ctx context.Context, docs []*core.Document) error {
	var oldGen uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := currentGeneration(tx)
		oldGen = gen
		return err
	}, false)
	if err != nil {
		return err
	}
	newGen := oldGen + 1

	batch := r.backend.NewWriteBatch()
	defer batch.Cancel()
	for _, doc := range docs {
		key := makeDocumentKey(newGen, doc.Id)
		if err := batch.Set(key, storage.MarshalDocument(doc)); err != nil {
			return err
		}
	}
	if err := batch.Flush(); err != nil {
		return err
	}

	err = r.backend.WithTx(func(tx *badger.Txn) error {
		value := []byte(strconv.FormatUint(newGen, 10))
		if err := tx.Set([]byte(generationKey), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return err
	}

	if oldGen > 0 {
		if err := r.dropGeneration(oldGen); err != nil {
			r.logger.Warn("failed to sweep stale corpus generation",
				"generation", oldGen, "error", err)
		}
	}
	return nil
}

// dropGeneration deletes every document record of an unpublished
// generation. Best effort; leftovers are invisible to readers.
func (r *DocumentRepository) dropGeneration(gen uint64) error {
	var stale [][]byte
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = documentGenPrefix(gen)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			stale = append(stale, iter.Item().KeyCopy(nil))
		}
		return nil
	}, false)
	if err != nil {
		return err
	}

	batch := r.backend.NewWriteBatch()
	defer batch.Cancel()
	for _, key := range stale {
		if err := batch.Delete(key); err != nil {
			return err
		}
	}
	return batch.Flush()
}

// All returns every document in the corpus.
func (r *DocumentRepository) All(ctx context.Context) ([]*core.Document, error) {
	var docs []*core.Document

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := currentGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = documentGenPrefix(gen)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				doc, err := storage.UnmarshalDocument(val)
				if err != nil {
					return err
				}
				docs = append(docs, doc)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// Get retrieves a single document by ID.
func (r *DocumentRepository) Get(ctx context.Context, id core.ID) (*core.Document, error) {
	var doc *core.Document

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := currentGeneration(tx)
		if err != nil {
			return err
		}

		item, err := tx.Get(makeDocumentKey(gen, id))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
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
		return nil, err
	}

	return doc, nil
}

// Count returns the number of documents in the corpus.
func (r *DocumentRepository) Count(ctx context.Context) (int, error) {
	count := 0

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		gen, err := currentGeneration(tx)
		if err != nil {
			return err
		}

		opts := badger.DefaultIteratorOptions
		opts.Prefix = documentGenPrefix(gen)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Close is a no-op; the shared backend owns the database lifecycle.
func (r *DocumentRepository) Close() error {
	return nil
}
