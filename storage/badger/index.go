package badger

import (
	"context"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/askcampus/storage"
)

// IndexRepository implements storage.IndexRepository using BadgerDB.
// A snapshot is one value under one key: the ranking structure and its
// aligned ID list travel together or not at all.
type IndexRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.IndexRepository = (*IndexRepository)(nil)

// NewIndexRepository creates an index snapshot repository on the given backend.
func NewIndexRepository(backend *Backend) (storage.IndexRepository, error) {
	if backend == nil {
		return nil, ErrBackendRequired
	}
	return &IndexRepository{
		backend: backend,
		logger:  slog.Default().With("component", "index-repository"),
	}, nil
}

// PutSnapshot stores a snapshot blob under the given index name.
func (r *IndexRepository) PutSnapshot(ctx context.Context, name string, blob []byte) error {
	r.logger.Debug("persisting index snapshot", "name", name, "bytes", len(blob))

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeSnapshotKey(name), blob); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSnapshot retrieves a snapshot blob by index name.
func (r *IndexRepository) GetSnapshot(ctx context.Context, name string) ([]byte, error) {
	var blob []byte

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSnapshotKey(name))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}
		blob, err = item.ValueCopy(nil)
		return err
	}, false)
	if err != nil {
		return nil, err
	}

	return blob, nil
}
