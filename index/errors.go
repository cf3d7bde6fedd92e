package index

import "errors"

var (
	// ErrEmbedderRequired is returned when a dense index is built or
	// queried without an embedding backend. Build treats this as fatal;
	// it is never silently degraded.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoDocuments is returned when an index build receives an empty corpus.
	ErrNoDocuments = errors.New("no documents to index")

	// ErrEmbeddingShape is returned when the embedding backend produces a
	// vector count or dimension that disagrees with the request.
	ErrEmbeddingShape = errors.New("unexpected embedding shape")

	// ErrCorruptSnapshot indicates a persisted snapshot that cannot be
	// decoded or whose structure and ID list are misaligned. Callers must
	// treat the snapshot as absent and rebuild, never serve from it.
	ErrCorruptSnapshot = errors.New("corrupt index snapshot")
)
