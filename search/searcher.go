package search

import (
	"context"
	"errors"
	"log/slog"

	"github.com/poiesic/askcampus/core"
	"github.com/poiesic/askcampus/index"
	"github.com/poiesic/askcampus/storage"
)

// Searcher runs hybrid retrieval over the corpus. Either index may be
// absent; the searcher degrades to whichever channel remains rather than
// failing the query.
type Searcher struct {
	documents storage.DocumentRepository
	dense     *index.Dense
	sparse    *index.Sparse

	denseTopK     int
	sparseTopK    int
	finalTopK     int
	rrfConstant   int
	excerptWindow int
	excerptStride int

	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithTopK sets how many hits each channel contributes and how many fused
// hits survive.
func WithTopK(dense, sparse, final int) Option {
	return func(s *Searcher) error {
		s.denseTopK = dense
		s.sparseTopK = sparse
		s.finalTopK = final
		return nil
	}
}

// WithRRFConstant sets the rank-smoothing constant used during fusion.
func WithRRFConstant(k int) Option {
	return func(s *Searcher) error {
		s.rrfConstant = k
		return nil
	}
}

// WithExcerptShape sets the excerpt window size and stride in characters.
func WithExcerptShape(window, stride int) Option {
	return func(s *Searcher) error {
		s.excerptWindow = window
		s.excerptStride = stride
		return nil
	}
}

// NewSearcher creates a new searcher over the given repository and indexes.
// At least one index must be present.
func NewSearcher(
	documents storage.DocumentRepository,
	dense *index.Dense,
	sparse *index.Sparse,
	opts ...Option,
) (*Searcher, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if dense == nil && sparse == nil {
		return nil, ErrNoIndexes
	}

	s := &Searcher{
		documents:     documents,
		dense:         dense,
		sparse:        sparse,
		denseTopK:     15,
		sparseTopK:    15,
		finalTopK:     8,
		rrfConstant:   60,
		excerptWindow: 400,
		excerptStride: 100,
		logger:        slog.Default().With("component", "searcher"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindEvidence retrieves the documents most relevant to the query.
// Returns at most the configured number of fused hits, each with a
// query-focused excerpt.
func (s *Searcher) FindEvidence(ctx context.Context, query string) ([]core.Evidence, error) {
	return s.FindEvidenceWithMonitor(ctx, query, nil)
}

// FindEvidenceWithMonitor retrieves evidence while reporting intermediate
// rankings to the monitor.
func (s *Searcher) FindEvidenceWithMonitor(ctx context.Context, query string, monitor SearchMonitor) ([]core.Evidence, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(query)

	var denseHits []core.RankedHit
	if s.dense != nil {
		hits, err := s.dense.Search(ctx, query, s.denseTopK)
		if err != nil {
			// The sparse channel can still answer; log and degrade.
			s.logger.Warn("dense search failed, continuing with sparse only", "err", err)
		} else {
			denseHits = hits
		}
	}
	monitor.AfterDenseSearch(denseHits)

	var sparseHits []core.RankedHit
	if s.sparse != nil {
		sparseHits = s.sparse.Search(query, s.sparseTopK)
	}
	monitor.AfterSparseSearch(sparseHits)

	fused := index.FuseRanked(denseHits, sparseHits, s.finalTopK, s.rrfConstant)
	monitor.AfterFusion(fused)

	evidence := make([]core.Evidence, 0, len(fused))
	for _, hit := range fused {
		doc, err := s.documents.Get(ctx, hit.Id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// The index can briefly outlive a corpus rewrite. Skip the
				// stale hit instead of failing the query.
				s.logger.Warn("fused hit missing from corpus", "id", hit.Id)
				continue
			}
			return nil, err
		}
		evidence = append(evidence, core.Evidence{
			Document: doc,
			Score:    hit.Score,
			Excerpt:  Excerpt(doc.Body, query, s.excerptWindow, s.excerptStride),
		})
	}

	monitor.Finish(evidence)
	s.logger.Debug("search complete", "query", query,
		"dense", len(denseHits), "sparse", len(sparseHits), "evidence", len(evidence))
	return evidence, nil
}
