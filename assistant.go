// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package askcampus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/poiesic/askcampus/ai"
	"github.com/poiesic/askcampus/ai/openai"
	"github.com/poiesic/askcampus/answer"
	"github.com/poiesic/askcampus/config"
	"github.com/poiesic/askcampus/index"
	"github.com/poiesic/askcampus/ingest"
	"github.com/poiesic/askcampus/search"
	"github.com/poiesic/askcampus/storage"
	"github.com/poiesic/askcampus/storage/badger"
)

// Snapshot names under which the two indexes persist.
const (
	denseSnapshotName  = "dense"
	sparseSnapshotName = "sparse"
)

// generation is one immutable, queryable build of the corpus and its
// indexes. Rebuilds assemble a fresh generation and publish it with a
// pointer swap, so readers never see a half-built index.
type generation struct {
	dense    *index.Dense
	sparse   *index.Sparse
	searcher *search.Searcher
}

// Assistant is the top-level facade of the retrieval core. It owns the
// storage backend, the AI provider, the ingestion pipeline and the current
// index generation, and exposes the three operations callers need:
// Initialize, Rebuild and Query.
type Assistant struct {
	cfg         *config.Config
	backend     *badger.Backend
	documents   storage.DocumentRepository
	cache       storage.PageCache
	indexes     storage.IndexRepository
	provider    ai.Provider
	ingestor    *ingest.Ingestor
	synthesizer *answer.Synthesizer
	logger      *slog.Logger

	mu       sync.RWMutex
	state    State
	stateErr error
	current  *generation
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	inMemory bool
	provider ai.Provider
	fetcher  ingest.Fetcher
}

// WithInMemoryStorage keeps all state in memory. Used in tests.
func WithInMemoryStorage() AssistantOption {
	return func(o *assistantOptions) {
		o.inMemory = true
	}
}

// WithProvider substitutes the AI provider built from configuration.
func WithProvider(provider ai.Provider) AssistantOption {
	return func(o *assistantOptions) {
		o.provider = provider
	}
}

// WithFetcher substitutes the HTTP fetcher.
func WithFetcher(fetcher ingest.Fetcher) AssistantOption {
	return func(o *assistantOptions) {
		o.fetcher = fetcher
	}
}

// New creates an assistant storing its corpus and indexes at filePath.
func New(filePath string, cfg *config.Config, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	cache, err := badger.NewPageCache(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	indexes, err := badger.NewIndexRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(openai.Options{
			EmbeddingHost:  cfg.EmbeddingHost,
			EmbeddingModel: cfg.EmbeddingModel,
			Generation:     ai.SelectBackend(cfg.GroqAPIKey, cfg.OpenAIAPIKey),
			Temperature:    cfg.Temperature,
			MaxTokens:      cfg.MaxTokens,
		})
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	fetcher := options.fetcher
	if fetcher == nil {
		fetcher = ingest.NewRetryingFetcher(
			ingest.NewHTTPFetcher(cfg.FetchTimeout), cfg.FetchRetries, cfg.FetchRetryDelay)
	}

	ingestor, err := ingest.NewIngestor(fetcher, cache,
		ingest.WithWorkers(cfg.FetchWorkers),
		ingest.WithEnumeration(ingest.EnumerateOptions{
			SitemapURL:    cfg.SitemapURL,
			BaseURL:       cfg.BaseURL,
			CriticalPaths: cfg.CriticalPaths,
			MaxSitemaps:   cfg.MaxSitemaps,
			MaxPerSitemap: cfg.MaxLocationsPerSitemap,
		}),
		ingest.WithMaxPages(cfg.MaxPages),
		ingest.WithCacheValidity(cfg.CacheValidity),
		ingest.WithMinBodyLength(cfg.MinBodyLength),
		ingest.WithPDFLimits(cfg.PDFPageLimit, cfg.PDFCharLimit),
	)
	if err != nil {
		provider.Close()
		backend.Close()
		return nil, err
	}

	synthesizer := answer.NewSynthesizer(provider.Completer(),
		answer.WithContextDocs(cfg.ContextDocs),
		answer.WithFallbackDocs(cfg.FallbackDocs),
		answer.WithGenerateTimeout(cfg.GenerateTimeout),
	)

	return &Assistant{
		cfg:         cfg,
		backend:     backend,
		documents:   documents,
		cache:       cache,
		indexes:     indexes,
		provider:    provider,
		ingestor:    ingestor,
		synthesizer: synthesizer,
		state:       StateUninitialized,
		logger:      slog.Default().With("component", "assistant"),
	}, nil
}

// State returns the current lifecycle state.
func (a *Assistant) State() State {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.state
}

// Err returns the error that moved the assistant into StateFailed, or nil.
func (a *Assistant) Err() error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stateErr
}

func (a *Assistant) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.stateErr = nil
	a.mu.Unlock()
}

func (a *Assistant) fail(err error) error {
	a.mu.Lock()
	a.state = StateFailed
	a.stateErr = err
	a.mu.Unlock()
	a.logger.Error("assistant failed", "err", err)
	return err
}

// Initialize brings the assistant to StateReady, reusing whatever survives
// from previous runs. A persisted corpus with valid snapshots starts
// serving without any network or embedding traffic; a missing or corrupt
// snapshot is rebuilt from the stored corpus; an empty store triggers a
// full ingestion.
func (a *Assistant) Initialize(ctx context.Context, reporter ingest.Reporter) error {
	if reporter == nil {
		reporter = ingest.NopReporter{}
	}

	docs, err := a.documents.All(ctx)
	if err != nil {
		return a.fail(err)
	}
	if len(docs) == 0 {
		a.logger.Info("no persisted corpus, running full build")
		return a.Rebuild(ctx, false, reporter)
	}

	reporter.Report("load", fmt.Sprintf("loaded %d persisted documents", len(docs)))

	dense, ok := a.restoreDense(ctx)
	if !ok {
		a.setState(StateIndexing)
		reporter.Report("index", "rebuilding semantic index")
		dense = index.NewDense(a.provider.Embedder())
		if err := dense.Build(ctx, docs, a.cfg.EmbedBodyLimit); err != nil {
			return a.fail(err)
		}
		a.persistSnapshot(ctx, denseSnapshotName, dense.Snapshot())
	}

	sparse, ok := a.restoreSparse(ctx)
	if !ok {
		a.setState(StateIndexing)
		reporter.Report("index", "rebuilding keyword index")
		sparse = index.NewSparse()
		if err := sparse.Build(docs); err != nil {
			return a.fail(err)
		}
		a.persistSnapshot(ctx, sparseSnapshotName, sparse.Snapshot())
	}

	if err := a.publish(dense, sparse); err != nil {
		return a.fail(err)
	}
	reporter.Report("ready", fmt.Sprintf("serving %d documents", len(docs)))
	return nil
}

// Rebuild re-ingests the corpus and rebuilds both indexes into a fresh
// generation. The previous generation keeps serving queries until the new
// one is published.
func (a *Assistant) Rebuild(ctx context.Context, forceRefresh bool, reporter ingest.Reporter) error {
	if reporter == nil {
		reporter = ingest.NopReporter{}
	}

	a.setState(StateIngesting)
	docs, err := a.ingestor.Ingest(ctx, forceRefresh, reporter)
	if err != nil {
		return a.fail(err)
	}
	if len(docs) == 0 {
		return a.fail(ErrEmptyCorpus)
	}

	if err := a.documents.ReplaceAll(ctx, docs); err != nil {
		return a.fail(err)
	}

	a.setState(StateIndexing)
	reporter.Report("index", fmt.Sprintf("indexing %d documents", len(docs)))

	dense := index.NewDense(a.provider.Embedder())
	if err := dense.Build(ctx, docs, a.cfg.EmbedBodyLimit); err != nil {
		return a.fail(err)
	}

	sparse := index.NewSparse()
	if err := sparse.Build(docs); err != nil {
		return a.fail(err)
	}

	a.persistSnapshot(ctx, denseSnapshotName, dense.Snapshot())
	a.persistSnapshot(ctx, sparseSnapshotName, sparse.Snapshot())

	if err := a.publish(dense, sparse); err != nil {
		return a.fail(err)
	}
	reporter.Report("ready", fmt.Sprintf("serving %d documents", len(docs)))
	return nil
}

// Query answers one question. It always returns displayable text; every
// failure mode degrades to a message rather than an error.
func (a *Assistant) Query(ctx context.Context, question string) string {
	a.mu.RLock()
	state := a.state
	gen := a.current
	a.mu.RUnlock()

	// A rebuild in progress does not block reads: the previous generation
	// keeps serving until the new one is published.
	if gen == nil {
		return fmt.Sprintf("The knowledge base is not ready yet (state: %s). "+
			"Run a build first, or wait for the current one to finish.", state)
	}

	question = strings.TrimSpace(question)
	if question == "" {
		return "Please enter a question."
	}

	evidence, err := gen.searcher.FindEvidence(ctx, question)
	if err != nil {
		a.logger.Error("retrieval failed", "err", err)
		evidence = nil
	}

	return a.synthesizer.Generate(ctx, question, evidence)
}

// publish builds a searcher over the new indexes and swaps it in as the
// serving generation.
func (a *Assistant) publish(dense *index.Dense, sparse *index.Sparse) error {
	searcher, err := search.NewSearcher(a.documents, dense, sparse,
		search.WithTopK(a.cfg.DenseTopK, a.cfg.SparseTopK, a.cfg.FinalTopK),
		search.WithRRFConstant(a.cfg.RRFConstant),
		search.WithExcerptShape(a.cfg.ExcerptLength, a.cfg.ExcerptStride),
	)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.current = &generation{dense: dense, sparse: sparse, searcher: searcher}
	a.state = StateReady
	a.stateErr = nil
	a.mu.Unlock()
	return nil
}

// restoreDense loads the persisted dense snapshot. Any failure, including
// corruption, reads as "absent" so the caller rebuilds.
func (a *Assistant) restoreDense(ctx context.Context) (*index.Dense, bool) {
	blob, err := a.indexes.GetSnapshot(ctx, denseSnapshotName)
	if err != nil {
		return nil, false
	}
	dense, err := index.RestoreDense(a.provider.Embedder(), blob)
	if err != nil {
		a.logger.Warn("dense snapshot unusable, rebuilding", "err", err)
		return nil, false
	}
	return dense, true
}

func (a *Assistant) restoreSparse(ctx context.Context) (*index.Sparse, bool) {
	blob, err := a.indexes.GetSnapshot(ctx, sparseSnapshotName)
	if err != nil {
		return nil, false
	}
	sparse, err := index.RestoreSparse(blob)
	if err != nil {
		a.logger.Warn("sparse snapshot unusable, rebuilding", "err", err)
		return nil, false
	}
	return sparse, true
}

// persistSnapshot writes one index snapshot. Failure only costs a rebuild
// on the next start, so it is logged rather than propagated.
func (a *Assistant) persistSnapshot(ctx context.Context, name string, blob []byte) {
	if err := a.indexes.PutSnapshot(ctx, name, blob); err != nil {
		a.logger.Warn("snapshot write failed", "index", name, "err", err)
	}
}

// Close releases every owned resource. The assistant should not be used
// after calling Close.
func (a *Assistant) Close() error {
	a.ingestor.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.documents.Close(); err != nil {
		a.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}
