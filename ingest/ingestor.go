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

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/askcampus/core"
	"github.com/poiesic/askcampus/storage"
)

// Ingestor orchestrates corpus acquisition: enumeration, concurrent
// fetching, extraction, classification, validation and caching.
type Ingestor struct {
	fetcher Fetcher
	cache   storage.PageCache
	pool    *ants.Pool

	enumeration   EnumerateOptions
	maxPages      int
	cacheValidity time.Duration
	minBodyLength int
	pdfPageLimit  int
	pdfCharLimit  int

	logger *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithWorkers sets the fetch worker pool size.
// Default is runtime.NumCPU(), with a minimum of 1.
func WithWorkers(size int) Option {
	return func(ing *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if ing.pool != nil {
			ing.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ing.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// WithEnumeration sets the sitemap and critical-path parameters.
func WithEnumeration(opts EnumerateOptions) Option {
	return func(ing *Ingestor) error {
		ing.enumeration = opts
		return nil
	}
}

// WithMaxPages caps how many locations one run will fetch.
func WithMaxPages(n int) Option {
	return func(ing *Ingestor) error {
		if n > 0 {
			ing.maxPages = n
		}
		return nil
	}
}

// WithCacheValidity sets how long a cached page is served without refetching.
func WithCacheValidity(d time.Duration) Option {
	return func(ing *Ingestor) error {
		ing.cacheValidity = d
		return nil
	}
}

// WithMinBodyLength sets the minimum extracted body length for a page to
// become a document.
func WithMinBodyLength(n int) Option {
	return func(ing *Ingestor) error {
		ing.minBodyLength = n
		return nil
	}
}

// WithPDFLimits caps how many pages and characters are extracted per PDF.
func WithPDFLimits(pages, chars int) Option {
	return func(ing *Ingestor) error {
		if pages > 0 {
			ing.pdfPageLimit = pages
		}
		if chars > 0 {
			ing.pdfCharLimit = chars
		}
		return nil
	}
}

// NewIngestor creates an ingestor over the given fetcher and page cache.
func NewIngestor(fetcher Fetcher, cache storage.PageCache, opts ...Option) (*Ingestor, error) {
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if cache == nil {
		return nil, ErrCacheRequired
	}

	poolSize := runtime.NumCPU()
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ing := &Ingestor{
		fetcher:       fetcher,
		cache:         cache,
		pool:          pool,
		maxPages:      1000,
		cacheValidity: 24 * time.Hour,
		minBodyLength: 100,
		pdfPageLimit:  30,
		pdfCharLimit:  30000,
		logger:        slog.Default().With("component", "ingestor"),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(ing); err != nil {
			ing.Release()
			return nil, err
		}
	}

	return ing, nil
}

// Ingest acquires the corpus. With forceRefresh the page cache is bypassed
// and every location is refetched. Per-location failures are logged and
// skipped; the run fails only when there is nothing to fetch at all.
func (ing *Ingestor) Ingest(ctx context.Context, forceRefresh bool, reporter Reporter) ([]*core.Document, error) {
	if reporter == nil {
		reporter = NopReporter{}
	}

	locations := EnumerateLocations(ctx, ing.fetcher, ing.enumeration)
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}
	if len(locations) > ing.maxPages {
		locations = locations[:ing.maxPages]
	}
	reporter.Report("ingest", fmt.Sprintf("found %d locations to process", len(locations)))

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		documents []*core.Document
		processed int
		failed    int
	)

	for _, location := range locations {
		location := location
		wg.Add(1)
		err := ing.pool.Submit(func() {
			defer wg.Done()

			doc, err := ing.processLocation(ctx, location, forceRefresh)

			mu.Lock()
			defer mu.Unlock()
			processed++
			if err != nil {
				failed++
				ing.logger.Warn("skipping location", "location", location, "err", err)
			} else {
				documents = append(documents, doc)
			}
			if processed%10 == 0 {
				reporter.Report("ingest", fmt.Sprintf("processed %d/%d pages", processed, len(locations)))
			}
		})
		if err != nil {
			wg.Done()
			ing.logger.Error("error submitting fetch task", "location", location, "err", err)
		}
	}

	wg.Wait()

	reporter.Report("ingest", fmt.Sprintf("ingested %d documents, %d locations skipped", len(documents), failed))
	ing.logger.Info("ingestion complete", "documents", len(documents), "skipped", failed)
	return documents, nil
}

// processLocation turns one location into a validated document, serving
// from the page cache when the cached copy is still fresh.
func (ing *Ingestor) processLocation(ctx context.Context, location string, forceRefresh bool) (*core.Document, error) {
	id := core.IDFromLocation(location)

	if !forceRefresh {
		cached, ok, err := ing.cache.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok && time.Since(cached.FetchedAt) < ing.cacheValidity {
			return cached, nil
		}
	}

	result, err := ing.fetcher.Fetch(ctx, location)
	if err != nil {
		return nil, err
	}

	doc := &core.Document{
		Id:        id,
		Location:  location,
		FetchedAt: time.Now().UTC(),
	}

	if result.IsPDF() {
		title, body, attrs, err := ExtractPDF(result.Body, location, ing.pdfPageLimit, ing.pdfCharLimit)
		if err != nil {
			return nil, err
		}
		doc.Title = title
		doc.Body = body
		doc.Category = core.CategoryDocument
		doc.Attributes = attrs
	} else {
		title, body, err := ExtractHTML(result.Body, location)
		if err != nil {
			return nil, err
		}
		doc.Title = title
		doc.Body = body
		doc.Category = Classify(location, title)
	}

	if err := core.ValidateDocument(doc, ing.minBodyLength); err != nil {
		return nil, err
	}

	if err := ing.cache.Put(ctx, doc); err != nil {
		// The document itself is good; a cache write failure only costs a
		// refetch next run.
		ing.logger.Warn("page cache write failed", "location", location, "err", err)
	}
	return doc, nil
}

// Release releases the worker pool. The ingestor should not be used after
// calling Release.
func (ing *Ingestor) Release() {
	if ing.pool != nil {
		ing.pool.Release()
	}
}
