package ingest

import "errors"

var (
	// ErrFetcherRequired is returned when an ingestor is created without a fetcher.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrCacheRequired is returned when an ingestor is created without a page cache.
	ErrCacheRequired = errors.New("page cache required")

	// ErrBadStatus is returned when a fetch completes with a non-success
	// HTTP status.
	ErrBadStatus = errors.New("unexpected HTTP status")

	// ErrNoContent is returned when a page yields no extractable text.
	ErrNoContent = errors.New("no extractable content")

	// ErrNoLocations is returned when enumeration produces nothing to fetch.
	ErrNoLocations = errors.New("no locations to ingest")

	// ErrInvalidMaxAttempts indicates a retry call with a non-positive
	// attempt budget.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")
)
