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


package config

import (
	"errors"
	"time"
)

// Config holds every tunable of the retrieval core. It is constructed once
// at process start and passed by reference into component constructors;
// components never reach into the environment themselves.
type Config struct {
	// BaseURL is the root of the institution website.
	BaseURL string

	// SitemapURL is the sitemap index used for location discovery.
	SitemapURL string

	// CriticalPaths are site paths that are always ingested, whether or not
	// the sitemap mentions them.
	CriticalPaths []string

	// MaxPages caps the total number of locations ingested per run.
	MaxPages int

	// CacheValidity is how long a cached page is served without refetching.
	CacheValidity time.Duration

	// FetchTimeout bounds a single fetch of one location.
	FetchTimeout time.Duration

	// FetchWorkers is the size of the parallel fetch pool.
	FetchWorkers int

	// FetchRetries is how many attempts each location gets before it is
	// skipped; FetchRetryDelay is the base backoff between attempts.
	FetchRetries    int
	FetchRetryDelay time.Duration

	// MaxSitemaps caps how many sub-sitemaps of the sitemap index are read.
	MaxSitemaps int

	// MaxLocationsPerSitemap caps locations taken from each sub-sitemap.
	MaxLocationsPerSitemap int

	// MinBodyLength is the threshold below which a document is discarded.
	MinBodyLength int

	// EmbedBodyLimit is how much of the body (in bytes) feeds the embedding.
	EmbedBodyLimit int

	// PDFPageLimit caps how many pages are extracted from one PDF.
	PDFPageLimit int

	// PDFCharLimit caps the extracted text length of one PDF.
	PDFCharLimit int

	// DenseTopK and SparseTopK are the per-ranker result counts fed into
	// fusion; FinalTopK is the fused result count.
	DenseTopK  int
	SparseTopK int
	FinalTopK  int

	// RRFConstant is the smoothing constant of reciprocal rank fusion.
	RRFConstant int

	// ExcerptLength and ExcerptStride control excerpt window selection.
	ExcerptLength int
	ExcerptStride int

	// ContextDocs is how many evidence entries feed the generation prompt;
	// FallbackDocs how many feed the extractive fallback answer.
	ContextDocs  int
	FallbackDocs int

	// Temperature and MaxTokens are generation parameters.
	Temperature float64
	MaxTokens   int

	// GenerateTimeout bounds one call to the generation backend.
	GenerateTimeout time.Duration

	// EmbeddingHost is the base URL of the OpenAI-compatible embedding
	// service and EmbeddingModel the model it serves.
	EmbeddingHost  string
	EmbeddingModel string

	// GroqAPIKey and OpenAIAPIKey select the generation provider. Groq wins
	// when both are present; absence of both selects fallback mode.
	GroqAPIKey   string
	OpenAIAPIKey string
}

// ErrNoBaseURL indicates a Config without a base URL.
var ErrNoBaseURL = errors.New("base URL required")

// Option configures a Config.
type Option func(*Config)

// WithBaseURL sets the institution website root and, unless overridden,
// derives the sitemap URL from it.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
		c.SitemapURL = url + "/sitemap.xml"
	}
}

// WithSitemapURL overrides the derived sitemap URL.
func WithSitemapURL(url string) Option {
	return func(c *Config) {
		c.SitemapURL = url
	}
}

// WithCriticalPaths replaces the default critical path list.
func WithCriticalPaths(paths []string) Option {
	return func(c *Config) {
		c.CriticalPaths = paths
	}
}

// WithMaxPages caps the ingestion run.
func WithMaxPages(n int) Option {
	return func(c *Config) {
		c.MaxPages = n
	}
}

// WithCacheValidity sets the page cache validity window.
func WithCacheValidity(d time.Duration) Option {
	return func(c *Config) {
		c.CacheValidity = d
	}
}

// WithFetchWorkers sets the parallel fetch pool size.
func WithFetchWorkers(n int) Option {
	return func(c *Config) {
		if n < 1 {
			n = 1
		}
		c.FetchWorkers = n
	}
}

// WithEmbedding sets the embedding service host and model.
func WithEmbedding(host, model string) Option {
	return func(c *Config) {
		c.EmbeddingHost = host
		c.EmbeddingModel = model
	}
}

// WithGroqAPIKey sets the Groq credential.
func WithGroqAPIKey(key string) Option {
	return func(c *Config) {
		c.GroqAPIKey = key
	}
}

// WithOpenAIAPIKey sets the OpenAI credential.
func WithOpenAIAPIKey(key string) Option {
	return func(c *Config) {
		c.OpenAIAPIKey = key
	}
}

// WithExcerptWindow tunes excerpt selection.
func WithExcerptWindow(length, stride int) Option {
	return func(c *Config) {
		c.ExcerptLength = length
		c.ExcerptStride = stride
	}
}

// WithTopK tunes the per-ranker and fused result counts.
func WithTopK(dense, sparse, final int) Option {
	return func(c *Config) {
		c.DenseTopK = dense
		c.SparseTopK = sparse
		c.FinalTopK = final
	}
}

// Default returns the configuration the original deployment ran with.
func Default() *Config {
	return &Config{
		BaseURL:    "https://www.jiit.ac.in",
		SitemapURL: "https://www.jiit.ac.in/sitemap.xml",
		CriticalPaths: []string{
			"/", "/admission", "/admissions", "/btech", "/mtech", "/mba",
			"/placements", "/fee-structure", "/hostel", "/facilities",
			"/faculty", "/departments", "/research", "/about",
			"/departments/cse", "/departments/ece", "/departments/it",
			"/departments/mechanical", "/departments/civil", "/departments/biotechnology",
			"/campus-life", "/student-activities", "/infrastructure",
		},
		MaxPages:               1000,
		CacheValidity:          24 * time.Hour,
		FetchTimeout:           15 * time.Second,
		FetchWorkers:           8,
		FetchRetries:           3,
		FetchRetryDelay:        time.Second,
		MaxSitemaps:            5,
		MaxLocationsPerSitemap: 50,
		MinBodyLength:          100,
		EmbedBodyLimit:         1500,
		PDFPageLimit:           30,
		PDFCharLimit:           30000,
		DenseTopK:              15,
		SparseTopK:             15,
		FinalTopK:              8,
		RRFConstant:            60,
		ExcerptLength:          400,
		ExcerptStride:          100,
		ContextDocs:            5,
		FallbackDocs:           3,
		Temperature:            0.2,
		MaxTokens:              1200,
		GenerateTimeout:        30 * time.Second,
		EmbeddingHost:          "http://localhost:11434/v1",
		EmbeddingModel:         "embeddinggemma",
	}
}

// New builds a Config from the defaults and the provided options.
func New(opts ...Option) (*Config, error) {
	cfg := Default()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.BaseURL == "" {
		return nil, ErrNoBaseURL
	}
	return cfg, nil
}
