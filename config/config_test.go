package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1000, cfg.MaxPages)
	assert.Equal(t, 24*time.Hour, cfg.CacheValidity)
	assert.Equal(t, 60, cfg.RRFConstant)
	assert.Equal(t, 400, cfg.ExcerptLength)
	assert.Equal(t, 100, cfg.ExcerptStride)
	assert.NotEmpty(t, cfg.CriticalPaths)
	assert.Contains(t, cfg.SitemapURL, cfg.BaseURL)
}

func TestNew(t *testing.T) {
	t.Run("options applied", func(t *testing.T) {
		cfg, err := New(
			WithBaseURL("https://www.example.edu"),
			WithMaxPages(25),
			WithExcerptWindow(200, 50),
			WithTopK(10, 10, 5),
		)
		require.NoError(t, err)

		assert.Equal(t, "https://www.example.edu", cfg.BaseURL)
		assert.Equal(t, "https://www.example.edu/sitemap.xml", cfg.SitemapURL)
		assert.Equal(t, 25, cfg.MaxPages)
		assert.Equal(t, 200, cfg.ExcerptLength)
		assert.Equal(t, 50, cfg.ExcerptStride)
		assert.Equal(t, 5, cfg.FinalTopK)
	})

	t.Run("sitemap override wins over derivation", func(t *testing.T) {
		cfg, err := New(
			WithBaseURL("https://www.example.edu"),
			WithSitemapURL("https://cdn.example.edu/sitemap.xml"),
		)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.edu/sitemap.xml", cfg.SitemapURL)
	})

	t.Run("fetch workers floor at one", func(t *testing.T) {
		cfg, err := New(WithFetchWorkers(0))
		require.NoError(t, err)
		assert.Equal(t, 1, cfg.FetchWorkers)
	})

	t.Run("missing base URL", func(t *testing.T) {
		_, err := New(WithBaseURL(""))
		assert.ErrorIs(t, err, ErrNoBaseURL)
	})
}
