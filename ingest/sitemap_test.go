package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeFetcher serves canned payloads by location and counts fetches.
type fakeFetcher struct {
	mu      sync.Mutex
	pages   map[string]*FetchResult
	fetches map[string]int
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:   make(map[string]*FetchResult),
		fetches: make(map[string]int),
	}
}

func (f *fakeFetcher) addHTML(location, html string) {
	f.pages[location] = &FetchResult{Body: []byte(html), ContentType: "text/html; charset=utf-8"}
}

func (f *fakeFetcher) Fetch(_ context.Context, location string) (*FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[location]++
	result, ok := f.pages[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return result, nil
}

func (f *fakeFetcher) fetchCount(location string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[location]
}

func enumOpts() EnumerateOptions {
	return EnumerateOptions{
		SitemapURL:    "https://example.edu/sitemap.xml",
		BaseURL:       "https://example.edu",
		CriticalPaths: []string{"/", "/admissions", "/fee-structure"},
		MaxSitemaps:   5,
		MaxPerSitemap: 50,
	}
}

func TestEnumerateLocations(t *testing.T) {
	t.Run("critical paths come first", func(t *testing.T) {
		fetcher := newFakeFetcher()
		fetcher.addHTML("https://example.edu/sitemap.xml", `<?xml version="1.0"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>https://example.edu/news</loc></url>
  <url><loc>https://example.edu/admissions</loc></url>
</urlset>`)

		locations := EnumerateLocations(context.Background(), fetcher, enumOpts())
		assert.Equal(t, []string{
			"https://example.edu/",
			"https://example.edu/admissions",
			"https://example.edu/fee-structure",
			"https://example.edu/news",
		}, locations)
	})

	t.Run("expands a sitemap index with limits", func(t *testing.T) {
		fetcher := newFakeFetcher()

		var index string
		for i := 0; i < 8; i++ {
			index += fmt.Sprintf("<sitemap><loc>https://example.edu/sitemap-%d.xml</loc></sitemap>", i)

			var urls string
			for j := 0; j < 60; j++ {
				urls += fmt.Sprintf("<url><loc>https://example.edu/p%d-%d</loc></url>", i, j)
			}
			fetcher.addHTML(fmt.Sprintf("https://example.edu/sitemap-%d.xml", i),
				`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+urls+`</urlset>`)
		}
		fetcher.addHTML("https://example.edu/sitemap.xml",
			`<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`+index+`</sitemapindex>`)

		opts := enumOpts()
		opts.CriticalPaths = nil
		locations := EnumerateLocations(context.Background(), fetcher, opts)

		// 5 sub-sitemaps at 50 locations each.
		assert.Len(t, locations, 250)
		assert.Equal(t, 0, fetcher.fetchCount("https://example.edu/sitemap-5.xml"))
	})

	t.Run("sitemap failure degrades to critical paths", func(t *testing.T) {
		locations := EnumerateLocations(context.Background(), newFakeFetcher(), enumOpts())
		assert.Equal(t, []string{
			"https://example.edu/",
			"https://example.edu/admissions",
			"https://example.edu/fee-structure",
		}, locations)
	})
}
