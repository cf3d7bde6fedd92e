package ingest

import (
	"context"
	"encoding/xml"
	"log/slog"
	"net/url"
)

// sitemapIndex and urlSet mirror the two document shapes of the sitemap
// protocol (https://www.sitemaps.org). A root sitemap is either an index of
// sub-sitemaps or a flat list of page locations.
type sitemapIndex struct {
	Sitemaps []sitemapLoc `xml:"sitemap"`
}

type urlSet struct {
	URLs []sitemapLoc `xml:"url"`
}

type sitemapLoc struct {
	Loc string `xml:"loc"`
}

// EnumerateOptions bounds sitemap expansion so a pathological sitemap
// cannot balloon a crawl.
type EnumerateOptions struct {
	SitemapURL    string
	BaseURL       string
	CriticalPaths []string
	MaxSitemaps   int
	MaxPerSitemap int
}

// EnumerateLocations produces the ordered, deduplicated list of locations
// to ingest. Critical paths come first and are always present; sitemap
// discoveries follow. Sitemap failures degrade to the critical list alone
// rather than failing enumeration.
func EnumerateLocations(ctx context.Context, fetcher Fetcher, opts EnumerateOptions) []string {
	logger := slog.Default().With("component", "sitemap")

	seen := make(map[string]bool)
	locations := make([]string, 0, len(opts.CriticalPaths))
	add := func(loc string) {
		if loc != "" && !seen[loc] {
			seen[loc] = true
			locations = append(locations, loc)
		}
	}

	for _, path := range opts.CriticalPaths {
		if joined, err := url.JoinPath(opts.BaseURL, path); err == nil {
			add(joined)
		}
	}

	result, err := fetcher.Fetch(ctx, opts.SitemapURL)
	if err != nil {
		logger.Warn("sitemap unavailable, using critical paths only", "err", err)
		return locations
	}

	var idx sitemapIndex
	if err := xml.Unmarshal(result.Body, &idx); err == nil && len(idx.Sitemaps) > 0 {
		subs := idx.Sitemaps
		if len(subs) > opts.MaxSitemaps {
			subs = subs[:opts.MaxSitemaps]
		}
		for _, sub := range subs {
			for _, loc := range parseURLSet(ctx, fetcher, sub.Loc, opts.MaxPerSitemap, logger) {
				add(loc)
			}
		}
		return locations
	}

	for _, loc := range parseLocs(result.Body, opts.MaxPerSitemap) {
		add(loc)
	}
	return locations
}

func parseURLSet(ctx context.Context, fetcher Fetcher, sitemapURL string, limit int, logger *slog.Logger) []string {
	result, err := fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		logger.Warn("sub-sitemap fetch failed", "sitemap", sitemapURL, "err", err)
		return nil
	}
	return parseLocs(result.Body, limit)
}

func parseLocs(body []byte, limit int) []string {
	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil
	}

	locs := make([]string, 0, len(set.URLs))
	for _, u := range set.URLs {
		if u.Loc == "" {
			continue
		}
		locs = append(locs, u.Loc)
		if len(locs) == limit {
			break
		}
	}
	return locs
}
