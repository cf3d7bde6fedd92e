package badger

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/poiesic/askcampus/core"
	"github.com/poiesic/askcampus/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument(location, title string) *core.Document {
	return &core.Document{
		Id:        core.IDFromLocation(location),
		Location:  location,
		Title:     title,
		Body:      strings.Repeat(title+" details. ", 20),
		Category:  core.CategoryGeneral,
		FetchedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestDocumentRepositoryReplaceAll(t *testing.T) {
	docs, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	first := []*core.Document{
		testDocument("https://www.example.edu/admissions", "Admissions"),
		testDocument("https://www.example.edu/placements", "Placements"),
	}
	require.NoError(t, docs.ReplaceAll(ctx, first))

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// A second replacement removes documents absent from the new corpus.
	second := []*core.Document{
		testDocument("https://www.example.edu/hostel", "Hostel"),
	}
	require.NoError(t, docs.ReplaceAll(ctx, second))

	all, err := docs.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Hostel", all[0].Title)

	_, err = docs.Get(ctx, core.IDFromLocation("https://www.example.edu/admissions"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDocumentRepositoryReplaceAllFullCorpus(t *testing.T) {
	docs, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	// The default ingestion limits allow 1000 pages of up to 30000
	// characters each, far past what a single badger transaction holds.
	const pages = 1000
	body := strings.Repeat("campus admissions info ", 1305)[:30000]
	corpus := make([]*core.Document, 0, pages)
	for i := 0; i < pages; i++ {
		location := fmt.Sprintf("https://www.example.edu/page/%d", i)
		corpus = append(corpus, &core.Document{
			Id:        core.IDFromLocation(location),
			Location:  location,
			Title:     fmt.Sprintf("Page %d", i),
			Body:      body,
			Category:  core.CategoryGeneral,
			FetchedAt: time.Now().UTC().Truncate(time.Microsecond),
		})
	}

	require.NoError(t, docs.ReplaceAll(ctx, corpus))

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, pages, count)

	got, err := docs.Get(ctx, corpus[pages-1].Id)
	require.NoError(t, err)
	assert.Equal(t, corpus[pages-1].Location, got.Location)
	assert.Len(t, got.Body, 30000)
}

func TestDocumentRepositoryGet(t *testing.T) {
	docs, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()
	doc := testDocument("https://www.example.edu/fees", "Fees")
	require.NoError(t, docs.ReplaceAll(ctx, []*core.Document{doc}))

	t.Run("existing document", func(t *testing.T) {
		got, err := docs.Get(ctx, doc.Id)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := docs.Get(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDocumentRepositoryEmptyCorpus(t *testing.T) {
	docs, _, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	all, err := docs.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
