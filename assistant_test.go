package askcampus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/poiesic/askcampus/ai/mock"
	"github.com/poiesic/askcampus/config"
	"github.com/poiesic/askcampus/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves canned HTML by location and counts fetches.
type stubFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	fetches int
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{pages: make(map[string]string)}
}

func (f *stubFetcher) addPage(location, title, text string) {
	f.pages[location] = fmt.Sprintf(
		`<html><head><title>%s</title></head><body><main><p>%s</p></main></body></html>`,
		title, text)
}

func (f *stubFetcher) Fetch(_ context.Context, location string) (*ingest.FetchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	html, ok := f.pages[location]
	if !ok {
		return nil, errors.New("not found")
	}
	return &ingest.FetchResult{Body: []byte(html), ContentType: "text/html"}, nil
}

func (f *stubFetcher) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.New(
		config.WithBaseURL("https://example.edu"),
		config.WithCriticalPaths([]string{"/admissions", "/fee-structure", "/hostel"}),
		config.WithFetchWorkers(2),
	)
	require.NoError(t, err)
	return cfg
}

func populatedFetcher() *stubFetcher {
	filler := strings.Repeat("Detailed institutional information for prospective students. ", 3)
	fetcher := newStubFetcher()
	fetcher.addPage("https://example.edu/admissions", "Admission Process", "Eligibility and application steps. "+filler)
	fetcher.addPage("https://example.edu/fee-structure", "Fee Structure", "Tuition fee payable each semester. "+filler)
	fetcher.addPage("https://example.edu/hostel", "Hostel Rules", "Hostel accommodation and mess timings. "+filler)
	return fetcher
}

func newTestAssistant(t *testing.T, fetcher ingest.Fetcher, opts ...AssistantOption) *Assistant {
	t.Helper()

	base := []AssistantOption{
		WithInMemoryStorage(),
		WithProvider(mock.NewMockProvider()),
		WithFetcher(fetcher),
	}
	assistant, err := New("", testConfig(t), append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = assistant.Close() })
	return assistant
}

func TestAssistantLifecycle(t *testing.T) {
	t.Run("starts uninitialized", func(t *testing.T) {
		assistant := newTestAssistant(t, newStubFetcher())
		assert.Equal(t, StateUninitialized, assistant.State())

		reply := assistant.Query(context.Background(), "what are the fees")
		assert.Contains(t, reply, "not ready")
	})

	t.Run("initialize on an empty store runs a full build", func(t *testing.T) {
		assistant := newTestAssistant(t, populatedFetcher())

		require.NoError(t, assistant.Initialize(context.Background(), nil))
		assert.Equal(t, StateReady, assistant.State())
		assert.NoError(t, assistant.Err())
	})

	t.Run("ingestion failure moves to failed", func(t *testing.T) {
		assistant := newTestAssistant(t, newStubFetcher())

		err := assistant.Initialize(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, StateFailed, assistant.State())
		assert.ErrorIs(t, assistant.Err(), ErrEmptyCorpus)

		reply := assistant.Query(context.Background(), "anything")
		assert.Contains(t, reply, "failed")
	})

	t.Run("rebuild returns to ready", func(t *testing.T) {
		assistant := newTestAssistant(t, populatedFetcher())
		require.NoError(t, assistant.Initialize(context.Background(), nil))

		require.NoError(t, assistant.Rebuild(context.Background(), true, nil))
		assert.Equal(t, StateReady, assistant.State())
	})

	t.Run("previous generation serves during rebuild", func(t *testing.T) {
		assistant := newTestAssistant(t, populatedFetcher())
		require.NoError(t, assistant.Initialize(context.Background(), nil))

		// A rebuild in flight flips the state but leaves the published
		// generation in place; queries must keep answering from it.
		assistant.setState(StateIngesting)
		reply := assistant.Query(context.Background(), "hostel mess timings")
		assert.NotContains(t, reply, "not ready")
		assert.Contains(t, reply, "https://example.edu/hostel")

		assistant.setState(StateIndexing)
		reply = assistant.Query(context.Background(), "hostel mess timings")
		assert.NotContains(t, reply, "not ready")
	})
}

func TestAssistantQuery(t *testing.T) {
	newReady := func(t *testing.T) *Assistant {
		assistant := newTestAssistant(t, populatedFetcher())
		require.NoError(t, assistant.Initialize(context.Background(), nil))
		return assistant
	}

	t.Run("blank question prompts for input", func(t *testing.T) {
		assistant := newReady(t)
		assert.Equal(t, "Please enter a question.", assistant.Query(context.Background(), "   "))
	})

	t.Run("answers carry sources", func(t *testing.T) {
		assistant := newReady(t)
		reply := assistant.Query(context.Background(), "hostel mess timings")
		assert.Contains(t, reply, "Sources:")
		assert.Contains(t, reply, "https://example.edu/hostel")
	})

	t.Run("fallback mode still answers", func(t *testing.T) {
		provider := mock.NewMockProvider()
		provider.NoCompleter = true

		assistant := newTestAssistant(t, populatedFetcher(), WithProvider(provider))
		require.NoError(t, assistant.Initialize(context.Background(), nil))

		reply := assistant.Query(context.Background(), "fee structure")
		assert.Contains(t, reply, "Fee Structure")
		assert.Contains(t, reply, "https://example.edu/fee-structure")
	})

	t.Run("extractive reply names the query", func(t *testing.T) {
		provider := mock.NewMockProvider()
		provider.NoCompleter = true

		assistant := newTestAssistant(t, populatedFetcher(), WithProvider(provider))
		require.NoError(t, assistant.Initialize(context.Background(), nil))

		reply := assistant.Query(context.Background(), "scholarship deadlines")
		assert.Contains(t, reply, "scholarship deadlines")
	})
}

func TestAssistantPersistence(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(t)

	fetcher := populatedFetcher()
	assistant, err := New(dir, cfg,
		WithProvider(mock.NewMockProvider()), WithFetcher(fetcher))
	require.NoError(t, err)
	require.NoError(t, assistant.Initialize(context.Background(), nil))
	require.NoError(t, assistant.Close())

	// A fresh process over the same store must serve without refetching.
	cold := newStubFetcher()
	reopened, err := New(dir, cfg,
		WithProvider(mock.NewMockProvider()), WithFetcher(cold))
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.Initialize(context.Background(), nil))
	assert.Equal(t, StateReady, reopened.State())
	assert.Equal(t, 0, cold.fetchCount())

	reply := reopened.Query(context.Background(), "hostel mess timings")
	assert.Contains(t, reply, "https://example.edu/hostel")
}
