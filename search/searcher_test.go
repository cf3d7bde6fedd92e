package search

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/askcampus/ai/mock"
	"github.com/poiesic/askcampus/core"
	"github.com/poiesic/askcampus/index"
	badgerstore "github.com/poiesic/askcampus/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchTestDocs() []*core.Document {
	return []*core.Document{
		{Id: 1, Location: "https://example.edu/fees", Title: "Fee Structure",
			Body: "Tuition fee for btech programs is payable each semester. Late fee applies after the deadline."},
		{Id: 2, Location: "https://example.edu/hostel", Title: "Hostel Rules",
			Body: "Hostel accommodation rules, mess timings and laundry services for resident students."},
		{Id: 3, Location: "https://example.edu/placements", Title: "Placement Report",
			Body: "Placement statistics and the recruiter list for the graduating batch."},
	}
}

func newTestSearcher(t *testing.T, opts ...Option) (*Searcher, *mock.MockEmbedder) {
	t.Helper()

	docs, _, _, backend, err := badgerstore.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	corpus := searchTestDocs()
	require.NoError(t, docs.ReplaceAll(context.Background(), corpus))

	embedder := mock.NewMockEmbedder()
	dense := index.NewDense(embedder)
	require.NoError(t, dense.Build(context.Background(), corpus, 1500))

	sparse := index.NewSparse()
	require.NoError(t, sparse.Build(corpus))

	searcher, err := NewSearcher(docs, dense, sparse, opts...)
	require.NoError(t, err)
	return searcher, embedder
}

func TestNewSearcher(t *testing.T) {
	t.Run("requires repository", func(t *testing.T) {
		_, err := NewSearcher(nil, index.NewDense(mock.NewMockEmbedder()), index.NewSparse())
		assert.ErrorIs(t, err, ErrDocumentRepositoryRequired)
	})

	t.Run("requires at least one index", func(t *testing.T) {
		docs, _, _, backend, err := badgerstore.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		_, err = NewSearcher(docs, nil, nil)
		assert.ErrorIs(t, err, ErrNoIndexes)
	})
}

func TestFindEvidence(t *testing.T) {
	t.Run("keyword match surfaces with excerpt", func(t *testing.T) {
		searcher, _ := newTestSearcher(t)

		evidence, err := searcher.FindEvidence(context.Background(), "hostel mess timings")
		require.NoError(t, err)
		require.NotEmpty(t, evidence)

		assert.Equal(t, core.ID(2), evidence[0].Document.Id)
		assert.Contains(t, evidence[0].Excerpt, "mess")
		assert.Greater(t, evidence[0].Score, 0.0)
	})

	t.Run("respects final top k", func(t *testing.T) {
		searcher, _ := newTestSearcher(t, WithTopK(15, 15, 1))

		evidence, err := searcher.FindEvidence(context.Background(), "fee hostel placement")
		require.NoError(t, err)
		assert.Len(t, evidence, 1)
	})

	t.Run("degrades to sparse when embedding fails", func(t *testing.T) {
		searcher, embedder := newTestSearcher(t)
		embedder.EmbedTextFunc = func(_ context.Context, _ string) ([]float32, error) {
			return nil, errors.New("backend down")
		}

		evidence, err := searcher.FindEvidence(context.Background(), "placement statistics")
		require.NoError(t, err)
		require.NotEmpty(t, evidence)
		assert.Equal(t, core.ID(3), evidence[0].Document.Id)
	})

	t.Run("skips hits missing from the corpus", func(t *testing.T) {
		docs, _, _, backend, err := badgerstore.NewMemoryRepositories()
		require.NoError(t, err)
		defer backend.Close()

		// Index three documents but persist only two.
		corpus := searchTestDocs()
		require.NoError(t, docs.ReplaceAll(context.Background(), corpus[:2]))

		sparse := index.NewSparse()
		require.NoError(t, sparse.Build(corpus))

		searcher, err := NewSearcher(docs, nil, sparse)
		require.NoError(t, err)

		evidence, err := searcher.FindEvidence(context.Background(), "placement statistics fee")
		require.NoError(t, err)
		for _, ev := range evidence {
			assert.NotEqual(t, core.ID(3), ev.Document.Id)
		}
	})

	t.Run("monitor observes each stage", func(t *testing.T) {
		searcher, _ := newTestSearcher(t)

		monitor := &recordingMonitor{}
		evidence, err := searcher.FindEvidenceWithMonitor(context.Background(), "hostel", monitor)
		require.NoError(t, err)

		assert.Equal(t, "hostel", monitor.query)
		assert.NotEmpty(t, monitor.fused)
		assert.Len(t, monitor.finished, len(evidence))
	})
}

type recordingMonitor struct {
	noopMonitor
	query    string
	fused    []core.RankedHit
	finished []core.Evidence
}

func (m *recordingMonitor) Start(query string)                { m.query = query }
func (m *recordingMonitor) AfterFusion(hits []core.RankedHit) { m.fused = hits }
func (m *recordingMonitor) Finish(ev []core.Evidence)         { m.finished = ev }
