package index

import (
	"testing"

	"github.com/poiesic/askcampus/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sparseTestDocs() []*core.Document {
	return []*core.Document{
		{Id: 1, Title: "Fee Structure", Body: "Tuition fee for btech programs. The fee is payable each semester."},
		{Id: 2, Title: "Hostel Rules", Body: "Hostel accommodation rules and mess timings for resident students."},
		{Id: 3, Title: "Placement Report", Body: "Placement statistics and recruiter list for the graduating batch."},
	}
}

func TestSparseSearch(t *testing.T) {
	idx := NewSparse()
	require.NoError(t, idx.Build(sparseTestDocs()))

	t.Run("matches salient term", func(t *testing.T) {
		hits := idx.Search("hostel mess timings", 10)
		require.NotEmpty(t, hits)
		assert.Equal(t, core.ID(2), hits[0].Id)
	})

	t.Run("excludes zero scores", func(t *testing.T) {
		hits := idx.Search("fee payment", 10)
		for _, h := range hits {
			assert.Greater(t, h.Score, 0.0)
		}
		// Only the fee document shares a term with the query.
		require.Len(t, hits, 1)
		assert.Equal(t, core.ID(1), hits[0].Id)
	})

	t.Run("no shared terms", func(t *testing.T) {
		assert.Empty(t, idx.Search("quantum chromodynamics", 10))
	})

	t.Run("truncates to k", func(t *testing.T) {
		hits := idx.Search("the for and rules fee placement hostel", 2)
		assert.LessOrEqual(t, len(hits), 2)
	})
}

func TestSparseBuild(t *testing.T) {
	t.Run("empty corpus", func(t *testing.T) {
		assert.ErrorIs(t, NewSparse().Build(nil), ErrNoDocuments)
	})

	t.Run("rebuild replaces contents", func(t *testing.T) {
		idx := NewSparse()
		require.NoError(t, idx.Build(sparseTestDocs()))
		require.NoError(t, idx.Build([]*core.Document{
			{Id: 9, Title: "Library", Body: "Library hours and borrowing limits."},
		}))

		assert.Equal(t, 1, idx.Size())
		assert.Empty(t, idx.Search("hostel", 10))
		require.Len(t, idx.Search("library", 10), 1)
	})
}

func TestSparseSnapshot(t *testing.T) {
	idx := NewSparse()
	require.NoError(t, idx.Build(sparseTestDocs()))

	t.Run("restore ranks identically", func(t *testing.T) {
		restored, err := RestoreSparse(idx.Snapshot())
		require.NoError(t, err)
		assert.Equal(t, idx.Size(), restored.Size())

		for _, query := range []string{"fee structure", "hostel mess", "placement statistics batch"} {
			assert.Equal(t, idx.Search(query, 10), restored.Search(query, 10), "query %q", query)
		}
	})

	t.Run("snapshots are deterministic", func(t *testing.T) {
		assert.Equal(t, idx.Snapshot(), idx.Snapshot())
	})

	t.Run("corrupt blob", func(t *testing.T) {
		blob := idx.Snapshot()
		_, err := RestoreSparse(blob[:len(blob)/3])
		assert.ErrorIs(t, err, ErrCorruptSnapshot)
	})
}
