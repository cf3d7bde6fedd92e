package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHTML(t *testing.T) {
	t.Run("prefers the main region and strips chrome", func(t *testing.T) {
		html := `<html><head><title>Fee Structure</title>
<script>var tracking = true;</script></head>
<body>
<nav><ul><li>Home menu entry goes here</li></ul></nav>
<main>
  <h1>Fee Structure 2026</h1>
  <p>Tuition fee for undergraduate programs is payable each semester.</p>
  <li>ok</li>
</main>
<footer><p>All rights reserved by the institution.</p></footer>
</body></html>`

		title, body, err := ExtractHTML([]byte(html), "https://example.edu/fees")
		require.NoError(t, err)

		assert.Equal(t, "Fee Structure", title)
		assert.Contains(t, body, "Fee Structure 2026")
		assert.Contains(t, body, "payable each semester")
		assert.NotContains(t, body, "tracking")
		assert.NotContains(t, body, "Home menu")
		assert.NotContains(t, body, "rights reserved")
		// Fragments at or under the length floor are dropped.
		assert.NotContains(t, body, "ok")
	})

	t.Run("falls back to body without a main region", func(t *testing.T) {
		html := `<html><head><title>About</title></head><body>
<p>The institute was established decades ago.</p></body></html>`

		_, body, err := ExtractHTML([]byte(html), "https://example.edu/about")
		require.NoError(t, err)
		assert.Contains(t, body, "established decades ago")
	})

	t.Run("missing title falls back to the path segment", func(t *testing.T) {
		title, _, err := ExtractHTML([]byte("<html><body><p>Some page content here.</p></body></html>"),
			"https://example.edu/departments/cse")
		require.NoError(t, err)
		assert.Equal(t, "cse", title)
	})

	t.Run("collapses whitespace inside fragments", func(t *testing.T) {
		html := `<html><body><main><p>Spread    across
   many	lines of markup.</p></main></body></html>`

		_, body, err := ExtractHTML([]byte(html), "https://example.edu/x")
		require.NoError(t, err)
		assert.Equal(t, "Spread across many lines of markup.", body)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		location string
		title    string
		want     string
	}{
		{"https://example.edu/admission", "Apply Now", "admissions"},
		{"https://example.edu/placements", "Top Recruiters", "placements"},
		{"https://example.edu/fee-structure", "Fees", "fees"},
		{"https://example.edu/hostel", "Accommodation", "hostel"},
		{"https://example.edu/departments/cse", "Computer Science", "department"},
		{"https://example.edu/people", "Dr. Sharma, Professor", "faculty"},
		{"https://example.edu/campus-life", "Campus Life", "general"},
		// Earlier rules win when several match.
		{"https://example.edu/admission-fee", "", "admissions"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, string(Classify(tt.location, tt.title)),
			"location %s title %q", tt.location, tt.title)
	}
}
