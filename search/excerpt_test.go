package search

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	t.Run("short body returned whole", func(t *testing.T) {
		body := "Hostel fees are payable at the start of each semester."
		assert.Equal(t, body, Excerpt(body, "hostel fees", 400, 100))
	})

	t.Run("window centers on query terms", func(t *testing.T) {
		body := strings.Repeat("filler text about nothing relevant. ", 30) +
			"The hostel mess serves breakfast from seven." +
			strings.Repeat(" more filler afterwards.", 30)

		excerpt := Excerpt(body, "hostel mess breakfast", 100, 50)
		assert.Contains(t, excerpt, "hostel mess")
		assert.True(t, strings.HasPrefix(excerpt, "..."))
	})

	t.Run("length bounded by window plus markers", func(t *testing.T) {
		body := strings.Repeat("semester fee payment details here. ", 50)
		excerpt := Excerpt(body, "fee payment", 400, 100)
		assert.LessOrEqual(t, len(excerpt), 400+6)
	})

	t.Run("leftmost window wins ties", func(t *testing.T) {
		// Both halves mention the term; the excerpt must come from the front.
		body := "campus placement drive opens in october. " +
			strings.Repeat("unrelated middle content goes on and on. ", 20) +
			"campus placement drive closes in december."

		excerpt := Excerpt(body, "placement", 60, 30)
		assert.Contains(t, excerpt, "opens")
		assert.NotContains(t, excerpt, "closes")
	})

	t.Run("no matching terms falls back to document start", func(t *testing.T) {
		body := strings.Repeat("orientation schedule and campus map. ", 40)
		excerpt := Excerpt(body, "zzzz", 120, 60)
		assert.True(t, strings.HasPrefix(excerpt, "orientation"))
		assert.True(t, strings.HasSuffix(excerpt, "..."))
	})

	t.Run("multi-byte body stays valid UTF-8", func(t *testing.T) {
		// Devanagari runes are three bytes, so stride offsets land
		// mid-character unless windows snap to rune boundaries.
		body := strings.Repeat("जानकारी ", 100) +
			"hostel mess timings and rules. " +
			strings.Repeat("और जानकारी ", 50)

		excerpt := Excerpt(body, "hostel mess", 100, 50)
		assert.True(t, utf8.ValidString(excerpt))
		assert.Contains(t, excerpt, "hostel mess")
	})

	t.Run("multi-byte body with no matches stays valid UTF-8", func(t *testing.T) {
		body := strings.Repeat("छात्रावास की जानकारी यहाँ है। ", 40)
		excerpt := Excerpt(body, "hostel", 100, 50)
		assert.True(t, utf8.ValidString(excerpt))
		assert.NotEmpty(t, excerpt)
	})
}
