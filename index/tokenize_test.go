package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Run("lowercases and drops short tokens", func(t *testing.T) {
		tokens := Tokenize("The Fee Structure for BTech is HERE")
		assert.Equal(t, []string{"the", "fee", "structure", "for", "btech", "here"}, tokens)
	})

	t.Run("splits on punctuation", func(t *testing.T) {
		tokens := Tokenize("admissions-2026: apply_now!")
		assert.Equal(t, []string{"admissions", "2026", "apply_now"}, tokens)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, Tokenize(""))
		assert.Empty(t, Tokenize("a b of"))
	})
}
