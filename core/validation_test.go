package core

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minBody = 100

func validDocument() *Document {
	location := "https://www.example.edu/admissions"
	return &Document{
		Id:        IDFromLocation(location),
		Location:  location,
		Title:     "Admissions",
		Body:      strings.Repeat("Admission information. ", 10),
		Category:  CategoryAdmissions,
		FetchedAt: time.Now().UTC(),
	}
}

func TestValidateDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		require.NoError(t, ValidateDocument(validDocument(), minBody))
	})

	t.Run("nil document", func(t *testing.T) {
		err := ValidateDocument(nil, minBody)
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("empty location", func(t *testing.T) {
		doc := validDocument()
		doc.Location = ""
		err := ValidateDocument(doc, minBody)
		assert.ErrorIs(t, err, ErrEmptyLocation)
	})

	t.Run("empty title", func(t *testing.T) {
		doc := validDocument()
		doc.Title = ""
		err := ValidateDocument(doc, minBody)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("body below threshold", func(t *testing.T) {
		doc := validDocument()
		doc.Body = "too short"
		err := ValidateDocument(doc, minBody)
		assert.ErrorIs(t, err, ErrBodyTooShort)
	})

	t.Run("id does not match location", func(t *testing.T) {
		doc := validDocument()
		doc.Id = doc.Id + 1
		err := ValidateDocument(doc, minBody)
		assert.ErrorIs(t, err, ErrIDMismatch)
	})
}
