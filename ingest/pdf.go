package ingest

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDF pulls plain text out of a PDF payload. Only the first
// pageLimit pages are read and the result is capped at charLimit
// characters; prospectus PDFs run to hundreds of pages and the tail is
// almost always boilerplate. The title is taken from the final path
// segment of the location, and the full page count is recorded as an
// attribute.
func ExtractPDF(payload []byte, location string, pageLimit, charLimit int) (title, body string, attributes map[string]string, err error) {
	reader, err := pdf.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", "", nil, err
	}

	pageCount := reader.NumPage()
	limit := pageCount
	if limit > pageLimit {
		limit = pageLimit
	}

	var parts []string
	for i := 1; i <= limit; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		text = strings.TrimSpace(text)
		if text != "" {
			parts = append(parts, text)
		}
	}

	if len(parts) == 0 {
		return "", "", nil, ErrNoContent
	}

	body = strings.Join(parts, "\n\n")
	if len(body) > charLimit {
		body = body[:charLimit]
	}

	attributes = map[string]string{
		"pages": strconv.Itoa(pageCount),
	}
	return lastPathSegment(location), body, attributes, nil
}
