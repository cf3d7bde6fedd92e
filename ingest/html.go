package ingest

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Text fragments shorter than this are navigation crumbs, not content.
const minFragmentLength = 10

// ExtractHTML pulls the title and readable text out of an HTML payload.
// Script, style and chrome elements are dropped, then headings, paragraphs,
// list items and table cells are collected from the main content region.
func ExtractHTML(payload []byte, location string) (title, body string, err error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return "", "", err
	}

	doc.Find("script, style, nav, footer, header").Remove()

	title = strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = lastPathSegment(location)
	}

	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Find("article").First()
	}
	if root.Length() == 0 {
		root = doc.Find(".content").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}
	if root.Length() == 0 {
		return title, "", nil
	}

	var fragments []string
	root.Find("h1, h2, h3, h4, p, li, td").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if len(text) > minFragmentLength {
			fragments = append(fragments, whitespacePattern.ReplaceAllString(text, " "))
		}
	})

	return title, strings.Join(fragments, "\n\n"), nil
}

// lastPathSegment returns the final path element of a location, used as a
// title of last resort.
func lastPathSegment(location string) string {
	trimmed := strings.TrimRight(location, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
