package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived from the entity's source location via content-based hashing.
type ID uint64

// IDFromLocation generates a deterministic ID for a source location using
// BLAKE2b hashing. The same location always produces the same ID, which is
// what makes the page cache and corpus deduplication work.
func IDFromLocation(location string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(location))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Category is a coarse classification assigned to a document at ingestion
// time. It is derived from the document's location and title and never
// changes afterwards.
type Category string

const (
	CategoryAdmissions Category = "admissions"
	CategoryPlacements Category = "placements"
	CategoryFees       Category = "fees"
	CategoryHostel     Category = "hostel"
	CategoryDepartment Category = "department"
	CategoryFaculty    Category = "faculty"
	// CategoryDocument marks content extracted from a binary source (PDF).
	CategoryDocument Category = "document"
	CategoryGeneral  Category = "general"
)

// Document is the unit of knowledge: one normalized page or binary document
// fetched from the content source.
//
// The embedding vector is deliberately not part of the record. Embeddings
// live only inside the dense index's runtime structure, so corpus storage
// does not grow with (or depend on) the index format.
type Document struct {
	Id         ID
	Location   string            // origin URL, immutable once assigned
	Title      string
	Body       string            // whitespace-normalized plain text
	Category   Category
	Attributes map[string]string // auxiliary metadata, e.g. page count for PDFs
	FetchedAt  time.Time         // time of the last successful fetch
}

// RankedHit is a single (document, score) pair produced by one ranker.
// Scores from different rankers are not comparable with each other; only
// rank positions are.
type RankedHit struct {
	Id    ID
	Score float64
}

// Evidence is a citation-ready search result: a document, its fused
// relevance score, and the excerpt of its body most relevant to the query.
type Evidence struct {
	Document *Document
	Score    float64
	Excerpt  string
}
