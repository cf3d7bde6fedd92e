package index

import (
	"log/slog"
	"math"
	"slices"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/askcampus/core"
)

// BM25 parameters. k1 controls term-frequency saturation, b controls
// document-length normalization.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

type posting struct {
	doc  int // index into ids
	freq int
}

// Sparse is a BM25 inverted index over lowercase word tokens. It rewards
// rare, document-salient terms and penalizes very long documents.
type Sparse struct {
	ids      []core.ID
	docLens  []int
	avgLen   float64
	postings map[string][]posting
	logger   *slog.Logger
}

// NewSparse creates an empty sparse index.
func NewSparse() *Sparse {
	return &Sparse{
		postings: make(map[string][]posting),
		logger:   slog.Default().With("component", "sparse-index"),
	}
}

// Build tokenizes each document's title and body and replaces the index
// contents.
func (s *Sparse) Build(docs []*core.Document) error {
	if len(docs) == 0 {
		return ErrNoDocuments
	}

	ids := make([]core.ID, len(docs))
	docLens := make([]int, len(docs))
	postings := make(map[string][]posting)
	totalLen := 0

	for i, doc := range docs {
		tokens := Tokenize(doc.Title + " " + doc.Body)
		ids[i] = doc.Id
		docLens[i] = len(tokens)
		totalLen += len(tokens)

		freqs := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			freqs[tok]++
		}
		for term, freq := range freqs {
			postings[term] = append(postings[term], posting{doc: i, freq: freq})
		}
	}

	s.ids = ids
	s.docLens = docLens
	s.avgLen = float64(totalLen) / float64(len(docs))
	s.postings = postings
	s.logger.Info("sparse index built", "documents", len(ids), "terms", len(postings))
	return nil
}

// Search tokenizes the query with the same tokenizer used at build time
// and returns up to k hits with strictly positive BM25 scores. A document
// sharing no discriminating term with the query is not a keyword match at
// all, so zero scores are excluded. An index that was never built returns
// no hits.
func (s *Sparse) Search(query string, k int) []core.RankedHit {
	if len(s.ids) == 0 {
		return nil
	}

	scores := make(map[int]float64)
	n := float64(len(s.ids))

	for _, term := range Tokenize(query) {
		plist, ok := s.postings[term]
		if !ok {
			continue
		}
		// The +1 inside the log keeps IDF positive even for terms present
		// in most documents.
		idf := math.Log(1 + (n-float64(len(plist))+0.5)/(float64(len(plist))+0.5))
		for _, p := range plist {
			tf := float64(p.freq)
			norm := 1 - bm25B + bm25B*float64(s.docLens[p.doc])/s.avgLen
			scores[p.doc] += idf * tf * (bm25K1 + 1) / (tf + bm25K1*norm)
		}
	}

	hits := make([]core.RankedHit, 0, len(scores))
	for doc, score := range scores {
		if score > 0 {
			hits = append(hits, core.RankedHit{Id: s.ids[doc], Score: score})
		}
	}

	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}

// Size returns the number of indexed documents.
func (s *Sparse) Size() int {
	return len(s.ids)
}

// Snapshot serializes the ranking structure and its aligned ID list as one
// bundle. Terms are written in sorted order so snapshots of the same index
// are byte-identical.
func (s *Sparse) Snapshot() []byte {
	terms := make([]string, 0, len(s.postings))
	for term := range s.postings {
		terms = append(terms, term)
	}
	slices.Sort(terms)

	size := core.IDSliceMUS.Size(s.ids)
	size += varint.Int.Size(len(s.docLens))
	for _, l := range s.docLens {
		size += varint.Int.Size(l)
	}
	size += raw.Float64.Size(s.avgLen)
	size += varint.Int.Size(len(terms))
	for _, term := range terms {
		size += ord.String.Size(term)
		plist := s.postings[term]
		size += varint.Int.Size(len(plist))
		for _, p := range plist {
			size += varint.Int.Size(p.doc)
			size += varint.Int.Size(p.freq)
		}
	}

	bs := make([]byte, size)
	n := core.IDSliceMUS.Marshal(s.ids, bs)
	n += varint.Int.Marshal(len(s.docLens), bs[n:])
	for _, l := range s.docLens {
		n += varint.Int.Marshal(l, bs[n:])
	}
	n += raw.Float64.Marshal(s.avgLen, bs[n:])
	n += varint.Int.Marshal(len(terms), bs[n:])
	for _, term := range terms {
		n += ord.String.Marshal(term, bs[n:])
		plist := s.postings[term]
		n += varint.Int.Marshal(len(plist), bs[n:])
		for _, p := range plist {
			n += varint.Int.Marshal(p.doc, bs[n:])
			n += varint.Int.Marshal(p.freq, bs[n:])
		}
	}
	return bs
}

// RestoreSparse rebuilds a sparse index from a snapshot. Any decode error
// or misalignment marks the snapshot corrupt.
func RestoreSparse(blob []byte) (*Sparse, error) {
	ids, n, err := core.IDSliceMUS.Unmarshal(blob)
	if err != nil {
		return nil, ErrCorruptSnapshot
	}

	lenCount, n1, err := varint.Int.Unmarshal(blob[n:])
	n += n1
	if err != nil || lenCount != len(ids) {
		return nil, ErrCorruptSnapshot
	}
	docLens := make([]int, lenCount)
	for i := 0; i < lenCount; i++ {
		l, n1, err := varint.Int.Unmarshal(blob[n:])
		n += n1
		if err != nil || l < 0 {
			return nil, ErrCorruptSnapshot
		}
		docLens[i] = l
	}

	avgLen, n1, err := raw.Float64.Unmarshal(blob[n:])
	n += n1
	if err != nil {
		return nil, ErrCorruptSnapshot
	}

	termCount, n1, err := varint.Int.Unmarshal(blob[n:])
	n += n1
	if err != nil || termCount < 0 {
		return nil, ErrCorruptSnapshot
	}

	postings := make(map[string][]posting, termCount)
	for i := 0; i < termCount; i++ {
		term, n1, err := ord.String.Unmarshal(blob[n:])
		n += n1
		if err != nil {
			return nil, ErrCorruptSnapshot
		}
		plistLen, n1, err := varint.Int.Unmarshal(blob[n:])
		n += n1
		if err != nil || plistLen < 0 {
			return nil, ErrCorruptSnapshot
		}
		plist := make([]posting, plistLen)
		for j := 0; j < plistLen; j++ {
			doc, n1, err := varint.Int.Unmarshal(blob[n:])
			n += n1
			if err != nil {
				return nil, ErrCorruptSnapshot
			}
			freq, n1, err := varint.Int.Unmarshal(blob[n:])
			n += n1
			if err != nil {
				return nil, ErrCorruptSnapshot
			}
			if doc < 0 || doc >= len(ids) {
				return nil, ErrCorruptSnapshot
			}
			plist[j] = posting{doc: doc, freq: freq}
		}
		postings[term] = plist
	}

	s := NewSparse()
	s.ids = ids
	s.docLens = docLens
	s.avgLen = avgLen
	s.postings = postings
	return s, nil
}
