// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package index

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"unicode/utf8"

	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/askcampus/ai"
	"github.com/poiesic/askcampus/core"
)

// Dense is a flat inner-product index over L2-normalized document
// embeddings. With unit vectors, inner product equals cosine similarity,
// so a linear scan of dot products gives exact nearest neighbors.
//
// Row i of the matrix belongs to ids[i]; the two are serialized together
// in one snapshot so they cannot drift apart on disk.
type Dense struct {
	embedder ai.Embedder
	dim      int
	vectors  []float32 // row-major, len == dim*len(ids)
	ids      []core.ID
	logger   *slog.Logger
}

// NewDense creates an empty dense index bound to an embedder.
func NewDense(embedder ai.Embedder) *Dense {
	return &Dense{
		embedder: embedder,
		logger:   slog.Default().With("component", "dense-index"),
	}
}

// embedText is the document representation fed to the embedder: the title
// plus the leading part of the body, truncated on a rune boundary so
// multi-byte text stays valid.
func embedText(doc *core.Document, bodyLimit int) string {
	body := doc.Body
	if len(body) > bodyLimit {
		cut := bodyLimit
		for cut > 0 && !utf8.RuneStart(body[cut]) {
			cut--
		}
		body = body[:cut]
	}
	return doc.Title + "\n\n" + body
}

// Build embeds every document and replaces the index contents. A missing
// embedding backend fails the build; it is a hard dependency here.
func (d *Dense) Build(ctx context.Context, docs []*core.Document, bodyLimit int) error {
	if d.embedder == nil {
		return ErrEmbedderRequired
	}
	if len(docs) == 0 {
		return ErrNoDocuments
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = embedText(doc, bodyLimit)
	}

	embeddings, err := d.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(docs) || len(embeddings[0]) == 0 {
		return ErrEmbeddingShape
	}

	dim := len(embeddings[0])
	vectors := make([]float32, 0, dim*len(docs))
	ids := make([]core.ID, len(docs))
	for i, vec := range embeddings {
		normalize(vec)
		vectors = append(vectors, vec...)
		ids[i] = docs[i].Id
	}

	d.dim = dim
	d.vectors = vectors
	d.ids = ids
	d.logger.Info("dense index built", "documents", len(ids), "dimension", dim)
	return nil
}

// Search embeds the query, normalizes it the same way as documents, and
// returns up to k hits by descending inner-product similarity. An index
// that was never built returns no hits rather than an error.
func (d *Dense) Search(ctx context.Context, query string, k int) ([]core.RankedHit, error) {
	if len(d.ids) == 0 {
		return nil, nil
	}
	if d.embedder == nil {
		return nil, ErrEmbedderRequired
	}

	vec, err := d.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(vec) != d.dim {
		return nil, ErrEmbeddingShape
	}
	normalize(vec)

	hits := make([]core.RankedHit, len(d.ids))
	for i, id := range d.ids {
		row := d.vectors[i*d.dim : (i+1)*d.dim]
		hits[i] = core.RankedHit{Id: id, Score: float64(dotProduct(row, vec))}
	}

	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// Size returns the number of indexed documents.
func (d *Dense) Size() int {
	return len(d.ids)
}

// Snapshot serializes the index structure together with its aligned ID list.
func (d *Dense) Snapshot() []byte {
	size := varint.Int.Size(d.dim) +
		core.IDSliceMUS.Size(d.ids) +
		core.Float32SliceMUS.Size(d.vectors)

	bs := make([]byte, size)
	n := varint.Int.Marshal(d.dim, bs)
	n += core.IDSliceMUS.Marshal(d.ids, bs[n:])
	core.Float32SliceMUS.Marshal(d.vectors, bs[n:])
	return bs
}

// RestoreDense rebuilds a dense index from a snapshot without recomputing
// embeddings. A snapshot whose matrix and ID list disagree is corrupt and
// must trigger a rebuild instead of returning wrong IDs.
func RestoreDense(embedder ai.Embedder, blob []byte) (*Dense, error) {
	dim, n, err := varint.Int.Unmarshal(blob)
	if err != nil {
		return nil, ErrCorruptSnapshot
	}

	ids, n1, err := core.IDSliceMUS.Unmarshal(blob[n:])
	n += n1
	if err != nil {
		return nil, ErrCorruptSnapshot
	}

	vectors, _, err := core.Float32SliceMUS.Unmarshal(blob[n:])
	if err != nil {
		return nil, ErrCorruptSnapshot
	}

	if dim <= 0 || len(vectors) != dim*len(ids) {
		return nil, ErrCorruptSnapshot
	}

	d := NewDense(embedder)
	d.dim = dim
	d.ids = ids
	d.vectors = vectors
	return d, nil
}

// normalize scales a vector to unit length in place.
func normalize(vec []float32) {
	var sumSquares float64
	for _, v := range vec {
		sumSquares += float64(v) * float64(v)
	}
	if sumSquares == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sumSquares))
	for i := range vec {
		vec[i] *= inv
	}
}

// dotProduct calculates the dot product of two equal-length vectors.
func dotProduct(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// sortHits orders hits by descending score, breaking ties by ascending ID
// so rankings are reproducible.
func sortHits(hits []core.RankedHit) {
	slices.SortFunc(hits, func(a, b core.RankedHit) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		if a.Id < b.Id {
			return -1
		}
		if a.Id > b.Id {
			return 1
		}
		return 0
	})
}
