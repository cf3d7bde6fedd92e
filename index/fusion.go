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

import "github.com/poiesic/askcampus/core"

// FuseRanked merges two ranked lists with reciprocal rank fusion. Each
// document contributes 1/(rrfK+rank) per list it appears in, with rank
// starting at 1, so a document present in both lists outranks one with a
// single strong placement. Raw scores from the input lists never mix; only
// positions matter. Ties break toward the lower document ID. Returns at
// most k hits.
func FuseRanked(dense, sparse []core.RankedHit, k, rrfK int) []core.RankedHit {
	fused := make(map[core.ID]float64)
	for rank, hit := range dense {
		fused[hit.Id] += 1 / float64(rrfK+rank+1)
	}
	for rank, hit := range sparse {
		fused[hit.Id] += 1 / float64(rrfK+rank+1)
	}

	hits := make([]core.RankedHit, 0, len(fused))
	for id, score := range fused {
		hits = append(hits, core.RankedHit{Id: id, Score: score})
	}

	sortHits(hits)
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits
}
