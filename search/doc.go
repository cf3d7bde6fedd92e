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

// Package search runs hybrid retrieval over the ingested corpus.
//
// The Searcher type combines two signals for each query:
//   - Semantic search over a dense embedding index
//   - Keyword search over a sparse BM25 index
//
// The two ranked lists are merged with reciprocal rank fusion, fused hits
// are resolved against the document repository, and each surviving hit is
// returned with a query-focused excerpt as supporting evidence.
package search
