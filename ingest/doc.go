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

// Package ingest acquires the document corpus from the institution's site.
//
// The Ingestor enumerates locations from the sitemap plus a fixed list of
// critical paths, fetches each one through a bounded worker pool, extracts
// readable text from HTML and PDF payloads, classifies the result, and
// returns validated documents. Fetched pages pass through a persistent
// cache so repeat ingestion runs only refetch stale content.
//
// A single bad page never fails a run. Per-location failures are logged,
// counted, and skipped.
package ingest
