// Package askcampus is a hybrid-retrieval question answering core for an
// institution's public website.
//
// The Assistant facade ties the pieces together: the ingest package
// acquires the corpus from the sitemap and a set of critical pages, the
// index package maintains a dense embedding index and a sparse BM25 index
// over it, the search package fuses the two rankings into evidence, and
// the answer package turns evidence into a grounded reply. Corpus, page
// cache, and index snapshots all persist in a single Badger store, so a
// restart serves again without refetching or re-embedding anything.
package askcampus
