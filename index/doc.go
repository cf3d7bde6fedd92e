// Package index provides the two retrieval indexes and their fusion.
//
// Dense is a flat inner-product index over normalized embedding vectors.
// Sparse is a BM25 inverted index over lowercase word tokens. Both share
// one tokenizer and one snapshot discipline: each index serializes to a
// single opaque blob, and restoring a blob yields an index that ranks
// identically to the one that produced it.
//
// FuseRanked merges the two result lists by reciprocal rank so neither
// scoring scale dominates the other.
package index
