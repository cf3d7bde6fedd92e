// Package storage provides the storage abstraction layer for askcampus.
//
// It defines repository interfaces that decouple storage implementation
// from the retrieval core:
//
//   - DocumentRepository: the canonical document corpus, replaced wholesale
//   - PageCache: fetched pages keyed by content-addressed ID
//   - IndexRepository: persisted index snapshots as opaque bundles
//
// Public constructors in implementation packages return these interfaces
// rather than concrete types, so backends stay swappable and tests can plug
// in doubles without modification.
//
// All implementations must be thread-safe; all methods accept a
// context.Context for cancellation.
package storage
