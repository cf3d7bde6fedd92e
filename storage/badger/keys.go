package badger

import (
	"fmt"

	"github.com/poiesic/askcampus/core"
)

// Key prefixes for different data types
const (
	documentPrefix = "docrec"
	generationKey  = "docgen"
	cachePrefix    = "pagecache"
	snapshotPrefix = "idxsnap"
)

// makeDocumentKey generates a key for a corpus document by generation and ID.
func makeDocumentKey(gen uint64, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d:%d", documentPrefix, gen, id))
}

// documentGenPrefix is the key prefix shared by every document in one
// corpus generation.
func documentGenPrefix(gen uint64) []byte {
	return []byte(fmt.Sprintf("%s:%d:", documentPrefix, gen))
}

// makeCacheKey generates a key for a cached page by ID.
func makeCacheKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", cachePrefix, id))
}

// makeSnapshotKey generates a key for a persisted index snapshot by name.
func makeSnapshotKey(name string) []byte {
	return []byte(fmt.Sprintf("%s:%s", snapshotPrefix, name))
}
