package askcampus

// State describes the lifecycle of the assistant's knowledge base.
type State int

const (
	// StateUninitialized means no corpus has been loaded or built yet.
	StateUninitialized State = iota

	// StateIngesting means the corpus is being fetched from the site.
	StateIngesting

	// StateIndexing means retrieval indexes are being rebuilt.
	StateIndexing

	// StateReady means queries are being served.
	StateReady

	// StateFailed means the last initialization or rebuild attempt failed.
	// The stored error is available from Assistant.Err.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateIngesting:
		return "ingesting"
	case StateIndexing:
		return "indexing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
