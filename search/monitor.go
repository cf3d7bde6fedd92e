package search

import "github.com/poiesic/askcampus/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate rankings during retrieval.
type SearchMonitor interface {
	Start(query string)
	AfterDenseSearch(hits []core.RankedHit)
	AfterSparseSearch(hits []core.RankedHit)
	AfterFusion(hits []core.RankedHit)
	Finish(evidence []core.Evidence)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                       {}
func (n *noopMonitor) AfterDenseSearch(_ []core.RankedHit)  {}
func (n *noopMonitor) AfterSparseSearch(_ []core.RankedHit) {}
func (n *noopMonitor) AfterFusion(_ []core.RankedHit)       {}
func (n *noopMonitor) Finish(_ []core.Evidence)             {}
