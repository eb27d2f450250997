package insights

import (
	"sync"

	"tableflip.dev/reflectly/pkg/entry"
	"tableflip.dev/reflectly/pkg/journal"
)

// Dashboard bundles the three insight views.
type Dashboard struct {
	Version   uint64        `json:"version" yaml:"version"`
	Trend     []TrendPoint  `json:"trend" yaml:"trend"`
	Breakdown []MoodCount   `json:"breakdown" yaml:"breakdown"`
	Recent    []entry.Entry `json:"recent" yaml:"recent"`
	Average   float64       `json:"averageScore" yaml:"averageScore"`
}

// Build computes a Dashboard for a snapshot.
func Build(snap journal.Snapshot) Dashboard {
	return Dashboard{
		Version:   snap.Version,
		Trend:     Trend(snap.Entries),
		Breakdown: Breakdown(snap.Entries),
		Recent:    Recent(snap.Entries, RecentCount),
		Average:   Average(snap.Entries),
	}
}

// Memo caches the dashboard of the latest snapshot version it was given.
type Memo struct {
	mu     sync.Mutex
	valid  bool
	cached Dashboard
	builds int
}

// Get returns the dashboard for snap, rebuilding only when the version
// differs from the cached one.
func (m *Memo) Get(snap journal.Snapshot) Dashboard {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.valid && m.cached.Version == snap.Version {
		return m.cached
	}
	m.cached = Build(snap)
	m.valid = true
	m.builds++
	return m.cached
}

// Builds reports how many times the dashboard was computed.
func (m *Memo) Builds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.builds
}
