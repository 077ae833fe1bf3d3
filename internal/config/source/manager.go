package source

import (
	"sort"
	"sync"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/state"
)

// Manager holds configuration sources and provides merged snapshots.
type Manager struct {
	mu      sync.RWMutex
	sources []*Source // Sorted by priority (ascending)
	merged  state.Snapshot
	dirty   bool
}

// NewManager creates an empty source manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// Add adds a source. Sources are kept sorted by priority.
func (m *Manager) Add(src *Source) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = append(m.sources, src)
	sort.SliceStable(m.sources, func(i, j int) bool {
		return m.sources[i].Priority < m.sources[j].Priority
	})
	m.dirty = true
}

// Remove removes a source by name.
// Returns true if the source was found and removed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, src := range m.sources {
		if src.Name == name {
			m.sources = append(m.sources[:i], m.sources[i+1:]...)
			m.dirty = true
			return true
		}
	}
	return false
}

// Replace swaps a source's contents in place, adding it when absent.
func (m *Manager) Replace(src *Source) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.sources {
		if existing.Name == src.Name {
			m.sources[i] = src
			m.dirty = true
			return
		}
	}

	m.sources = append(m.sources, src)
	sort.SliceStable(m.sources, func(i, j int) bool {
		return m.sources[i].Priority < m.sources[j].Priority
	})
	m.dirty = true
}

// Get returns a source by name, or nil.
func (m *Manager) Get(name string) *Source {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, src := range m.sources {
		if src.Name == name {
			return src
		}
	}
	return nil
}

// Sources returns all sources sorted by priority.
func (m *Manager) Sources() []*Source {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Source, len(m.sources))
	copy(result, m.sources)
	return result
}

// Len returns the number of sources.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sources)
}

// Merge combines all sources into one snapshot.
// Results are cached until a source is added, removed, or replaced.
func (m *Manager) Merge() state.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty {
		m.merged = mergeSnapshot(m.sources)
		m.dirty = false
	}
	return m.merged.Clone()
}

// WhichSource returns the name of the highest-priority source providing a
// value at the given path, or "" when no source provides it.
func (m *Manager) WhichSource(path string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.sources) - 1; i >= 0; i-- {
		if _, ok := dotpath.Get(m.sources[i].Values, path); ok {
			return m.sources[i].Name
		}
	}
	return ""
}

// Clear removes all sources.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sources = nil
	m.merged = state.Snapshot{}
	m.dirty = true
}
