// Package preset provides one-click configuration presets for the dashboard.
//
// A preset is an ordered list of field edits applied through the reconciler,
// so applied fields land in the explicit state exactly as if the user had set
// them by hand. Built-in presets cover the common setups (agent-only mode,
// email providers, caching strategy); additional presets load from TOML files.
package preset

import (
	"fmt"
	"sort"
	"sync"

	"github.com/confdash/confdash/internal/config/state"
)

// Edit is a single field assignment within a preset.
type Edit struct {
	FieldID string
	Value   any
}

// Preset is a named, ordered list of field edits.
type Preset struct {
	// Name identifies the preset (e.g., "agents-only").
	Name string

	// Description is shown next to the one-click button.
	Description string

	// Edits are applied in order via SetExplicitValue.
	Edits []Edit
}

// Apply applies every edit through the reconciler and returns the new
// snapshot. Edits naming unknown fields are skipped; the skipped IDs are
// returned so the caller can surface registry drift.
func (p *Preset) Apply(r *state.Reconciler, snap state.Snapshot) (state.Snapshot, []string) {
	var skipped []string
	for _, e := range p.Edits {
		if !r.Registry().Has(e.FieldID) {
			skipped = append(skipped, e.FieldID)
			continue
		}
		snap = r.SetExplicitValue(snap, e.FieldID, e.Value)
	}
	return snap, skipped
}

// Store holds named presets.
type Store struct {
	mu      sync.RWMutex
	presets map[string]*Preset
}

// NewStore creates an empty preset store.
func NewStore() *Store {
	return &Store{presets: make(map[string]*Preset)}
}

// NewStoreWithBuiltins creates a store preloaded with the built-in presets.
func NewStoreWithBuiltins() *Store {
	s := NewStore()
	for _, p := range Builtins() {
		s.Add(p)
	}
	return s
}

// Add registers a preset, replacing any existing preset with the same name.
func (s *Store) Add(p *Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presets[p.Name] = p
}

// Get returns a preset by name.
func (s *Store) Get(name string) (*Preset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.presets[name]
	return p, ok
}

// Names returns all preset names sorted alphabetically.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.presets))
	for name := range s.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply looks up a preset by name and applies it.
func (s *Store) Apply(name string, r *state.Reconciler, snap state.Snapshot) (state.Snapshot, []string, error) {
	p, ok := s.Get(name)
	if !ok {
		return snap, nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	next, skipped := p.Apply(r, snap)
	return next, skipped, nil
}

// ErrPresetNotFound is returned when applying an unknown preset.
var ErrPresetNotFound = fmt.Errorf("preset not found")
