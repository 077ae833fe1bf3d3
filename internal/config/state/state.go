// Package state implements field-state reconciliation for the configuration
// dashboard.
//
// A Snapshot is an immutable view of the edited configuration: the nested
// value record plus a parallel per-field override map recording which fields
// the user set explicitly. The Reconciler classifies every registry field
// against its default and provides the edit operations; every operation is a
// pure function returning a new Snapshot.
package state

import (
	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

// Snapshot is one immutable state of the edited configuration.
type Snapshot struct {
	// Values is the nested configuration record.
	Values map[string]any

	// Overrides records, by field ID, which fields were explicitly set.
	// A field absent from the map tracks its registry default.
	Overrides map[string]bool
}

// NewSnapshot returns an empty snapshot where every field tracks its default.
func NewSnapshot() Snapshot {
	return Snapshot{}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Values:    dotpath.Clone(s.Values),
		Overrides: cloneOverrides(s.Overrides),
	}
}

// Equal compares two snapshots structurally.
func (s Snapshot) Equal(other Snapshot) bool {
	if !dotpath.Equal(s.Values, other.Values) {
		return false
	}
	if len(s.Overrides) != len(other.Overrides) {
		return false
	}
	for id, v := range s.Overrides {
		if other.Overrides[id] != v {
			return false
		}
	}
	return true
}

// withOverride returns a copy of the snapshot with the override flag for id
// set or cleared. Values are shared with the receiver.
func (s Snapshot) withOverride(id string, explicit bool) Snapshot {
	overrides := cloneOverrides(s.Overrides)
	if explicit {
		if overrides == nil {
			overrides = make(map[string]bool, 1)
		}
		overrides[id] = true
	} else {
		delete(overrides, id)
	}
	return Snapshot{Values: s.Values, Overrides: overrides}
}

func cloneOverrides(src map[string]bool) map[string]bool {
	if src == nil {
		return nil
	}
	dst := make(map[string]bool, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// Status is the reconciliation state of a field relative to its default.
type Status uint8

const (
	// StatusNotSet means the field tracks its registry default.
	StatusNotSet Status = iota

	// StatusExplicitDefault means the field was explicitly set but its value
	// happens to equal the default.
	StatusExplicitDefault

	// StatusExplicitModified means the field was explicitly set to a value
	// that differs from the default.
	StatusExplicitModified
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotSet:
		return "not-set"
	case StatusExplicitDefault:
		return "explicit-default"
	case StatusExplicitModified:
		return "explicit-modified"
	default:
		return "unknown"
	}
}

// FieldState is one row of the dashboard's state report.
type FieldState struct {
	Field  *registry.Field
	Status Status
	Value  any
}
