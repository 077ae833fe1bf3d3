package state

import (
	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

// Reconciler classifies registry fields against a snapshot and provides the
// edit operations. All methods are pure: results depend only on the snapshot
// and the registry, and mutating operations return new snapshots.
//
// Operations given a field ID absent from the registry are no-ops returning
// the snapshot unchanged. The dashboard must stay usable when the stored
// configuration and the registry drift apart.
type Reconciler struct {
	registry *registry.Registry
}

// New creates a reconciler over the given field registry.
func New(reg *registry.Registry) *Reconciler {
	return &Reconciler{registry: reg}
}

// Registry returns the underlying field registry.
func (r *Reconciler) Registry() *registry.Registry {
	return r.registry
}

// CurrentValue returns the effective value of a field: the stored value at
// the field's storage path, or the registry default when absent.
// Returns nil for unknown field IDs.
func (r *Reconciler) CurrentValue(snap Snapshot, id string) any {
	f := r.registry.Get(id)
	if f == nil {
		return nil
	}

	if val, ok := dotpath.Get(snap.Values, f.StoragePath()); ok {
		return val
	}
	return f.Default
}

// IsUsingDefault reports whether no explicit override has been recorded for
// the field.
func (r *Reconciler) IsUsingDefault(snap Snapshot, id string) bool {
	return !snap.Overrides[id]
}

// Classify returns the field's reconciliation status.
// Unknown field IDs classify as not-set.
func (r *Reconciler) Classify(snap Snapshot, id string) Status {
	f := r.registry.Get(id)
	if f == nil {
		return StatusNotSet
	}

	if r.IsUsingDefault(snap, id) {
		return StatusNotSet
	}
	if dotpath.Equal(r.CurrentValue(snap, id), f.Default) {
		return StatusExplicitDefault
	}
	return StatusExplicitModified
}

// SetExplicitValue writes value at the field's path and marks the field as
// explicitly overridden.
func (r *Reconciler) SetExplicitValue(snap Snapshot, id string, value any) Snapshot {
	f := r.registry.Get(id)
	if f == nil {
		return snap
	}

	next := snap.withOverride(id, true)
	next.Values = dotpath.Set(snap.Values, f.StoragePath(), value)
	return next
}

// ToggleOverride flips the override flag without changing the stored value.
func (r *Reconciler) ToggleOverride(snap Snapshot, id string, explicit bool) Snapshot {
	if r.registry.Get(id) == nil {
		return snap
	}
	return snap.withOverride(id, explicit)
}

// ResetToDefault writes the registry default at the field's path and clears
// its override flag. The field returns to the not-set state.
func (r *Reconciler) ResetToDefault(snap Snapshot, id string) Snapshot {
	f := r.registry.Get(id)
	if f == nil {
		return snap
	}

	next := snap.withOverride(id, false)
	next.Values = dotpath.Set(snap.Values, f.StoragePath(), f.Default)
	return next
}

// ResetAll resets every registry field to its default and clears all
// override flags. Idempotent: applying it twice yields the same snapshot.
func (r *Reconciler) ResetAll(snap Snapshot) Snapshot {
	values := snap.Values
	for _, f := range r.registry.All() {
		values = dotpath.Set(values, f.StoragePath(), f.Default)
	}
	return Snapshot{Values: values}
}

// States returns the reconciliation report for every registry field, in
// registry order. This is the dashboard's row model.
func (r *Reconciler) States(snap Snapshot) []FieldState {
	fields := r.registry.All()
	result := make([]FieldState, 0, len(fields))
	for _, f := range fields {
		result = append(result, FieldState{
			Field:  f,
			Status: r.Classify(snap, f.ID),
			Value:  r.CurrentValue(snap, f.ID),
		})
	}
	return result
}

// Overridden returns the IDs of all explicitly-set fields, in registry order.
func (r *Reconciler) Overridden(snap Snapshot) []string {
	var result []string
	for _, f := range r.registry.All() {
		if snap.Overrides[f.ID] {
			result = append(result, f.ID)
		}
	}
	return result
}
