package registry

import (
	"fmt"
	"strings"
	"sync"
)

// Registry maintains all known field definitions in registration order.
type Registry struct {
	mu     sync.RWMutex
	fields []*Field
	byID   map[string]*Field
	byEnv  map[string]*Field
	tabs   []string
}

// New creates a new empty field registry.
func New() *Registry {
	return &Registry{
		byID:  make(map[string]*Field),
		byEnv: make(map[string]*Field),
	}
}

// NewWithDefaults creates a registry with the built-in field catalogue.
func NewWithDefaults() *Registry {
	r := New()
	r.RegisterDefaults()
	return r
}

// Register adds a field definition to the registry.
// Returns an error if a field with the same ID already exists.
func (r *Registry) Register(field Field) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[field.ID]; exists {
		return fmt.Errorf("%w: %s", ErrFieldAlreadyRegistered, field.ID)
	}

	f := &field // Copy to heap
	r.fields = append(r.fields, f)
	r.byID[field.ID] = f
	if field.EnvKey != "" {
		r.byEnv[field.EnvKey] = f
	}

	if field.Tab != "" && !containsString(r.tabs, field.Tab) {
		r.tabs = append(r.tabs, field.Tab)
	}

	return nil
}

// MustRegister registers a field and panics on error.
// Useful for registering the built-in catalogue at init time.
func (r *Registry) MustRegister(field Field) {
	if err := r.Register(field); err != nil {
		panic(err)
	}
}

// Get returns the field definition for the given ID.
// Returns nil if the field is not registered.
func (r *Registry) Get(id string) *Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// ByEnvKey returns the field mapped to an environment variable.
// Returns nil if no field uses that key.
func (r *Registry) ByEnvKey(key string) *Field {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byEnv[key]
}

// Has checks if a field is registered.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.byID[id]
	return exists
}

// All returns all registered fields in registration order.
func (r *Registry) All() []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Field, len(r.fields))
	copy(result, r.fields)
	return result
}

// Len returns the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}

// Tab returns all fields in a given dashboard tab, in registration order.
func (r *Registry) Tab(name string) []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Field
	for _, f := range r.fields {
		if f.Tab == name {
			result = append(result, f)
		}
	}
	return result
}

// Tabs returns tab names in first-registration order.
func (r *Registry) Tabs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, len(r.tabs))
	copy(result, r.tabs)
	return result
}

// Search finds fields matching a query string.
// Searches ID, description, env key, and tags.
func (r *Registry) Search(query string) []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(query)
	var result []*Field

	for _, f := range r.fields {
		if matchesField(f, query) {
			result = append(result, f)
		}
	}
	return result
}

// ByTag returns all fields with the given tag, in registration order.
func (r *Registry) ByTag(tag string) []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Field
	for _, f := range r.fields {
		for _, t := range f.Tags {
			if t == tag {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// Sensitive returns all fields marked as secrets.
func (r *Registry) Sensitive() []*Field {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Field
	for _, f := range r.fields {
		if f.Sensitive {
			result = append(result, f)
		}
	}
	return result
}

// Default returns the default value for a field.
// Returns nil if the field is not registered.
func (r *Registry) Default(id string) any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.byID[id]; ok {
		return f.Default
	}
	return nil
}

// matchesField checks if a field matches a search query.
func matchesField(f *Field, query string) bool {
	if strings.Contains(strings.ToLower(f.ID), query) {
		return true
	}
	if strings.Contains(strings.ToLower(f.Description), query) {
		return true
	}
	if f.EnvKey != "" && strings.Contains(strings.ToLower(f.EnvKey), query) {
		return true
	}
	for _, tag := range f.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

// ErrFieldAlreadyRegistered is returned when registering a duplicate field.
var ErrFieldAlreadyRegistered = fmt.Errorf("field already registered")
