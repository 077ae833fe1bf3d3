// Package dotpath provides get/set access to nested configuration maps
// using dot-separated paths.
//
// All write operations are immutable: Set and Delete return a new top-level
// map, shallow-cloning only the maps along the edited path and leaving
// sibling branches structurally shared with the input.
package dotpath

import (
	"reflect"
	"strings"
)

// Get returns the value at the given dot-separated path.
// A flat key is treated as a one-segment path. Returns false if any
// intermediate segment is missing, nil, or not a map.
func Get(data map[string]any, path string) (any, bool) {
	if data == nil || path == "" {
		return nil, false
	}

	parts := strings.Split(path, ".")
	current := any(data)

	for _, part := range parts {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		val, exists := m[part]
		if !exists {
			return nil, false
		}

		current = val
	}

	return current, true
}

// Set returns a new map with value assigned at the given dot-separated path.
// Every map along the path is shallow-cloned; missing or non-map
// intermediates are replaced with fresh maps so that editing can always
// proceed. The input map is never mutated.
func Set(data map[string]any, path string, value any) map[string]any {
	if path == "" {
		return data
	}
	return setParts(data, strings.Split(path, "."), value)
}

func setParts(data map[string]any, parts []string, value any) map[string]any {
	clone := make(map[string]any, len(data)+1)
	for k, v := range data {
		clone[k] = v
	}

	key := parts[0]
	if len(parts) == 1 {
		clone[key] = value
		return clone
	}

	// A non-map intermediate yields nil here and is replaced by a fresh map.
	child, _ := clone[key].(map[string]any)
	clone[key] = setParts(child, parts[1:], value)
	return clone
}

// Delete returns a new map with the value at the given path removed.
// If the path does not resolve, the input is returned unchanged.
func Delete(data map[string]any, path string) map[string]any {
	if data == nil || path == "" {
		return data
	}

	parts := strings.Split(path, ".")
	if _, ok := Get(data, path); !ok {
		return data
	}
	return deleteParts(data, parts)
}

func deleteParts(data map[string]any, parts []string) map[string]any {
	clone := make(map[string]any, len(data))
	for k, v := range data {
		clone[k] = v
	}

	key := parts[0]
	if len(parts) == 1 {
		delete(clone, key)
		return clone
	}

	child, ok := clone[key].(map[string]any)
	if !ok {
		return clone
	}
	clone[key] = deleteParts(child, parts[1:])
	return clone
}

// Clone creates a deep copy of a configuration map.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}

	dst := make(map[string]any, len(src))
	for key, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[key] = Clone(v)
		case []any:
			dst[key] = cloneSlice(v)
		default:
			dst[key] = val
		}
	}

	return dst
}

// cloneSlice creates a deep copy of a slice.
func cloneSlice(src []any) []any {
	if src == nil {
		return nil
	}

	dst := make([]any, len(src))
	for i, val := range src {
		switch v := val.(type) {
		case map[string]any:
			dst[i] = Clone(v)
		case []any:
			dst[i] = cloneSlice(v)
		default:
			dst[i] = val
		}
	}

	return dst
}

// Equal compares two values structurally.
// Maps are compared key-by-key (order-independent), slices element-by-element
// (order-dependent), everything else with ==.
func Equal(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	switch va := a.(type) {
	case map[string]any:
		vb, ok := b.(map[string]any)
		if !ok {
			return false
		}
		return mapsEqual(va, vb)
	case []any:
		if vb, ok := b.([]string); ok {
			return stringSliceEqualAny(vb, a)
		}
		if vb, ok := b.([]any); ok {
			return slicesEqual(va, vb)
		}
		return reflectSlicesEqual(a, b)
	case []string:
		vb, ok := b.([]string)
		if !ok {
			return stringSliceEqualAny(va, b)
		}
		if len(va) != len(vb) {
			return false
		}
		for i := range va {
			if va[i] != vb[i] {
				return false
			}
		}
		return true
	default:
		if vb, ok := b.([]string); ok {
			return stringSliceEqualAny(vb, a)
		}
		// Typed numeric slices ([]int, []float64, ...) pass field
		// validation and reach snapshots, so they must compare without
		// panicking.
		if reflect.ValueOf(a).Kind() == reflect.Slice || reflect.ValueOf(b).Kind() == reflect.Slice {
			return reflectSlicesEqual(a, b)
		}
		return numericEqual(a, b)
	}
}

// reflectSlicesEqual compares two slices of any element type, element by
// element through Equal.
func reflectSlicesEqual(a, b any) bool {
	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Kind() != reflect.Slice || vb.Kind() != reflect.Slice {
		return false
	}
	if va.Len() != vb.Len() {
		return false
	}
	for i := 0; i < va.Len(); i++ {
		if !Equal(va.Index(i).Interface(), vb.Index(i).Interface()) {
			return false
		}
	}
	return true
}

func mapsEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !Equal(va, vb) {
			return false
		}
	}
	return true
}

func slicesEqual(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// stringSliceEqualAny compares a []string against a possibly-[]any slice.
// Loaders deserialize arrays as []any while registry defaults use []string.
func stringSliceEqualAny(a []string, b any) bool {
	vb, ok := b.([]any)
	if !ok {
		return false
	}
	if len(a) != len(vb) {
		return false
	}
	for i := range a {
		s, ok := vb[i].(string)
		if !ok || s != a[i] {
			return false
		}
	}
	return true
}

// numericEqual compares scalars, treating integer and float representations
// of the same number as equal. YAML and env loaders disagree on int widths.
func numericEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		return af == bf
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Flatten flattens a nested map into a single-level map with dot-separated keys.
func Flatten(data map[string]any) map[string]any {
	result := make(map[string]any)
	flattenRecursive(data, "", result)
	return result
}

func flattenRecursive(data map[string]any, prefix string, result map[string]any) {
	for key, val := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		if nested, ok := val.(map[string]any); ok && len(nested) > 0 {
			flattenRecursive(nested, fullKey, result)
		} else {
			result[fullKey] = val
		}
	}
}

// Unflatten converts a map with dot-separated keys back to nested structure.
func Unflatten(data map[string]any) map[string]any {
	result := make(map[string]any)
	for path, val := range data {
		result = Set(result, path, val)
	}
	return result
}

// Diff returns the paths that differ between two maps.
func Diff(old, new map[string]any) (added, modified, removed []string) {
	oldFlat := Flatten(old)
	newFlat := Flatten(new)

	for path, newVal := range newFlat {
		if oldVal, exists := oldFlat[path]; exists {
			if !Equal(oldVal, newVal) {
				modified = append(modified, path)
			}
		} else {
			added = append(added, path)
		}
	}

	for path := range oldFlat {
		if _, exists := newFlat[path]; !exists {
			removed = append(removed, path)
		}
	}

	return added, modified, removed
}
