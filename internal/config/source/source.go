// Package source manages configuration sources with priority-based merging.
//
// Each source contributes a nested value map plus the field IDs it sets
// explicitly. Merging applies sources in priority order (higher overrides
// lower) and unions the explicit sets into the snapshot's override map.
package source

import (
	"time"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/state"
)

// Kind indicates where a configuration source came from.
type Kind uint8

const (
	// KindBuiltin represents registry defaults. Builtin values never mark
	// fields as explicit.
	KindBuiltin Kind = iota
	// KindYAMLFile represents the YAML config file.
	KindYAMLFile
	// KindEnvFile represents the dotenv file.
	KindEnvFile
	// KindProcessEnv represents process environment variables.
	KindProcessEnv
	// KindSession represents in-memory session edits.
	KindSession
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindBuiltin:
		return "builtin"
	case KindYAMLFile:
		return "yaml"
	case KindEnvFile:
		return "env-file"
	case KindProcessEnv:
		return "environment"
	case KindSession:
		return "session"
	default:
		return "unknown"
	}
}

// Merge priorities, lowest first.
const (
	PriorityBuiltin    = 0
	PriorityYAMLFile   = 10
	PriorityEnvFile    = 20
	PriorityProcessEnv = 30
	PrioritySession    = 40
)

// Source is a single configuration source.
type Source struct {
	// Name identifies the source (e.g., "env-file").
	Name string

	// Kind indicates where the source was loaded from.
	Kind Kind

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Path is the file path (if loaded from file).
	Path string

	// Values holds the configuration values the source contributes.
	Values map[string]any

	// Explicit lists the field IDs the source sets explicitly.
	Explicit []string

	// ModTime is when the source was last loaded.
	ModTime time.Time
}

// New creates a source with the conventional priority for its kind.
func New(name string, kind Kind, values map[string]any, explicit []string) *Source {
	return &Source{
		Name:     name,
		Kind:     kind,
		Priority: defaultPriority(kind),
		Values:   values,
		Explicit: explicit,
		ModTime:  time.Now(),
	}
}

func defaultPriority(kind Kind) int {
	switch kind {
	case KindYAMLFile:
		return PriorityYAMLFile
	case KindEnvFile:
		return PriorityEnvFile
	case KindProcessEnv:
		return PriorityProcessEnv
	case KindSession:
		return PrioritySession
	default:
		return PriorityBuiltin
	}
}

// Clone creates a deep copy of the source.
func (s *Source) Clone() *Source {
	explicit := make([]string, len(s.Explicit))
	copy(explicit, s.Explicit)
	return &Source{
		Name:     s.Name,
		Kind:     s.Kind,
		Priority: s.Priority,
		Path:     s.Path,
		Values:   dotpath.Clone(s.Values),
		Explicit: explicit,
		ModTime:  s.ModTime,
	}
}

// deepMerge recursively merges src into dst, cloning merged values so
// neither input is aliased by the result. Values in src override dst.
func deepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any)
	}
	if src == nil {
		return dst
	}

	for key, srcVal := range src {
		dstVal, exists := dst[key]
		if !exists {
			dst[key] = cloneValue(srcVal)
			continue
		}

		srcMap, srcIsMap := srcVal.(map[string]any)
		dstMap, dstIsMap := dstVal.(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = deepMerge(dstMap, srcMap)
		} else {
			dst[key] = cloneValue(srcVal)
		}
	}

	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return dotpath.Clone(v)
	default:
		return val
	}
}

// mergeSnapshot merges sources (already sorted by ascending priority) into
// one snapshot.
func mergeSnapshot(sources []*Source) state.Snapshot {
	values := make(map[string]any)
	overrides := make(map[string]bool)

	for _, src := range sources {
		values = deepMerge(values, src.Values)
		if src.Kind == KindBuiltin {
			continue
		}
		for _, id := range src.Explicit {
			overrides[id] = true
		}
	}

	if len(overrides) == 0 {
		overrides = nil
	}
	return state.Snapshot{Values: values, Overrides: overrides}
}
