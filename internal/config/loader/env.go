package loader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

// EnvLoader loads configuration from a dotenv file and the process
// environment. Only variables mapped to a registry field are consumed;
// process environment values override file values.
type EnvLoader struct {
	fs       FileSystem
	path     string
	registry *registry.Registry
	lookup   func(string) (string, bool)
}

// NewEnvLoader creates a loader for the given dotenv file path.
// An empty path skips the file and reads the process environment only.
func NewEnvLoader(reg *registry.Registry, path string) *EnvLoader {
	return &EnvLoader{
		fs:       DefaultFS(),
		path:     path,
		registry: reg,
		lookup:   os.LookupEnv,
	}
}

// NewEnvLoaderWithLookup creates a loader with a custom environment lookup
// and file system, for testing.
func NewEnvLoaderWithLookup(reg *registry.Registry, fs FileSystem, path string, lookup func(string) (string, bool)) *EnvLoader {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	return &EnvLoader{
		fs:       fs,
		path:     path,
		registry: reg,
		lookup:   lookup,
	}
}

// Load reads the dotenv file (when present) and the process environment.
func (l *EnvLoader) Load() (Result, error) {
	raw := make(map[string]string)

	if l.path != "" {
		data, err := l.fs.ReadFile(l.path)
		if err != nil && !os.IsNotExist(err) {
			return Result{}, fmt.Errorf("reading env file %s: %w", l.path, err)
		}
		if err == nil {
			fileVars, perr := ParseDotenv(data)
			if perr != nil {
				return Result{}, &ParseError{Path: l.path, Message: perr.Error(), Err: perr}
			}
			for k, v := range fileVars {
				raw[k] = v
			}
		}
	}

	// Process environment overrides file values.
	for _, f := range l.registry.All() {
		if f.EnvKey == "" {
			continue
		}
		if val, ok := l.lookup(f.EnvKey); ok {
			raw[f.EnvKey] = val
		}
	}

	result := Result{}
	for _, f := range l.registry.All() {
		if f.EnvKey == "" {
			continue
		}
		val, ok := raw[f.EnvKey]
		if !ok {
			continue
		}
		result.Values = dotpath.Set(result.Values, f.StoragePath(), CoerceValue(f, val))
		result.Explicit = append(result.Explicit, f.ID)
	}

	return result, nil
}

// ParseDotenv parses KEY=VALUE lines from a dotenv file.
// Supports comments, blank lines, an optional "export " prefix, and single
// or double quoted values.
func ParseDotenv(data []byte) (map[string]string, error) {
	vars := make(map[string]string)

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("line %d: missing '='", i+1)
		}

		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", i+1)
		}

		value = strings.TrimSpace(value)
		value = stripInlineComment(value)
		value = unquote(value)

		vars[key] = value
	}

	return vars, nil
}

// stripInlineComment removes a trailing " # comment" from an unquoted value.
func stripInlineComment(s string) string {
	if strings.HasPrefix(s, `"`) || strings.HasPrefix(s, "'") {
		return s
	}
	if idx := strings.Index(s, " #"); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return s
}

// unquote strips matching single or double quotes from a value.
func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// CoerceValue converts an environment string into the field's declared type.
// Coercion failures fall back to the raw string so that editing can proceed;
// validation is a presentation concern.
func CoerceValue(f *registry.Field, s string) any {
	switch f.Type {
	case registry.TypeBool:
		switch strings.ToLower(s) {
		case "true", "yes", "on", "1":
			return true
		case "false", "no", "off", "0":
			return false
		}
		return s
	case registry.TypeInt:
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		return s
	case registry.TypeFloat:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
		return s
	case registry.TypeArray:
		if s == "" {
			return []string{}
		}
		parts := strings.Split(s, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			result = append(result, strings.TrimSpace(p))
		}
		return result
	default:
		return s
	}
}
