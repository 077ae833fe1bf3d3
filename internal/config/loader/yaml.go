package loader

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/registry"
)

// YAMLLoader loads the YAML configuration file (librechat.yaml style).
// Registry fields whose YAML path is present in the file are explicit;
// unregistered keys are preserved in the values so round-trips keep them.
type YAMLLoader struct {
	fs       FileSystem
	path     string
	registry *registry.Registry
}

// NewYAMLLoader creates a YAML loader for the given path.
func NewYAMLLoader(reg *registry.Registry, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:       DefaultFS(),
		path:     path,
		registry: reg,
	}
}

// NewYAMLLoaderWithFS creates a YAML loader with a custom file system.
func NewYAMLLoaderWithFS(reg *registry.Registry, fs FileSystem, path string) *YAMLLoader {
	return &YAMLLoader{
		fs:       fs,
		path:     path,
		registry: reg,
	}
}

// Load reads and parses the YAML file. A missing file yields an empty Result.
func (l *YAMLLoader) Load() (Result, error) {
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, nil
		}
		return Result{}, fmt.Errorf("reading config file %s: %w", l.path, err)
	}

	return l.parse(l.path, data)
}

// LoadFromReader reads YAML configuration from an io.Reader.
func (l *YAMLLoader) LoadFromReader(r io.Reader) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, fmt.Errorf("reading config: %w", err)
	}

	return l.parse("<reader>", data)
}

func (l *YAMLLoader) parse(source string, data []byte) (Result, error) {
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return Result{}, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	result := Result{Values: values}
	for _, f := range l.registry.All() {
		if f.YAMLPath == "" {
			continue
		}
		if _, ok := dotpath.Get(values, f.YAMLPath); ok {
			result.Explicit = append(result.Explicit, f.ID)
		}
	}

	return result, nil
}
