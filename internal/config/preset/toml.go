package preset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// presetFile is the on-disk TOML shape of a user preset.
//
//	name = "locked-down"
//	description = "Disable self-service registration"
//
//	[[edit]]
//	field = "registration.allowRegistration"
//	value = false
type presetFile struct {
	Name        string       `toml:"name"`
	Description string       `toml:"description"`
	Edits       []presetEdit `toml:"edit"`
}

type presetEdit struct {
	Field string `toml:"field"`
	Value any    `toml:"value"`
}

// Parse parses a preset from TOML data.
func Parse(data []byte) (*Preset, error) {
	var pf presetFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing preset: %w", err)
	}

	if pf.Name == "" {
		return nil, fmt.Errorf("preset is missing a name")
	}

	p := &Preset{
		Name:        pf.Name,
		Description: pf.Description,
	}
	for _, e := range pf.Edits {
		if e.Field == "" {
			return nil, fmt.Errorf("preset %s: edit is missing a field", pf.Name)
		}
		p.Edits = append(p.Edits, Edit{FieldID: e.Field, Value: e.Value})
	}
	return p, nil
}

// LoadFile loads a single preset from a TOML file.
func LoadFile(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file %s: %w", path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// LoadDir loads every *.toml preset in a directory, sorted by file name.
// A missing directory is not an error; it returns no presets.
func LoadDir(dir string) ([]*Preset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading preset directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var presets []*Preset
	for _, name := range names {
		p, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		presets = append(presets, p)
	}
	return presets, nil
}
