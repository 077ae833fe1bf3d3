// Package loader reads persisted configuration sources for the dashboard.
//
// Two sources exist: the dotenv file plus process environment (mapped to
// fields through registry env keys) and the YAML config file. Keys present in
// a loaded source are explicit overrides; everything else inherits registry
// defaults.
package loader

import (
	"fmt"
	"io/fs"
	"os"
)

// Result is what a loader produces: the nested values it contributed and the
// IDs of registry fields the source set explicitly.
type Result struct {
	Values   map[string]any
	Explicit []string
}

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads the source. A missing file is not an error; it yields an
	// empty Result.
	Load() (Result, error)
}

// FileSystem is an abstraction for file system operations.
// This allows for easy testing with in-memory file systems.
type FileSystem interface {
	fs.FS
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// Open implements fs.FS.
func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
