package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/confdash/confdash/internal/config/dotpath"
	"github.com/confdash/confdash/internal/config/loader"
	"github.com/confdash/confdash/internal/config/notify"
	"github.com/confdash/confdash/internal/config/preset"
	"github.com/confdash/confdash/internal/config/registry"
	"github.com/confdash/confdash/internal/config/source"
	"github.com/confdash/confdash/internal/config/state"
	"github.com/confdash/confdash/internal/config/watcher"
)

// Default file names inside the config directory.
const (
	defaultEnvFile  = ".env"
	defaultYAMLFile = "librechat.yaml"
)

// Source names used in the source manager.
const (
	sourceBuiltin = "builtin"
	sourceYAML    = "yaml"
	sourceEnv     = "env"
)

// opKind identifies a journaled session operation.
type opKind int

const (
	opSet opKind = iota
	opToggle
	opReset
	opResetAll
)

// sessionOp is one session edit. The journal replays edits on top of a fresh
// file merge after live reload, so session changes survive file changes.
type sessionOp struct {
	kind     opKind
	fieldID  string
	value    any
	explicit bool
}

// Manager provides unified access to the dashboard configuration system.
// It loads the field registry, merges file and environment sources, applies
// session edits through the reconciler, and handles live reload and change
// notification.
type Manager struct {
	mu sync.RWMutex

	// Field registry and reconciler
	registry   *registry.Registry
	reconciler *state.Reconciler

	// Priority-merged configuration sources
	sources *source.Manager

	// Working snapshot: merged sources plus session edits
	snap state.Snapshot

	// Session edit journal, replayed after reload
	journal []sessionOp

	// Preset store
	presets *preset.Store

	// Change notifier
	notifier *notify.Notifier

	// File watcher for live reload
	watcher *watcher.Watcher

	// Configuration paths
	configDir string
	envPath   string
	yamlPath  string
	presetDir string

	// Options
	enableWatcher bool

	// Session identity for event sourcing and logs
	sessionID string

	logger *slog.Logger

	closed bool
}

// Option configures a Manager instance.
type Option func(*Manager)

// WithConfigDir sets the directory holding the .env and librechat.yaml files.
func WithConfigDir(dir string) Option {
	return func(m *Manager) {
		m.configDir = dir
	}
}

// WithEnvFile overrides the dotenv file path.
func WithEnvFile(path string) Option {
	return func(m *Manager) {
		m.envPath = path
	}
}

// WithYAMLFile overrides the YAML config file path.
func WithYAMLFile(path string) Option {
	return func(m *Manager) {
		m.yamlPath = path
	}
}

// WithPresetDir sets a directory of TOML preset files loaded next to the
// built-in presets.
func WithPresetDir(dir string) Option {
	return func(m *Manager) {
		m.presetDir = dir
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(m *Manager) {
		m.enableWatcher = enable
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithRegistry replaces the default field catalog.
func WithRegistry(reg *registry.Registry) Option {
	return func(m *Manager) {
		m.registry = reg
	}
}

// New creates a new Manager with the given options.
func New(opts ...Option) *Manager {
	m := &Manager{
		sources:   source.NewManager(),
		notifier:  notify.New(),
		presets:   preset.NewStoreWithBuiltins(),
		sessionID: uuid.NewString(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.registry == nil {
		m.registry = registry.NewWithDefaults()
	}
	m.reconciler = state.New(m.registry)

	if m.configDir == "" {
		m.configDir = defaultConfigDir()
	}
	if m.envPath == "" {
		m.envPath = filepath.Join(m.configDir, defaultEnvFile)
	}
	if m.yamlPath == "" {
		m.yamlPath = filepath.Join(m.configDir, defaultYAMLFile)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("session", m.sessionID)

	return m
}

// Load loads configuration from all sources and starts the watcher when
// enabled.
func (m *Manager) Load(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	m.sources.Clear()
	m.sources.Add(m.builtinSource())

	if err := m.loadYAMLLocked(); err != nil {
		return err
	}
	if err := m.loadEnvLocked(); err != nil {
		return err
	}

	m.snap = m.sources.Merge()
	m.journal = nil

	if m.presetDir != "" {
		loaded, err := preset.LoadDir(m.presetDir)
		if err != nil {
			return err
		}
		for _, p := range loaded {
			m.presets.Add(p)
		}
	}

	if m.enableWatcher && m.watcher == nil {
		w, err := watcher.New()
		if err != nil {
			return err
		}
		w.OnChange(m.handleFileChange)
		if err := w.Watch(m.envPath); err != nil {
			m.logger.Warn("watch failed", "path", m.envPath, "error", err)
		}
		if err := w.Watch(m.yamlPath); err != nil {
			m.logger.Warn("watch failed", "path", m.yamlPath, "error", err)
		}
		m.watcher = w
	}

	m.logger.Info("configuration loaded",
		"fields", m.registry.Len(),
		"overrides", len(m.snap.Overrides),
		"yaml", m.yamlPath,
		"env", m.envPath)

	return nil
}

// Close shuts down the configuration system. Safe to call multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	w := m.watcher
	m.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
	m.notifier.Close()
}

// SessionID returns the unique identifier of this edit session.
func (m *Manager) SessionID() string {
	return m.sessionID
}

// Registry returns the field registry.
func (m *Manager) Registry() *registry.Registry {
	return m.registry
}

// Presets returns the preset store.
func (m *Manager) Presets() *preset.Store {
	return m.presets
}

// Snapshot returns a copy of the current working snapshot.
func (m *Manager) Snapshot() state.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Clone()
}

// Get returns the effective value at the given path. For registered field
// IDs this is the reconciler's effective value (stored value or registry
// default); for other paths it reads the raw merged values.
func (m *Manager) Get(path string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.registry.Has(path) {
		return m.reconciler.CurrentValue(m.snap, path), true
	}
	return dotpath.Get(m.snap.Values, path)
}

// GetString returns a string value at the given path.
func (m *Manager) GetString(path string) (string, error) {
	v, ok := m.Get(path)
	if !ok {
		return "", ErrFieldNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (m *Manager) GetInt(path string) (int, error) {
	v, ok := m.Get(path)
	if !ok {
		return 0, ErrFieldNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (m *Manager) GetBool(path string) (bool, error) {
	v, ok := m.Get(path)
	if !ok {
		return false, ErrFieldNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float64 value at the given path.
func (m *Manager) GetFloat(path string) (float64, error) {
	v, ok := m.Get(path)
	if !ok {
		return 0, ErrFieldNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// GetStringSlice returns a string slice at the given path.
func (m *Manager) GetStringSlice(path string) ([]string, error) {
	v, ok := m.Get(path)
	if !ok {
		return nil, ErrFieldNotFound
	}

	switch val := v.(type) {
	case []string:
		return val, nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// FieldState returns the reconciliation state for a single field.
// The ok result is false for unknown field IDs.
func (m *Manager) FieldState(id string) (state.FieldState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f := m.registry.Get(id)
	if f == nil {
		return state.FieldState{}, false
	}
	return state.FieldState{
		Field:  f,
		Status: m.reconciler.Classify(m.snap, id),
		Value:  m.reconciler.CurrentValue(m.snap, id),
	}, true
}

// States returns the reconciliation report for every field, in registry
// order.
func (m *Manager) States() []state.FieldState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reconciler.States(m.snap)
}

// Overridden returns the IDs of all explicitly-set fields.
func (m *Manager) Overridden() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reconciler.Overridden(m.snap)
}

// WhichSource returns the name of the source providing a field's stored
// value, or "" when no source stores it.
func (m *Manager) WhichSource(id string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := id
	if f := m.registry.Get(id); f != nil {
		path = f.StoragePath()
	}
	return m.sources.WhichSource(path)
}

// SetExplicitValue sets a field to an explicit value. Unknown field IDs are
// ignored; invalid values for known fields return the validation error
// without changing state.
func (m *Manager) SetExplicitValue(id string, value any) error {
	m.mu.Lock()

	f := m.registry.Get(id)
	if f == nil {
		m.mu.Unlock()
		m.logger.Warn("set ignored for unknown field", "field", id)
		return nil
	}
	if err := f.Validate(value); err != nil {
		m.mu.Unlock()
		return err
	}

	oldValue := m.reconciler.CurrentValue(m.snap, id)
	m.snap = m.reconciler.SetExplicitValue(m.snap, id, value)
	m.journal = append(m.journal, sessionOp{kind: opSet, fieldID: id, value: value})
	m.mu.Unlock()

	m.logger.Info("field set", "field", id, "value", value)
	m.notifier.NotifySet(id, oldValue, value, m.sessionID)
	return nil
}

// ToggleOverride flips a field's override flag without changing the stored
// value. Unknown field IDs are ignored.
func (m *Manager) ToggleOverride(id string, explicit bool) {
	m.mu.Lock()

	if !m.registry.Has(id) {
		m.mu.Unlock()
		m.logger.Warn("toggle ignored for unknown field", "field", id)
		return
	}

	m.snap = m.reconciler.ToggleOverride(m.snap, id, explicit)
	m.journal = append(m.journal, sessionOp{kind: opToggle, fieldID: id, explicit: explicit})
	m.mu.Unlock()

	m.logger.Info("override toggled", "field", id, "explicit", explicit)
	m.notifier.NotifyToggle(id, explicit, m.sessionID)
}

// ResetToDefault resets a field to its registry default and clears its
// override flag. Unknown field IDs are ignored.
func (m *Manager) ResetToDefault(id string) {
	m.mu.Lock()

	if !m.registry.Has(id) {
		m.mu.Unlock()
		m.logger.Warn("reset ignored for unknown field", "field", id)
		return
	}

	oldValue := m.reconciler.CurrentValue(m.snap, id)
	m.snap = m.reconciler.ResetToDefault(m.snap, id)
	m.journal = append(m.journal, sessionOp{kind: opReset, fieldID: id})
	m.mu.Unlock()

	m.logger.Info("field reset", "field", id)
	m.notifier.NotifyReset(id, oldValue, m.sessionID)
}

// ResetAll resets every field to its registry default and clears all
// override flags.
func (m *Manager) ResetAll() {
	m.mu.Lock()
	m.snap = m.reconciler.ResetAll(m.snap)
	m.journal = append(m.journal, sessionOp{kind: opResetAll})
	m.mu.Unlock()

	m.logger.Info("all fields reset")
	m.notifier.NotifyReset("", nil, m.sessionID)
}

// ApplyPreset applies a named preset. Preset edits naming unknown fields are
// skipped and logged.
func (m *Manager) ApplyPreset(name string) error {
	m.mu.Lock()

	next, skipped, err := m.presets.Apply(name, m.reconciler, m.snap)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	m.snap = next
	if p, ok := m.presets.Get(name); ok {
		for _, e := range p.Edits {
			if m.registry.Has(e.FieldID) {
				m.journal = append(m.journal, sessionOp{kind: opSet, fieldID: e.FieldID, value: e.Value})
			}
		}
	}
	m.mu.Unlock()

	for _, id := range skipped {
		m.logger.Warn("preset edit skipped for unknown field", "preset", name, "field", id)
	}
	m.logger.Info("preset applied", "preset", name, "skipped", len(skipped))
	m.notifier.NotifyPreset(name)
	return nil
}

// Subscribe registers an observer for all configuration changes.
func (m *Manager) Subscribe(observer notify.Observer) *notify.Subscription {
	return m.notifier.Subscribe(observer)
}

// SubscribeField registers an observer for changes to a specific field.
func (m *Manager) SubscribeField(id string, observer notify.Observer) *notify.Subscription {
	return m.notifier.SubscribeField(id, observer)
}

// builtinSource builds the lowest-priority source from registry defaults.
func (m *Manager) builtinSource() *source.Source {
	values := make(map[string]any)
	for _, f := range m.registry.All() {
		if f.Default == nil {
			continue
		}
		values = dotpath.Set(values, f.StoragePath(), f.Default)
	}
	return source.New(sourceBuiltin, source.KindBuiltin, values, nil)
}

// loadYAMLLocked loads the YAML config file into the source manager.
func (m *Manager) loadYAMLLocked() error {
	result, err := loader.NewYAMLLoader(m.registry, m.yamlPath).Load()
	if err != nil {
		return err
	}
	if result.Values == nil {
		return nil
	}

	src := source.New(sourceYAML, source.KindYAMLFile, result.Values, result.Explicit)
	src.Path = m.yamlPath
	m.sources.Replace(src)
	return nil
}

// loadEnvLocked loads the dotenv file plus process environment.
func (m *Manager) loadEnvLocked() error {
	result, err := loader.NewEnvLoader(m.registry, m.envPath).Load()
	if err != nil {
		return err
	}
	if result.Values == nil {
		return nil
	}

	src := source.New(sourceEnv, source.KindEnvFile, result.Values, result.Explicit)
	src.Path = m.envPath
	m.sources.Replace(src)
	return nil
}

// handleFileChange reloads the changed source and replays session edits.
func (m *Manager) handleFileChange(event watcher.Event) {
	m.mu.Lock()

	var err error
	switch {
	case sameFile(event.Path, m.yamlPath):
		if event.Op == watcher.OpRemove {
			m.sources.Remove(sourceYAML)
		} else {
			err = m.loadYAMLLocked()
		}
	case sameFile(event.Path, m.envPath):
		if event.Op == watcher.OpRemove {
			m.sources.Remove(sourceEnv)
		} else {
			err = m.loadEnvLocked()
		}
	default:
		m.mu.Unlock()
		return
	}

	if err != nil {
		m.mu.Unlock()
		m.logger.Error("reload failed", "path", event.Path, "error", err)
		return
	}

	m.snap = m.replayJournal(m.sources.Merge())
	m.mu.Unlock()

	m.logger.Info("configuration reloaded", "path", event.Path, "op", event.Op.String())
	m.notifier.NotifyReload(event.Path)
}

// replayJournal reapplies session edits on top of a fresh merge, so session
// changes win over file changes until the session ends.
func (m *Manager) replayJournal(snap state.Snapshot) state.Snapshot {
	for _, op := range m.journal {
		switch op.kind {
		case opSet:
			snap = m.reconciler.SetExplicitValue(snap, op.fieldID, op.value)
		case opToggle:
			snap = m.reconciler.ToggleOverride(snap, op.fieldID, op.explicit)
		case opReset:
			snap = m.reconciler.ResetToDefault(snap, op.fieldID)
		case opResetAll:
			snap = m.reconciler.ResetAll(snap)
		}
	}
	return snap
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// defaultConfigDir returns the default configuration directory.
func defaultConfigDir() string {
	if dir := os.Getenv("CONFDASH_CONFIG_DIR"); dir != "" {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
