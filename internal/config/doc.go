// Package config implements the headless core of the configuration
// dashboard: a field registry describing every editable setting, a
// reconciler that classifies each field as not-set, explicit-default, or
// explicit-modified, and a manager that merges file, environment, and
// session sources into one working snapshot.
//
// The package is organized into focused subpackages:
//
//   - dotpath: immutable get/set over nested maps via dot-separated paths
//   - registry: the static field catalog with defaults and metadata
//   - state: snapshots and the pure reconciliation operations
//   - preset: one-click presets, built-in and TOML-loaded
//   - loader: dotenv and YAML file loaders
//   - source: priority-based source merging
//   - notify: change notification for dashboard views
//   - watcher: file watching for live reload
//
// The Manager type in this package ties the subsystems together:
//
//	m := config.New(config.WithConfigDir("/etc/librechat"))
//	if err := m.Load(ctx); err != nil {
//		return err
//	}
//	defer m.Close()
//
//	m.SetExplicitValue("interface.webSearch", false)
//	for _, fs := range m.States() {
//		fmt.Println(fs.Field.ID, fs.Status, fs.Value)
//	}
//
// All edit operations route through the pure reconciler, so the working
// snapshot is never mutated in place and unknown field IDs never fault.
package config
