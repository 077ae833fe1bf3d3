// Package main is the entry point for the confdash configuration dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/confdash/confdash/internal/config"
	"github.com/confdash/confdash/internal/config/notify"
	"github.com/confdash/confdash/internal/config/state"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigDir string
	PresetDir string
	Tab       string
	Search    string
	Preset    string
	All       bool
	Watch     bool
	LogLevel  string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	logger := newLogger(opts.LogLevel)
	slog.SetDefault(logger)

	mgrOpts := []config.Option{
		config.WithLogger(logger),
		config.WithWatcher(opts.Watch),
	}
	if opts.ConfigDir != "" {
		mgrOpts = append(mgrOpts, config.WithConfigDir(opts.ConfigDir))
	}
	if opts.PresetDir != "" {
		mgrOpts = append(mgrOpts, config.WithPresetDir(opts.PresetDir))
	}

	m := config.New(mgrOpts...)
	defer m.Close()

	if err := m.Load(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return 1
	}

	if opts.Preset != "" {
		if err := m.ApplyPreset(opts.Preset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			fmt.Fprintf(os.Stderr, "Available presets: %v\n", m.Presets().Names())
			return 1
		}
	}

	printReport(m, opts)

	if opts.Watch {
		return watch(m, opts)
	}
	return 0
}

// printReport prints the field-state table to stdout.
func printReport(m *config.Manager, opts options) {
	states := selectStates(m, opts)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIELD\tTAB\tSTATUS\tVALUE\tSOURCE")
	for _, fs := range states {
		if !opts.All && fs.Status == state.StatusNotSet && opts.Tab == "" && opts.Search == "" {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			fs.Field.ID,
			fs.Field.Tab,
			fs.Status,
			displayValue(fs),
			m.WhichSource(fs.Field.ID))
	}
	w.Flush()
}

// selectStates applies the tab and search filters.
func selectStates(m *config.Manager, opts options) []state.FieldState {
	states := m.States()
	if opts.Tab == "" && opts.Search == "" {
		return states
	}

	var keep map[string]bool
	if opts.Search != "" {
		keep = make(map[string]bool)
		for _, f := range m.Registry().Search(opts.Search) {
			keep[f.ID] = true
		}
	}

	var result []state.FieldState
	for _, fs := range states {
		if opts.Tab != "" && fs.Field.Tab != opts.Tab {
			continue
		}
		if keep != nil && !keep[fs.Field.ID] {
			continue
		}
		result = append(result, fs)
	}
	return result
}

// displayValue renders a field value, masking sensitive non-empty values.
func displayValue(fs state.FieldState) string {
	if fs.Field.Sensitive {
		if s, ok := fs.Value.(string); ok && s != "" {
			return "********"
		}
	}
	return fmt.Sprintf("%v", fs.Value)
}

// watch blocks printing reload events until interrupted.
func watch(m *config.Manager, opts options) int {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	sub := m.Subscribe(func(c notify.Change) {
		if c.Type != notify.ChangeReload {
			return
		}
		fmt.Printf("\nreloaded: %s\n\n", c.Source)
		printReport(m, opts)
	})
	defer sub.Unsubscribe()

	fmt.Println("\nwatching for configuration changes (ctrl-c to stop)")
	<-signals
	return 0
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigDir, "dir", "", "Directory holding .env and librechat.yaml")
	flag.StringVar(&opts.ConfigDir, "d", "", "Directory holding .env and librechat.yaml (shorthand)")
	flag.StringVar(&opts.PresetDir, "presets", "", "Directory of TOML preset files")
	flag.StringVar(&opts.Tab, "tab", "", "Show only fields in this tab")
	flag.StringVar(&opts.Search, "search", "", "Show only fields matching this query")
	flag.StringVar(&opts.Preset, "apply", "", "Apply a preset before printing the report")
	flag.BoolVar(&opts.All, "all", false, "Include not-set fields in the report")
	flag.BoolVar(&opts.All, "a", false, "Include not-set fields in the report (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Watch config files and reprint on change")
	flag.BoolVar(&opts.Watch, "w", false, "Watch config files and reprint on change (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "confdash - configuration dashboard for chat deployments\n\n")
		fmt.Fprintf(os.Stderr, "Usage: confdash [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  confdash -d /etc/librechat          Report explicit settings\n")
		fmt.Fprintf(os.Stderr, "  confdash -d . -a                    Report every field\n")
		fmt.Fprintf(os.Stderr, "  confdash -tab email                 Report the email tab\n")
		fmt.Fprintf(os.Stderr, "  confdash -apply cache-redis         Apply a preset\n")
		fmt.Fprintf(os.Stderr, "  confdash -w                         Watch for file changes\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("confdash %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}
