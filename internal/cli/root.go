// Package cli implements the twisty command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twisty"
	"github.com/SeamusWaldron/twisty/internal/config"
	"github.com/SeamusWaldron/twisty/internal/solver"
	"github.com/SeamusWaldron/twisty/internal/storage"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "twisty",
	Short: "Rubik's cube move engine",
	Long: `twisty - an animated 3x3x3 cube you can turn from the keyboard, a browser
or a GoCube smart cube.

Moves are queued and animated one quarter turn at a time. Sessions can be
recorded to a local database and replayed later.`,
	Version:      version,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.twisty/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.twisty/twisty.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".twisty", "config.yaml")
		}
	}
	cfg, err := config.LoadOptional(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	return cfg, nil
}

// newLogger logs text to w at Info, or Debug with --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// tuiLogger keeps log output off the terminal while a TUI owns it. With
// --verbose the log goes to twisty-debug.log in the working directory.
func tuiLogger() (*slog.Logger, func(), error) {
	if !verbose {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	f, err := os.OpenFile("twisty-debug.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
	}
	return newLogger(f), func() { f.Close() }, nil
}

// openDB opens the configured database, creating it if needed.
func openDB(cfg config.Config) (*storage.DB, error) {
	path := cfg.DBPath
	if path == "" {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// newEngine builds an engine from the config. Without a solver command the
// engine solves by undoing its own history.
func newEngine(cfg config.Config, log *slog.Logger) (*twisty.Engine, error) {
	e := twisty.NewEngine(
		twisty.WithAnimSpeed(cfg.AnimSpeed),
		twisty.WithLogger(log),
	)
	if cfg.SolverCommand == "" {
		e.SetSolver(twisty.HistorySolver(e))
		return e, nil
	}
	cmd, err := solver.Parse(cfg.SolverCommand)
	if err != nil {
		return nil, fmt.Errorf("invalid solver_command: %w", err)
	}
	e.SetSolver(cmd)
	return e, nil
}
