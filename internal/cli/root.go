// Package cli implements the foodseed command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/breadcrumb/foodseed/internal/config"
	"github.com/breadcrumb/foodseed/internal/database"
	"github.com/breadcrumb/foodseed/internal/services/foods"
)

// Build information, set by Execute.
var (
	version   = "dev"
	buildTime = "unknown"
)

// Global flags.
var (
	configPath string
	dataPath   string
	debugMode  bool
)

// Loaded in PersistentPreRunE.
var (
	cfg     *config.Config
	logFile io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "foodseed",
	Short: "Grow a food catalog with synthetic, energy-balanced dishes",
	Long: `foodseed appends synthetic food records to a JSON or YAML catalog.

Every generated food gets the next sequential id, a cuisine from the
catalog's cuisine list, a name and description built from that cuisine's
vocabulary, and calories within tolerance of 4p + 4c + 9f.

A SQLite mirror of the catalog backs the interactive browser and keeps a
history of generation runs.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logFile != nil {
			logFile.Close()
			logFile = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Catalog file (overrides [catalog] path)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

// Execute runs the command tree with the given build information.
func Execute(ctx context.Context, v, built string) error {
	version = v
	buildTime = built
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	if cmd == versionCmd {
		return nil
	}

	loaded, cfgPath, err := config.Load(configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if dataPath != "" {
		loaded.Catalog.Path = dataPath
		if err := loaded.Catalog.Validate(); err != nil {
			return fmt.Errorf("--data: %w", err)
		}
	}
	cfg = loaded

	if err := setupLogging(cmd.ErrOrStderr()); err != nil {
		return err
	}

	slog.Debug("foodseed starting",
		"version", version,
		"command", cmd.Name(),
		"config_path", cfgPath,
		"catalog", cfg.Catalog.Path,
	)
	return nil
}

func setupLogging(stderr io.Writer) error {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			level = slog.LevelDebug
		case config.LogLevelWarn:
			level = slog.LevelWarn
		case config.LogLevelError:
			level = slog.LevelError
		}
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	var handler slog.Handler
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logFile = f
		handler = slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// openMirror opens the configured mirror database with migrations applied.
func openMirror(ctx context.Context) (*database.DB, error) {
	dbPath, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("ensuring data directory: %w", err)
	}

	db, err := database.OpenMigrated(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening mirror: %w", err)
	}
	return db, nil
}

// newService builds the catalog service. With withMirror the mirror is
// opened as well; the returned close func releases it.
func newService(ctx context.Context, withMirror bool) (*foods.Service, func(), error) {
	seedCfg := cfg.Generator.SeedConfig()

	if !withMirror {
		return foods.NewService(cfg.Catalog.Path, seedCfg, nil), func() {}, nil
	}

	db, err := openMirror(ctx)
	if err != nil {
		return nil, nil, err
	}

	closeDB := func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing mirror", "error", err)
		}
	}
	return foods.NewService(cfg.Catalog.Path, seedCfg, db), closeDB, nil
}
