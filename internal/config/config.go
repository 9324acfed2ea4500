// Package config provides configuration management for foodseed.
// Configurations are loaded from TOML files with XDG-compliant paths.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/breadcrumb/foodseed/internal/seed"
)

// Config holds the complete application configuration.
type Config struct {
	Catalog   CatalogConfig   `toml:"catalog"`
	Generator GeneratorConfig `toml:"generator"`
	Database  DatabaseConfig  `toml:"database"`
	Display   DisplayConfig   `toml:"display"`
	Logging   LoggingConfig   `toml:"logging"`
}

// CatalogConfig locates the catalog document.
type CatalogConfig struct {
	Path   string `toml:"path"`
	Backup bool   `toml:"backup"`
}

// GeneratorConfig controls synthetic food generation.
type GeneratorConfig struct {
	Count          int         `toml:"count"`
	Seed           int64       `toml:"seed"`
	Tolerance      int         `toml:"tolerance"`
	Perturbation   int         `toml:"perturbation"`
	MaxAdjustments int         `toml:"max_adjustments"`
	Calories       RangeConfig `toml:"calories"`
	Protein        RangeConfig `toml:"protein"`
	Carbs          RangeConfig `toml:"carbs"`
	Fat            RangeConfig `toml:"fat"`
}

// RangeConfig is an inclusive integer range.
type RangeConfig struct {
	Min int `toml:"min"`
	Max int `toml:"max"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	PageSize    int         `toml:"page_size"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeBreadcrumb ColorScheme = "breadcrumb"
	ColorSchemeAmber      ColorScheme = "amber"
	ColorSchemeWhite      ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// DatabaseConfig controls the SQLite catalog mirror.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Catalog.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("catalog: %w", err))
	}

	if err := c.Generator.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("generator: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the catalog configuration is valid.
func (c *CatalogConfig) Validate() error {
	if c.Path == "" {
		return errors.New("path is required")
	}

	switch strings.ToLower(filepath.Ext(c.Path)) {
	case ".json", ".yaml", ".yml", "":
		return nil
	default:
		return fmt.Errorf("unsupported catalog extension: %s", filepath.Ext(c.Path))
	}
}

// Validate checks that the generator configuration is valid.
func (g *GeneratorConfig) Validate() error {
	var errs []error

	if g.Count < 0 {
		errs = append(errs, errors.New("count must be non-negative"))
	}

	if err := g.SeedConfig().Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// SeedConfig converts the generator section into a seed.Config.
func (g *GeneratorConfig) SeedConfig() seed.Config {
	return seed.Config{
		RandomSeed:     g.Seed,
		Calories:       seed.Range{Min: g.Calories.Min, Max: g.Calories.Max},
		Protein:        seed.Range{Min: g.Protein.Min, Max: g.Protein.Max},
		Carbs:          seed.Range{Min: g.Carbs.Min, Max: g.Carbs.Max},
		Fat:            seed.Range{Min: g.Fat.Min, Max: g.Fat.Max},
		Tolerance:      g.Tolerance,
		Perturbation:   g.Perturbation,
		MaxAdjustments: g.MaxAdjustments,
	}
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeBreadcrumb: true,
		ColorSchemeAmber:      true,
		ColorSchemeWhite:      true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.PageSize < 0 {
		errs = append(errs, errors.New("page_size must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	gen := seed.DefaultConfig()

	return &Config{
		Catalog: CatalogConfig{
			Path:   "Resources/foods.json",
			Backup: true,
		},
		Generator: GeneratorConfig{
			Count:          500,
			Seed:           0,
			Tolerance:      gen.Tolerance,
			Perturbation:   gen.Perturbation,
			MaxAdjustments: gen.MaxAdjustments,
			Calories:       RangeConfig{Min: gen.Calories.Min, Max: gen.Calories.Max},
			Protein:        RangeConfig{Min: gen.Protein.Min, Max: gen.Protein.Max},
			Carbs:          RangeConfig{Min: gen.Carbs.Min, Max: gen.Carbs.Max},
			Fat:            RangeConfig{Min: gen.Fat.Min, Max: gen.Fat.Max},
		},
		Database: DatabaseConfig{
			Path: "foodseed.db",
		},
		Display: DisplayConfig{
			ColorScheme: ColorSchemeBreadcrumb,
			PageSize:    20,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "",
		},
	}
}
