package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultConfigFileName is the standard configuration file name.
	DefaultConfigFileName = "foodseed.toml"

	// XDGConfigSubdir is the directory name under the XDG config and data
	// homes.
	XDGConfigSubdir = "foodseed"
)

const defaultHeader = `# foodseed configuration
#
# This file was auto-generated. Edit as needed.
# A generator seed of 0 seeds from the clock.

`

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading config from %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the configuration. An explicit path is used on its own;
// otherwise the XDG config file and then ./foodseed.toml are tried. When
// neither exists and createDefault is set, the defaults are written to the
// first writable of those locations and returned.
//
// Returns the configuration and the path it came from, which is empty when
// the defaults could not be written anywhere.
func Load(explicitPath string, createDefault bool) (*Config, string, error) {
	if explicitPath != "" {
		cfg, err := loadFromFile(explicitPath)
		if err != nil {
			return nil, "", &LoadError{Path: explicitPath, Err: err}
		}
		return cfg, explicitPath, nil
	}

	candidates := searchPaths()
	for _, path := range candidates {
		if !fileExists(path) {
			continue
		}
		cfg, err := loadFromFile(path)
		if err != nil {
			return nil, "", &LoadError{Path: path, Err: err}
		}
		return cfg, path, nil
	}

	if !createDefault {
		return nil, "", errors.New("no configuration file found; searched: " + strings.Join(candidates, ", "))
	}

	cfg := Default()
	for _, path := range candidates {
		if err := Save(cfg, path); err == nil {
			return cfg, path, nil
		}
	}
	return cfg, "", nil
}

// searchPaths lists the implicit config locations in precedence order.
func searchPaths() []string {
	var paths []string
	if dir := xdgHome("XDG_CONFIG_HOME", ".config"); dir != "" {
		paths = append(paths, filepath.Join(dir, XDGConfigSubdir, DefaultConfigFileName))
	}
	return append(paths, filepath.Join(".", DefaultConfigFileName))
}

// xdgHome returns $env, falling back to ~/fallback. It returns "" when
// neither is available.
func xdgHome(env, fallback string) string {
	if dir := os.Getenv(env); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, fallback)
}

// loadFromFile decodes path over the defaults and validates the result.
func loadFromFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to path as commented TOML, creating the directory.
func Save(cfg *Config, path string) error {
	if err := ensureParent(path); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(defaultHeader)
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	return os.WriteFile(path, buf.Bytes(), 0640)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func ensureParent(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0750)
}

// EnsureDataDir resolves the mirror database path and creates its
// directory. Relative paths live under $XDG_DATA_HOME/foodseed, or the
// working directory when that cannot be created. ":memory:" is returned
// unchanged.
func EnsureDataDir(cfg *Config) (string, error) {
	dbPath := cfg.Database.Path
	if dbPath == ":memory:" {
		return dbPath, nil
	}

	if !filepath.IsAbs(dbPath) {
		if data := xdgHome("XDG_DATA_HOME", filepath.Join(".local", "share")); data != "" {
			dataDir := filepath.Join(data, XDGConfigSubdir)
			if err := os.MkdirAll(dataDir, 0750); err == nil {
				return filepath.Join(dataDir, dbPath), nil
			}
		}
	}

	if err := ensureParent(dbPath); err != nil {
		return "", fmt.Errorf("creating database directory: %w", err)
	}
	return dbPath, nil
}

// EnsureLogDir creates the directory of the configured log file. It returns
// "" when file logging is disabled.
func EnsureLogDir(cfg *Config) (string, error) {
	logPath := cfg.Logging.File
	if logPath == "" {
		return "", nil
	}

	if err := ensureParent(logPath); err != nil {
		return "", fmt.Errorf("creating log directory: %w", err)
	}
	return logPath, nil
}
