package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains filesystem locations used by the editor.
type Paths struct {
	SaveFile        string `toml:"save_file"`
	StateDir        string `toml:"state_dir"`
	LogDir          string `toml:"log_dir"`
	LocalizationDir string `toml:"localization_dir"`
}

// Editor contains session behaviour settings.
type Editor struct {
	Language        string `toml:"language"`
	SaveDelayMS     int    `toml:"save_delay_ms"`
	PlayerStudio    string `toml:"player_studio"`
	NameSearchLimit int    `toml:"name_search_limit"`
}

// Adjust configures the press-and-hold numeric adjustment controller.
type Adjust struct {
	HoldDelayMS      int  `toml:"hold_delay_ms"`
	RepeatIntervalMS int  `toml:"repeat_interval_ms"`
	SnapToGrid       bool `toml:"snap_to_grid"`
	GridSize         int  `toml:"grid_size"`
}

// Logging contains log output settings.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Journal configures the edit audit trail.
type Journal struct {
	Enabled       bool `toml:"enabled"`
	RetentionDays int  `toml:"retention_days"`
}

// Config encapsulates all configuration values for castedit.
//
// Sections:
//   - Paths: save file, state, log, and localization directories
//   - Editor: language, debounce delay, player studio id, search limit
//   - Adjust: hold-to-repeat timing and grid snapping
//   - Logging: format, level, retention
//   - Journal: edit history storage
type Config struct {
	Paths   Paths   `toml:"paths"`
	Editor  Editor  `toml:"editor"`
	Adjust  Adjust  `toml:"adjust"`
	Logging Logging `toml:"logging"`
	Journal Journal `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration file.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/castedit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
		path = defaultPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}
	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %q is a directory", expanded)
	}
	return expanded, true, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// JournalPath is the SQLite database holding the edit history.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// SaveDelay is the edit coalescer debounce window.
func (c *Config) SaveDelay() time.Duration {
	return time.Duration(c.Editor.SaveDelayMS) * time.Millisecond
}

func (c *Config) HoldDelay() time.Duration {
	return time.Duration(c.Adjust.HoldDelayMS) * time.Millisecond
}

func (c *Config) RepeatInterval() time.Duration {
	return time.Duration(c.Adjust.RepeatIntervalMS) * time.Millisecond
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
