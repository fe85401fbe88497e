// ABOUTME: Forge configuration management with environment overrides.
// ABOUTME: Handles units, paths, generation defaults and the storage/library factories.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfulp2020/forgefitness/internal/knowledge"
	"github.com/mfulp2020/forgefitness/internal/models"
	"github.com/mfulp2020/forgefitness/internal/storage"
)

// DefaultAddr is the listen address for forge serve.
const DefaultAddr = "localhost:8087"

// Config stores forge tool configuration.
type Config struct {
	// Units is the display unit for loads: "lb" (default) or "kg".
	Units string `json:"units,omitempty"`

	// DataDir holds forge.db. Supports ~ expansion.
	// Defaults to ~/.local/share/forge.
	DataDir string `json:"data_dir,omitempty"`

	// LibraryDir points at a directory with splits.yaml, workouts.yaml and
	// catalog.yaml. Empty means the embedded library.
	LibraryDir string `json:"library_dir,omitempty"`

	Defaults Defaults `json:"defaults,omitempty"`
	Server   Server   `json:"server,omitempty"`
}

// Defaults are the generation choices used when flags are omitted.
type Defaults struct {
	Level    string `json:"level,omitempty"`
	Split    string `json:"split,omitempty"`
	Days     int    `json:"days,omitempty"`
	Focus    string `json:"focus,omitempty"`
	Finisher string `json:"finisher,omitempty"`
}

// Server configures forge serve.
type Server struct {
	Addr string `json:"addr,omitempty"`
}

// GetUnits returns the configured units, defaulting to pounds.
func (c *Config) GetUnits() models.Units {
	u, err := models.ParseUnits(c.Units)
	if err != nil {
		return models.UnitsPounds
	}
	return u
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetLibraryDir returns the custom library directory, or "" for the embedded one.
func (c *Config) GetLibraryDir() string {
	return ExpandPath(c.LibraryDir)
}

// GetAddr returns the server listen address.
func (c *Config) GetAddr() string {
	if c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// DefaultRequest builds a generation request from the configured defaults.
// Values that fail to parse fall back to intermediate, full_body, 3 days,
// general focus and no finisher.
func (c *Config) DefaultRequest() models.GenerationRequest {
	req := models.GenerationRequest{
		Level:       models.LevelIntermediate,
		SplitID:     "full_body",
		DaysPerWeek: 3,
		Focus:       models.FocusGeneral,
		Finisher:    models.FinisherNone,
		Units:       c.GetUnits(),
	}
	if l, err := models.ParseLevel(c.Defaults.Level); err == nil {
		req.Level = l
	}
	if c.Defaults.Split != "" {
		req.SplitID = c.Defaults.Split
	}
	if c.Defaults.Days > 0 {
		req.DaysPerWeek = c.Defaults.Days
	}
	if f, err := models.ParseFocus(c.Defaults.Focus); err == nil {
		req.Focus = f
	}
	if f, err := models.ParseFinisherOption(c.Defaults.Finisher); err == nil {
		req.Finisher = f
	}
	return req
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite template store in the data directory.
func (c *Config) OpenStorage() (*storage.DB, error) {
	return storage.Open(filepath.Join(c.GetDataDir(), "forge.db"))
}

// OpenLibrary loads the knowledge base from LibraryDir, or the embedded
// copy when none is configured.
func (c *Config) OpenLibrary() (*knowledge.Library, error) {
	if dir := c.GetLibraryDir(); dir != "" {
		lib, err := knowledge.LoadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("load library from %s: %w", dir, err)
		}
		return lib, nil
	}
	return knowledge.Default()
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "forge", "config.json")
}

// Load reads config from disk and applies FORGE_* environment overrides.
func Load() (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(GetConfigPath())
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	applyEnvOverrides(cfg)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FORGE_UNITS"); v != "" {
		cfg.Units = v
	}
	if v := os.Getenv("FORGE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("FORGE_LIBRARY_DIR"); v != "" {
		cfg.LibraryDir = v
	}
	if v := os.Getenv("FORGE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

func (c *Config) validate() error {
	if c.Units != "" {
		if _, err := models.ParseUnits(c.Units); err != nil {
			return fmt.Errorf("config units: %w", err)
		}
	}
	if c.Defaults.Days < 0 {
		return fmt.Errorf("config defaults.days must be positive, got %d", c.Defaults.Days)
	}
	return nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
