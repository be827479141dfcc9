package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	appDir         = ".tria"
	configFileName = "config.yaml"
)

type Config struct {
	DataDir string        `yaml:"data_dir"`
	Storage StorageConfig `yaml:"storage"`
	Export  ExportConfig  `yaml:"export"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
	Audit   AuditConfig   `yaml:"audit"`
}

type StorageConfig struct {
	// Backend is one of file, sqlite or memory.
	Backend string `yaml:"backend"`
	// Passphrase enables encryption at rest when non-empty.
	Passphrase string `yaml:"passphrase"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // json, csv
}

type UIConfig struct {
	// Theme is used until the user toggles one.
	Theme string `yaml:"theme"`
	Sort  string `yaml:"sort"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	// File is relative to the data directory unless absolute. "stderr" logs
	// to the terminal.
	File string `yaml:"file"`
}

type AuditConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *Config {
	dataDir := appDir
	if homeDir, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(homeDir, appDir)
	}

	return &Config{
		DataDir: dataDir,
		Storage: StorageConfig{
			Backend: "file",
		},
		Export: ExportConfig{
			Dir:    "exports",
			Format: "json",
		},
		UI: UIConfig{
			Theme: "dark",
			Sort:  "name-asc",
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "tria.log",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// DefaultConfigPath returns ~/.tria/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfig().DataDir, configFileName)
}

// Load reads a YAML config file over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.DataDir = getEnvOrDefault("TRIA_DATA_DIR", c.DataDir)
	c.Storage.Backend = getEnvOrDefault("TRIA_STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Passphrase = getEnvOrDefault("TRIA_PASSPHRASE", c.Storage.Passphrase)
	c.Export.Dir = getEnvOrDefault("TRIA_EXPORT_DIR", c.Export.Dir)
	c.Export.Format = getEnvOrDefault("TRIA_EXPORT_FORMAT", c.Export.Format)
	c.UI.Theme = getEnvOrDefault("TRIA_THEME", c.UI.Theme)
	c.UI.Sort = getEnvOrDefault("TRIA_SORT", c.UI.Sort)
	c.Logging.Level = getEnvOrDefault("TRIA_LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getEnvOrDefault("TRIA_LOG_FILE", c.Logging.File)
	c.Audit.Enabled = parseBoolOrDefault("TRIA_AUDIT", c.Audit.Enabled)

	if IsDebugEnabled() {
		c.Logging.Level = "debug"
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir must not be empty")
	}

	switch c.Storage.Backend {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("invalid storage backend: %s (must be 'file', 'sqlite' or 'memory')", c.Storage.Backend)
	}

	switch strings.ToLower(c.Export.Format) {
	case "json", "csv":
	default:
		return fmt.Errorf("invalid export format: %s (must be 'json' or 'csv')", c.Export.Format)
	}

	switch c.UI.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("invalid theme: %s (must be 'dark' or 'light')", c.UI.Theme)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// ResolvePath anchors a relative path in the data directory.
func (c *Config) ResolvePath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.DataDir, path)
}

func (c *Config) ExportDir() string {
	return c.ResolvePath(c.Export.Dir)
}

func (c *Config) AuditDir() string {
	return filepath.Join(c.DataDir, "audit")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func IsDebugEnabled() bool {
	return os.Getenv("TRIA_DEBUG") == "true" || os.Getenv("TRIA_DEBUG") == "1"
}
