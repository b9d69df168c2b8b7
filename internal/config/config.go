// Package config loads the interval command configuration.
package config

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reugn/go-interval/interval"
	"github.com/reugn/go-interval/logger"
)

// Config defines the interval command configuration.
type Config struct {
	Catalog     CatalogConfig     `yaml:"catalog"`
	Log         LogConfig         `yaml:"log"`
	Resolve     ResolveConfig     `yaml:"resolve"`
	Expressions map[string]string `yaml:"expressions"`
}

// CatalogConfig locates the SQLite expression catalog.
type CatalogConfig struct {
	Path string `yaml:"path"`
}

// LogConfig selects the level and output format of the logger.
type LogConfig struct {
	Level string `yaml:"level"`
	// Format is "text" or "json".
	Format string `yaml:"format"`
}

// ResolveConfig holds the default rollover policy and the time zone of
// baselines and output.
type ResolveConfig struct {
	Rollover      bool   `yaml:"rollover"`
	OperationSafe bool   `yaml:"operation_safe"`
	Location      string `yaml:"location"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Catalog: CatalogConfig{
			Path: "interval.db",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Resolve: ResolveConfig{
			Rollover: true,
			Location: "Local",
		},
	}

	if path := os.Getenv("INTERVAL_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if dbPath := os.Getenv("INTERVAL_DB_PATH"); dbPath != "" {
		cfg.Catalog.Path = dbPath
	}
	if level := os.Getenv("INTERVAL_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("INTERVAL_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if location := os.Getenv("INTERVAL_LOCATION"); location != "" {
		cfg.Resolve.Location = location
	}
	if rollover := os.Getenv("INTERVAL_ROLLOVER"); rollover != "" {
		v, err := strconv.ParseBool(rollover)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INTERVAL_ROLLOVER: %w", err)
		}
		cfg.Resolve.Rollover = v
	}
	if operationSafe := os.Getenv("INTERVAL_OPERATION_SAFE"); operationSafe != "" {
		v, err := strconv.ParseBool(operationSafe)
		if err != nil {
			return Config{}, fmt.Errorf("invalid INTERVAL_OPERATION_SAFE: %w", err)
		}
		cfg.Resolve.OperationSafe = v
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c Config) validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location returns the configured time zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Resolve.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", c.Resolve.Location, err)
	}
	return loc, nil
}

// Logger returns a logger writing to w at the configured level.
func (c Config) Logger(w io.Writer) logger.Logger {
	level, err := logger.ParseLevel(c.Log.Level)
	if err != nil {
		level = logger.LevelInfo
	}
	if c.Log.Format == "json" {
		return logger.NewJSONLogger(w, level)
	}
	return logger.NewSimpleLogger(log.New(w, "", log.LstdFlags), level)
}

// ResolveOptions returns the rollover policy described by the configuration.
func (c Config) ResolveOptions() []interval.ResolveOption {
	return []interval.ResolveOption{
		interval.WithRollover(c.Resolve.Rollover),
		interval.WithOperationSafe(c.Resolve.OperationSafe),
	}
}
