// Package config assembles the Privacy Point service configuration from
// TOML files, environment overlays, and environment variables. Every
// sub-config follows the same three-phase finalize: defaults, environment
// overrides, validation.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/privacypoint/privacypoint/pkg/database"
	"github.com/privacypoint/privacypoint/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvPrivPointEnv             = "PRIVPOINT_ENV"
	EnvPrivPointShutdownTimeout = "PRIVPOINT_SHUTDOWN_TIMEOUT"
	EnvPrivPointVersion         = "PRIVPOINT_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "PRIVPOINT_DB_HOST",
	Port:            "PRIVPOINT_DB_PORT",
	Name:            "PRIVPOINT_DB_NAME",
	User:            "PRIVPOINT_DB_USER",
	Password:        "PRIVPOINT_DB_PASSWORD",
	SSLMode:         "PRIVPOINT_DB_SSL_MODE",
	MaxOpenConns:    "PRIVPOINT_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "PRIVPOINT_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "PRIVPOINT_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "PRIVPOINT_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "PRIVPOINT_STORAGE_CONTAINER_NAME",
	ConnectionString: "PRIVPOINT_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the Privacy Point service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Workflow        WorkflowConfig  `toml:"workflow"`
	Agents          AgentsConfig    `toml:"-"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the PRIVPOINT_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvPrivPointEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Agents.Load(); err != nil {
		return nil, fmt.Errorf("load agents config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Workflow.Merge(&overlay.Workflow)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Workflow.Finalize(); err != nil {
		return fmt.Errorf("workflow: %w", err)
	}
	if err := c.Agents.Finalize(); err != nil {
		return fmt.Errorf("agents: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvPrivPointShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvPrivPointVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvPrivPointEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
