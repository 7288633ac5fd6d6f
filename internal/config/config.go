// Package config handles loading and parsing application configuration.
// Values come from three sources, later ones overriding earlier ones:
//  1. A .env file in the working directory (optional)
//  2. A YAML file named by the CONFIG_PATH environment variable (optional)
//  3. Process environment variables
//
// Every field has a default, so the server starts with no configuration at
// all. The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// Debug exposes panic text in 500 responses.
	Debug bool `yaml:"debug" env:"DEBUG" env-default:"false"`

	// StoragePath is the SQLite DSN holding the mock student roster.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:":memory:"`

	MetricsEnabled bool `yaml:"metrics_enabled" env:"METRICS_ENABLED" env-default:"false"`

	HTTPServer `yaml:"http_server"`
	Static     `yaml:"static"`
	Service    `yaml:"service"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"PORT" env-default:"5000"`
}

// Static describes where the front-end files are served from.
type Static struct {
	Dir       string `yaml:"dir" env:"STATIC_DIR" env-default:"."`
	IndexFile string `yaml:"index_file" env:"INDEX_FILE" env-default:"index.html"`
}

// Service labels reported by the health endpoint.
type Service struct {
	Name       string `yaml:"name" env:"SERVICE_NAME" env-default:"NFC Attendance System"`
	Version    string `yaml:"version" env:"SERVICE_VERSION" env-default:"2.0.0"`
	DeployedOn string `yaml:"deployed_on" env:"DEPLOYED_ON" env-default:"Render + GitHub"`
}

// Addr returns the host:port pair the server listens on.
func (h HTTPServer) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// Load reads and validates the application config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		// ReadConfig also applies env overrides and defaults.
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d: must be between 1 and 65535", cfg.Port)
	}
	if cfg.IndexFile == "" {
		return nil, errors.New("index file must not be empty")
	}

	return &cfg, nil
}

// MustLoad is Load that terminates the process on failure.
// If this returns, the config is valid.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}
