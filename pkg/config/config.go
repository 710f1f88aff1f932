// Package config loads application configuration from TOML files.
//
// Configuration covers the pieces that vary between deployments: the default
// viewport, cache and store backends, and the API server address. Everything
// has a sensible default so a missing config file is not an error; the CLI
// and server both start from Default() and overlay the file when present.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Backend names accepted for the cache and store sections.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNone   = "none"
)

// Config is the root configuration.
type Config struct {
	Viewport ViewportConfig `toml:"viewport"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Server   ServerConfig   `toml:"server"`
	Defaults DefaultsConfig `toml:"defaults"`
}

// ViewportConfig sets the viewport used when a caller does not supply one.
type ViewportConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis", or "none".
	Backend string `toml:"backend"`

	// Dir is the cache directory for the file backend.
	// Empty means the platform cache dir (e.g. ~/.cache/loomui).
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the screen store backend.
type StoreConfig struct {
	// Backend is one of "file", "memory", or "mongo".
	Backend string `toml:"backend"`

	// Dir is the document directory for the file backend.
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig configures the mongo store backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultsConfig overrides built-in style defaults per view type.
// Keys are type tags ("Text", "Button", ...), values are style attributes.
type DefaultsConfig map[string]map[string]any

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Viewport: ViewportConfig{Width: 400, Height: 800},
		Cache: CacheConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Store: StoreConfig{
			Backend: BackendFile,
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   "loomui",
				Collection: "screens",
			},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// Load reads a TOML config file and overlays it on the defaults.
// A missing file returns the defaults without error; a malformed file
// or an invalid value is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and backend names.
func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %gx%g", c.Viewport.Width, c.Viewport.Height)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone, "":
	default:
		return fmt.Errorf("unknown cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case BackendFile, BackendMemory, BackendMongo, "":
	default:
		return fmt.Errorf("unknown store backend: %q (must be one of: file, memory, mongo)", c.Store.Backend)
	}
	return nil
}
