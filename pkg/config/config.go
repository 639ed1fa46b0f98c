// Package config loads wirechain settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/wirechain/config.toml (falling back to
// ~/.config/wirechain/config.toml). Every key is optional:
//
//	[cache]
//	backend   = "redis"            # file | redis | none
//	dir       = "/var/cache/wirechain"
//	redis_url = "redis://localhost:6379/0"
//	ttl       = "72h"
//
//	[store]
//	mongo_uri  = "mongodb://localhost:27017"
//	database   = "wirechain"
//	collection = "decompositions"
//
//	[server]
//	addr           = ":8080"
//	max_body_bytes = 33554432
//
//	[log]
//	level = "debug"
//
// WIRECHAIN_REDIS_URL and WIRECHAIN_MONGO_URI override the file.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/wirechain/pkg/cache"
	errs "github.com/matzehuels/wirechain/pkg/errors"
	"github.com/matzehuels/wirechain/pkg/store"
)

const appName = "wirechain"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Environment overrides.
const (
	EnvRedisURL = "WIRECHAIN_REDIS_URL"
	EnvMongoURI = "WIRECHAIN_MONGO_URI"
)

// Config is the full configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	TTL      string `toml:"ttl"`
}

// StoreConfig configures the decomposition store. An empty MongoURI selects
// the in-memory store.
type StoreConfig struct {
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns a configuration that works without any file present.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{
			Backend: BackendFile,
			Dir:     defaultCacheDir(),
			TTL:     cache.DefaultTTL.String(),
		},
		Store: StoreConfig{
			Database:   store.DefaultDatabase,
			Collection: store.DefaultCollection,
		},
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 32 << 20,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Path returns the default configuration file location.
func Path() string {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

func defaultCacheDir() string {
	if home := os.Getenv("XDG_CACHE_HOME"); home != "" {
		return filepath.Join(home, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// Load reads the configuration at path on top of [Default], applies
// environment overrides and validates the result.
//
// An empty path means [Path]; a missing default file is not an error,
// but a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = Path()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.decode(path, data); err != nil {
				return nil, err
			}
		case os.IsNotExist(err) && !explicit:
		case os.IsNotExist(err):
			return nil, errs.New(errs.ErrCodeFileNotFound, "config file not found: %s", path)
		default:
			return nil, errs.Wrap(errs.ErrCodeInternal, err, "read config %s", path)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of [Default] without touching the
// environment or the filesystem.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode("config", data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(name string, data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errs.New(errs.ErrCodeInvalidFormat, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.Cache.RedisURL = v
		if c.Cache.Backend == BackendFile {
			c.Cache.Backend = BackendRedis
		}
	}
	if v := os.Getenv(EnvMongoURI); v != "" {
		c.Store.MongoURI = v
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile:
		if c.Cache.Dir == "" {
			return errs.New(errs.ErrCodeInvalidInput, "cache.dir is required for the file backend")
		}
	case BackendRedis:
		if err := errs.ValidateURL(c.Cache.RedisURL, "redis", "rediss"); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "cache.redis_url")
		}
	case BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if c.Store.MongoURI != "" {
		if err := errs.ValidateURL(c.Store.MongoURI, "mongodb", "mongodb+srv"); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidInput, err, "store.mongo_uri")
		}
	}
	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidInput, "server.addr must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "server.max_body_bytes must be positive")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses cache.ttl. An empty value means [cache.DefaultTTL].
func (c *Config) CacheTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidInput, "cache.ttl: invalid duration %q", c.Cache.TTL)
	}
	return d, nil
}

// LogLevel parses log.level.
func (c *Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "log.level: unknown level %q", c.Log.Level)
	}
	return lvl, nil
}
