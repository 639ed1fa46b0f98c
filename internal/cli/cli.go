// Package cli implements the wirechain command-line interface.
//
// Commands:
//   - decompose: split a graph into maximal segments and write the CSR result
//   - stats: summarize a decomposition
//   - render: draw a decomposition as SVG or DOT
//   - inspect: browse segments interactively
//   - serve: run the HTTP API
//   - cache: manage the result cache
//
// All commands read ~/.config/wirechain/config.toml (or --config) and
// support --verbose for debug logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wirechain/pkg/cache"
	"github.com/matzehuels/wirechain/pkg/config"
	"github.com/matzehuels/wirechain/pkg/pipeline"
	"github.com/matzehuels/wirechain/pkg/store"
)

const appName = "wirechain"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file and applies its log level.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if lvl, err := cfg.LogLevel(); err == nil {
		c.SetLogLevel(lvl)
	}
	return nil
}

// config returns the loaded configuration, or defaults when none was loaded.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// newRunner creates a pipeline runner from the configuration. Commands that
// serve or fetch persisted results pass withStore.
func (c *CLI) newRunner(ctx context.Context, noCache, withStore bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	var st store.Store
	if withStore {
		if st, err = c.newStore(ctx); err != nil {
			_ = ch.Close()
			return nil, err
		}
	}
	return pipeline.NewRunner(ch, nil, st, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.config()
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		c.Logger.Debug("using redis cache")
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "dir", cfg.Cache.Dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.config()
	if cfg.Store.MongoURI == "" {
		c.Logger.Debug("using in-memory store")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoOptions{
		URI:        cfg.Store.MongoURI,
		Database:   cfg.Store.Database,
		Collection: cfg.Store.Collection,
	})
}

// runOptions returns pipeline options carrying the configured cache TTL.
func (c *CLI) runOptions(verify, refresh bool) pipeline.Options {
	ttl, _ := c.config().CacheTTL()
	return pipeline.Options{Verify: verify, Refresh: refresh, TTL: ttl}
}
