// Package cli implements the phrasenet command-line interface.
//
// # Commands
//
//   - analyze: Build a phrase net from text, a TXT file, or a PDF
//   - render: Draw a saved phrase net as SVG, PNG, PDF, or DOT
//   - serve: Run the HTTP API
//   - annotators: List annotators and check that they load
//   - cache: Manage the extracted-text cache
//   - completion: Generate shell completion scripts
//
// # Configuration
//
// Settings come from config.toml, a .env file, and PHRASENET_* variables
// (see package config). Flags override all of them.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/phrasenet/pkg/cache"
	"github.com/matzehuels/phrasenet/pkg/config"
	"github.com/matzehuels/phrasenet/pkg/core/annotate"
	"github.com/matzehuels/phrasenet/pkg/extract"
	"github.com/matzehuels/phrasenet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "phrasenet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	// Out receives command output. Defaults to os.Stdout.
	Out io.Writer

	configPath string
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The configuration file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves configuration and applies its log level unless the
// level was raised by --verbose.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.Logger.GetLevel() != LogDebug {
		if level, err := log.ParseLevel(cfg.Log.Level); err == nil {
			c.Logger.SetLevel(level)
		}
	}
	return nil
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) newRegistry() *annotate.Registry {
	return annotate.NewDefaultRegistry(annotate.Endpoints{
		Spacy:  c.Config.Annotators.SpacyURL,
		Stanza: c.Config.Annotators.StanzaURL,
	}, c.Logger)
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.newRegistry(), c.Logger)
}

// newCache opens the configured cache backend. File and Redis caches are
// instrumented with the cache hooks.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.CacheNone {
		return cache.NewNullCache(), nil
	}
	if cfg.Backend == config.CacheRedis {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   appName + ":",
		})
		if err != nil {
			return nil, err
		}
		return cache.Instrument(rc, "extract"), nil
	}
	dir, err := c.Config.CacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(fc, "extract"), nil
}

// newExtractor creates a text extractor on top of the configured cache.
// The caller closes the returned cache.
func (c *CLI) newExtractor(ctx context.Context, noCache bool) (*extract.Extractor, cache.Cache, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	ex := extract.New(cc, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		ex.TTL = ttl
	}
	if ns := c.Config.Cache.Namespace; ns != "" {
		ex.Keyer = cache.NewScopedKeyer(ex.Keyer, ns+":")
	}
	return ex, cc, nil
}
