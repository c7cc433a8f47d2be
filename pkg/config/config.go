// Package config loads phrasenet settings.
//
// Settings are resolved in three layers, each overriding the previous one:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/phrasenet/config.toml
//  3. PHRASENET_* environment variables, optionally read from a .env file
//
// Example config.toml:
//
//	[server]
//	addr = ":8000"
//	cors_origins = ["http://localhost:5173"]
//
//	[annotators]
//	default = "builtin"
//	spacy_url = "http://localhost:9001"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	appName = "phrasenet"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "PHRASENET_"

	DefaultAddr           = ":8000"
	DefaultRequestTimeout = 2 * time.Minute
	DefaultMaxUploadMB    = 32
	DefaultMaxNodes       = 100
	DefaultAnnotator      = "builtin"
	DefaultLogLevel       = "info"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// DefaultCORSOrigins are the development front-end origins.
var DefaultCORSOrigins = []string{"http://localhost:5173", "http://localhost:3000"}

// Config is the resolved application configuration.
type Config struct {
	Server     ServerConfig    `toml:"server"`
	Annotators AnnotatorConfig `toml:"annotators"`
	Cache      CacheConfig     `toml:"cache"`
	Analysis   AnalysisConfig  `toml:"analysis"`
	Log        LogConfig       `toml:"log"`
}

type ServerConfig struct {
	Addr           string   `toml:"addr"`
	CORSOrigins    []string `toml:"cors_origins"`
	RequestTimeout Duration `toml:"request_timeout"`
	MaxUploadMB    int      `toml:"max_upload_mb"`
}

type AnnotatorConfig struct {
	Default   string `toml:"default"`
	SpacyURL  string `toml:"spacy_url"`
	StanzaURL string `toml:"stanza_url"`
}

type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	// Namespace scopes cache keys so deployments can share one backend.
	Namespace     string   `toml:"namespace"`
}

type AnalysisConfig struct {
	MaxNodes  int      `toml:"max_nodes"`
	Stopwords []string `toml:"stopwords"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration that decodes from TOML strings like "90s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           DefaultAddr,
			CORSOrigins:    append([]string(nil), DefaultCORSOrigins...),
			RequestTimeout: Duration{DefaultRequestTimeout},
			MaxUploadMB:    DefaultMaxUploadMB,
		},
		Annotators: AnnotatorConfig{Default: DefaultAnnotator},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Analysis: AnalysisConfig{MaxNodes: DefaultMaxNodes},
		Log:      LogConfig{Level: DefaultLogLevel},
	}
}

// Load resolves the configuration. An empty path means [DefaultPath], which
// may be absent. An explicit path must exist.
func Load(path string) (*Config, error) {
	// A missing .env file is normal.
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.Decode(string(data))
}

// Decode overlays TOML content onto c. Keys absent from data keep their
// current values.
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config: unknown key %q", undecoded[0].String())
	}
	return nil
}

// ApplyEnv overrides fields from PHRASENET_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = splitList(v)
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		*dst = n
		return nil
	}
	dur := func(name string, dst *Duration) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		if err := dst.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
		}
		return nil
	}

	str("ADDR", &c.Server.Addr)
	list("CORS_ORIGINS", &c.Server.CORSOrigins)
	str("ANNOTATOR", &c.Annotators.Default)
	str("SPACY_URL", &c.Annotators.SpacyURL)
	str("STANZA_URL", &c.Annotators.StanzaURL)
	str("CACHE_BACKEND", &c.Cache.Backend)
	str("CACHE_DIR", &c.Cache.Dir)
	str("REDIS_ADDR", &c.Cache.RedisAddr)
	str("REDIS_PASSWORD", &c.Cache.RedisPassword)
	str("CACHE_NAMESPACE", &c.Cache.Namespace)
	list("STOPWORDS", &c.Analysis.Stopwords)
	str("LOG_LEVEL", &c.Log.Level)

	for _, err := range []error{
		num("MAX_UPLOAD_MB", &c.Server.MaxUploadMB),
		num("REDIS_DB", &c.Cache.RedisDB),
		num("MAX_NODES", &c.Analysis.MaxNodes),
		dur("REQUEST_TIMEOUT", &c.Server.RequestTimeout),
		dur("CACHE_TTL", &c.Cache.TTL),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return fmt.Errorf("config: cache backend %q requires redis_addr", CacheRedis)
		}
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	if c.Analysis.MaxNodes < 0 {
		return fmt.Errorf("config: max_nodes must not be negative")
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("config: max_upload_mb must be positive")
	}
	if c.Annotators.Default == "" {
		return fmt.Errorf("config: default annotator must not be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return nil
}

// CacheDir returns the configured cache directory, falling back to
// [DefaultCacheDir].
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	return DefaultCacheDir()
}

// DefaultPath returns $XDG_CONFIG_HOME/phrasenet/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns $XDG_CACHE_HOME/phrasenet.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
