// Package config reads the optional prm.hcl settings file.
//
// The file is HCL. Expressions may refer to the process environment through
// the env object, e.g. source = "${env.VANGERS_DATA}/data". Every setting is
// optional; missing ones keep their defaults, and command-line flags win over
// both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/Fenex/vangers-tool/core/cache"
	"github.com/Fenex/vangers-tool/core/ref"
	"github.com/Fenex/vangers-tool/core/tables"
	"github.com/Fenex/vangers-tool/internal/logging"
)

// DefaultFile is looked up in the working directory when no file is named.
const DefaultFile = "prm.hcl"

// Config is the resolved configuration.
type Config struct {
	Source   string   // Data folder or archive
	Tables   []string // Tables to load; empty means all registered tables
	Database string   // SQLite path used by the index command
	Parallel int      // Tables parsed at once; 0 means no limit
	Log      LogConfig
	Cache    CacheConfig
}

// LogConfig selects the logger level and format.
type LogConfig struct {
	Level  string
	Format string
}

// CacheConfig sizes the parsed-table cache.
type CacheConfig struct {
	MaxEntries int
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Database: "prm.db",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Cache: CacheConfig{
			MaxEntries: cache.DefaultTableEntries,
		},
	}
}

// hclFile mirrors the file layout for gohcl. Pointers tell absent settings
// from zero values.
type hclFile struct {
	Source   *string   `hcl:"source,optional"`
	Tables   *[]string `hcl:"tables,optional"`
	Database *string   `hcl:"database,optional"`
	Parallel *int      `hcl:"parallel,optional"`
	Log      *hclLog   `hcl:"log,block"`
	Cache    *hclCache `hcl:"cache,block"`
}

type hclLog struct {
	Level  *string `hcl:"level,optional"`
	Format *string `hcl:"format,optional"`
}

type hclCache struct {
	MaxEntries *int `hcl:"max_entries,optional"`
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return parse(src, path, os.Environ())
}

// LoadOrDefault loads path. An empty path falls back to DefaultFile in the
// working directory, and to Default when that file does not exist either.
func LoadOrDefault(path string) (Config, error) {
	if path != "" {
		return Load(path)
	}
	cfg, err := Load(DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse decodes src as a config file named filename.
func Parse(src []byte, filename string) (Config, error) {
	return parse(src, filename, os.Environ())
}

func parse(src []byte, filename string, environ []string) (Config, error) {
	cfg := Default()

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}

	var raw hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(environ), &raw)
	if diags.HasErrors() {
		return cfg, fmt.Errorf("failed to decode config %s: %w", filename, diags)
	}

	raw.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return cfg, nil
}

// evalContext exposes the environment as env.NAME.
func evalContext(environ []string) *hcl.EvalContext {
	env := make(map[string]cty.Value, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	vars := make(map[string]cty.Value)
	vars["env"] = cty.ObjectVal(env)
	return &hcl.EvalContext{Variables: vars}
}

func (f *hclFile) apply(cfg *Config) {
	if f.Source != nil {
		cfg.Source = *f.Source
	}
	if f.Tables != nil {
		cfg.Tables = *f.Tables
	}
	if f.Database != nil {
		cfg.Database = *f.Database
	}
	if f.Parallel != nil {
		cfg.Parallel = *f.Parallel
	}
	if f.Log != nil {
		if f.Log.Level != nil {
			cfg.Log.Level = *f.Log.Level
		}
		if f.Log.Format != nil {
			cfg.Log.Format = *f.Log.Format
		}
	}
	if f.Cache != nil && f.Cache.MaxEntries != nil {
		cfg.Cache.MaxEntries = *f.Cache.MaxEntries
	}
}

// Overrides holds command-line values. Empty fields leave the config alone.
type Overrides struct {
	Source    string
	Tables    []string
	Database  string
	LogLevel  string
	LogFormat string
}

// Apply copies the set overrides into c.
func (c *Config) Apply(o Overrides) {
	if o.Source != "" {
		c.Source = o.Source
	}
	if len(o.Tables) > 0 {
		c.Tables = o.Tables
	}
	if o.Database != "" {
		c.Database = o.Database
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	if o.LogFormat != "" {
		c.Log.Format = o.LogFormat
	}
}

// Validate checks values gohcl cannot check by type alone.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return err
	}
	if c.Cache.MaxEntries < 0 {
		return fmt.Errorf("cache max_entries must not be negative, got %d", c.Cache.MaxEntries)
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel must not be negative, got %d", c.Parallel)
	}

	known := tables.Names()
	seen := make(map[string]bool, len(c.Tables))
	for _, name := range c.Tables {
		if tables.Get(name) == nil {
			return &ref.NotFoundError{What: "table", Name: name, Suggestions: ref.Suggest(name, known)}
		}
		if seen[name] {
			return fmt.Errorf("table %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}

// InitLogging configures the global logger from the log settings.
func (c *Config) InitLogging() error {
	level, err := logging.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return err
	}
	logging.InitLogger(level, format)
	return nil
}

// TableCache builds the cache sized by the config. A zero size disables it.
func (c *Config) TableCache() *cache.TableCache {
	if c.Cache.MaxEntries == 0 {
		return nil
	}
	return cache.NewTableCache(c.Cache.MaxEntries)
}
