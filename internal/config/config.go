// Package config loads strata.toml. Every key is optional; missing keys keep
// their defaults and command-line flags override both.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"strata/internal/syntaxtree"
	"strata/internal/trace"
)

// ErrManifestInvalid wraps every validation failure of a manifest.
var ErrManifestInvalid = errors.New("invalid strata.toml")

type CheckConfig struct {
	MaxDiagnostics   int    `toml:"max_diagnostics"`
	Engine           string `toml:"engine"`
	WarningsAsErrors bool   `toml:"warnings_as_errors"`
}

type TreeConfig struct {
	IncludeTypes bool `toml:"include_types"`
	MaxDepth     int  `toml:"max_depth"`
	Pretty       bool `toml:"pretty"`
	Locations    bool `toml:"locations"`
	Comments     bool `toml:"comments"`
	SkipBodies   bool `toml:"skip_bodies"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Mode   string `toml:"mode"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
	// Dir пустой: пользовательский каталог кэша
	Dir string `toml:"dir"`
}

// Config is the merged configuration of one run.
type Config struct {
	// Path of the manifest; empty when only defaults are in effect.
	Path  string      `toml:"-"`
	Check CheckConfig `toml:"check"`
	Tree  TreeConfig  `toml:"tree"`
	Trace TraceConfig `toml:"trace"`
	Cache CacheConfig `toml:"cache"`
}

// Default returns the configuration used without a manifest.
func Default() Config {
	return Config{
		Check: CheckConfig{MaxDiagnostics: 100, Engine: "strata"},
		Trace: TraceConfig{Level: "off", Output: "-", Mode: "stream"},
		Cache: CacheConfig{Enabled: true},
	}
}

// Root returns the directory of the manifest, or "" without one.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// TreeOptions converts the [tree] section into export options.
func (c Config) TreeOptions() syntaxtree.Options {
	return syntaxtree.Options{
		IncludeResolvedTypes:   c.Tree.IncludeTypes,
		MaxDepth:               c.Tree.MaxDepth,
		PrettyPrint:            c.Tree.Pretty,
		IncludeSourceLocations: c.Tree.Locations,
		IncludeComments:        c.Tree.Comments,
		SkipFunctionBodies:     c.Tree.SkipBodies,
	}
}

// TraceLevel parses [trace].level.
func (c Config) TraceLevel() (trace.Level, error) {
	return trace.ParseLevel(c.Trace.Level)
}

// Load decodes the manifest at path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.Path = path
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		slices.Sort(keys)
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrManifestInvalid, strings.Join(keys, ", "))
	}
	if meta.IsDefined("check", "engine") && strings.TrimSpace(cfg.Check.Engine) == "" {
		return Config{}, fmt.Errorf("%s: %w: [check].engine is empty", path, ErrManifestInvalid)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w: %w", path, ErrManifestInvalid, err)
	}
	if meta.IsDefined("cache", "dir") && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(cfg.Root(), cfg.Cache.Dir)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics)
	}
	if c.Tree.MaxDepth < 0 {
		return fmt.Errorf("[tree].max_depth must be >= 0, got %d", c.Tree.MaxDepth)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("[trace].level: %w", err)
	}
	if _, err := trace.ParseMode(c.Trace.Mode); err != nil {
		return fmt.Errorf("[trace].mode: %w", err)
	}
	return nil
}

// Discover loads the nearest manifest above startDir, or the defaults when
// there is none.
func Discover(startDir string) (Config, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}
