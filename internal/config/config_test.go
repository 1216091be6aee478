package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"strata/internal/trace"
)

func writeManifest(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadOverridesOnlyDefinedKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[check]
max_diagnostics = 5

[tree]
include_types = true
max_depth = 3

[trace]
level = "phase"

[cache]
dir = "cache"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Check.MaxDiagnostics != 5 || cfg.Check.Engine != "strata" {
		t.Fatalf("check = %+v", cfg.Check)
	}
	opts := cfg.TreeOptions()
	if !opts.IncludeResolvedTypes || opts.MaxDepth != 3 || opts.PrettyPrint {
		t.Fatalf("tree options = %+v", opts)
	}
	if lvl, err := cfg.TraceLevel(); err != nil || lvl != trace.LevelPhase {
		t.Fatalf("trace level = %v, %v", lvl, err)
	}
	if cfg.Trace.Mode != "stream" {
		t.Fatalf("mode default lost: %q", cfg.Trace.Mode)
	}
	if !cfg.Cache.Enabled || cfg.Cache.Dir != filepath.Join(dir, "cache") {
		t.Fatalf("cache = %+v", cfg.Cache)
	}
	if cfg.Root() != dir {
		t.Fatalf("root = %q", cfg.Root())
	}
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown key", "[check]\ncolour = true\n"},
		{"negative depth", "[tree]\nmax_depth = -1\n"},
		{"negative max", "[check]\nmax_diagnostics = -2\n"},
		{"bad level", "[trace]\nlevel = \"loud\"\n"},
		{"bad mode", "[trace]\nmode = \"disk\"\n"},
		{"empty engine", "[check]\nengine = \"  \"\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, t.TempDir(), tc.body)
			if _, err := Load(path); !errors.Is(err, ErrManifestInvalid) {
				t.Fatalf("Load error = %v, want ErrManifestInvalid", err)
			}
		})
	}
	path := writeManifest(t, t.TempDir(), "[check\n")
	if _, err := Load(path); err == nil || errors.Is(err, ErrManifestInvalid) {
		t.Fatalf("syntax error = %v", err)
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[tree]\npretty = true\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if !cfg.Tree.Pretty || cfg.Path != filepath.Join(root, ManifestName) {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	dir := t.TempDir()
	path, ok, err := FindManifest(dir)
	if err != nil {
		t.Fatalf("FindManifest: %v", err)
	}
	if ok {
		// где-то выше временного каталога лежит чужой манифест
		t.Skipf("manifest above temp dir: %s", path)
	}
	cfg, err := Discover(dir)
	if err != nil || cfg.Path != "" || cfg.Check.MaxDiagnostics != 100 {
		t.Fatalf("Discover = %+v, %v", cfg, err)
	}
}
