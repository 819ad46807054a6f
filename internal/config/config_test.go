package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/graph"
	"github.com/matzehuels/forcechart/pkg/store"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 600 {
		t.Errorf("canvas = %vx%v, want 800x600", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Node.Width != 120 || cfg.Node.Height != 50 {
		t.Errorf("node = %vx%v, want 120x50", cfg.Node.Width, cfg.Node.Height)
	}
	if cfg.Edge.ArrowLength != 16 {
		t.Errorf("arrow length = %v, want 16", cfg.Edge.ArrowLength)
	}
	if cfg.Force.DragAlphaTarget != 0.3 {
		t.Errorf("drag alpha target = %v, want 0.3", cfg.Force.DragAlphaTarget)
	}
	if cfg.Storage.Backend != store.BackendFile {
		t.Errorf("backend = %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != graph.StorageKey {
		t.Errorf("key = %q, want %q", cfg.Storage.Key, graph.StorageKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/test-xdg")
	if dir := Dir(); dir != "/tmp/test-xdg/forcechart" {
		t.Errorf("expected /tmp/test-xdg/forcechart, got %q", dir)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, _ := os.UserHomeDir()
	if dir, want := Dir(), filepath.Join(home, ".config", "forcechart"); dir != want {
		t.Errorf("expected %q, got %q", want, dir)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TUI.FPS != Default().TUI.FPS {
		t.Error("missing file should give defaults")
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[force]
charge = -800

[storage]
backend = "redis"
redis_url = "redis://cache:6379/1"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Force.Charge != -800 {
		t.Errorf("charge = %v, want -800", cfg.Force.Charge)
	}
	if cfg.Force.LinkDistance != Default().Force.LinkDistance {
		t.Error("unset keys should keep their defaults")
	}
	if sc := cfg.StoreConfig(); sc.Backend != store.BackendRedis || sc.RedisURL != "redis://cache:6379/1" {
		t.Errorf("StoreConfig() = %+v", sc)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"syntax", "[canvas\nwidth = 1", "parse"},
		{"unknown key", "[canvas]\ncolour = \"red\"", "unknown keys: canvas.colour"},
		{"wrong type", "[canvas]\nwidth = \"wide\"", "parse"},
		{"positive charge", "[force]\ncharge = 10", "force.charge must be less than 0"},
		{"bad backend", "[storage]\nbackend = \"s3\"", "storage.backend must be one of"},
		{"zero fps", "[tui]\nfps = 0", "tui.fps must be at least 1"},
		{"empty key", "[storage]\nkey = \"\"", "storage.key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Load() error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Canvas.Width = 1024
	cfg.Storage.Namespace = "team"
	cfg.TUI.Mouse = false
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Canvas.Width != 1024 || loaded.Storage.Namespace != "team" || loaded.TUI.Mouse {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestEnsureExists(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := EnsureExists(""); err != nil {
		t.Fatalf("EnsureExists() error = %v", err)
	}
	if _, err := os.Stat(Path()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	cfg := Default()
	cfg.TUI.FPS = 10
	if err := Save(cfg, ""); err != nil {
		t.Fatal(err)
	}
	if err := EnsureExists(""); err != nil {
		t.Fatal(err)
	}
	if loaded, _ := Load(""); loaded.TUI.FPS != 10 {
		t.Error("EnsureExists overwrote an existing file")
	}
}

func TestEditorOptions(t *testing.T) {
	cfg := Default()
	cfg.Node.Width = 140
	cfg.Force.Charge = -250

	opts := cfg.EditorOptions()
	if opts.NodeWidth != 140 || opts.Force.Charge != -250 {
		t.Errorf("EditorOptions() = %+v", opts)
	}
	if opts.Key != graph.StorageKey || opts.DragPadding != 20 {
		t.Errorf("EditorOptions() lost defaults: key %q padding %v", opts.Key, opts.DragPadding)
	}
}
