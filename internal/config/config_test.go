package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/llGaetanll/McUtils/pkg/search"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.TileSize != search.DefaultTileSize {
		t.Errorf("TileSize = %d", cfg.TileSize)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadJSON(t *testing.T) {
	p := writeFile(t, "run.json", `{"seed": -763922862008843532, "x1": -16, "z1": -12, "x2": 23, "z2": 17, "width": 6, "height": 5}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != -763922862008843532 {
		t.Errorf("Seed = %d", cfg.Seed)
	}
	if cfg.Window() != (search.Window{Width: 6, Height: 5}) {
		t.Errorf("Window = %+v", cfg.Window())
	}
	if cfg.Start().X != -16 || cfg.End().Z != 17 {
		t.Errorf("rect = %s-%s", cfg.Start(), cfg.End())
	}
	// Untouched keys keep their defaults.
	if cfg.Addr != ":8080" || cfg.LogLevel != "info" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, "run.yaml", `
seed: 12345
x1: 0
z1: 0
x2: 99
z2: 99
width: 8
height: 4
memory_budget: 4000000
log_level: debug
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 12345 || cfg.Width != 8 || cfg.Height != 4 {
		t.Errorf("got %+v", cfg)
	}
	if got := cfg.EffectiveTileSize(); got != search.TileSizeFor(4_000_000) {
		t.Errorf("EffectiveTileSize = %d", got)
	}
	if l, err := cfg.Level(); err != nil || l != slog.LevelDebug {
		t.Errorf("Level = %v, %v", l, err)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	cfg, err := Load(writeFile(t, "empty.yml", ""))
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"unknown key", "a.json", `{"seeed": 1}`},
		{"wrong type", "b.json", `{"width": "wide"}`},
		{"fractional", "c.json", `{"x1": 1.5}`},
		{"outside world", "d.yaml", "x2: 4000000\n"},
		{"zero window", "e.yaml", "height: 0\n"},
		{"bad level", "f.json", `{"log_level": "loud"}`},
		{"bad yaml", "g.yaml", "seed: [\n"},
		{"unsupported", "h.toml", "seed = 1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, tt.file, tt.content)
			_, err := Load(p)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), p) {
				t.Errorf("error %q does not name the file", err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "none.json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestMergeKeepsExplicitFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Width = 3

	file := DefaultConfig()
	file.Seed = 99
	file.Width = 20
	file.Height = 10
	file.DBPath = "runs.db"

	Merge(cfg, file, map[string]bool{"seed": true, "w": true})

	if cfg.Seed != 1 || cfg.Width != 3 {
		t.Errorf("explicit flags overwritten: seed=%d width=%d", cfg.Seed, cfg.Width)
	}
	if cfg.Height != 10 || cfg.DBPath != "runs.db" {
		t.Errorf("file values not applied: height=%d db=%q", cfg.Height, cfg.DBPath)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"reversed", func(c *Config) { c.X1, c.X2 = 10, -10 }},
		{"empty window", func(c *Config) { c.Width = 0 }},
		{"window larger than rect", func(c *Config) { c.X1, c.X2 = 0, 3 }},
		{"window larger than tile", func(c *Config) { c.TileSize = 8 }},
		{"window larger than budget tile", func(c *Config) { c.MemoryBudget = 100 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"bad level", func(c *Config) { c.LogLevel = "chatty" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSearchConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 3
	sc := cfg.Search(nil)
	if sc.Workers != 3 || sc.TileWorkers != 1 || sc.TileSize != search.DefaultTileSize {
		t.Errorf("got %+v", sc)
	}
}
