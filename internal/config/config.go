package config

import (
	"fmt"
	"log/slog"

	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Config holds the settings of a search run and of the search service.
type Config struct {
	Seed int64 `json:"seed"`

	// Inclusive search rectangle in chunk coordinates.
	X1 int32 `json:"x1"`
	Z1 int32 `json:"z1"`
	X2 int32 `json:"x2"`
	Z2 int32 `json:"z2"`

	// Window size in chunks.
	Width  int32 `json:"width"`
	Height int32 `json:"height"`

	TileSize     int32 `json:"tile_size"`
	MemoryBudget int64 `json:"memory_budget"` // bytes per tile table, overrides TileSize when set
	Workers      int   `json:"workers"`       // 0 = GOMAXPROCS
	TileWorkers  int   `json:"tile_workers"`

	OutDir  string `json:"out_dir"`
	DBPath  string `json:"db_path"`
	NBTPath string `json:"nbt_path"`
	PNGPath string `json:"png_path"`

	LogLevel string `json:"log_level"`
	Addr     string `json:"addr"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		X1:          -1000,
		Z1:          -1000,
		X2:          1000,
		Z2:          1000,
		Width:       16,
		Height:      16,
		TileSize:    search.DefaultTileSize,
		TileWorkers: 1,
		OutDir:      "data",
		LogLevel:    "info",
		Addr:        ":8080",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	merge(explicitFlags, "seed", &cfg.Seed, fromFile.Seed)
	merge(explicitFlags, "x1", &cfg.X1, fromFile.X1)
	merge(explicitFlags, "z1", &cfg.Z1, fromFile.Z1)
	merge(explicitFlags, "x2", &cfg.X2, fromFile.X2)
	merge(explicitFlags, "z2", &cfg.Z2, fromFile.Z2)
	merge(explicitFlags, "w", &cfg.Width, fromFile.Width)
	merge(explicitFlags, "h", &cfg.Height, fromFile.Height)
	merge(explicitFlags, "tile", &cfg.TileSize, fromFile.TileSize)
	merge(explicitFlags, "memory", &cfg.MemoryBudget, fromFile.MemoryBudget)
	merge(explicitFlags, "workers", &cfg.Workers, fromFile.Workers)
	merge(explicitFlags, "tile-workers", &cfg.TileWorkers, fromFile.TileWorkers)
	merge(explicitFlags, "out", &cfg.OutDir, fromFile.OutDir)
	merge(explicitFlags, "db", &cfg.DBPath, fromFile.DBPath)
	merge(explicitFlags, "nbt", &cfg.NBTPath, fromFile.NBTPath)
	merge(explicitFlags, "png", &cfg.PNGPath, fromFile.PNGPath)
	merge(explicitFlags, "log-level", &cfg.LogLevel, fromFile.LogLevel)
	merge(explicitFlags, "addr", &cfg.Addr, fromFile.Addr)
}

func merge[T any](explicit map[string]bool, name string, dst *T, v T) {
	if !explicit[name] {
		*dst = v
	}
}

// Start is the lowest corner of the search rectangle.
func (c *Config) Start() world.ChunkPos { return world.ChunkPos{X: c.X1, Z: c.Z1} }

// End is the highest corner of the search rectangle.
func (c *Config) End() world.ChunkPos { return world.ChunkPos{X: c.X2, Z: c.Z2} }

// Window is the searched window size.
func (c *Config) Window() search.Window { return search.Window{Width: c.Width, Height: c.Height} }

// EffectiveTileSize is the tile edge after applying the memory budget.
func (c *Config) EffectiveTileSize() int32 {
	if c.MemoryBudget > 0 {
		return search.TileSizeFor(c.MemoryBudget)
	}
	return c.TileSize
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Search returns the search settings described by c.
func (c *Config) Search(log *slog.Logger) search.Config {
	return search.Config{
		Workers:     c.Workers,
		TileWorkers: c.TileWorkers,
		TileSize:    c.EffectiveTileSize(),
		Logger:      log,
	}
}

// Validate checks constraints between fields that the schema cannot express.
func (c *Config) Validate() error {
	if c.X1 > c.X2 || c.Z1 > c.Z2 {
		return fmt.Errorf("rectangle (%d, %d)-(%d, %d) is reversed", c.X1, c.Z1, c.X2, c.Z2)
	}
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("window %dx%d is empty", c.Width, c.Height)
	}
	if int64(c.Width) > int64(c.X2)-int64(c.X1)+1 || int64(c.Height) > int64(c.Z2)-int64(c.Z1)+1 {
		return fmt.Errorf("window %dx%d is larger than the rectangle", c.Width, c.Height)
	}
	if tile := c.EffectiveTileSize(); c.Width > tile || c.Height > tile {
		return fmt.Errorf("window %dx%d is larger than tile edge %d", c.Width, c.Height, tile)
	}
	if c.Workers < 0 || c.TileWorkers < 0 {
		return fmt.Errorf("worker counts must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}
