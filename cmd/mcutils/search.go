package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/llGaetanll/McUtils/internal/command"
	"github.com/llGaetanll/McUtils/internal/config"
	"github.com/llGaetanll/McUtils/internal/export"
	"github.com/llGaetanll/McUtils/internal/storage"
	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/slime"
)

// bindConfig registers the flags shared by search and serve.
func bindConfig(fs *flag.FlagSet, cfg *config.Config) *string {
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world seed")
	fs.Func("x1", "lowest chunk x", int32Flag(&cfg.X1))
	fs.Func("z1", "lowest chunk z", int32Flag(&cfg.Z1))
	fs.Func("x2", "highest chunk x", int32Flag(&cfg.X2))
	fs.Func("z2", "highest chunk z", int32Flag(&cfg.Z2))
	fs.Func("w", "window width in chunks", int32Flag(&cfg.Width))
	fs.Func("h", "window height in chunks", int32Flag(&cfg.Height))
	fs.Func("tile", "tile edge in chunks", int32Flag(&cfg.TileSize))
	fs.Int64Var(&cfg.MemoryBudget, "memory", cfg.MemoryBudget, "bytes per tile table, overrides -tile")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "scan goroutines per tile (0 = all CPUs)")
	fs.IntVar(&cfg.TileWorkers, "tile-workers", cfg.TileWorkers, "tiles searched at once")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "directory for result files")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite run index (empty = none)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for serve")
	return fs.String("config", "", "JSON or YAML config file")
}

func int32Flag(dst *int32) func(string) error {
	return func(s string) error {
		var v int32
		if _, err := fmt.Sscan(s, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// loadConfig parses args into a validated config, applying the config file
// under explicitly set flags.
func loadConfig(fs *flag.FlagSet, args []string, cfg *config.Config, path *string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path != "" {
		fromFile, err := config.Load(*path)
		if err != nil {
			return err
		}
		config.Merge(cfg, fromFile, explicitFlags(fs))
	}
	return cfg.Validate()
}

func runSearch(ctx context.Context, args []string, stdout io.Writer, log *slog.Logger) error {
	cfg := config.DefaultConfig()
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	path := bindConfig(fs, cfg)
	fs.StringVar(&cfg.NBTPath, "nbt", cfg.NBTPath, "write the result as gzip NBT")
	fs.StringVar(&cfg.PNGPath, "png", cfg.PNGPath, "write the result map as PNG")
	scale := fs.Int("scale", 16, "PNG pixels per chunk")
	cmds := fs.Bool("commands", false, "print commands outlining the result")
	if err := loadConfig(fs, args, cfg, path); err != nil {
		return err
	}

	level, _ := cfg.Level()
	log = newLogger(level)

	w := cfg.Window()
	tile := cfg.EffectiveTileSize()
	area := uint64(int64(cfg.X2)-int64(cfg.X1)+1) * uint64(int64(cfg.Z2)-int64(cfg.Z1)+1)
	fmt.Fprintf(stdout, "Searching %s chunks from %s to %s for a %dx%d window\n",
		humanize.Comma(int64(area)), cfg.Start(), cfg.End(), w.Width, w.Height)
	fmt.Fprintf(stdout, "Tile edge %s chunks, %s per table\n",
		humanize.Comma(int64(tile)), humanize.IBytes(uint64(search.Bytes(int64(tile), int64(tile)))))

	began := time.Now()
	res, err := search.SearchLarge(ctx, cfg.Seed, cfg.Start(), cfg.End(), w, cfg.Search(log))
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	field := slime.Field(cfg.Seed)
	fmt.Fprintln(stdout, export.TextMap(res, field))
	fmt.Fprintf(stdout, "Done in %s\n", elapsed.Round(time.Millisecond))

	if cfg.OutDir != "" {
		st, err := storage.New(cfg.OutDir, log)
		if err != nil {
			return err
		}
		if err := st.SaveResult(cfg.Start(), cfg.End(), w, res); err != nil {
			return err
		}
	}
	if cfg.DBPath != "" {
		ix, err := storage.OpenIndex(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open index: %w", err)
		}
		defer ix.Close()
		id, err := ix.Record(ctx, storage.Run{
			Start:    cfg.Start(),
			End:      cfg.End(),
			Window:   w,
			TileSize: tile,
			Result:   res,
			Elapsed:  elapsed,
		})
		if err != nil {
			return err
		}
		log.Info("recorded run", "id", id)
	}
	if cfg.NBTPath != "" {
		if err := writeFile(cfg.NBTPath, func(f io.Writer) error { return export.WriteNBT(f, res, field) }); err != nil {
			return err
		}
	}
	if cfg.PNGPath != "" {
		if err := writeFile(cfg.PNGPath, func(f io.Writer) error { return export.WritePNG(f, res, field, *scale) }); err != nil {
			return err
		}
	}
	if *cmds {
		for _, c := range command.Outline(res, 100, "glowstone") {
			fmt.Fprintln(stdout, c)
		}
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
