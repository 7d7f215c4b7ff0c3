package search

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llGaetanll/McUtils/pkg/slime"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// DefaultTileSize is the tile edge SearchLarge uses when none is configured.
// Its table takes roughly 400 MB.
const DefaultTileSize = 10_000

// Config tunes a search. The zero value is usable.
type Config struct {
	// Workers is the number of goroutines scanning one table.
	// Zero means GOMAXPROCS.
	Workers int
	// TileWorkers is the number of tiles SearchLarge keeps in memory at once.
	// Zero means one.
	TileWorkers int
	// TileSize is the tile edge for SearchLarge. Zero means DefaultTileSize.
	TileSize int32
	// Logger receives phase timings and tile completions. Nil discards them.
	Logger *slog.Logger
	// Progress, if set, is called after every tile SearchLarge completes.
	// Calls are serialized.
	Progress func(Progress)
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}

func (c Config) tileWorkers() int {
	if c.TileWorkers > 0 {
		return c.TileWorkers
	}
	return 1
}

func (c Config) tileSize() int32 {
	if c.TileSize > 0 {
		return c.TileSize
	}
	return DefaultTileSize
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Search finds the window with the most slime chunks in the inclusive
// rectangle [start, end] of the world with the given seed.
func Search(ctx context.Context, seed int64, start, end world.ChunkPos, w Window, cfg Config) (Result, error) {
	return SearchField(ctx, slime.Field(seed), start, end, w, cfg)
}

// SearchField finds the window with the most favorable cells of f in the
// inclusive rectangle [start, end]. Of several equally dense windows the one
// with the lowest X, then the lowest Z, wins.
func SearchField(ctx context.Context, f Field, start, end world.ChunkPos, w Window, cfg Config) (Result, error) {
	r := Rect{Min: start, Max: end}
	if err := validateTable(r); err != nil {
		return Result{}, err
	}
	if err := validateWindow(w, r.Width(), r.Height()); err != nil {
		return Result{}, err
	}
	return searchRect(ctx, f, r, w, cfg)
}

// searchRect runs an already validated search.
func searchRect(ctx context.Context, f Field, r Rect, w Window, cfg Config) (Result, error) {
	log := cfg.logger()
	width, height := int(r.Width()), int(r.Height())

	began := time.Now()
	t := NewTable(width, height)
	if err := t.Fill(ctx, f, r.Min); err != nil {
		return Result{}, err
	}
	log.Debug("Filled table", "rect", r.Min.String()+"-"+r.Max.String(), "bytes", Bytes(r.Width(), r.Height()), "elapsed", time.Since(began))

	began = time.Now()
	best, err := t.scan(ctx, r.Min, w, cfg.workers())
	if err != nil {
		return Result{}, err
	}
	best.Seed = fieldSeed(f)
	log.Debug("Scanned table", "count", best.Count, "p1", best.P1.String(), "p2", best.P2.String(), "elapsed", time.Since(began))
	return best, nil
}

// scan evaluates every window placement. The far-corner columns are split
// into contiguous ranges, one per worker; each worker keeps the first maximum
// of its range and the ranges are reduced in order.
func (t *Table) scan(ctx context.Context, origin world.ChunkPos, w Window, workers int) (Result, error) {
	lo, hi := int(w.Width), t.w
	cols := hi - lo + 1
	if workers > cols {
		workers = cols
	}

	bests := make([]Result, workers)
	g, ctx := errgroup.WithContext(ctx)
	for k := 0; k < workers; k++ {
		from := lo + k*cols/workers
		to := lo + (k+1)*cols/workers
		g.Go(func() error {
			best, err := t.scanRange(ctx, origin, w, from, to)
			bests[k] = best
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	best := bests[0]
	for _, b := range bests[1:] {
		if b.Better(best) {
			best = b
		}
	}
	return best, nil
}

// scanRange scans far-corner columns [from, to).
func (t *Table) scanRange(ctx context.Context, origin world.ChunkPos, w Window, from, to int) (Result, error) {
	ww, wh := int(w.Width), int(w.Height)
	bi, bj := from, wh
	bc := t.Window(from, wh, w)

	for i := from; i < to; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		for j := wh; j <= t.h; j++ {
			if c := t.Window(i, j, w); c > bc {
				bi, bj, bc = i, j, c
			}
		}
	}

	return Result{
		P1:    origin.Add(int32(bi-ww), int32(bj-wh)),
		P2:    origin.Add(int32(bi-1), int32(bj-1)),
		Count: bc,
	}, nil
}
