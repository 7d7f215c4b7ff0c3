package search

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/llGaetanll/McUtils/pkg/slime"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Progress reports one finished tile of a SearchLarge run.
type Progress struct {
	Done, Total int
	Tile        Rect
	TileBest    Result
	// Best is the best result among the tiles finished so far.
	Best Result
}

// TileSizeFor returns the largest tile edge whose table fits in budget bytes.
func TileSizeFor(budget int64) int32 {
	if budget >= Bytes(world.MaxChunkExtent, world.MaxChunkExtent) {
		return world.MaxChunkExtent
	}
	edge := int64(math.Sqrt(float64(budget/4))) - 1
	// Correct the float square root by at most one step either way.
	for edge > 0 && Bytes(edge, edge) > budget {
		edge--
	}
	for Bytes(edge+1, edge+1) <= budget {
		edge++
	}
	if edge < 1 {
		return 1
	}
	return int32(edge)
}

// Tiles splits r into square tiles of edge size, left to right along X then
// along Z. The last tile of each axis is clamped to r.
func Tiles(r Rect, size int32) []Rect {
	var out []Rect
	for x := int64(r.Min.X); x <= int64(r.Max.X); x += int64(size) {
		for z := int64(r.Min.Z); z <= int64(r.Max.Z); z += int64(size) {
			out = append(out, Rect{
				Min: world.ChunkPos{X: int32(x), Z: int32(z)},
				Max: world.ChunkPos{
					X: int32(min(x+int64(size)-1, int64(r.Max.X))),
					Z: int32(min(z+int64(size)-1, int64(r.Max.Z))),
				},
			})
		}
	}
	return out
}

// SearchLarge is Search for rectangles too large for one table. It searches
// non-overlapping tiles independently and keeps the best tile result, earlier
// tiles winning ties. A window straddling two tiles is never counted, so the
// result can be lower than a single Search over the whole rectangle would give.
func SearchLarge(ctx context.Context, seed int64, start, end world.ChunkPos, w Window, cfg Config) (Result, error) {
	return SearchLargeField(ctx, slime.Field(seed), start, end, w, cfg)
}

// SearchLargeField is SearchLarge over an arbitrary field.
func SearchLargeField(ctx context.Context, f Field, start, end world.ChunkPos, w Window, cfg Config) (Result, error) {
	r := Rect{Min: start, Max: end}
	if err := validateRect(r); err != nil {
		return Result{}, err
	}
	if err := validateWindow(w, r.Width(), r.Height()); err != nil {
		return Result{}, err
	}
	size := cfg.tileSize()
	if w.Width > size || w.Height > size {
		return Result{}, fmt.Errorf("%w: %dx%d does not fit in tile edge %d", ErrInvalidWindow, w.Width, w.Height, size)
	}

	log := cfg.logger()
	tiles := Tiles(r, size)
	results := make([]Result, len(tiles))
	searched := make([]bool, len(tiles))

	var (
		mu   sync.Mutex
		done int
		best Result
		seen bool
	)

	began := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.tileWorkers())
	for i, tile := range tiles {
		if tile.Width() < int64(w.Width) || tile.Height() < int64(w.Height) {
			log.Debug("Skipping tile smaller than window", "tile", i, "min", tile.Min.String(), "max", tile.Max.String())
			mu.Lock()
			done++
			mu.Unlock()
			continue
		}
		g.Go(func() error {
			res, err := searchRect(ctx, f, tile, w, cfg)
			if err != nil {
				return fmt.Errorf("tile %d: %w", i, err)
			}
			results[i], searched[i] = res, true

			mu.Lock()
			defer mu.Unlock()
			done++
			if !seen || res.Better(best) {
				best, seen = res, true
			}
			log.Info("Tile searched", "tile", i, "tiles", len(tiles), "min", tile.Min.String(), "max", tile.Max.String(), "count", res.Count)
			if cfg.Progress != nil {
				cfg.Progress(Progress{Done: done, Total: len(tiles), Tile: tile, TileBest: res, Best: best})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var final Result
	first := true
	for i, res := range results {
		if !searched[i] {
			continue
		}
		if first || res.Better(final) {
			final, first = res, false
		}
	}
	log.Info("Search finished", "tiles", len(tiles), "count", final.Count, "p1", final.P1.String(), "p2", final.P2.String(), "elapsed", time.Since(began))
	return final, nil
}
