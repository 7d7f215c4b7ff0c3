// Package export renders search results as text, images and NBT files.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/llGaetanll/McUtils/internal/nbt"
	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Grid samples f over the window of res, indexed [z][x] from P1.
func Grid(res search.Result, f search.Field) [][]bool {
	w := int(res.P2.X - res.P1.X + 1)
	h := int(res.P2.Z - res.P1.Z + 1)
	out := make([][]bool, h)
	for j := range out {
		row := make([]bool, w)
		for i := range row {
			row[i] = f.At(res.P1.X+int32(i), res.P1.Z+int32(j))
		}
		out[j] = row
	}
	return out
}

// Corners returns the lowest and highest block columns covered by res.
func Corners(res search.Result) (from, to world.BlockPos) {
	from = res.P1.Block(0)
	to = res.P2.Block(0)
	to.X += world.ChunkSize - 1
	to.Z += world.ChunkSize - 1
	return from, to
}

// TextMap draws the window of res with one double-width glyph per chunk,
// under a header giving the count, seed, probability and block corners.
func TextMap(res search.Result, f search.Field) string {
	var b strings.Builder
	from, to := Corners(res)
	fmt.Fprintf(&b, "Slime Chunks: %d | Seed: %d | p: %g\n", res.Count, res.Seed, res.Probability())
	fmt.Fprintf(&b, "From: (x: %d, z: %d)\n", from.X, from.Z)
	fmt.Fprintf(&b, "To: (x: %d, z: %d)\n", to.X, to.Z)
	for j, row := range Grid(res, f) {
		if j > 0 {
			b.WriteByte('\n')
		}
		for _, on := range row {
			if on {
				b.WriteString("██")
			} else {
				b.WriteString("░░")
			}
		}
	}
	return b.String()
}

// WriteNBT writes res and its window map as a gzip-compressed NBT compound.
// Map holds one byte per chunk, row by row along Z, 1 for favorable.
func WriteNBT(w io.Writer, res search.Result, f search.Field) error {
	zw := gzip.NewWriter(w)
	nw := nbt.NewWriter(zw)

	grid := Grid(res, f)
	var cells []byte
	for _, row := range grid {
		for _, on := range row {
			if on {
				cells = append(cells, 1)
			} else {
				cells = append(cells, 0)
			}
		}
	}

	nw.BeginCompound("SearchResult")
	nw.WriteLong("Seed", res.Seed)
	nw.WriteIntArray("P1", []int32{res.P1.X, res.P1.Z})
	nw.WriteIntArray("P2", []int32{res.P2.X, res.P2.Z})
	nw.WriteInt("Width", res.P2.X-res.P1.X+1)
	nw.WriteInt("Height", res.P2.Z-res.P1.Z+1)
	nw.WriteInt("Count", int32(res.Count))
	nw.WriteDouble("Probability", res.Probability())
	nw.WriteByteArray("Map", cells)
	nw.EndCompound()

	if err := nw.Err(); err != nil {
		zw.Close()
		return fmt.Errorf("write nbt: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close gzip: %w", err)
	}
	return nil
}

// ReadNBT decodes a result written by WriteNBT along with its map.
func ReadNBT(r io.Reader) (search.Result, [][]bool, error) {
	root, err := nbt.Read(r)
	if err != nil {
		return search.Result{}, nil, err
	}

	var res search.Result
	seed, ok1 := value[int64](root, "Seed")
	p1, ok2 := value[[]int32](root, "P1")
	p2, ok3 := value[[]int32](root, "P2")
	count, ok4 := value[int32](root, "Count")
	cells, ok5 := value[[]byte](root, "Map")
	if !(ok1 && ok2 && ok3 && ok4 && ok5) || len(p1) != 2 || len(p2) != 2 {
		return search.Result{}, nil, fmt.Errorf("%w: not a search result", nbt.ErrFormat)
	}
	res.Seed = seed
	res.P1 = world.ChunkPos{X: p1[0], Z: p1[1]}
	res.P2 = world.ChunkPos{X: p2[0], Z: p2[1]}
	res.Count = uint32(count)

	w, h := int(res.P2.X-res.P1.X+1), int(res.P2.Z-res.P1.Z+1)
	if w < 1 || h < 1 || len(cells) != w*h {
		return search.Result{}, nil, fmt.Errorf("%w: map holds %d cells for a %dx%d window", nbt.ErrFormat, len(cells), w, h)
	}
	grid := make([][]bool, h)
	for j := range grid {
		grid[j] = make([]bool, w)
		for i := range grid[j] {
			grid[j][i] = cells[j*w+i] == 1
		}
	}
	return res, grid, nil
}

func value[T any](t *nbt.Tag, name string) (T, bool) {
	var zero T
	c := t.Get(name)
	if c == nil {
		return zero, false
	}
	v, ok := c.Value.(T)
	return v, ok
}
