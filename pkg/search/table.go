package search

import (
	"context"

	"github.com/llGaetanll/McUtils/pkg/world"
)

// Table is a summed-area table over a w by h block of a Field. Cell (i, j)
// holds the number of favorable cells with x offset < i and z offset < j, so
// row 0 and column 0 are always zero.
type Table struct {
	w, h  int
	cells []uint32
}

// NewTable allocates a zeroed table for a w by h field.
func NewTable(w, h int) *Table {
	return &Table{w: w, h: h, cells: make([]uint32, (w+1)*(h+1))}
}

// Bytes is the memory a table for a w by h field occupies.
func Bytes(w, h int64) int64 {
	return (w + 1) * (h + 1) * 4
}

func (t *Table) idx(i, j int) int {
	return i*(t.h+1) + j
}

// At returns the count of favorable cells in [0, i) x [0, j).
func (t *Table) At(i, j int) uint32 {
	return t.cells[t.idx(i, j)]
}

// Fill samples f over the block whose lowest corner is origin. Each cell
// depends on its neighbours above and to the left, so the fill is sequential.
// It stops early if ctx is cancelled.
func (t *Table) Fill(ctx context.Context, f Field, origin world.ChunkPos) error {
	stride := t.h + 1
	for i := 1; i <= t.w; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		x := origin.X + int32(i-1)
		row := t.cells[i*stride : (i+1)*stride]
		prev := t.cells[(i-1)*stride : i*stride]
		for j := 1; j <= t.h; j++ {
			var b uint32
			if f.At(x, origin.Z+int32(j-1)) {
				b = 1
			}
			row[j] = prev[j] + row[j-1] - prev[j-1] + b
		}
	}
	return nil
}

// Window returns the number of favorable cells in the window whose far
// corner is (i, j), exclusive, and whose size is w.
func (t *Table) Window(i, j int, w Window) uint32 {
	ww, wh := int(w.Width), int(w.Height)
	return t.At(i, j) - t.At(i-ww, j) - t.At(i, j-wh) + t.At(i-ww, j-wh)
}
