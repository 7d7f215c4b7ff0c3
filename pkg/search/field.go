// Package search finds the rectangle of chunks holding the most favorable
// cells. A summed-area table answers each window count in constant time, and
// domains too large for one table are split into tiles.
package search

import (
	"github.com/llGaetanll/McUtils/pkg/slime"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Field is a boolean map over chunk coordinates. Implementations must be safe
// for concurrent use.
type Field interface {
	At(x, z int32) bool
}

// Seeder is implemented by fields derived from a world seed. Results over such
// a field carry the seed.
type Seeder interface {
	Seed() int64
}

// FieldFunc adapts a function to Field.
type FieldFunc func(x, z int32) bool

// At implements Field.
func (f FieldFunc) At(x, z int32) bool { return f(x, z) }

var _ Field = slime.Field(0)

func fieldSeed(f Field) int64 {
	if s, ok := f.(Seeder); ok {
		return s.Seed()
	}
	return 0
}

// Window is the size of the searched rectangle: Width chunks along X and
// Height chunks along Z.
type Window struct {
	Width, Height int32
}

// Area is the number of chunks the window covers.
func (w Window) Area() int64 {
	return int64(w.Width) * int64(w.Height)
}

// Rect is an inclusive rectangle of chunks.
type Rect struct {
	Min, Max world.ChunkPos
}

// Width is the number of chunks along X.
func (r Rect) Width() int64 { return int64(r.Max.X) - int64(r.Min.X) + 1 }

// Height is the number of chunks along Z.
func (r Rect) Height() int64 { return int64(r.Max.Z) - int64(r.Min.Z) + 1 }
