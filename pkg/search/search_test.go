package search

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/llGaetanll/McUtils/pkg/world"
)

// gridField is a dense boolean map anchored at origin; cells outside it are
// false.
type gridField struct {
	origin world.ChunkPos
	w, h   int
	cells  []bool
}

func newGridField(origin world.ChunkPos, w, h int) *gridField {
	return &gridField{origin: origin, w: w, h: h, cells: make([]bool, w*h)}
}

func randomField(seed int64, origin world.ChunkPos, w, h int, p float64) *gridField {
	g := newGridField(origin, w, h)
	r := rand.New(rand.NewSource(seed))
	for i := range g.cells {
		g.cells[i] = r.Float64() < p
	}
	return g
}

func (g *gridField) set(x, z int32) {
	g.cells[int(x-g.origin.X)*g.h+int(z-g.origin.Z)] = true
}

func (g *gridField) At(x, z int32) bool {
	i, j := int(x-g.origin.X), int(z-g.origin.Z)
	if i < 0 || j < 0 || i >= g.w || j >= g.h {
		return false
	}
	return g.cells[i*g.h+j]
}

func bruteForce(f Field, r Rect, w Window) Result {
	var best Result
	first := true
	for x := r.Min.X; x+w.Width-1 <= r.Max.X; x++ {
		for z := r.Min.Z; z+w.Height-1 <= r.Max.Z; z++ {
			var c uint32
			for dx := int32(0); dx < w.Width; dx++ {
				for dz := int32(0); dz < w.Height; dz++ {
					if f.At(x+dx, z+dz) {
						c++
					}
				}
			}
			if first || c > best.Count {
				best = Result{
					P1:    world.ChunkPos{X: x, Z: z},
					P2:    world.ChunkPos{X: x + w.Width - 1, Z: z + w.Height - 1},
					Count: c,
				}
				first = false
			}
		}
	}
	return best
}

func TestSearchMatchesBruteForce(t *testing.T) {
	ctx := context.Background()
	origin := world.ChunkPos{X: -17, Z: 5}
	f := randomField(7, origin, 37, 29, 0.3)
	r := Rect{Min: origin, Max: origin.Add(36, 28)}

	windows := []Window{{1, 1}, {3, 2}, {2, 5}, {7, 7}, {37, 1}, {1, 29}, {37, 29}}
	for _, w := range windows {
		want := bruteForce(f, r, w)
		for _, workers := range []int{1, 3, 8, 64} {
			got, err := SearchField(ctx, f, r.Min, r.Max, w, Config{Workers: workers})
			if err != nil {
				t.Fatalf("window %v workers %d: %v", w, workers, err)
			}
			if got != want {
				t.Errorf("window %v workers %d: got %+v, want %+v", w, workers, got, want)
			}
		}
	}
}

func TestSearchSlimeChunks(t *testing.T) {
	got, err := Search(context.Background(), -763922862008843532,
		world.ChunkPos{X: -16, Z: -12}, world.ChunkPos{X: 23, Z: 17}, Window{Width: 6, Height: 5}, Config{})
	if err != nil {
		t.Fatal(err)
	}
	want := Result{
		Seed:  -763922862008843532,
		P1:    world.ChunkPos{X: 2, Z: -12},
		P2:    world.ChunkPos{X: 7, Z: -8},
		Count: 10,
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.Count > uint32(Window{6, 5}.Area()) {
		t.Errorf("count %d exceeds window area", got.Count)
	}
}

func TestSearchEmptyFieldReturnsFirstWindow(t *testing.T) {
	f := FieldFunc(func(x, z int32) bool { return false })
	start := world.ChunkPos{X: 100, Z: -100}
	got, err := SearchField(context.Background(), f, start, start.Add(19, 19), Window{4, 3}, Config{Workers: 4})
	if err != nil {
		t.Fatal(err)
	}
	want := Result{P1: start, P2: start.Add(3, 2)}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestSearchKeepsFirstMaximum(t *testing.T) {
	origin := world.ChunkPos{}
	f := newGridField(origin, 30, 30)
	// Two equally dense spots; the one with lower X must win even when it
	// has the higher Z.
	f.set(5, 20)
	f.set(20, 2)
	for _, workers := range []int{1, 2, 5} {
		got, err := SearchField(context.Background(), f, origin, origin.Add(29, 29), Window{1, 1}, Config{Workers: workers})
		if err != nil {
			t.Fatal(err)
		}
		if got.P1 != (world.ChunkPos{X: 5, Z: 20}) || got.Count != 1 {
			t.Errorf("workers %d: got %+v", workers, got)
		}
	}
}

func TestSearchPreconditions(t *testing.T) {
	ctx := context.Background()
	f := FieldFunc(func(x, z int32) bool { return true })
	tests := []struct {
		name       string
		start, end world.ChunkPos
		w          Window
		want       error
	}{
		{"reversed x", world.ChunkPos{X: 5}, world.ChunkPos{X: 4, Z: 10}, Window{1, 1}, ErrInvalidRect},
		{"reversed z", world.ChunkPos{Z: 5}, world.ChunkPos{X: 10, Z: 4}, Window{1, 1}, ErrInvalidRect},
		{"outside world", world.ChunkPos{X: -world.MaxChunkExtent - 1}, world.ChunkPos{}, Window{1, 1}, ErrInvalidRect},
		{"too wide", world.ChunkPos{X: -world.MaxChunkExtent}, world.ChunkPos{X: world.MaxChunkExtent}, Window{1, 1}, ErrInvalidRect},
		{"too many cells", world.ChunkPos{}, world.ChunkPos{X: 3_000_000, Z: 3_000_000}, Window{1, 1}, ErrInvalidRect},
		{"empty window", world.ChunkPos{}, world.ChunkPos{X: 9, Z: 9}, Window{0, 3}, ErrInvalidWindow},
		{"negative window", world.ChunkPos{}, world.ChunkPos{X: 9, Z: 9}, Window{3, -1}, ErrInvalidWindow},
		{"window too wide", world.ChunkPos{}, world.ChunkPos{X: 9, Z: 9}, Window{11, 1}, ErrInvalidWindow},
		{"window too tall", world.ChunkPos{}, world.ChunkPos{X: 9, Z: 9}, Window{1, 11}, ErrInvalidWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SearchField(ctx, f, tt.start, tt.end, tt.w, Config{})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := FieldFunc(func(x, z int32) bool { return true })
	_, err := SearchField(ctx, f, world.ChunkPos{}, world.ChunkPos{X: 9, Z: 9}, Window{2, 2}, Config{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestTableBorderIsZero(t *testing.T) {
	f := FieldFunc(func(x, z int32) bool { return true })
	tbl := NewTable(5, 4)
	if err := tbl.Fill(context.Background(), f, world.ChunkPos{}); err != nil {
		t.Fatal(err)
	}
	for i := 0; i <= 5; i++ {
		if tbl.At(i, 0) != 0 {
			t.Errorf("At(%d, 0) = %d", i, tbl.At(i, 0))
		}
	}
	for j := 0; j <= 4; j++ {
		if tbl.At(0, j) != 0 {
			t.Errorf("At(0, %d) = %d", j, tbl.At(0, j))
		}
	}
	if got := tbl.At(5, 4); got != 20 {
		t.Errorf("At(5, 4) = %d, want 20", got)
	}
	if got := tbl.Window(5, 4, Window{2, 3}); got != 6 {
		t.Errorf("Window = %d, want 6", got)
	}
}

func TestProbability(t *testing.T) {
	// 100 chunks, mean 10, variance 9.
	at := func(count uint32) float64 {
		return Result{P2: world.ChunkPos{X: 9, Z: 9}, Count: count}.Probability()
	}
	peak := 1 / (3 * math.Sqrt(2*math.Pi))
	if got := at(10); math.Abs(got-peak) > 1e-12 {
		t.Errorf("Probability at mean = %v, want %v", got, peak)
	}
	if !(at(30) < at(20) && at(20) < at(10)) {
		t.Errorf("probability should fall away from the mean: %v %v %v", at(10), at(20), at(30))
	}
	if at(7) != at(13) {
		t.Errorf("normal density should be symmetric: %v %v", at(7), at(13))
	}
}

func BenchmarkSearch(b *testing.B) {
	ctx := context.Background()
	for i := 0; i < b.N; i++ {
		_, err := Search(ctx, int64(i), world.ChunkPos{}, world.ChunkPos{X: 499, Z: 499}, Window{16, 16}, Config{})
		if err != nil {
			b.Fatal(err)
		}
	}
}
