package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/llGaetanll/McUtils/pkg/search"
	"github.com/llGaetanll/McUtils/pkg/slime"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// diagonal marks cells where x == z.
var diagonal = search.FieldFunc(func(x, z int32) bool { return x == z })

var diagRes = search.Result{
	Seed:  3,
	P1:    world.ChunkPos{X: -1, Z: -1},
	P2:    world.ChunkPos{X: 1, Z: 0},
	Count: 2,
}

func TestTextMap(t *testing.T) {
	got := TextMap(diagRes, diagonal)
	lines := strings.Split(got, "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "Slime Chunks: 2 | Seed: 3 | p: ") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "From: (x: -16, z: -16)" || lines[2] != "To: (x: 31, z: 15)" {
		t.Errorf("corners = %q %q", lines[1], lines[2])
	}
	if lines[3] != "██░░░░" || lines[4] != "░░██░░" {
		t.Errorf("map = %q %q", lines[3], lines[4])
	}
}

func TestNBTRoundTrip(t *testing.T) {
	res := search.Result{
		Seed:  -763922862008843532,
		P1:    world.ChunkPos{X: 2, Z: -12},
		P2:    world.ChunkPos{X: 7, Z: -8},
		Count: 10,
	}
	field := slime.Field(res.Seed)

	var buf bytes.Buffer
	if err := WriteNBT(&buf, res, field); err != nil {
		t.Fatal(err)
	}
	if b := buf.Bytes(); len(b) < 2 || b[0] != 0x1f || b[1] != 0x8b {
		t.Fatal("output is not gzip")
	}

	got, grid, err := ReadNBT(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got != res {
		t.Errorf("got %+v, want %+v", got, res)
	}
	want := Grid(res, field)
	var count uint32
	for j := range want {
		for i := range want[j] {
			if grid[j][i] != want[j][i] {
				t.Errorf("cell (%d, %d) = %v, want %v", i, j, grid[j][i], want[j][i])
			}
			if grid[j][i] {
				count++
			}
		}
	}
	if count != res.Count {
		t.Errorf("map holds %d favorable chunks, want %d", count, res.Count)
	}
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, diagRes, diagonal, 4); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dx() != 12 || b.Dy() != 8+captionHeight {
		t.Fatalf("size = %dx%d", b.Dx(), b.Dy())
	}

	at := func(cx, cz int) (uint32, uint32, uint32) {
		r, g, bl, _ := img.At(cx*4+1, captionHeight+cz*4+1).RGBA()
		return r >> 8, g >> 8, bl >> 8
	}
	if r, g, bl := at(0, 0); r != 0x5c || g != 0xb8 || bl != 0x3a {
		t.Errorf("favorable cell color = %x %x %x", r, g, bl)
	}
	if r, g, bl := at(1, 0); r != 0x2b || g != 0x2b || bl != 0x2b {
		t.Errorf("plain cell color = %x %x %x", r, g, bl)
	}
}

func TestImageRejectsScale(t *testing.T) {
	if _, err := Image(diagRes, diagonal, 0); err == nil {
		t.Fatal("expected error")
	}
}
