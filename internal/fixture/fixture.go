// Package fixture reads known-good slime chunk maps used to verify the
// predicate. A fixture is a header line "x: <int>, z: <int>, s: <int>"
// followed by rows of '0' and '1', one row per z and one column per x,
// anchored at chunk (x, z) of the world with seed s.
package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/llGaetanll/McUtils/pkg/world"
)

// Fixture is a parsed map.
type Fixture struct {
	Origin world.ChunkPos
	Seed   int64
	// Rows is indexed [z][x] from Origin.
	Rows [][]bool
}

// Width is the number of columns along X.
func (f *Fixture) Width() int {
	if len(f.Rows) == 0 {
		return 0
	}
	return len(f.Rows[0])
}

// Height is the number of rows along Z.
func (f *Fixture) Height() int { return len(f.Rows) }

// Max is the highest chunk the fixture covers.
func (f *Fixture) Max() world.ChunkPos {
	return f.Origin.Add(int32(f.Width()-1), int32(f.Height()-1))
}

// At reports the recorded value at absolute chunk (x, z). Cells outside the
// map are false.
func (f *Fixture) At(x, z int32) bool {
	i, j := int(x-f.Origin.X), int(z-f.Origin.Z)
	if j < 0 || j >= len(f.Rows) || i < 0 || i >= len(f.Rows[j]) {
		return false
	}
	return f.Rows[j][i]
}

// Count is the number of favorable cells recorded.
func (f *Fixture) Count() int {
	n := 0
	for _, row := range f.Rows {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// Mismatches lists the chunks where pred disagrees with the fixture.
func (f *Fixture) Mismatches(pred func(seed int64, x, z int32) bool) []world.ChunkPos {
	var out []world.ChunkPos
	for j, row := range f.Rows {
		for i, want := range row {
			x, z := f.Origin.X+int32(i), f.Origin.Z+int32(j)
			if pred(f.Seed, x, z) != want {
				out = append(out, world.ChunkPos{X: x, Z: z})
			}
		}
	}
	return out
}

// Parse reads a fixture from r.
func Parse(r io.Reader) (*Fixture, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("missing header")
	}
	f := &Fixture{}
	header := strings.TrimSpace(sc.Text())
	if _, err := fmt.Sscanf(header, "x: %d, z: %d, s: %d", &f.Origin.X, &f.Origin.Z, &f.Seed); err != nil {
		return nil, fmt.Errorf("parse header %q: %w", header, err)
	}

	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r ")
		if text == "" {
			continue
		}
		row := make([]bool, len(text))
		for i, c := range text {
			switch c {
			case '0':
			case '1':
				row[i] = true
			default:
				return nil, fmt.Errorf("line %d: unexpected %q", line, c)
			}
		}
		if len(f.Rows) > 0 && len(row) != len(f.Rows[0]) {
			return nil, fmt.Errorf("line %d: row has %d cells, want %d", line, len(row), len(f.Rows[0]))
		}
		f.Rows = append(f.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(f.Rows) == 0 {
		return nil, fmt.Errorf("no rows")
	}
	return f, nil
}

// Open reads the fixture at path, decompressing it first if the name ends
// in ".zst".
func Open(path string) (*Fixture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	f, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
