// Package bedrock predicts the bedrock pattern at the bottom of the
// overworld and at the floor and roof of the nether.
package bedrock

import (
	"fmt"
	"strings"

	"github.com/llGaetanll/McUtils/pkg/rng"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Variant says which way the gradient runs across the layer band.
type Variant uint8

const (
	// Floor layers are solid at the bottom and thin out going up.
	Floor Variant = iota
	// Roof layers are solid at the top and thin out going down.
	Roof
)

func (v Variant) String() string {
	switch v {
	case Floor:
		return "floor"
	case Roof:
		return "roof"
	default:
		return fmt.Sprintf("Variant(%d)", uint8(v))
	}
}

const (
	floorLabel = "minecraft:bedrock_floor"
	roofLabel  = "minecraft:bedrock_roof"
)

// Layer describes a bedrock band.
type Layer struct {
	Name    string
	Kind    rng.Kind
	Label   string
	Variant Variant
	// MinY and MaxY bound the band, both inclusive.
	MinY, MaxY int32
}

var (
	OverworldLayer   = Layer{Name: "overworld", Kind: rng.KindXoroshiro, Label: floorLabel, Variant: Floor, MinY: -64, MaxY: -59}
	NetherFloorLayer = Layer{Name: "nether_floor", Kind: rng.KindLegacy, Label: floorLabel, Variant: Floor, MinY: 0, MaxY: 5}
	NetherRoofLayer  = Layer{Name: "nether_roof", Kind: rng.KindLegacy, Label: roofLabel, Variant: Roof, MinY: 122, MaxY: 127}
)

// Layers lists every known band.
func Layers() []Layer {
	return []Layer{OverworldLayer, NetherFloorLayer, NetherRoofLayer}
}

// LayerByName finds a band by its Name. Dashes are accepted for underscores.
func LayerByName(name string) (Layer, error) {
	key := strings.ReplaceAll(name, "-", "_")
	for _, l := range Layers() {
		if l.Name == key {
			return l, nil
		}
	}
	return Layer{}, fmt.Errorf("unknown bedrock layer %q", name)
}

// Finder answers bedrock queries for one band of one world. It is immutable
// and safe for concurrent use.
type Finder struct {
	layer Layer
	gen   rng.Positional
}

// NewFinder derives the band's positional generator from the world seed.
func NewFinder(seed int64, l Layer) *Finder {
	return &Finder{layer: l, gen: rng.NewPositional(l.Kind, seed, l.Label)}
}

// Overworld returns a finder for the overworld floor.
func Overworld(seed int64) *Finder { return NewFinder(seed, OverworldLayer) }

// NetherFloor returns a finder for the nether floor.
func NetherFloor(seed int64) *Finder { return NewFinder(seed, NetherFloorLayer) }

// NetherRoof returns a finder for the nether roof.
func NetherRoof(seed int64) *Finder { return NewFinder(seed, NetherRoofLayer) }

// Layer returns the band this finder covers.
func (f *Finder) Layer() Layer { return f.layer }

// IsBedrock reports whether the block at p is bedrock. Positions outside the
// band are never bedrock.
func (f *Finder) IsBedrock(p world.BlockPos) bool {
	lo, hi := f.layer.MinY, f.layer.MaxY
	if p.Y < lo || p.Y > hi {
		return false
	}
	fac := 1 - float64(p.Y-lo)/float64(hi-lo)
	v := float64(f.gen.At(p).NextFloat())
	if f.layer.Variant == Roof {
		return v >= fac
	}
	return v < fac
}

// Slice fills a dx by dz grid of the layer at height y, starting at corner
// (x, z). The result is indexed [z][x].
func (f *Finder) Slice(x, y, z, dx, dz int32) [][]bool {
	out := make([][]bool, dz)
	for j := range out {
		row := make([]bool, dx)
		for i := range row {
			row[i] = f.IsBedrock(world.BlockPos{X: x + int32(i), Y: y, Z: z + int32(j)})
		}
		out[j] = row
	}
	return out
}
