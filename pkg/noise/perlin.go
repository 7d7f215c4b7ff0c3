// Package noise implements the game's improved Perlin noise.
//
// Products are wrapped in explicit float64 conversions wherever a fused
// multiply-add would otherwise be legal; fusing changes the low bits and the
// samples must match the game exactly.
package noise

import (
	"math"

	"github.com/llGaetanll/McUtils/pkg/rng"
)

// gradients are the 16 gradient directions, the last four repeating earlier ones.
var gradients = [16][3]float64{
	{1, 1, 0},
	{-1, 1, 0},
	{1, -1, 0},
	{-1, -1, 0},
	{1, 0, 1},
	{-1, 0, 1},
	{1, 0, -1},
	{-1, 0, -1},
	{0, 1, 1},
	{0, -1, 1},
	{0, 1, -1},
	{0, -1, -1},
	{1, 1, 0},
	{0, -1, 1},
	{-1, 1, 0},
	{0, -1, -1},
}

// Perlin is a seeded improved-noise sampler. It is immutable after
// construction and safe for concurrent use.
type Perlin struct {
	perm [256]uint8

	// Origin offsets added to every sample point.
	X, Y, Z float64
}

// NewPerlin builds a sampler from a legacy generator seeded with seed.
func NewPerlin(seed int64) *Perlin {
	return NewPerlinFrom(rng.NewLegacy(seed))
}

// NewPerlinFrom builds a sampler by drawing from r: three origin offsets,
// then a shuffle of the 256-entry permutation table.
func NewPerlinFrom(r *rng.Legacy) *Perlin {
	p := &Perlin{}
	p.X = float64(r.NextDouble() * 256)
	p.Y = float64(r.NextDouble() * 256)
	p.Z = float64(r.NextDouble() * 256)

	for i := range p.perm {
		p.perm[i] = uint8(i)
	}
	for i := 0; i < 256; i++ {
		j := i + int(r.NextBounded(int32(256-i)))
		p.perm[i], p.perm[j] = p.perm[j], p.perm[i]
	}
	return p
}

// Permutation returns a copy of the permutation table.
func (p *Perlin) Permutation() [256]uint8 {
	return p.perm
}

// Sample returns the noise at (x, y, z) mapped from [-1, 1] to [0, 1].
func (p *Perlin) Sample(x, y, z float64) float64 {
	return p.Raw(x, y, z)/2 + 0.5
}

// Raw returns the noise at (x, y, z) in [-1, 1].
func (p *Perlin) Raw(x, y, z float64) float64 {
	fx := x + p.X
	fy := y + p.Y
	fz := z + p.Z

	sx := math.Floor(fx)
	sy := math.Floor(fy)
	sz := math.Floor(fz)

	lx := fx - sx
	ly := fy - sy
	lz := fz - sz

	return p.sample(int32(sx), int32(sy), int32(sz), lx, ly, lz, fade(lx), fade(ly), fade(lz))
}

// sample interpolates the gradient contributions of the lattice cell with
// corner (sx, sy, sz) at local offset (lx, ly, lz).
func (p *Perlin) sample(sx, sy, sz int32, lx, ly, lz, fx, fy, fz float64) float64 {
	a := p.hash(sx) + sy
	aa := p.hash(a) + sz
	ab := p.hash(a+1) + sz

	b := p.hash(sx+1) + sy
	ba := p.hash(b) + sz
	bb := p.hash(b+1) + sz

	g000 := grad(p.hash(aa), lx, ly, lz)
	g100 := grad(p.hash(ba), lx-1, ly, lz)
	g010 := grad(p.hash(ab), lx, ly-1, lz)
	g110 := grad(p.hash(bb), lx-1, ly-1, lz)
	g001 := grad(p.hash(aa+1), lx, ly, lz-1)
	g101 := grad(p.hash(ba+1), lx-1, ly, lz-1)
	g011 := grad(p.hash(ab+1), lx, ly-1, lz-1)
	g111 := grad(p.hash(bb+1), lx-1, ly-1, lz-1)

	return lerp3(fx, fy, fz, g000, g100, g010, g110, g001, g101, g011, g111)
}

func (p *Perlin) hash(v int32) int32 {
	return int32(p.perm[v&0xFF])
}

func grad(hash int32, x, y, z float64) float64 {
	g := &gradients[hash&15]
	return float64(g[0]*x) + float64(g[1]*y) + float64(g[2]*z)
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return float64(t*t*t) * (float64(t*(float64(t*6)-15)) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + float64(t*(b-a))
}

func lerp2(tx, ty, a, b, c, d float64) float64 {
	return lerp(ty, lerp(tx, a, b), lerp(tx, c, d))
}

func lerp3(tx, ty, tz, a, b, c, d, e, f, g, h float64) float64 {
	return lerp(tz, lerp2(tx, ty, a, b, c, d), lerp2(tx, ty, e, f, g, h))
}
