// Package rng reproduces the pseudorandom engines used by the game's world
// generator: the 48-bit linear congruential generator inherited from
// java.util.Random and the Xoroshiro128++ generator used since 1.18.
//
// All arithmetic wraps exactly like two's-complement Java longs and ints.
package rng

const (
	legacyMultiplier = 0x5DEECE66D
	legacyAddend     = 0xB
	legacyMask       = 1<<48 - 1
)

// Legacy is the 48-bit LCG behind java.util.Random. The state is always
// kept masked to 48 bits.
type Legacy struct {
	state uint64
}

// NewLegacy returns a generator seeded like new java.util.Random(seed).
func NewLegacy(seed int64) *Legacy {
	l := &Legacy{}
	l.SetSeed(seed)
	return l
}

// SetSeed scrambles seed into the generator state.
func (l *Legacy) SetSeed(seed int64) {
	l.state = (uint64(seed) ^ legacyMultiplier) & legacyMask
}

// Next advances the generator and returns its top bits (1..32) as a signed int.
func (l *Legacy) Next(bits uint) int32 {
	l.state = (l.state*legacyMultiplier + legacyAddend) & legacyMask
	return int32(int64(l.state) >> (48 - bits))
}

// NextInt32 returns a uniformly distributed 32-bit value.
func (l *Legacy) NextInt32() int32 {
	return l.Next(32)
}

// NextBounded returns a value in [0, n). Powers of two take the high bits of a
// single draw; any other bound draws 31 bits and retries while the draw falls
// in the biased tail, exactly like Random.nextInt(int). n must be positive.
func (l *Legacy) NextBounded(n int32) int32 {
	if n <= 0 {
		panic("rng: bound must be positive")
	}

	r := l.Next(31)
	m := n - 1
	if n&m == 0 {
		return int32((int64(n) * int64(r)) >> 31)
	}
	for u := r; ; u = l.Next(31) {
		r = u % n
		if u-r+m >= 0 {
			return r
		}
	}
}

// NextInt64 chains two 32-bit draws, the first one in the upper half.
func (l *Legacy) NextInt64() int64 {
	hi := int64(l.Next(32))
	lo := int64(l.Next(32))
	return hi<<32 + lo
}

// NextFloat returns the top 24 bits of a draw scaled into [0, 1).
func (l *Legacy) NextFloat() float32 {
	return float32(l.Next(24)) / (1 << 24)
}

// NextDouble returns a 53-bit value in [0, 1) built from a 26-bit and a 27-bit draw.
func (l *Legacy) NextDouble() float64 {
	hi := int64(l.Next(26))
	lo := int64(l.Next(27))
	return float64(hi<<27+lo) * (1.0 / (1 << 53))
}

// Fork returns a positional factory seeded from the next 64-bit draw.
func (l *Legacy) Fork() Positional {
	return legacyPositional{seed: l.NextInt64()}
}

// LegacyHash derives a generator from seed and an ASCII label: one 64-bit draw
// of NewLegacy(seed) XORed with the label's Java string hash, sign-extended
// from 32 bits as Java widens an int.
func LegacyHash(seed int64, label string) *Legacy {
	return legacyPositional{seed: NewLegacy(seed).NextInt64()}.fromHash(label)
}

type legacyPositional struct {
	seed int64
}

func (p legacyPositional) at(h int64) Source {
	return NewLegacy(h ^ p.seed)
}

func (p legacyPositional) fromHash(label string) *Legacy {
	return NewLegacy(int64(javaStringHash(label)) ^ p.seed)
}
