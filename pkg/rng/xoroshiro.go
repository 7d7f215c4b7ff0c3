package rng

import (
	"crypto/md5"
	"encoding/binary"
	"math/bits"
)

const (
	goldenRatio64 = 0x9E3779B97F4A7C15
	silverRatio64 = 0x6A09E667F3BCC909
)

// Xoroshiro is the Xoroshiro128++ generator.
// See https://prng.di.unimi.it/xoroshiro128plusplus.c
type Xoroshiro struct {
	lo, hi uint64
}

// NewXoroshiro returns a generator with the given state. The all-zero state
// never leaves zero, so it is replaced with a fixed non-zero pair.
func NewXoroshiro(lo, hi uint64) *Xoroshiro {
	if lo|hi == 0 {
		lo, hi = goldenRatio64, silverRatio64
	}
	return &Xoroshiro{lo: lo, hi: hi}
}

// NewXoroshiroSeed upgrades a 64-bit seed to a full state.
func NewXoroshiroSeed(seed int64) *Xoroshiro {
	lo := uint64(seed) ^ silverRatio64
	hi := lo + goldenRatio64
	return NewXoroshiro(mixStafford13(lo), mixStafford13(hi))
}

// Next64 advances the state and returns 64 random bits.
func (x *Xoroshiro) Next64() uint64 {
	s0, s1 := x.lo, x.hi
	result := bits.RotateLeft64(s0+s1, 17) + s0

	s1 ^= s0
	x.lo = bits.RotateLeft64(s0, 49) ^ s1 ^ (s1 << 21)
	x.hi = bits.RotateLeft64(s1, 28)
	return result
}

// NextInt64 returns Next64 reinterpreted as a signed value.
func (x *Xoroshiro) NextInt64() int64 {
	return int64(x.Next64())
}

// NextFloat returns the top 24 bits of a draw scaled into [0, 1).
func (x *Xoroshiro) NextFloat() float32 {
	return float32(x.Next64()>>40) / (1 << 24)
}

// Fork returns a positional factory seeded from the next two draws.
func (x *Xoroshiro) Fork() Positional {
	return x.fork()
}

func (x *Xoroshiro) fork() xoroshiroPositional {
	lo := x.Next64()
	hi := x.Next64()
	return xoroshiroPositional{lo: lo, hi: hi}
}

// XoroshiroHash derives a generator from seed and a label. The seed is
// upgraded to 128 bits, two draws are taken and XORed with the two
// big-endian halves of the label's MD5 digest.
func XoroshiroHash(seed int64, label string) *Xoroshiro {
	return NewXoroshiroSeed(seed).fork().fromHash(label)
}

type xoroshiroPositional struct {
	lo, hi uint64
}

func (p xoroshiroPositional) at(h int64) Source {
	return NewXoroshiro(uint64(h)^p.lo, p.hi)
}

func (p xoroshiroPositional) fromHash(label string) *Xoroshiro {
	sum := md5.Sum([]byte(label))
	lo := binary.BigEndian.Uint64(sum[:8])
	hi := binary.BigEndian.Uint64(sum[8:])
	return NewXoroshiro(lo^p.lo, hi^p.hi)
}

// mixStafford13 is variant 13 of Stafford's 64-bit finalizer.
func mixStafford13(v uint64) uint64 {
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}
