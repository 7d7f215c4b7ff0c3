// Package slime decides which chunks spawn slimes.
package slime

import "github.com/llGaetanll/McUtils/pkg/rng"

const scramble = 0x3AD8025F

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = 1<<48 - 1
)

// rejectFrom is the first 31-bit draw that Random.nextInt(10) discards.
const rejectFrom = 1<<31 - (1<<31)%10

// chunkSeed mixes the chunk coordinates into the world seed. The products are
// computed in 32 bits and sign-extended before the 64-bit sum.
func chunkSeed(seed int64, x, z int32) int64 {
	return (seed +
		int64(x*x*0x4C1906) +
		int64(x*0x5AC0DB) +
		int64(z*z)*0x4307A7 +
		int64(z*0x5F24F)) ^ scramble
}

// IsSlimeChunk reports whether the chunk at chunk coordinates (x, z) is a
// slime chunk in the world with the given seed. Block coordinates must be
// converted first (see world.BlockPos.Chunk).
func IsSlimeChunk(seed int64, x, z int32) bool {
	return rng.NewLegacy(chunkSeed(seed, x, z)).NextBounded(10) == 0
}

// IsSlimeChunkFast is IsSlimeChunk with the generator step inlined. The low 17
// state bits are masked off and divisibility by 10<<17 replaces the draw
// modulo 10. Draws in the rejected tail fall back to the generator so both
// functions agree on every input.
func IsSlimeChunkFast(seed int64, x, z int32) bool {
	s := (uint64(chunkSeed(seed, x, z)) ^ lcgMultiplier) & lcgMask
	s = (s*lcgMultiplier + lcgAddend) & lcgMask
	if s>>17 >= rejectFrom {
		return IsSlimeChunk(seed, x, z)
	}
	return (s&(lcgMask>>17<<17))%(10<<17) == 0
}

// Field adapts the predicate for one world seed to a boolean map over chunk
// coordinates.
type Field int64

// At reports whether (x, z) is a slime chunk.
func (f Field) At(x, z int32) bool {
	return IsSlimeChunkFast(int64(f), x, z)
}

// Seed returns the world seed of the field.
func (f Field) Seed() int64 {
	return int64(f)
}
