package rng

import (
	"fmt"

	"github.com/llGaetanll/McUtils/pkg/world"
)

// Source is the draw surface shared by both engines.
type Source interface {
	NextInt64() int64
	NextFloat() float32
}

// Positional hands out an ephemeral generator for any block position. It
// holds no mutable state and is safe for concurrent use.
type Positional interface {
	// At returns a fresh generator reseeded for p.
	At(p world.BlockPos) Source
}

// Kind selects a generator implementation.
type Kind uint8

const (
	KindLegacy Kind = iota + 1
	KindXoroshiro
)

func (k Kind) String() string {
	switch k {
	case KindLegacy:
		return "legacy"
	case KindXoroshiro:
		return "xoroshiro"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// NewPositional builds the positional factory the game derives for a named
// random sequence: the world seed is forked into a factory, the label hash
// selects a generator from it, and that generator is forked again.
func NewPositional(kind Kind, seed int64, label string) Positional {
	switch kind {
	case KindLegacy:
		return LegacyHash(seed, label).Fork()
	case KindXoroshiro:
		return XoroshiroHash(seed, label).Fork()
	default:
		panic(fmt.Sprintf("rng: unknown kind %d", kind))
	}
}

// At implements Positional.
func (p legacyPositional) At(pos world.BlockPos) Source {
	return p.at(PositionSeed(pos))
}

// At implements Positional.
func (p xoroshiroPositional) At(pos world.BlockPos) Source {
	return p.at(PositionSeed(pos))
}

// PositionSeed hashes a block position into a 64-bit seed. X is multiplied in
// 32 bits, Z in 64 bits, and the whole polynomial wraps at 64 bits.
func PositionSeed(p world.BlockPos) int64 {
	h := int64(p.X*3129871) ^ int64(p.Z)*116129781 ^ int64(p.Y)
	h = h*h*42317861 + h*11
	return h >> 16
}

// javaStringHash is String.hashCode for ASCII input.
func javaStringHash(s string) int32 {
	var h int32
	for i := 0; i < len(s); i++ {
		h = 31*h + int32(s[i])
	}
	return h
}
