package world

import "testing"

func TestBlockChunkConversion(t *testing.T) {
	tests := []struct {
		block BlockPos
		want  ChunkPos
	}{
		{BlockPos{0, 64, 0}, ChunkPos{0, 0}},
		{BlockPos{15, 0, 15}, ChunkPos{0, 0}},
		{BlockPos{16, 0, -1}, ChunkPos{1, -1}},
		{BlockPos{-16, 0, -17}, ChunkPos{-1, -2}},
		{BlockPos{-29_999_984, 0, 29_999_999}, ChunkPos{-1_874_999, 1_874_999}},
	}

	for _, tt := range tests {
		if got := tt.block.Chunk(); got != tt.want {
			t.Errorf("%v.Chunk() = %v, want %v", tt.block, got, tt.want)
		}
	}
}

func TestChunkBlockRoundTrip(t *testing.T) {
	for _, c := range []ChunkPos{{0, 0}, {-1, 5}, {123, -456}, {-1_874_999, 1_874_999}} {
		b := c.Block(70)
		if b.Y != 70 {
			t.Fatalf("%v.Block(70).Y = %d", c, b.Y)
		}
		if got := b.Chunk(); got != c {
			t.Errorf("%v -> %v -> %v", c, b, got)
		}
	}
}
