package world

import "fmt"

// ChunkSize is the edge length of a chunk in blocks.
const ChunkSize = 16

// MaxChunkExtent is the side length of the playable world in chunks
// (60 000 000 blocks / 16).
const MaxChunkExtent = 3_750_000

// ChunkPos identifies a chunk column by its X and Z chunk coordinates.
type ChunkPos struct {
	X int32 `json:"x"`
	Z int32 `json:"z"`
}

// BlockPos represents a block position in the world.
type BlockPos struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
	Z int32 `json:"z"`
}

// Block returns the block with the lowest X and Z inside the chunk, at height y.
func (c ChunkPos) Block(y int32) BlockPos {
	return BlockPos{X: c.X * ChunkSize, Y: y, Z: c.Z * ChunkSize}
}

// Add returns c offset by dx, dz.
func (c ChunkPos) Add(dx, dz int32) ChunkPos {
	return ChunkPos{X: c.X + dx, Z: c.Z + dz}
}

func (c ChunkPos) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Z)
}

// Chunk returns the chunk containing b. Negative coordinates round toward
// negative infinity, so block -1 lives in chunk -1.
func (b BlockPos) Chunk() ChunkPos {
	return ChunkPos{X: b.X >> 4, Z: b.Z >> 4}
}

func (b BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", b.X, b.Y, b.Z)
}
