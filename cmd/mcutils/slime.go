package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/llGaetanll/McUtils/pkg/slime"
	"github.com/llGaetanll/McUtils/pkg/world"
)

func runSlime(_ context.Context, args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := flag.NewFlagSet("slime", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "world seed")
	x := fs.Int("x", 0, "chunk x")
	z := fs.Int("z", 0, "chunk z")
	block := fs.Bool("block", false, "treat -x and -z as block coordinates")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := world.ChunkPos{X: int32(*x), Z: int32(*z)}
	if *block {
		c = world.BlockPos{X: int32(*x), Z: int32(*z)}.Chunk()
	}
	fmt.Fprintf(stdout, "chunk %s: %t\n", c, slime.IsSlimeChunk(*seed, c.X, c.Z))
	return nil
}
