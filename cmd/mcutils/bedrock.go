package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/llGaetanll/McUtils/pkg/bedrock"
)

func runBedrock(_ context.Context, args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := flag.NewFlagSet("bedrock", flag.ContinueOnError)
	seed := fs.Int64("seed", 0, "world seed")
	layer := fs.String("layer", "overworld", "overworld, nether-floor or nether-roof")
	x := fs.Int("x", 0, "lowest block x")
	z := fs.Int("z", 0, "lowest block z")
	size := fs.Int("size", 16, "edge of the printed square")
	if err := fs.Parse(args); err != nil {
		return err
	}

	l, err := bedrock.LayerByName(*layer)
	if err != nil {
		return err
	}
	f := bedrock.NewFinder(*seed, l)
	for y := l.MinY; y <= l.MaxY; y++ {
		fmt.Fprintf(stdout, "y=%d\n", y)
		for _, row := range f.Slice(int32(*x), y, int32(*z), int32(*size), int32(*size)) {
			for _, solid := range row {
				if solid {
					fmt.Fprint(stdout, "██")
				} else {
					fmt.Fprint(stdout, "░░")
				}
			}
			fmt.Fprintln(stdout)
		}
	}
	return nil
}
