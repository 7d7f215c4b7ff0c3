package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/llGaetanll/McUtils/pkg/flower"
	"github.com/llGaetanll/McUtils/pkg/world"
)

func runFlower(_ context.Context, args []string, stdout io.Writer, _ *slog.Logger) error {
	fs := flag.NewFlagSet("flower", flag.ContinueOnError)
	x := fs.Int("x", 0, "block x")
	y := fs.Int("y", 64, "block y")
	z := fs.Int("z", 0, "block z")
	find := fs.String("find", "", "list positions of this flower in -x1..-x2, -z1..-z2")
	x1 := fs.Int("x1", -16, "lowest block x for -find")
	z1 := fs.Int("z1", -16, "lowest block z for -find")
	x2 := fs.Int("x2", 16, "highest block x for -find")
	z2 := fs.Int("z2", 16, "highest block z for -find")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *find == "" {
		p := world.BlockPos{X: int32(*x), Y: int32(*y), Z: int32(*z)}
		f, err := classify(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s\n", p, f)
		return nil
	}

	want, err := flower.Parse(*find)
	if err != nil {
		return err
	}
	var n int64
	for bx := *x1; bx <= *x2; bx++ {
		for bz := *z1; bz <= *z2; bz++ {
			p := world.BlockPos{X: int32(bx), Y: int32(*y), Z: int32(bz)}
			// Out-of-range positions hold no flower.
			if f, err := classify(p); err == nil && f == want {
				fmt.Fprintln(stdout, p)
				n++
			}
		}
	}
	fmt.Fprintf(stdout, "%s %s positions\n", humanize.Comma(n), want)
	return nil
}

// classify is flower.At with an out-of-range value reported as an error.
func classify(p world.BlockPos) (flower.Flower, error) {
	if v := flower.Value(p); v < 0 || v > 1 {
		return 0, fmt.Errorf("no flower at %s: classifier value %v out of [0,1]", p, v)
	}
	return flower.At(p), nil
}
