package search

import (
	"fmt"
	"math"

	"github.com/llGaetanll/McUtils/pkg/world"
)

// Odds of a single chunk being favorable.
const favorableOdds = 0.1

// Result is the densest window found by a search. P1 and P2 are the inclusive
// corners of the window.
type Result struct {
	Seed  int64          `json:"seed"`
	P1    world.ChunkPos `json:"p1"`
	P2    world.ChunkPos `json:"p2"`
	Count uint32         `json:"count"`
}

// Area is the number of chunks in the window.
func (r Result) Area() int64 {
	return (int64(r.P2.X) - int64(r.P1.X) + 1) * (int64(r.P2.Z) - int64(r.P1.Z) + 1)
}

// Better reports whether r strictly beats o.
func (r Result) Better(o Result) bool {
	return r.Count > o.Count
}

// Probability estimates the chance of the window holding exactly Count
// favorable chunks if every chunk were an independent draw. The binomial is
// approximated by a normal density.
func (r Result) Probability() float64 {
	n := float64(r.Area())
	mean := n * favorableOdds
	variance := n * favorableOdds * (1 - favorableOdds)
	sd := math.Sqrt(variance)
	d := float64(r.Count) - mean
	return math.Exp(-0.5*d*d/variance) / (sd * math.Sqrt(2*math.Pi))
}

func (r Result) String() string {
	return fmt.Sprintf("%d chunks in %s-%s (seed %d)", r.Count, r.P1, r.P2, r.Seed)
}
