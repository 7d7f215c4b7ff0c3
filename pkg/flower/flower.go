// Package flower predicts which flower the plains and forest biomes place at
// a block position. The choice depends only on position, never on the world
// seed.
package flower

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/llGaetanll/McUtils/pkg/noise"
	"github.com/llGaetanll/McUtils/pkg/rng"
	"github.com/llGaetanll/McUtils/pkg/world"
)

// Flower is one of the eleven flowers the classifier can produce.
type Flower uint8

const (
	Dandelion Flower = iota
	Poppy
	Allium
	AzureBluet
	RedTulip
	OrangeTulip
	WhiteTulip
	PinkTulip
	OxeyeDaisy
	Cornflower
	LilyOfTheValley
)

// Count is the number of flower kinds.
const Count = 11

var names = [Count]string{
	Dandelion:       "dandelion",
	Poppy:           "poppy",
	Allium:          "allium",
	AzureBluet:      "azure_bluet",
	RedTulip:        "red_tulip",
	OrangeTulip:     "orange_tulip",
	WhiteTulip:      "white_tulip",
	PinkTulip:       "pink_tulip",
	OxeyeDaisy:      "oxeye_daisy",
	Cornflower:      "cornflower",
	LilyOfTheValley: "lily_of_the_valley",
}

func (f Flower) String() string {
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("flower(%d)", uint8(f))
}

// All returns every flower in classifier order.
func All() []Flower {
	out := make([]Flower, Count)
	for i := range out {
		out[i] = Flower(i)
	}
	return out
}

// Parse resolves a flower name such as "red_tulip" or "Red Tulip". Unknown
// names produce an error that suggests the closest known name.
func Parse(s string) (Flower, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	key = strings.TrimPrefix(key, "minecraft:")

	best, bestDist := Flower(0), math.MaxInt
	for i, name := range names {
		if name == key {
			return Flower(i), nil
		}
		if d := levenshtein.ComputeDistance(key, name); d < bestDist {
			best, bestDist = Flower(i), d
		}
	}
	return 0, fmt.Errorf("unknown flower %q, did you mean %q?", s, best)
}

const (
	// Base seed for the first sampler; the second is the next draw.
	baseSeed = 2345
	// String hash of "octave_0", mixed into each sampler seed.
	octaveHash = 1261148513

	scale1    = 0.02083333395421505
	scaleStep = 1.0181268882175227
	amplitude = 0.8333333333333333
)

type samplers struct {
	first, second *noise.Perlin
	scale2        float64
}

var shared = sync.OnceValue(func() samplers {
	r := rng.NewLegacy(baseSeed)
	s1 := r.NextInt64() ^ octaveHash
	s2 := r.NextInt64() ^ octaveHash

	// Rounded through a float64 product at runtime rather than folded
	// as an exact constant.
	a, b := scale1, scaleStep
	return samplers{
		first:  noise.NewPerlin(s1),
		second: noise.NewPerlin(s2),
		scale2: a * b,
	}
})

// Value returns the unclamped classifier value at p. It spans roughly
// [-1/3, 4/3]; only values in [0, 1] name a flower.
func Value(p world.BlockPos) float64 {
	s := shared()
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)

	n1 := s.first.Sample(float64(x*scale1), float64(y*scale1), float64(z*scale1))
	n2 := s.second.Sample(float64(x*s.scale2), float64(y*s.scale2), float64(z*s.scale2))

	return float64((n1+n2)*amplitude) - amplitude + 0.5
}

// At returns the flower placed at p.
//
// At panics if the classifier value leaves [0, 1]. The game clamps such
// values; callers that take arbitrary positions should check Value first.
func At(p world.BlockPos) Flower {
	v := Value(p)
	if v < 0 || v > 1 {
		panic(fmt.Sprintf("flower: classifier value %v at %s out of [0,1]", v, p))
	}
	i := int(math.Floor(v * Count))
	if i >= Count {
		i = Count - 1
	}
	return Flower(i)
}
