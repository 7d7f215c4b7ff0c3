package flower

import (
	"strings"
	"sync"
	"testing"

	"github.com/llGaetanll/McUtils/pkg/world"
)

func TestAtMatchesGame(t *testing.T) {
	tests := []struct {
		pos  world.BlockPos
		want Flower
	}{
		{world.BlockPos{X: -53, Y: -60, Z: 103}, RedTulip},
		{world.BlockPos{X: -54, Y: -60, Z: 122}, Allium},
		{world.BlockPos{X: -8, Y: -60, Z: -126}, Allium},
		{world.BlockPos{X: -76, Y: -60, Z: 1}, OrangeTulip},
		{world.BlockPos{X: 54, Y: -60, Z: 41}, OrangeTulip},
		{world.BlockPos{X: 213, Y: -60, Z: 23}, OrangeTulip},
	}

	for _, tt := range tests {
		if got := At(tt.pos); got != tt.want {
			t.Errorf("At(%s) = %s, want %s", tt.pos, got, tt.want)
		}
	}
}

func TestSamplerSeeds(t *testing.T) {
	s := shared()
	if s.scale2 != 0.021210977470001426 {
		t.Errorf("scale2 = %v, want 0.021210977470001426", s.scale2)
	}
	if s.first == nil || s.second == nil {
		t.Fatal("samplers not built")
	}
}

func TestValueRangeAtKnownPositions(t *testing.T) {
	for _, p := range []world.BlockPos{
		{X: -53, Y: -60, Z: 103},
		{X: -54, Y: -60, Z: 122},
		{X: -8, Y: -60, Z: -126},
		{X: -76, Y: -60, Z: 1},
		{X: 54, Y: -60, Z: 41},
		{X: 213, Y: -60, Z: 23},
	} {
		if v := Value(p); v < 0 || v > 1 {
			t.Errorf("Value(%s) = %v, out of [0,1]", p, v)
		}
	}
}

func TestAtPanicsOutsideRange(t *testing.T) {
	p := world.BlockPos{X: 50, Y: 64, Z: 63}
	if v := Value(p); v != -0.01837898977696595 {
		t.Fatalf("Value(%s) = %v, want -0.01837898977696595", p, v)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("At(%s) did not panic", p)
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, "out of [0,1]") {
			t.Errorf("panic value %v", r)
		}
	}()
	At(p)
}

func TestAtConcurrent(t *testing.T) {
	p := world.BlockPos{X: -53, Y: -60, Z: 103}
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := At(p); got != RedTulip {
					t.Errorf("At(%s) = %s", p, got)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Flower
	}{
		{"dandelion", Dandelion},
		{"Red Tulip", RedTulip},
		{"minecraft:lily_of_the_valley", LilyOfTheValley},
		{"oxeye-daisy", OxeyeDaisy},
		{" AZURE_BLUET ", AzureBluet},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseSuggests(t *testing.T) {
	_, err := Parse("cornflour")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), `"cornflower"`) {
		t.Errorf("error %q does not suggest cornflower", err)
	}
}

func TestStringRoundTrip(t *testing.T) {
	for _, f := range All() {
		got, err := Parse(f.String())
		if err != nil || got != f {
			t.Errorf("Parse(%q) = %v, %v", f.String(), got, err)
		}
	}
	if s := Flower(42).String(); s != "flower(42)" {
		t.Errorf("String() = %q", s)
	}
}
