package noise

import (
	"math"
	"testing"
)

func TestSampleMatchesGame(t *testing.T) {
	tests := []struct {
		seed    int64
		x, y, z float64
		want    float64
	}{
		{1337, 12, 1, 16, 0.4209034382230304},
		{1, -3, 54, 10, 0.434455571299763},
		{66, 432, -43, 23, 0.37580421601671243},
		{-112, -30, 120, -3130, 0.45106062139766767},
	}

	for _, tt := range tests {
		got := NewPerlin(tt.seed).Sample(tt.x, tt.y, tt.z)
		if got != tt.want {
			t.Errorf("seed %d Sample(%v, %v, %v) = %v, want %v", tt.seed, tt.x, tt.y, tt.z, got, tt.want)
		}
	}
}

func TestPermutationIsBijection(t *testing.T) {
	for _, seed := range []int64{0, 1, -1, 1337, -1223197304453310635} {
		perm := NewPerlin(seed).Permutation()
		var seen [256]bool
		for _, v := range perm {
			if seen[v] {
				t.Fatalf("seed %d: value %d appears twice", seed, v)
			}
			seen[v] = true
		}
	}
}

func TestOriginInRange(t *testing.T) {
	p := NewPerlin(2345)
	for _, o := range []float64{p.X, p.Y, p.Z} {
		if o < 0 || o >= 256 {
			t.Errorf("origin offset %v out of [0,256)", o)
		}
	}
}

func TestSampleRange(t *testing.T) {
	p := NewPerlin(42)
	for i := 0; i < 20000; i++ {
		x := float64(i)*0.37 - 500
		y := float64(i)*0.53 - 500
		z := float64(i)*0.71 - 500
		v := p.Sample(x, y, z)
		if v < 0 || v > 1 {
			t.Fatalf("Sample(%f, %f, %f) = %f, out of [0,1]", x, y, z, v)
		}
	}
}

func TestSampleZeroOnLattice(t *testing.T) {
	p := NewPerlin(99)
	// Integer points relative to the origin sit on lattice corners where
	// every gradient contribution vanishes.
	for i := 0; i < 10; i++ {
		v := p.Raw(float64(i)-p.X, -p.Y, float64(-i)-p.Z)
		if math.Abs(v) > 1e-9 {
			t.Errorf("Raw at lattice corner %d = %v, want 0", i, v)
		}
	}
}

func TestSampleSmooth(t *testing.T) {
	p := NewPerlin(456)
	prev := p.Sample(0, 0, 0)
	for i := 1; i < 1000; i++ {
		curr := p.Sample(float64(i)*0.01, 0, 0)
		if math.Abs(curr-prev) > 0.05 {
			t.Fatalf("noise changed too rapidly at step %d: %f -> %f", i, prev, curr)
		}
		prev = curr
	}
}

func TestFade(t *testing.T) {
	if fade(0) != 0 || fade(1) != 1 || fade(0.5) != 0.5 {
		t.Errorf("fade endpoints wrong: %v %v %v", fade(0), fade(1), fade(0.5))
	}
}
