package search

import (
	"errors"
	"fmt"
	"math"

	"github.com/llGaetanll/McUtils/pkg/world"
)

var (
	// ErrInvalidRect reports a search rectangle that is reversed, outside the
	// world, or too large for one table.
	ErrInvalidRect = errors.New("invalid search rectangle")
	// ErrInvalidWindow reports a window that is empty or larger than the
	// rectangle or tile it must fit in.
	ErrInvalidWindow = errors.New("invalid search window")
)

func validateRect(r Rect) error {
	for _, p := range []world.ChunkPos{r.Min, r.Max} {
		if p.X < -world.MaxChunkExtent || p.X > world.MaxChunkExtent ||
			p.Z < -world.MaxChunkExtent || p.Z > world.MaxChunkExtent {
			return fmt.Errorf("%w: corner %s outside the world", ErrInvalidRect, p)
		}
	}
	if r.Min.X > r.Max.X || r.Min.Z > r.Max.Z {
		return fmt.Errorf("%w: start %s is past end %s", ErrInvalidRect, r.Min, r.Max)
	}
	if r.Width() > world.MaxChunkExtent || r.Height() > world.MaxChunkExtent {
		return fmt.Errorf("%w: %dx%d exceeds %d chunks per side", ErrInvalidRect, r.Width(), r.Height(), world.MaxChunkExtent)
	}
	return nil
}

// validateTable additionally requires every count of the table to fit in a
// uint32 and the table to be addressable.
func validateTable(r Rect) error {
	if err := validateRect(r); err != nil {
		return err
	}
	if r.Width()*r.Height() > math.MaxUint32 {
		return fmt.Errorf("%w: %dx%d chunks do not fit one table, use SearchLarge", ErrInvalidRect, r.Width(), r.Height())
	}
	return nil
}

func validateWindow(w Window, width, height int64) error {
	if w.Width < 1 || w.Height < 1 {
		return fmt.Errorf("%w: %dx%d is empty", ErrInvalidWindow, w.Width, w.Height)
	}
	if int64(w.Width) > width || int64(w.Height) > height {
		return fmt.Errorf("%w: %dx%d does not fit in %dx%d", ErrInvalidWindow, w.Width, w.Height, width, height)
	}
	return nil
}
