package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/llGaetanll/McUtils/pkg/search"
)

var (
	favorableColor = color.RGBA{R: 0x5c, G: 0xb8, B: 0x3a, A: 0xff}
	plainColor     = color.RGBA{R: 0x2b, G: 0x2b, B: 0x2b, A: 0xff}
	captionColor   = color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff}
)

// captionHeight is the band above the map holding the count line.
const captionHeight = 16

// Image renders the window of res with scale pixels per chunk, under a
// caption with the count.
func Image(res search.Result, f search.Field, scale int) (*image.RGBA, error) {
	if scale < 1 {
		return nil, fmt.Errorf("scale %d must be positive", scale)
	}
	grid := Grid(res, f)
	h := len(grid)
	w := len(grid[0])

	small := image.NewRGBA(image.Rect(0, 0, w, h))
	for j, row := range grid {
		for i, on := range row {
			c := plainColor
			if on {
				c = favorableColor
			}
			small.SetRGBA(i, j, c)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale+captionHeight))
	draw.Draw(out, out.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.NearestNeighbor.Scale(out, image.Rect(0, captionHeight, w*scale, h*scale+captionHeight), small, small.Bounds(), draw.Src, nil)

	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(captionColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, captionHeight-4),
	}
	d.DrawString(fmt.Sprintf("%d/%d", res.Count, res.Area()))
	return out, nil
}

// WritePNG encodes Image(res, f, scale) as PNG.
func WritePNG(w io.Writer, res search.Result, f search.Field, scale int) error {
	img, err := Image(res, f, scale)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
