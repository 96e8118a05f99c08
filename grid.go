package adopix

import (
	"image"
	"image/color"
)

// PixelGrid is an immutable rectangular grid of colors, stored row-major.
// It is the unit every encoder consumes; encoders never write to it.
type PixelGrid struct {
	Width, Height int
	Pix           []Color // len = Width*Height
}

// NewGrid allocates a zeroed (transparent black) grid.
// Returns ErrInvalidDimension for non-positive dimensions.
func NewGrid(width, height int) (*PixelGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}
	return &PixelGrid{
		Width:  width,
		Height: height,
		Pix:    make([]Color, width*height),
	}, nil
}

// GridFromImage snapshots an image into a grid. The image's bounds origin
// is normalized away so (0,0) is always the top-left pixel.
func GridFromImage(img image.Image) (*PixelGrid, error) {
	bounds := img.Bounds()
	g, err := NewGrid(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r, gr, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			g.Pix[y*g.Width+x] = Color{
				R: uint8(r >> 8),
				G: uint8(gr >> 8),
				B: uint8(b >> 8),
				A: uint8(a >> 8),
			}
		}
	}
	return g, nil
}

// At returns the color at (x, y). Coordinates must be in range.
func (g *PixelGrid) At(x, y int) Color {
	return g.Pix[y*g.Width+x]
}

// Set writes the color at (x, y). Only callers that own the grid
// (constructors, quantizers) may use it.
func (g *PixelGrid) Set(x, y int, c Color) {
	g.Pix[y*g.Width+x] = c
}

// Image renders the grid back into an NRGBA image.
func (g *PixelGrid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Pix[y*g.Width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}
