package adopix

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/adofai-tools/adopix/utils"
)

// QuantizeGrid maps every pixel of a grid onto a k-color palette extracted
// from the grid itself. Alpha is carried over unchanged. Quantizing before
// encoding collapses near-duplicate colors, which directly shrinks the
// diffed encoder's event list on noisy sources.
func QuantizeGrid(grid *PixelGrid, k int, method utils.PaletteMethod) (*PixelGrid, error) {
	palette := utils.ExtractPalette(grid.Image(), k, method)
	if len(palette) == 0 {
		return nil, fmt.Errorf("adopix: no palette could be extracted (k=%d)", k)
	}
	return mapToPalette(grid, newPaletteMapper(palette)), nil
}

// QuantizeFrames quantizes a whole sequence against one shared palette so
// the same source color maps identically in every frame. The palette is
// extracted from a vertical stack of all frames.
func QuantizeFrames(frames []*PixelGrid, k int, method utils.PaletteMethod) ([]*PixelGrid, error) {
	width, height, err := validateFrames(frames, 1)
	if err != nil {
		return nil, err
	}

	stack := image.NewNRGBA(image.Rect(0, 0, width, height*len(frames)))
	for i, f := range frames {
		rect := image.Rect(0, i*height, width, (i+1)*height)
		draw.Draw(stack, rect, f.Image(), image.Point{}, draw.Src)
	}
	palette := utils.ExtractPalette(stack, k, method)
	if len(palette) == 0 {
		return nil, fmt.Errorf("adopix: no palette could be extracted (k=%d)", k)
	}

	mapper := newPaletteMapper(palette)
	out := make([]*PixelGrid, len(frames))
	for i, f := range frames {
		out[i] = mapToPalette(f, mapper)
	}
	return out, nil
}

// paletteMapper resolves source colors to their nearest palette entry in
// Lab space, memoizing per distinct source color.
type paletteMapper struct {
	colors []Color
	lab    [][3]float64
	memo   map[Color]Color
}

func newPaletteMapper(palette []colorful.Color) *paletteMapper {
	m := &paletteMapper{
		colors: make([]Color, len(palette)),
		lab:    make([][3]float64, len(palette)),
		memo:   make(map[Color]Color),
	}
	for i, p := range palette {
		m.colors[i] = colorFromColorful(p, 255)
		l, a, b := p.Lab()
		m.lab[i] = [3]float64{l, a, b}
	}
	return m
}

func (m *paletteMapper) nearest(c Color) Color {
	key := Color{R: c.R, G: c.G, B: c.B, A: 255}
	if got, ok := m.memo[key]; ok {
		return got
	}
	l, a, b := c.Colorful().Lab()
	best := 0
	bestD := -1.0
	for i, p := range m.lab {
		d0 := l - p[0]
		d1 := a - p[1]
		d2 := b - p[2]
		d := d0*d0 + d1*d1 + d2*d2
		if bestD < 0 || d < bestD {
			bestD = d
			best = i
		}
	}
	m.memo[key] = m.colors[best]
	return m.colors[best]
}

func mapToPalette(grid *PixelGrid, m *paletteMapper) *PixelGrid {
	out := &PixelGrid{
		Width:  grid.Width,
		Height: grid.Height,
		Pix:    make([]Color, len(grid.Pix)),
	}
	for i, c := range grid.Pix {
		mapped := m.nearest(c)
		mapped.A = c.A
		out.Pix[i] = mapped
	}
	return out
}
