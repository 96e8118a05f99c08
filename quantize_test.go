package adopix

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/adofai-tools/adopix/utils"
)

func TestPaletteMapperNearest(t *testing.T) {
	palette := []colorful.Color{
		{R: 1, G: 0, B: 0},
		{R: 0, G: 0, B: 1},
		{R: 1, G: 1, B: 1},
	}
	m := newPaletteMapper(palette)

	tests := []struct {
		name string
		in   Color
		want Color
	}{
		{"exact red", Color{R: 255, A: 255}, Color{R: 255, A: 255}},
		{"dark red snaps to red", Color{R: 200, G: 30, B: 30, A: 255}, Color{R: 255, A: 255}},
		{"light blue snaps to blue", Color{R: 40, G: 40, B: 220, A: 255}, Color{B: 255, A: 255}},
		{"near white snaps to white", Color{R: 240, G: 245, B: 250, A: 255}, Color{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.nearest(tt.in); got != tt.want {
				t.Errorf("nearest(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMapToPalettePreservesAlpha(t *testing.T) {
	m := newPaletteMapper([]colorful.Color{{R: 1, G: 0, B: 0}})
	grid := mustGrid(t, 2, 1,
		Color{R: 200, G: 10, B: 10, A: 128},
		Color{R: 250, G: 0, B: 0, A: 0},
	)
	out := mapToPalette(grid, m)
	if out.Pix[0].A != 128 || out.Pix[1].A != 0 {
		t.Errorf("alpha not preserved: %+v", out.Pix)
	}
	for _, c := range out.Pix {
		if c.R != 255 || c.G != 0 || c.B != 0 {
			t.Errorf("color not mapped to palette: %+v", c)
		}
	}
}

func TestQuantizeGridLimitsDistinctColors(t *testing.T) {
	grid, err := NewGrid(8, 8)
	if err != nil {
		t.Fatal(err)
	}
	// Two well-separated color families with per-pixel noise.
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := Color{R: uint8(200 + x), G: uint8(10 + y), B: 10, A: 255}
			if y >= 4 {
				c = Color{R: 10, G: uint8(10 + x), B: uint8(200 + y), A: 255}
			}
			grid.Set(x, y, c)
		}
	}

	const k = 2
	out, err := QuantizeGrid(grid, k, utils.PaletteMethodDominantColor)
	if err != nil {
		t.Fatal(err)
	}
	distinct := make(map[Color]bool)
	for _, c := range out.Pix {
		distinct[c] = true
	}
	if len(distinct) > k {
		t.Errorf("quantized grid has %d distinct colors, want <= %d", len(distinct), k)
	}
	if out.Width != grid.Width || out.Height != grid.Height {
		t.Errorf("dimensions changed: %dx%d", out.Width, out.Height)
	}
}

func TestQuantizeFramesShareOnePalette(t *testing.T) {
	a := solidGrid(t, 4, 4, Color{R: 210, G: 20, B: 20, A: 255})
	b := solidGrid(t, 4, 4, Color{R: 205, G: 25, B: 15, A: 255})

	out, err := QuantizeFrames([]*PixelGrid{a, b}, 1, utils.PaletteMethodDominantColor)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d frames, want 2", len(out))
	}
	// Both frames map their near-identical reds onto the same palette
	// entry, so the diffed encoder sees no change at all.
	if out[0].Pix[0] != out[1].Pix[0] {
		t.Errorf("shared palette broken: %+v vs %+v", out[0].Pix[0], out[1].Pix[0])
	}
	stats, err := AnalyzeFrames(out)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Changed[0] != 0 {
		t.Errorf("quantized noise still produces %d changes", stats.Changed[0])
	}
}

func TestQuantizeFramesValidates(t *testing.T) {
	if _, err := QuantizeFrames(nil, 4, utils.PaletteMethodDominantColor); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
}
