package adopix

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is one discrete track color. Equality is exact component-wise
// comparison; no tolerance is applied anywhere in the pipeline.
type Color struct {
	R, G, B, A uint8
}

// Hex renders the color in the rrggbbaa form level files use.
func (c Color) Hex() string {
	return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// Colorful converts to a colorful.Color for Lab-space math. Alpha is dropped.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

func colorFromColorful(c colorful.Color, alpha uint8) Color {
	cc := c.Clamped()
	return Color{
		R: uint8(cc.R*255.0 + 0.5),
		G: uint8(cc.G*255.0 + 0.5),
		B: uint8(cc.B*255.0 + 0.5),
		A: alpha,
	}
}
