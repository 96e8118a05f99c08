package adopix

// Tile is one step of the traversal path.
type Tile struct {
	Index int
	X, Y  int
	// Heading is the absolute travel direction into this tile, in degrees,
	// counter-clockwise with 0 pointing east. Tile 0 carries the format's
	// initial eastward heading.
	Heading int
	// Turn is the change of heading relative to the previous tile,
	// normalized to (-180, 180]. 0 means straight ahead.
	Turn int
}

// BuildPath lays out a serpentine path visiting every cell of a
// width×height grid exactly once: rightward across row 0, down one,
// leftward across row 1, and so on. The result is the same for the same
// dimensions on every call. Tile 0 is the straight reference tile at (0,0).
func BuildPath(width, height int) ([]Tile, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}

	tiles := make([]Tile, 0, width*height)
	tiles = append(tiles, Tile{Index: 0, X: 0, Y: 0, Heading: headEast, Turn: 0})

	prevX, prevY := 0, 0
	prevHeading := headEast
	idx := 1
	for y := 0; y < height; y++ {
		for step := 0; step < width; step++ {
			x := step
			if y%2 == 1 {
				x = width - 1 - step
			}
			if x == prevX && y == prevY {
				continue // reference tile already emitted
			}
			heading := headingBetween(prevX, prevY, x, y)
			tiles = append(tiles, Tile{
				Index:   idx,
				X:       x,
				Y:       y,
				Heading: heading,
				Turn:    normalizeTurn(heading - prevHeading),
			})
			prevX, prevY = x, y
			prevHeading = heading
			idx++
		}
	}
	return tiles, nil
}

const (
	headEast  = 0
	headWest  = 180
	headSouth = 270
)

func headingBetween(x0, y0, x1, y1 int) int {
	switch {
	case x1 > x0:
		return headEast
	case x1 < x0:
		return headWest
	default:
		// Rows only ever advance downward.
		return headSouth
	}
}

func normalizeTurn(d int) int {
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}
	return d
}
