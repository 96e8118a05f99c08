package adopix

import "fmt"

// validateFrames runs the shared sequence-encoder preconditions. All
// failures are detected here, before any document state is assembled.
func validateFrames(frames []*PixelGrid, fps float64) (width, height int, err error) {
	if len(frames) == 0 {
		return 0, 0, ErrEmptyInput
	}
	if fps <= 0 {
		return 0, 0, fmt.Errorf("%w: got %g", ErrInvalidFrameRate, fps)
	}
	width, height = frames[0].Width, frames[0].Height
	if width <= 0 || height <= 0 {
		return 0, 0, ErrInvalidDimension
	}
	for i, f := range frames[1:] {
		if f.Width != width || f.Height != height {
			return 0, 0, fmt.Errorf("%w: frame %d is %d×%d, want %d×%d",
				ErrDimensionMismatch, i+1, f.Width, f.Height, width, height)
		}
	}
	return width, height, nil
}

// EncodeFrames converts a frame sequence with one structurally independent
// track per frame, chained end to end. Frame i's floors start at
// i×(W×H+FrameGap); FrameGap straight filler tiles separate consecutive
// frames so the marker spends one frame's travel time between them.
// Total tiles = F×W×H + (F−1)×FrameGap. Simple, but output size grows
// with frames×pixels; prefer EncodeFramesDiffed for long sequences.
func EncodeFrames(frames []*PixelGrid, opt Options) (*LevelDocument, error) {
	width, height, err := validateFrames(frames, opt.FPS)
	if err != nil {
		return nil, err
	}
	gap := max(opt.FrameGap, 0)
	perFrame := width * height

	path := make([]Tile, 0, len(frames)*perFrame+(len(frames)-1)*gap)
	events := make([]ColorEvent, 0, len(frames)*perFrame)

	for i, frame := range frames {
		if i > 0 {
			path = appendFillerTiles(path, gap)
		}
		sub, err := BuildPath(width, height)
		if err != nil {
			return nil, err
		}
		base := len(path)
		if base > 0 {
			// Stitch the fresh track onto the chain: its reference tile
			// continues the incoming heading, and the following tile's
			// turn is re-derived against it.
			sub[0].Heading = path[base-1].Heading
			sub[0].Turn = 0
			if len(sub) > 1 {
				sub[1].Turn = normalizeTurn(sub[1].Heading - sub[0].Heading)
			}
		}
		for _, t := range sub {
			t.Index = base + t.Index
			path = append(path, t)
			events = append(events, ColorEvent{
				Floor: t.Index,
				Kind:  SetColor,
				Color: frame.At(t.X, t.Y),
			})
		}
	}

	return &LevelDocument{
		Path:      path,
		Events:    events,
		BPM:       int(opt.FPS * 60),
		Zoom:      opt.Zoom,
		RowOffset: opt.RowOffset,
		LevelDesc: fmt.Sprintf("Video %d×%d %sFPS %dframes",
			width, height, formatFloat(opt.FPS), len(frames)),
		LevelTags: "video",
	}, nil
}

// appendFillerTiles extends the path with n "do nothing" tiles that keep
// the current heading. Fillers carry no color events.
func appendFillerTiles(path []Tile, n int) []Tile {
	last := path[len(path)-1]
	dx, dy := 0, 0
	switch last.Heading {
	case headEast:
		dx = 1
	case headWest:
		dx = -1
	case headSouth:
		dy = 1
	}
	x, y := last.X, last.Y
	for i := 0; i < n; i++ {
		x += dx
		y += dy
		path = append(path, Tile{
			Index:   len(path),
			X:       x,
			Y:       y,
			Heading: last.Heading,
			Turn:    0,
		})
	}
	return path
}

// EncodeFramesDiffed converts a frame sequence onto a single shared track
// sized W×H. Frame 0 binds every tile with SetColor; each later frame
// emits one timed RecolorTrack per coordinate whose color changed since
// the previous frame, so output grows with changing pixels rather than
// frames×pixels. Events are ordered by frame, then by ascending floor;
// their beats are non-decreasing in document order.
func EncodeFramesDiffed(frames []*PixelGrid, opt Options) (*LevelDocument, error) {
	width, height, err := validateFrames(frames, opt.FPS)
	if err != nil {
		return nil, err
	}
	path, err := BuildPath(width, height)
	if err != nil {
		return nil, err
	}

	// Fixed 60 BPM keeps one beat = one second, so frame i lands at
	// beat i/fps exactly.
	const bpm = 60

	events := make([]ColorEvent, 0, len(path))
	for _, t := range path {
		events = append(events, ColorEvent{
			Floor: t.Index,
			Kind:  SetColor,
			Color: frames[0].At(t.X, t.Y),
		})
	}

	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1], frames[i]
		beat := float64(i) * (bpm / 60.0) / opt.FPS
		// Walking the path (not the raster) keeps floors ascending
		// within the frame with a single flat scan.
		for _, t := range path {
			c := cur.At(t.X, t.Y)
			if c == prev.At(t.X, t.Y) {
				continue
			}
			events = append(events, ColorEvent{
				Floor: t.Index,
				Kind:  RecolorTrack,
				Color: c,
				Beat:  beat,
			})
		}
	}

	return &LevelDocument{
		Path:       path,
		Events:     events,
		BPM:        bpm,
		Zoom:       opt.Zoom,
		RowOffset:  opt.RowOffset,
		LevelDesc:  "Video",
		LevelTags:  "video",
		Position:   [2]float64{float64(width) / 2, -float64(height) / 2},
		RelativeTo: "Global",
	}, nil
}
