package adopix

import "fmt"

// EncodeImage converts a single grid into a static pixel-art level:
// one serpentine path over the grid and one SetColor event per tile.
func EncodeImage(grid *PixelGrid, opt Options) (*LevelDocument, error) {
	path, err := BuildPath(grid.Width, grid.Height)
	if err != nil {
		return nil, err
	}

	events := make([]ColorEvent, 0, len(path))
	for _, t := range path {
		events = append(events, ColorEvent{
			Floor: t.Index,
			Kind:  SetColor,
			Color: grid.At(t.X, t.Y),
		})
	}

	return &LevelDocument{
		Path:       path,
		Events:     events,
		BPM:        100,
		Zoom:       opt.Zoom,
		RowOffset:  opt.RowOffset,
		LevelDesc:  fmt.Sprintf("PixelArt %d×%d", grid.Width, grid.Height),
		LevelTags:  "pixelart",
		TrackColor: grid.At(0, 0),
	}, nil
}
