package adopix

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
)

// FramesFromGIF decodes an animated GIF into a sequence of same-sized
// grids. GIF frames are often partial updates over the previous canvas,
// so each one is composited according to its disposal mode before the
// snapshot is taken.
func FramesFromGIF(r io.Reader) ([]*PixelGrid, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return nil, ErrEmptyInput
	}

	width, height := g.Config.Width, g.Config.Height
	if width == 0 || height == 0 {
		b := g.Image[0].Bounds()
		width, height = b.Max.X, b.Max.Y
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, width, height))
	frames := make([]*PixelGrid, 0, len(g.Image))
	var saved *image.NRGBA
	for i, src := range g.Image {
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			saved = cloneNRGBA(canvas)
		}

		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)
		grid, err := GridFromImage(canvas)
		if err != nil {
			return nil, err
		}
		frames = append(frames, grid)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, src.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			if saved != nil {
				canvas = saved
			}
		}
	}
	return frames, nil
}

func cloneNRGBA(src *image.NRGBA) *image.NRGBA {
	dst := image.NewNRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// PrepareImage downscales a source image to the target grid size with
// nearest-neighbor sampling and an optional gaussian pre-blur, then
// snapshots it as a grid. Blur before encoding softens dithering noise
// that would otherwise bloat diffed output.
func PrepareImage(img image.Image, width, height int, blurSigma float32) (*PixelGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimension
	}
	var out image.Image = resize.Resize(uint(width), uint(height), img, resize.NearestNeighbor)
	if blurSigma > 0 {
		g := gift.New(gift.GaussianBlur(blurSigma))
		blurred := image.NewRGBA(g.Bounds(out.Bounds()))
		g.Draw(blurred, out)
		out = blurred
	}
	return GridFromImage(out)
}

// PrepareFrames applies PrepareImage to every frame of a sequence.
func PrepareFrames(imgs []image.Image, width, height int, blurSigma float32) ([]*PixelGrid, error) {
	if len(imgs) == 0 {
		return nil, ErrEmptyInput
	}
	frames := make([]*PixelGrid, len(imgs))
	for i, img := range imgs {
		grid, err := PrepareImage(img, width, height, blurSigma)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		frames[i] = grid
	}
	return frames, nil
}
