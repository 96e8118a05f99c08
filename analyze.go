package adopix

import (
	"gonum.org/v1/gonum/stat"
)

// SequenceStats summarizes how much a frame sequence changes between
// consecutive frames. It is the basis for choosing between the
// independent-track and shared-track encoders: V1Events grows with
// frames×pixels while V2Events grows with the number of changing pixels.
type SequenceStats struct {
	Frames        int
	Width, Height int

	// Changed[i] is the number of coordinates whose color differs
	// between frame i and frame i+1; len = Frames-1.
	Changed []int

	// Mean and Std describe the per-transition change counts.
	Mean float64
	Std  float64
	Max  int

	// Projected event counts for the two sequence encoders.
	V1Events int
	V2Events int
}

// AnalyzeFrames scans a sequence and reports its change profile without
// building a document. Frames must be non-empty and share dimensions.
func AnalyzeFrames(frames []*PixelGrid) (*SequenceStats, error) {
	// Frame rate does not affect change counts; validate with a dummy fps.
	width, height, err := validateFrames(frames, 1)
	if err != nil {
		return nil, err
	}

	s := &SequenceStats{
		Frames: len(frames),
		Width:  width,
		Height: height,
	}
	if len(frames) > 1 {
		s.Changed = make([]int, len(frames)-1)
	}
	total := 0
	for i := 1; i < len(frames); i++ {
		prev, cur := frames[i-1].Pix, frames[i].Pix
		n := 0
		for j := range cur {
			if cur[j] != prev[j] {
				n++
			}
		}
		s.Changed[i-1] = n
		total += n
		s.Max = max(s.Max, n)
	}

	if len(s.Changed) > 0 {
		counts := make([]float64, len(s.Changed))
		for i, n := range s.Changed {
			counts[i] = float64(n)
		}
		s.Mean, s.Std = stat.MeanStdDev(counts, nil)
		if len(counts) == 1 {
			s.Std = 0
		}
	}

	pixels := width * height
	s.V1Events = len(frames) * pixels
	s.V2Events = pixels + total
	return s, nil
}
