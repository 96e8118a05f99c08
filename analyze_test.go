package adopix

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeFramesChangeCounts(t *testing.T) {
	frames := []*PixelGrid{
		mustGrid(t, 2, 2, red, red, red, red),
		mustGrid(t, 2, 2, blue, red, red, red),
		mustGrid(t, 2, 2, blue, red, red, red),
		mustGrid(t, 2, 2, green, green, green, red),
	}

	stats, err := AnalyzeFrames(frames)
	if err != nil {
		t.Fatal(err)
	}
	wantChanged := []int{1, 0, 3}
	if len(stats.Changed) != len(wantChanged) {
		t.Fatalf("Changed length = %d, want %d", len(stats.Changed), len(wantChanged))
	}
	for i, want := range wantChanged {
		if stats.Changed[i] != want {
			t.Errorf("Changed[%d] = %d, want %d", i, stats.Changed[i], want)
		}
	}
	if stats.Max != 3 {
		t.Errorf("Max = %d, want 3", stats.Max)
	}
	if want := (1.0 + 0 + 3) / 3.0; math.Abs(stats.Mean-want) > 1e-12 {
		t.Errorf("Mean = %v, want %v", stats.Mean, want)
	}
	if stats.V1Events != 16 {
		t.Errorf("V1Events = %d, want 16", stats.V1Events)
	}
	if stats.V2Events != 8 {
		t.Errorf("V2Events = %d, want 4+4=8", stats.V2Events)
	}
}

func TestAnalyzeFramesMatchesDiffedEncoder(t *testing.T) {
	frames := []*PixelGrid{
		mustGrid(t, 3, 1, red, green, blue),
		mustGrid(t, 3, 1, red, blue, blue),
		mustGrid(t, 3, 1, white, blue, green),
	}

	stats, err := AnalyzeFrames(frames)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := EncodeFramesDiffed(frames, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if stats.V2Events != len(doc.Events) {
		t.Errorf("projected V2Events = %d, encoder emitted %d", stats.V2Events, len(doc.Events))
	}
}

func TestAnalyzeFramesSingleFrame(t *testing.T) {
	stats, err := AnalyzeFrames([]*PixelGrid{solidGrid(t, 2, 3, red)})
	if err != nil {
		t.Fatal(err)
	}
	if len(stats.Changed) != 0 {
		t.Errorf("Changed length = %d, want 0", len(stats.Changed))
	}
	if stats.Mean != 0 || stats.Std != 0 || stats.Max != 0 {
		t.Errorf("stats = %+v, want zeroed change profile", stats)
	}
	if stats.V2Events != 6 {
		t.Errorf("V2Events = %d, want 6", stats.V2Events)
	}
}

func TestAnalyzeFramesErrors(t *testing.T) {
	if _, err := AnalyzeFrames(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("error = %v, want ErrEmptyInput", err)
	}
	frames := []*PixelGrid{solidGrid(t, 2, 2, red), solidGrid(t, 2, 3, red)}
	if _, err := AnalyzeFrames(frames); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}
