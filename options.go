package adopix

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Options are the scalar knobs an encoder call consumes. They never affect
// the traversal or diffing algorithms beyond what each field documents;
// pass a value per call instead of mutating shared state.
type Options struct {
	// FPS is the frame display rate for sequence modes.
	FPS float64 `yaml:"fps"`
	// Zoom is the display scale percentage written into level metadata.
	Zoom int `yaml:"zoom"`
	// FrameGap is the number of straight filler tiles inserted between
	// consecutive frames' tracks in independent-track mode.
	FrameGap int `yaml:"frame_gap"`
	// RowOffset is the vertical row spacing constant embedded in metadata.
	RowOffset float64 `yaml:"row_offset"`
}

// DefaultOptions mirrors the tool's historical defaults.
func DefaultOptions() Options {
	return Options{
		FPS:       5,
		Zoom:      100,
		FrameGap:  10,
		RowOffset: 0.9,
	}
}

// LoadOptions reads Options from YAML. Absent keys keep their defaults.
func LoadOptions(r io.Reader) (Options, error) {
	opt := DefaultOptions()
	data, err := io.ReadAll(r)
	if err != nil {
		return opt, fmt.Errorf("read options: %w", err)
	}
	if err := yaml.Unmarshal(data, &opt); err != nil {
		return opt, fmt.Errorf("parse options: %w", err)
	}
	return opt, nil
}
