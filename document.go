package adopix

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// EventKind selects how a ColorEvent is rendered into the level file.
type EventKind int

const (
	// SetColor binds a fixed color to a tile, in force until overridden.
	SetColor EventKind = iota
	// RecolorTrack changes a tile's color at a specific beat during playback.
	RecolorTrack
)

func (k EventKind) String() string {
	if k == RecolorTrack {
		return "RecolorTrack"
	}
	return "SetColor"
}

// ColorEvent binds a color to a floor. Beat is the time offset in beats
// from the start of the level; it is zero and unused for SetColor.
type ColorEvent struct {
	Floor int
	Kind  EventKind
	Color Color
	Beat  float64
}

// LevelDocument owns a finished path, its event list and the scalar
// metadata the level file carries. Encoders allocate one per call;
// it is never mutated after serialization.
type LevelDocument struct {
	Path   []Tile
	Events []ColorEvent

	BPM        int
	Zoom       int
	RowOffset  float64
	LevelDesc  string
	LevelTags  string
	TrackColor Color
	Position   [2]float64
	RelativeTo string
}

// Serialize renders the document as level-file text. The same document
// always serializes to the same bytes; events are written in list order
// and floors are never renumbered.
func (d *LevelDocument) Serialize() (string, error) {
	var b strings.Builder
	if err := d.WriteTo(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTo streams the serialized document. Large sequences write directly
// to the destination instead of building the whole text in memory.
func (d *LevelDocument) WriteTo(w io.Writer) error {
	for _, ev := range d.Events {
		if ev.Floor < 0 || ev.Floor >= len(d.Path) {
			return fmt.Errorf("%w: floor %d, path length %d",
				ErrFloorOutOfRange, ev.Floor, len(d.Path))
		}
	}

	bw := &errWriter{w: w}
	bw.writeString("{\n")

	// angleData holds the absolute travel angle of every tile after the
	// first, in path order.
	bw.writeString("\t\"angleData\": [")
	for i := 1; i < len(d.Path); i++ {
		if i > 1 {
			bw.writeString(", ")
		}
		bw.writeString(strconv.Itoa(d.Path[i].Heading))
	}
	bw.writeString("], \n")

	bw.writeString("\t\"settings\":\n\t{\n")
	settings := d.settings()
	for i, s := range settings {
		comma := ","
		if i == len(settings)-1 {
			comma = ""
		}
		bw.writeString("\t\t\"" + s.key + "\": " + formatValue(s.val) + comma + "\n")
	}
	bw.writeString("\t},\n")

	bw.writeString("\t\"actions\":\n\t[\n")
	for i, ev := range d.Events {
		bw.writeString(actionLine(ev))
		if i < len(d.Events)-1 {
			bw.writeString(",\n")
		} else {
			bw.writeString("\n")
		}
	}
	bw.writeString("\t],\n")

	bw.writeString("\t\"decorations\":\n\t[\n\t]\n}")
	return bw.err
}

func actionLine(ev ColorEvent) string {
	switch ev.Kind {
	case RecolorTrack:
		return fmt.Sprintf("\t\t{ \"floor\": %d, \"eventType\": \"RecolorTrack\", "+
			"\"startTile\": [%d, \"Start\"], \"endTile\": [%d, \"Start\"], "+
			"\"gapLength\": 0, \"duration\": 0, \"trackColorType\": \"Single\", "+
			"\"trackColor\": \"%s\", \"secondaryTrackColor\": \"ffffff\", "+
			"\"trackColorAnimDuration\": 2, \"trackColorPulse\": \"None\", "+
			"\"trackPulseLength\": 10, \"trackStyle\": \"Basic\", "+
			"\"trackGlowIntensity\": 100, \"angleOffset\": %s, "+
			"\"ease\": \"Linear\", \"eventTag\": \"\"}",
			ev.Floor, ev.Floor, ev.Floor, ev.Color.Hex(), formatFloat(beatToAngleOffset(ev.Beat)))
	default:
		return fmt.Sprintf("\t\t{ \"floor\": %d, \"eventType\": \"ColorTrack\", "+
			"\"trackColorType\": \"Single\", \"trackColor\": \"%s\", "+
			"\"secondaryTrackColor\": \"ffffff\", \"trackColorAnimDuration\": 2, "+
			"\"trackColorPulse\": \"None\", \"trackPulseLength\": 10, "+
			"\"trackStyle\": \"Minimal\", \"trackTexture\": \"\", "+
			"\"trackTextureScale\": 1, \"trackGlowIntensity\": 100, "+
			"\"justThisTile\": false}",
			ev.Floor, ev.Color.Hex())
	}
}

type settingEntry struct {
	key string
	val any
}

// settings is the full version-15 settings template the target editor
// expects, with the document's scalars spliced in.
func (d *LevelDocument) settings() []settingEntry {
	relativeTo := d.RelativeTo
	if relativeTo == "" {
		relativeTo = "Player"
	}
	return []settingEntry{
		{"version", 15},
		{"artist", ""},
		{"specialArtistType", "None"},
		{"artistPermission", ""},
		{"song", ""},
		{"author", ""},
		{"separateCountdownTime", true},
		{"previewImage", ""},
		{"previewIcon", ""},
		{"previewIconColor", "003f52"},
		{"previewSongStart", 0},
		{"previewSongDuration", 10},
		{"seizureWarning", false},
		{"levelDesc", d.LevelDesc},
		{"levelTags", d.LevelTags},
		{"artistLinks", ""},
		{"speedTrialAim", 0},
		{"difficulty", 1},
		{"requiredMods", []any{}},
		{"songFilename", ""},
		{"bpm", d.BPM},
		{"volume", 100},
		{"offset", 0},
		{"pitch", 100},
		{"hitsound", "Kick"},
		{"hitsoundVolume", 100},
		{"countdownTicks", 4},
		{"tileShape", "Short"},
		{"trackColorType", "Single"},
		{"trackColor", d.TrackColor.Hex()},
		{"secondaryTrackColor", "ffffff"},
		{"trackColorAnimDuration", 2},
		{"trackColorPulse", "None"},
		{"trackPulseLength", 10},
		{"trackStyle", "Minimal"},
		{"trackTexture", ""},
		{"trackTextureScale", 1},
		{"trackGlowIntensity", 100},
		{"trackAnimation", "None"},
		{"beatsAhead", 3},
		{"trackDisappearAnimation", "None"},
		{"beatsBehind", 4},
		{"backgroundColor", "000000"},
		{"showDefaultBGIfNoImage", true},
		{"showDefaultBGTile", true},
		{"defaultBGTileColor", "101121"},
		{"defaultBGShapeType", "Default"},
		{"defaultBGShapeColor", "ffffff"},
		{"bgImage", ""},
		{"bgImageColor", "ffffff"},
		{"parallax", []any{100, 100}},
		{"bgDisplayMode", "FitToScreen"},
		{"imageSmoothing", true},
		{"lockRot", false},
		{"loopBG", false},
		{"scalingRatio", 100},
		{"relativeTo", relativeTo},
		{"position", []any{d.Position[0], d.Position[1]}},
		{"rotation", 0},
		{"zoom", d.Zoom},
		{"pulseOnFloor", true},
		{"startCamLowVFX", false},
		{"bgVideo", ""},
		{"loopVideo", false},
		{"vidOffset", 0},
		{"floorIconOutlines", false},
		{"stickToFloors", true},
		{"planetEase", "Linear"},
		{"planetEaseParts", 1},
		{"planetEasePartBehavior", "Mirror"},
		{"customClass", ""},
		{"defaultTextColor", "ffffff"},
		{"defaultTextShadowColor", "00000050"},
		{"congratsText", ""},
		{"perfectText", ""},
		{"legacyFlash", false},
		{"legacyCamRelativeTo", false},
		{"legacySpriteTiles", false},
		{"legacyTween", false},
		{"disableV15Features", false},
	}
}

// formatValue renders a settings value the way the editor's files do:
// lowercase booleans, bare numbers, quoted strings.
func formatValue(val any) string {
	switch v := val.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case float64:
		return formatFloat(v)
	case string:
		return "\"" + v + "\""
	case []any:
		items := make([]string, len(v))
		for i := range v {
			items[i] = formatValue(v[i])
		}
		return "[" + strings.Join(items, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// beatToAngleOffset converts beats to the 180-degrees-per-beat angle
// offset the file format uses, rounded to a microdegree so binary float
// noise never leaks into the output. Rounding preserves monotonicity.
func beatToAngleOffset(beat float64) float64 {
	return math.Round(beat*180*1e6) / 1e6
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}
