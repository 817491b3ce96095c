package mengine

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNoFrames is returned when an atlas has no frames matching a prefix.
var ErrNoFrames = errors.New("mengine: no atlas frames")

// Atlas maps frame names to source rectangles within one sprite-sheet image.
type Atlas struct {
	// Image is the sprite sheet the regions refer to.
	Image   Image
	regions map[string]Rect
}

// Region returns the rectangle for the given frame name.
func (a *Atlas) Region(name string) (Rect, bool) {
	r, ok := a.regions[name]
	return r, ok
}

// Len returns the number of frames in the atlas.
func (a *Atlas) Len() int {
	return len(a.regions)
}

// Frames returns the regions whose names start with prefix, ordered by name.
// Name frames with zero-padded indices ("walk_00", "walk_01", ...) to get
// them in playback order.
func (a *Atlas) Frames(prefix string) []Rect {
	names := make([]string, 0, len(a.regions))
	for name := range a.regions {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	frames := make([]Rect, len(names))
	for i, name := range names {
		frames[i] = a.regions[name]
	}
	return frames
}

// Animation builds a stopped animation from the frames matching prefix.
func (a *Atlas) Animation(prefix string, fps float64) (*Animation, error) {
	frames := a.Frames(prefix)
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: prefix %q", ErrNoFrames, prefix)
	}
	return NewAnimation(a.Image, frames, fps), nil
}

// LoadAtlas parses TexturePacker JSON data for a single sheet image.
// Supports both the hash format ("frames" object keyed by name) and the array
// format ("frames" list with a "filename" per entry).
func LoadAtlas(jsonData []byte, img Image) (*Atlas, error) {
	var probe struct {
		Frames json.RawMessage `json:"frames"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("mengine: failed to parse atlas JSON: %w", err)
	}
	if probe.Frames == nil {
		return nil, fmt.Errorf("mengine: atlas JSON has no \"frames\" key")
	}

	atlas := &Atlas{Image: img, regions: make(map[string]Rect)}

	var err error
	if trimmed := strings.TrimSpace(string(probe.Frames)); strings.HasPrefix(trimmed, "[") {
		err = parseArrayFrames(probe.Frames, atlas)
	} else {
		err = parseHashFrames(probe.Frames, atlas)
	}
	if err != nil {
		return nil, err
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Filename string   `json:"filename"`
	Frame    jsonRect `json:"frame"`
}

func parseHashFrames(raw json.RawMessage, atlas *Atlas) error {
	var frames map[string]jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("mengine: failed to parse atlas frames: %w", err)
	}
	for name, f := range frames {
		atlas.regions[name] = frameRect(f)
	}
	return nil
}

func parseArrayFrames(raw json.RawMessage, atlas *Atlas) error {
	var frames []jsonFrame
	if err := json.Unmarshal(raw, &frames); err != nil {
		return fmt.Errorf("mengine: failed to parse atlas frame list: %w", err)
	}
	for i, f := range frames {
		if f.Filename == "" {
			return fmt.Errorf("mengine: atlas frame %d has no filename", i)
		}
		atlas.regions[f.Filename] = frameRect(f)
	}
	return nil
}

func frameRect(f jsonFrame) Rect {
	return Rect{X: float64(f.Frame.X), Y: float64(f.Frame.Y), Width: float64(f.Frame.W), Height: float64(f.Frame.H)}
}
