package mengine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`

	key ebiten.Key
}

// scriptFile is the top-level JSON structure of an input script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays input events and screenshot requests across ticks for
// automated runs. Queued events are delivered one per tick, in logical
// screen coordinates.
//
// Supported actions:
//
//	click       EventClick at x, y
//	move        EventMouseMove to x, y
//	drag        EventMouseMove from fromX, fromY to toX, toY over frames ticks
//	key         EventKeyDown then EventKeyUp for key (an ebiten key name)
//	wait        idle for frames ticks
//	screenshot  capture the logical screen, named by label
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	queue     []Event
	done      bool
}

// LoadScript parses a JSON input script.
func LoadScript(data []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("mengine: parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("mengine: parse script: no steps")
	}
	for i := range file.Steps {
		st := &file.Steps[i]
		switch st.Action {
		case "click", "move", "drag", "wait", "screenshot":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("mengine: parse script: step %d: %w", i, err)
			}
		default:
			return nil, fmt.Errorf("mengine: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// LoadScriptFile reads and parses a JSON input script.
func LoadScriptFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mengine: read script: %w", err)
	}
	return LoadScript(data)
}

// Done reports whether every step has been executed and every queued event
// delivered.
func (s *Script) Done() bool {
	return s.done
}

// Step advances the script by one tick and appends at most one event to buf.
// Screenshot steps call shoot with their label.
func (s *Script) Step(buf []Event, shoot func(label string)) []Event {
	if s.done {
		return buf
	}
	if len(s.queue) > 0 {
		buf = append(buf, s.pop())
		s.finish()
		return buf
	}
	if s.waitCount > 0 {
		s.waitCount--
		s.finish()
		return buf
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return buf
	}

	st := s.steps[s.cursor]
	s.cursor++

	switch st.Action {
	case "screenshot":
		if shoot != nil {
			shoot(st.Label)
		}
	case "click":
		s.queue = append(s.queue, Event{Kind: EventClick, X: st.X, Y: st.Y})
	case "move":
		s.queue = append(s.queue, Event{Kind: EventMouseMove, X: st.X, Y: st.Y})
	case "drag":
		s.queueDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		s.queue = append(s.queue,
			Event{Kind: EventKeyDown, Key: st.key},
			Event{Kind: EventKeyUp, Key: st.key})
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if len(s.queue) > 0 {
		buf = append(buf, s.pop())
	}
	s.finish()
	return buf
}

// queueDrag queues pointer moves linearly interpolated from (fromX, fromY)
// to (toX, toY), both ends included. At least two moves are queued.
func (s *Script) queueDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	for i := range frames {
		t := float64(i) / float64(frames-1)
		s.queue = append(s.queue, Event{
			Kind: EventMouseMove,
			X:    fromX + (toX-fromX)*t,
			Y:    fromY + (toY-fromY)*t,
		})
	}
}

func (s *Script) pop() Event {
	ev := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue = s.queue[:len(s.queue)-1]
	return ev
}

func (s *Script) finish() {
	if s.cursor >= len(s.steps) && s.waitCount == 0 && len(s.queue) == 0 {
		s.done = true
	}
}
