package mengine

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventKind identifies a kind of host input event.
type EventKind uint8

const (
	EventMouseMove EventKind = iota // pointer moved; X, Y hold the new position
	EventClick                      // left button pressed; X, Y hold the position
	EventKeyDown                    // Key was pressed this tick
	EventKeyUp                      // Key was released this tick
)

// Event is a discrete input event in logical screen coordinates.
type Event struct {
	Kind EventKind
	X, Y float64
	Key  ebiten.Key
}

// inputState tracks what is needed to turn polled ebiten input into events.
type inputState struct {
	lastX, lastY int
	seen         bool
	keys         []ebiten.Key
}

// poll appends this tick's events to buf. toLogical maps window pixels to
// logical coordinates.
func (st *inputState) poll(buf []Event, toLogical func(x, y int) (float64, float64)) []Event {
	cx, cy := ebiten.CursorPosition()
	if !st.seen || cx != st.lastX || cy != st.lastY {
		lx, ly := toLogical(cx, cy)
		if st.seen {
			buf = append(buf, Event{Kind: EventMouseMove, X: lx, Y: ly})
		}
		st.lastX, st.lastY, st.seen = cx, cy, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		lx, ly := toLogical(cx, cy)
		buf = append(buf, Event{Kind: EventClick, X: lx, Y: ly})
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		tx, ty := ebiten.TouchPosition(id)
		lx, ly := toLogical(tx, ty)
		buf = append(buf, Event{Kind: EventClick, X: lx, Y: ly})
	}

	st.keys = inpututil.AppendJustPressedKeys(st.keys[:0])
	for _, k := range st.keys {
		buf = append(buf, Event{Kind: EventKeyDown, Key: k})
	}
	st.keys = inpututil.AppendJustReleasedKeys(st.keys[:0])
	for _, k := range st.keys {
		buf = append(buf, Event{Kind: EventKeyUp, Key: k})
	}
	return buf
}
