package mengine

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

type recordSink struct {
	events []SpriteEvent
}

func (r *recordSink) EmitEvent(ev SpriteEvent) { r.events = append(r.events, ev) }

func (r *recordSink) types() []SpriteEventType {
	out := make([]SpriteEventType, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

func newZ(name string, z int) *Sprite {
	return NewSprite(name, StaticResource(fakeImage{10, 10}), Vec2{}, Vec2{}, z, arena, BoundsNone)
}

func names(e *Engine) string {
	var parts []string
	for _, s := range e.Sprites() {
		parts = append(parts, s.Name())
	}
	return strings.Join(parts, ",")
}

func TestEngineAddSpriteOrdersByZ(t *testing.T) {
	e := NewEngine()
	e.AddSprite(newZ("five", 5))
	e.AddSprite(newZ("one", 1))
	e.AddSprite(newZ("three", 3))
	if got := names(e); got != "one,three,five" {
		t.Errorf("order = %s, want one,three,five", got)
	}

	// Equal z-order keeps insertion order.
	e.AddSprite(newZ("three-b", 3))
	e.AddSprite(newZ("zero", 0))
	if got := names(e); got != "zero,one,three,three-b,five" {
		t.Errorf("order = %s, want zero,one,three,three-b,five", got)
	}
	if e.Len() != 5 {
		t.Errorf("Len = %d, want 5", e.Len())
	}
}

func TestEngineAddNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AddSprite(nil) should panic")
		}
	}()
	NewEngine().AddSprite(nil)
}

func TestEngineLookups(t *testing.T) {
	e := NewEngine()
	a, b := newZ("a", 0), newZ("b", 1)
	e.AddSprite(a)
	e.AddSprite(b)

	if got, ok := e.Sprite(b.ID()); !ok || got != b {
		t.Errorf("Sprite(b) = %v, %v", got, ok)
	}
	if i, ok := e.IndexOfSprite(b.ID()); !ok || i != 1 {
		t.Errorf("IndexOfSprite(b) = %d, %v; want 1, true", i, ok)
	}
	if _, ok := e.Sprite("missing"); ok {
		t.Error("Sprite(missing) should report false")
	}
	if i, ok := e.IndexOfSprite("missing"); ok || i != -1 {
		t.Errorf("IndexOfSprite(missing) = %d, %v", i, ok)
	}
	if !e.ContainsSprite(a.ID()) || e.ContainsSprite("missing") {
		t.Error("ContainsSprite mismatch")
	}
	if e.MustSprite(a.ID()) != a {
		t.Error("MustSprite returned the wrong sprite")
	}
}

func TestEngineMustSpritePanicsAndLogs(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(log.New(&buf))
	defer SetLogger(nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("MustSprite on a missing id should panic")
		}
		if !strings.Contains(r.(string), "ghost") {
			t.Errorf("panic = %v, want it to name the id", r)
		}
		if !strings.Contains(buf.String(), "required sprite missing") {
			t.Errorf("log = %q, want an error line", buf.String())
		}
	}()
	NewEngine().MustSprite("ghost")
}

func TestEngineSpawnWaitsForNextTick(t *testing.T) {
	e := NewEngine()
	var updates int
	counting := UpdateFunc(func(s *Sprite, a SpriteAction) SpriteAction {
		updates++
		return a
	})

	parent := newZ("parent", 1)
	spawned := false
	parent.SetBehavior(&spawnOnce{
		spawn: func(s *Sprite) *Sprite {
			child := newZ("child", 0)
			child.SetBehavior(counting)
			return child
		},
		done: &spawned,
	})
	e.AddSprite(parent)

	e.UpdateSprites()
	if !spawned || e.Len() != 2 {
		t.Fatalf("after tick 1: spawned %v, len %d", spawned, e.Len())
	}
	if updates != 0 {
		t.Errorf("child updated %d times in the tick it was spawned", updates)
	}
	if got := names(e); got != "child,parent" {
		t.Errorf("order = %s, want child,parent", got)
	}

	e.UpdateSprites()
	if updates != 1 {
		t.Errorf("child updated %d times after tick 2, want 1", updates)
	}
}

// spawnOnce requests a single child on its first update.
type spawnOnce struct {
	spawn func(*Sprite) *Sprite
	done  *bool
}

func (b *spawnOnce) Update(_ *Sprite, a SpriteAction) SpriteAction {
	if *b.done || a != ActionNone {
		return a
	}
	*b.done = true
	return ActionAddSprite
}

func (b *spawnOnce) AddSprite(s *Sprite) *Sprite { return b.spawn(s) }

func TestEngineKillRemovesAndNotifiesOnce(t *testing.T) {
	e := NewEngine()
	sink := &recordSink{}
	e.SetEventSink(sink)

	a, b, c := newZ("a", 0), newZ("b", 0), newZ("c", 0)
	for _, s := range []*Sprite{a, b, c} {
		e.AddSprite(s)
	}

	var dying []string
	e.OnSpriteDying = func(s *Sprite) {
		if !e.ContainsSprite(s.ID()) {
			t.Errorf("%s already removed when OnSpriteDying ran", s.Name())
		}
		dying = append(dying, s.Name())
	}

	if !e.KillSprite(b.ID()) {
		t.Fatal("KillSprite(b) = false")
	}
	if e.KillSprite("missing") {
		t.Error("KillSprite(missing) = true")
	}
	// Still present until the next tick.
	if !e.ContainsSprite(b.ID()) {
		t.Fatal("killed sprite removed before the tick")
	}

	e.UpdateSprites()
	e.UpdateSprites()

	if got := names(e); got != "a,c" {
		t.Errorf("remaining = %s, want a,c", got)
	}
	if len(dying) != 1 || dying[0] != "b" {
		t.Errorf("OnSpriteDying calls = %v, want [b]", dying)
	}

	var dyingEvents int
	for _, ev := range sink.events {
		if ev.Type == EventSpriteDying {
			dyingEvents++
			if ev.SpriteID != b.ID() || ev.Tick != 0 {
				t.Errorf("dying event = %+v", ev)
			}
		}
	}
	if dyingEvents != 1 {
		t.Errorf("dying events = %d, want 1", dyingEvents)
	}
}

func TestEngineRemovesOnlyTheDeadSpriteOfSharedID(t *testing.T) {
	e := NewEngine()
	a, b := newZ("a", 0), newZ("b", 0)
	a.SetID("shared")
	b.SetID("shared")
	e.AddSprite(a)
	e.AddSprite(b)

	b.Kill()
	e.UpdateSprites()

	if got := names(e); got != "a" {
		t.Errorf("remaining = %s, want a", got)
	}
}

func TestEngineDieBoundsRemovesSprite(t *testing.T) {
	e := NewEngine()
	m := NewSprite("missile", StaticResource(fakeImage{5, 5}), Vec2{X: 50, Y: 98}, Vec2{Y: 3}, 0, arena, BoundsDie)
	e.AddSprite(m)

	var died *Sprite
	e.OnSpriteDying = func(s *Sprite) { died = s }

	e.UpdateSprites() // y 101: fully out, killed
	if died != m {
		t.Fatalf("OnSpriteDying got %v, want the missile", died)
	}
	if !m.Dying() {
		t.Error("killed sprite should be flagged dying")
	}
	if e.Len() != 0 {
		t.Errorf("Len = %d, want 0", e.Len())
	}
}

func TestEngineDyingHookMaySpawn(t *testing.T) {
	e := NewEngine()
	m := newZ("missile", 0)
	e.AddSprite(m)
	e.OnSpriteDying = func(s *Sprite) {
		boom := newZ("explosion", 0)
		boom.SetPosition(s.Position().X, s.Position().Y)
		e.AddSprite(boom)
	}
	m.Kill()
	e.UpdateSprites()
	if got := names(e); got != "explosion" {
		t.Errorf("sprites = %s, want explosion", got)
	}
}

func TestEngineCollisionRollback(t *testing.T) {
	e := NewEngine()
	wall := NewSprite("wall", StaticResource(fakeImage{12, 12}), Vec2{X: 50, Y: 0}, Vec2{}, 0, arena, BoundsNone)
	ball := NewSprite("ball", StaticResource(fakeImage{12, 12}), Vec2{X: 30, Y: 0}, Vec2{X: 10}, 0, arena, BoundsNone)
	e.AddSprite(wall)
	e.AddSprite(ball)

	var hits [][2]string
	e.OnSpriteCollision = func(hitter, hittee *Sprite) bool {
		hits = append(hits, [2]string{hitter.Name(), hittee.Name()})
		return hittee == ball
	}

	e.UpdateSprites() // ball at 40: hit-box (41..51) reaches wall hit-box (51..61)
	if len(hits) != 1 || hits[0] != [2]string{"wall", "ball"} {
		t.Fatalf("hits = %v, want [[wall ball]]", hits)
	}

	p := ball.Position()
	if p.X != 30 {
		t.Errorf("ball X = %v, want 30 after rollback", p.X)
	}
	if ball.Collision() != p.Inflate(-1, -1) {
		t.Errorf("collision %v not re-derived from %v", ball.Collision(), p)
	}
	if ball.Velocity() != (Vec2{X: 10}) {
		t.Errorf("rollback changed velocity to %v", ball.Velocity())
	}
}

func TestEngineCollisionAllowed(t *testing.T) {
	e := NewEngine()
	sink := &recordSink{}
	e.SetEventSink(sink)
	a := NewSprite("a", StaticResource(fakeImage{12, 12}), Vec2{X: 0}, Vec2{X: 5}, 0, arena, BoundsNone)
	b := NewSprite("b", StaticResource(fakeImage{12, 12}), Vec2{X: 14}, Vec2{}, 0, arena, BoundsNone)
	e.AddSprite(a)
	e.AddSprite(b)

	e.UpdateSprites()
	if a.Position().X != 5 {
		t.Errorf("a X = %v, want 5 (nil hook allows moves)", a.Position().X)
	}
	var collisions int
	for _, ev := range sink.events {
		if ev.Type == EventSpriteCollision {
			collisions++
			if ev.Blocked {
				t.Errorf("collision marked blocked: %+v", ev)
			}
		}
	}
	if collisions == 0 {
		t.Error("no collision event emitted")
	}
}

func TestEngineCheckSpriteCollisionReportsFirstHitOnly(t *testing.T) {
	e := NewEngine()
	s := newZ("s", 0)
	o1, o2 := newZ("o1", 1), newZ("o2", 2)
	far := newZ("far", 3)
	far.SetPosition(80, 80)
	for _, x := range []*Sprite{s, o1, o2, far} {
		e.AddSprite(x)
	}

	var hitters []string
	e.OnSpriteCollision = func(hitter, hittee *Sprite) bool {
		hitters = append(hitters, hitter.Name())
		return true
	}
	if !e.CheckSpriteCollision(s) {
		t.Error("CheckSpriteCollision should report the block")
	}
	if len(hitters) != 1 || hitters[0] != "o1" {
		t.Errorf("hitters = %v, want [o1]", hitters)
	}
	if e.CheckSpriteCollision(far) {
		t.Error("isolated sprite reported a collision")
	}
}

func TestEngineEventStream(t *testing.T) {
	e := NewEngine()
	sink := &recordSink{}
	e.SetEventSink(sink)

	s := newZ("s", 0)
	e.AddSprite(s)
	e.UpdateSprites()
	s.Kill()
	e.UpdateSprites()

	got := sink.types()
	want := []SpriteEventType{EventSpriteAdded, EventSpriteDying}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if sink.events[1].Tick != 1 {
		t.Errorf("dying tick = %d, want 1", sink.events[1].Tick)
	}
	if e.Tick() != 2 {
		t.Errorf("Tick = %d, want 2", e.Tick())
	}
}

func TestEngineSpriteAtSkipsHidden(t *testing.T) {
	e := NewEngine()
	back, front := newZ("back", 0), newZ("front", 1)
	e.AddSprite(back)
	e.AddSprite(front)

	if got := e.SpriteAt(5, 5); got != back {
		t.Errorf("SpriteAt = %v, want back", got)
	}
	back.SetHidden(true)
	if got := e.SpriteAt(5, 5); got != front {
		t.Errorf("SpriteAt with back hidden = %v, want front", got)
	}
	if got := e.SpriteAt(50, 50); got != nil {
		t.Errorf("SpriteAt empty spot = %v, want nil", got)
	}
}

func TestEngineDrawSpritesInOrder(t *testing.T) {
	e := NewEngine()
	imgA, imgB := fakeImage{10, 10}, fakeImage{20, 20}
	e.AddSprite(NewSprite("b", StaticResource(imgB), Vec2{}, Vec2{}, 2, arena, BoundsNone))
	e.AddSprite(NewSprite("a", StaticResource(imgA), Vec2{}, Vec2{}, 1, arena, BoundsNone))

	c := &recordCanvas{}
	e.DrawSprites(c)
	if len(c.calls) != 2 || c.calls[0].img != imgA || c.calls[1].img != imgB {
		t.Errorf("draw order wrong: %+v", c.calls)
	}
}

func TestEngineCleanUpSprites(t *testing.T) {
	e := NewEngine()
	called := false
	e.OnSpriteDying = func(*Sprite) { called = true }
	e.AddSprite(newZ("a", 0))
	e.AddSprite(newZ("b", 0))
	e.CleanUpSprites()
	if e.Len() != 0 {
		t.Errorf("Len = %d, want 0", e.Len())
	}
	if called {
		t.Error("CleanUpSprites should not fire OnSpriteDying")
	}
}

func TestEngineDebugModeLogsTicks(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf)
	l.SetLevel(log.DebugLevel)
	SetLogger(l)
	defer SetLogger(nil)

	e := NewEngine()
	e.AddSprite(newZ("a", 0))
	e.UpdateSprites()
	if buf.Len() != 0 {
		t.Fatalf("logged without debug mode: %q", buf.String())
	}

	e.SetDebugMode(true)
	e.UpdateSprites()
	out := buf.String()
	if !strings.Contains(out, "tick") || !strings.Contains(out, "sprites=1") {
		t.Errorf("debug log = %q, want tick stats", out)
	}
}
