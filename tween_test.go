package mengine

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenPositionReachesTarget(t *testing.T) {
	s := newBox(10, 20, 0, 0, BoundsNone)

	g := TweenPosition(s, 100, 200, 1.0, ease.Linear)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	p := s.Position()
	if math.Abs(p.X-100) > 0.5 {
		t.Errorf("X = %f, want ~100", p.X)
	}
	if math.Abs(p.Y-200) > 0.5 {
		t.Errorf("Y = %f, want ~200", p.Y)
	}
}

func TestTweenPositionKeepsCollisionInSync(t *testing.T) {
	s := NewSprite("s", StaticResource(fakeImage{24, 12}), Vec2{}, Vec2{}, 0, arena, BoundsNone)

	g := TweenPosition(s, 48, 0, 1.0, ease.Linear)
	g.Update(0.5)

	p := s.Position()
	if got, want := s.Collision(), p.Inflate(-2, -1); got != want {
		t.Errorf("Collision = %v, want %v", got, want)
	}
}

func TestTweenVelocityInterpolates(t *testing.T) {
	s := newBox(0, 0, 0, 10, BoundsNone)

	g := TweenVelocity(s, 8, 0, 1.0, ease.Linear)

	// Halfway through.
	g.Update(0.5)
	if g.Done {
		t.Fatal("should not be done at halfway")
	}
	if v := s.Velocity(); math.Abs(v.X-4) > 0.05 || math.Abs(v.Y-5) > 0.05 {
		t.Errorf("Velocity = %v, want ~{4 5} at halfway", v)
	}

	// Finish.
	g.Update(0.5)
	if !g.Done {
		t.Fatal("should be done after full duration")
	}
	if v := s.Velocity(); math.Abs(v.X-8) > 0.01 || math.Abs(v.Y) > 0.01 {
		t.Errorf("Velocity = %v, want ~{8 0}", v)
	}
}

func TestTweenLayerSpeedReachesTarget(t *testing.T) {
	l := newLayer(0, 0)

	g := TweenLayerSpeed(l, 4, 0.5, ease.Linear)
	g.Update(0.25)
	g.Update(0.25)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(l.Speed()-4) > 0.01 {
		t.Errorf("Speed = %f, want ~4", l.Speed())
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	s := newBox(0, 0, 0, 0, BoundsNone)
	g := TweenPosition(s, 50, 50, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}

	// Partway through, not done.
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}

	// Complete.
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}

	// Update after done should be a no-op, not panic.
	g.Update(0.1)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupDyingSprite(t *testing.T) {
	s := newBox(10, 20, 0, 0, BoundsNone)

	g := TweenPosition(s, 100, 200, 1.0, ease.Linear)

	// Kill the sprite before tweening.
	s.Kill()

	g.Update(0.1)

	if !g.Done {
		t.Fatal("expected Done after dying sprite detected")
	}
	// Values should not have changed.
	if p := s.Position(); p.X != 10 || p.Y != 20 {
		t.Errorf("position changed to (%f, %f) on dying sprite", p.X, p.Y)
	}
}

func TestTweenGroupDyingMidAnimation(t *testing.T) {
	s := newBox(0, 0, 0, 0, BoundsNone)

	g := TweenPosition(s, 100, 100, 1.0, ease.Linear)

	// Run a few frames.
	g.Update(0.1)
	g.Update(0.1)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	s.Kill()
	saved := s.Position()

	g.Update(0.1)
	if !g.Done {
		t.Fatal("expected Done after sprite died mid-animation")
	}
	if s.Position() != saved {
		t.Error("position should not change after the sprite died")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	// Spot-check: linear vs OutCubic at the midpoint should differ.
	sL := newBox(0, 0, 0, 0, BoundsNone)
	sC := newBox(0, 0, 0, 0, BoundsNone)

	gL := TweenPosition(sL, 100, 0, 1.0, ease.Linear)
	gC := TweenPosition(sC, 100, 0, 1.0, ease.OutCubic)

	// Advance to midpoint.
	gL.Update(0.5)
	gC.Update(0.5)

	// OutCubic should be ahead of linear at midpoint.
	if math.Abs(sL.Position().X-sC.Position().X) < 1.0 {
		t.Errorf("easing curves should produce different values at midpoint: linear=%f cubic=%f",
			sL.Position().X, sC.Position().X)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	s := newBox(0, 0, 0, 0, BoundsNone)
	g := TweenPosition(s, 100, 100, 1.0, ease.Linear)

	// Warm up; the first call might differ.
	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}
