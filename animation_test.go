package crossdim

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenBodyReachesTarget(t *testing.T) {
	e, _ := newFakeEngine(t)
	b := e.Circle(10, 20, 5)

	tw := TweenBody(b, 100, 200, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	tw.Update(0.5)
	if tw.Done {
		t.Fatal("Done before the full duration")
	}
	p := b.NativePosition()
	if math.Abs(p.X-55) > 0.5 || math.Abs(p.Y-110) > 0.5 {
		t.Errorf("midpoint = %+v, want ~(55, 110)", p)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("expected Done after full duration")
	}
	p = b.NativePosition()
	if math.Abs(p.X-100) > 0.5 || math.Abs(p.Y-200) > 0.5 {
		t.Errorf("end = %+v, want ~(100, 200)", p)
	}
	if b.Position != (Vector2{}) {
		t.Error("tween should write through to the native body only")
	}
}

func TestTweenBodyStopsWhenDone(t *testing.T) {
	e, _ := newFakeEngine(t)
	b := e.Circle(0, 0, 5)
	tw := TweenBody(b, 10, 0, 0.5, ease.OutQuad)
	tw.Update(1)
	if !tw.Done {
		t.Fatal("expected Done")
	}

	b.SetPosition(-5, -5)
	tw.Update(1)
	if p := b.NativePosition(); p != (Vector2{-5, -5}) {
		t.Errorf("finished tween moved the body to %+v", p)
	}
}

func TestTweenBodyDefaultsToLinear(t *testing.T) {
	e, _ := newFakeEngine(t)
	b := e.Circle(0, 0, 5)
	tw := TweenBody(b, 100, 0, 1, nil)
	tw.Update(0.25)
	if x := b.NativePosition().X; math.Abs(x-25) > 0.5 {
		t.Errorf("x = %v, want ~25", x)
	}
}
