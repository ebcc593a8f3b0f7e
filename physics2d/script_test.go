package physics2d

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/crossdim"
)

func newScriptedRenderer(t *testing.T, script string) (*Renderer, *Mouse, *World, *Script) {
	t.Helper()
	l, w := newTestWorld()
	m := l.CreateMouse(nil).(*Mouse)
	m.read = func() (int, int, bool) { return 0, 0, false }
	r := l.CreateRenderer(crossdim.RendererSpec{Engine: w, Mouse: m, Options: crossdim.DefaultSceneConfig().RenderOptions}).(*Renderer)
	s, err := LoadScript([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	r.SetScript(s)
	l.RunRenderer(r, nil)
	return r, m, w, s
}

// addBody adds a tagged body to w and returns it.
func addBody(l *Library, w *World, h crossdim.Handle, tag crossdim.ShapeTag) *Body {
	l.Tag(h, tag)
	l.AddToWorld(w, []crossdim.Handle{h})
	return h.(*Body)
}

func TestLoadScript(t *testing.T) {
	s, err := LoadScript([]byte(`
steps:
  - settle: 300
  - click: {shape: circle}
  - drag: {from: {body: 3}, to: {x: 400, y: 80}, frames: 30}
  - worldSteps: 120
  - frames: 2
  - screenshot: thrown
  - quit: true
`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.actions) != 7 {
		t.Fatalf("expected 7 actions, got %d", len(s.actions))
	}
	if a, ok := s.actions[0].(*settleAction); !ok || a.max != 300 {
		t.Errorf("action 0 = %#v", s.actions[0])
	}
	if a, ok := s.actions[1].(*clickAction); !ok || a.target.Shape != "circle" {
		t.Errorf("action 1 = %#v", s.actions[1])
	}
	if a, ok := s.actions[2].(*dragAction); !ok || a.From.Body != 3 || a.To != (Point{400, 80}) || a.Frames != 30 {
		t.Errorf("action 2 = %#v", s.actions[2])
	}
	if a, ok := s.actions[3].(*waitSteps); !ok || a.n != 120 {
		t.Errorf("action 3 = %#v", s.actions[3])
	}
	if a, ok := s.actions[4].(*waitFrames); !ok || a.left != 2 {
		t.Errorf("action 4 = %#v", s.actions[4])
	}
	if a, ok := s.actions[5].(screenshotAction); !ok || a != "thrown" {
		t.Errorf("action 5 = %#v", s.actions[5])
	}
	if _, ok := s.actions[6].(quitAction); !ok {
		t.Errorf("action 6 = %#v", s.actions[6])
	}
}

func TestLoadScriptJSON(t *testing.T) {
	s, err := LoadScript([]byte(`{"steps": [{"drag": {"from": {"at": {"x": 1, "y": 2}}, "to": {"x": 9, "y": 2}, "frames": 4}}]}`))
	if err != nil {
		t.Fatal(err)
	}
	a, ok := s.actions[0].(*dragAction)
	if !ok || a.From.At == nil || *a.From.At != (Point{1, 2}) || a.To.X != 9 || a.Frames != 4 {
		t.Errorf("action = %#v", s.actions[0])
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", "steps: ["},
		{"empty", "steps: []"},
		{"no action", "steps:\n  - {}"},
		{"unknown action", "steps:\n  - dance: 1"},
		{"two actions", "steps:\n  - {frames: 2, quit: true}"},
		{"empty target", "steps:\n  - click: {}"},
		{"ambiguous target", "steps:\n  - click: {body: 1, shape: circle}"},
		{"rope is not a body", "steps:\n  - click: {shape: rope}"},
		{"drag without from", "steps:\n  - drag: {to: {x: 1, y: 1}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScript([]byte(tt.data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestScriptClicksBodyByShape(t *testing.T) {
	r, m, w, s := newScriptedRenderer(t, `
steps:
  - click: {shape: circle}
  - screenshot: after
`)
	l := New(DefaultSettings())
	addBody(l, w, l.Rectangle(0, 0, 10, 10, crossdim.DefaultBodyOptions()), crossdim.ShapeRectangle)
	addBody(l, w, l.Circle(50, 60, 5, crossdim.DefaultBodyOptions()), crossdim.ShapeCircle)

	// Frame 1: the click is queued at the circle and its press consumed.
	if err := r.Update(); err != nil {
		t.Fatal(err)
	}
	pos, pressed, _, _ := m.snapshot()
	if !pressed || pos.X != 50 || pos.Y != 60 {
		t.Errorf("after frame 1: pos=%v pressed=%v, want pressed at the circle", pos, pressed)
	}

	// Frames 2 and 3: the release is delivered, then the click finishes.
	r.Update()
	r.Update()
	if len(r.screenshotQueue) != 0 {
		t.Error("script advanced before the click was delivered")
	}

	r.Update()
	if len(r.screenshotQueue) != 1 || r.screenshotQueue[0] != "after" {
		t.Errorf("screenshot queue = %v", r.screenshotQueue)
	}
	if !s.Done() {
		t.Error("script should be done")
	}
}

func TestScriptDragsBodyByID(t *testing.T) {
	r, m, w, _ := newScriptedRenderer(t, `
steps:
  - drag: {from: {body: 1}, to: {x: 90, y: 10}, frames: 2}
`)
	l := New(DefaultSettings())
	b := addBody(l, w, l.Circle(20, 30, 5, crossdim.DefaultBodyOptions()), crossdim.ShapeCircle)
	if b.ID != 1 {
		t.Fatalf("first body ID = %d, want 1", b.ID)
	}

	r.Update()
	pos, pressed, _, _ := m.snapshot()
	if !pressed || pos.X != 20 || pos.Y != 30 {
		t.Errorf("drag should start pressed at the body, got pos=%v pressed=%v", pos, pressed)
	}
	for m.Pending() > 0 {
		r.Update()
	}
	pos, pressed, _, _ = m.snapshot()
	if pressed || pos.X != 90 || pos.Y != 10 {
		t.Errorf("drag should end released at (90, 10), got pos=%v pressed=%v", pos, pressed)
	}
}

func TestScriptMissingTargetIsSkipped(t *testing.T) {
	r, m, _, s := newScriptedRenderer(t, `
steps:
  - click: {body: 99}
`)
	r.Update()
	if !s.Done() {
		t.Error("a click on a missing body should finish at once")
	}
	if m.Pending() != 0 {
		t.Errorf("Pending = %d, want no injected input", m.Pending())
	}
}

func TestScriptWaitsOnWorldSteps(t *testing.T) {
	r, _, w, s := newScriptedRenderer(t, `
steps:
  - worldSteps: 3
  - quit: true
`)
	r.Update()
	w.Step(1.0 / 60)
	w.Step(1.0 / 60)
	r.Update()
	if s.next != 0 {
		t.Fatal("wait finished before the world stepped enough")
	}
	w.Step(1.0 / 60)
	r.Update()
	if s.next != 1 {
		t.Fatal("wait should finish once the world has stepped 3 times")
	}
	r.Update()
	if err := r.Update(); err != ebiten.Termination {
		t.Errorf("Update after quit = %v, want Termination", err)
	}
}

func TestScriptSettle(t *testing.T) {
	t.Run("static world", func(t *testing.T) {
		r, _, w, s := newScriptedRenderer(t, "steps:\n  - settle: 100\n")
		l := New(DefaultSettings())
		addBody(l, w, l.Rectangle(0, 0, 10, 10, crossdim.BodyOptions{IsStatic: true}), crossdim.ShapeRectangle)
		if !w.Settled() {
			t.Fatal("a world of static bodies is settled")
		}
		r.Update()
		if !s.Done() {
			t.Error("settle should finish at once")
		}
	})
	t.Run("awake body", func(t *testing.T) {
		r, _, w, s := newScriptedRenderer(t, "steps:\n  - settle: 2\n")
		l := New(DefaultSettings())
		addBody(l, w, l.Circle(0, 0, 5, crossdim.DefaultBodyOptions()), crossdim.ShapeCircle)
		if w.Settled() {
			t.Fatal("a new dynamic body is awake")
		}
		r.Update()
		if s.Done() {
			t.Fatal("settle finished while a body was awake")
		}
		r.Update()
		if !s.Done() {
			t.Error("settle should give up after its frame limit")
		}
	})
}

func TestScriptWaitAndQuit(t *testing.T) {
	r, _, _, s := newScriptedRenderer(t, `
steps:
  - frames: 3
  - quit: true
`)
	for i := range 3 {
		if err := r.Update(); err != nil {
			t.Fatalf("frame %d: %v", i+1, err)
		}
	}
	if s.Done() {
		t.Fatal("script finished before quitting")
	}
	r.Update()
	if !s.Done() {
		t.Error("script should be done after quit")
	}
	if err := r.Update(); err != ebiten.Termination {
		t.Errorf("Update after quit = %v, want Termination", err)
	}
}

func TestShotName(t *testing.T) {
	tests := []struct {
		step  uint64
		label string
		want  string
	}{
		{0, "", "step000000.png"},
		{12, "  ", "step000012.png"},
		{120, "After Drag", "step000120-after-drag.png"},
		{7, "a/b.c", "step000007-a-b-c.png"},
	}
	for _, tt := range tests {
		if got := shotName(tt.step, tt.label); got != tt.want {
			t.Errorf("shotName(%d, %q) = %q, want %q", tt.step, tt.label, got, tt.want)
		}
	}
}

func TestSaveShotWritesStraightAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{0x80, 0x40, 0x00, 0x80}) // half-transparent orange, premultiplied
	img.SetRGBA(1, 0, color.RGBA{0xff, 0xff, 0xff, 0xff})

	dir := filepath.Join(t.TempDir(), "shots")
	path, err := saveShot(dir, "step000001-test.png", img)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "step000001-test.png") {
		t.Errorf("path = %q", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("bounds = %v", decoded.Bounds())
	}
	if got := color.NRGBAModel.Convert(decoded.At(0, 0)); got != (color.NRGBA{0xff, 0x7f, 0x00, 0x80}) {
		t.Errorf("pixel 0 = %v", got)
	}
	if got := color.NRGBAModel.Convert(decoded.At(1, 0)); got != (color.NRGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("pixel 1 = %v", got)
	}
}
