package crossdim

import (
	"context"
	"errors"
	"image"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// scriptedLoader installs a value for each URL in ok and fails the rest.
type scriptedLoader struct {
	env *Environment
	ok  map[string]any

	mu    sync.Mutex
	calls []string
}

func (l *scriptedLoader) Load(_ context.Context, r Resource) LoadResult {
	l.mu.Lock()
	l.calls = append(l.calls, r.URL)
	l.mu.Unlock()
	v, ok := l.ok[r.URL]
	if !ok {
		return LoadResult{Err: errors.New("404")}
	}
	if img, isImg := v.(image.Image); isImg {
		return LoadResult{Success: true, Image: img}
	}
	l.env.Install(r.Library, v)
	return LoadResult{Success: true}
}

func (l *scriptedLoader) loads() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type alertLog struct {
	mu   sync.Mutex
	msgs []string
}

func (a *alertLog) Alert(msg string) {
	a.mu.Lock()
	a.msgs = append(a.msgs, msg)
	a.mu.Unlock()
}

func (a *alertLog) all() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

func newTestFactory(ok map[string]any) (*Factory, *scriptedLoader, *alertLog) {
	env := NewEnvironment()
	l := &scriptedLoader{env: env, ok: ok}
	a := &alertLog{}
	f := NewFactory(env, WithLoader(l), WithAlerter(a), WithLogger(zerolog.Nop()))
	return f, l, a
}

func TestTwoDimensionEngineLoadsMissingLibrary(t *testing.T) {
	n := newFakeNative()
	f, l, a := newTestFactory(map[string]any{DefaultPhysics2DURL: n})

	e := f.TwoDimensionEngine(context.Background(), DefaultConfig())
	if !e.Ready() || e.Native() != Native2D(n) {
		t.Fatalf("engine not bound to the loaded library: ready=%v", e.Ready())
	}
	if got := l.loads(); len(got) != 1 || got[0] != DefaultPhysics2DURL {
		t.Errorf("loads = %v", got)
	}
	if len(a.all()) != 0 {
		t.Errorf("unexpected alerts %v", a.all())
	}
}

func TestZeroConfigLoadsPhysics(t *testing.T) {
	n := newFakeNative()
	f, l, _ := newTestFactory(map[string]any{DefaultPhysics2DURL: n})

	e := f.TwoDimensionEngine(context.Background(), Config{})
	if !e.Ready() {
		t.Fatal("Config{} should load the 2D physics library")
	}
	if got := l.loads(); len(got) != 1 || got[0] != DefaultPhysics2DURL {
		t.Errorf("loads = %v, want the default URL", got)
	}
}

func TestAsyncLoadAbandonedOnCancel(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	stuck := LoadFunc(func(context.Context, Resource) LoadResult {
		<-release
		return LoadResult{Success: true}
	})
	a := &alertLog{}
	f := NewFactory(NewEnvironment(), WithLoader(stuck), WithAlerter(a), WithLogger(zerolog.Nop()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	done := make(chan *Engine2D, 1)
	go func() { done <- f.TwoDimensionEngine(ctx, Config{}) }()

	select {
	case e := <-done:
		if e.Ready() {
			t.Error("abandoned load should leave the engine degraded")
		}
		if got := a.all(); len(got) != 1 {
			t.Errorf("alerts = %v, want one", got)
		}
	case <-time.After(time.Second):
		t.Fatal("TwoDimensionEngine did not return after ctx was done")
	}
}

func TestInstalledLibraryShortCircuitsLoad(t *testing.T) {
	f, l, _ := newTestFactory(nil)
	f.Env.Install(LibraryPhysics2D, newFakeNative())

	for range 3 {
		if e := f.TwoDimensionEngine(context.Background(), DefaultConfig()); !e.Ready() {
			t.Fatal("engine should be ready")
		}
	}
	if got := l.loads(); len(got) != 0 {
		t.Errorf("loader called for an installed library: %v", got)
	}
}

func TestTwoDimensionEngineSkipPhysics(t *testing.T) {
	f, l, a := newTestFactory(nil)
	e := f.TwoDimensionEngine(context.Background(), Config{SkipPhysics: true})
	if e.Ready() {
		t.Error("engine without a library should be degraded")
	}
	if len(l.loads()) != 0 || len(a.all()) != 0 {
		t.Errorf("loads=%v alerts=%v, want none", l.loads(), a.all())
	}
}

func TestTwoDimensionEngineAlertsOnFailure(t *testing.T) {
	f, _, a := newTestFactory(nil)
	e := f.TwoDimensionEngine(context.Background(), Config{Physics2DURL: "http://bad/matter.js"})
	if e.Ready() {
		t.Error("engine should be degraded")
	}
	if got := a.all(); len(got) != 1 || got[0] != "Failed to load 2D physics" {
		t.Errorf("alerts = %v", got)
	}

	// Degraded engines still build scenes and bodies without panicking.
	s := e.NewScene(SceneConfig{})
	s.Add(e.Circle(0, 0, 1), e.Rope())
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	s.Stop()
}

func TestTwoDimensionEngineRejectsForeignLibrary(t *testing.T) {
	f, _, _ := newTestFactory(nil)
	f.Env.Install(LibraryPhysics2D, "not a native library")
	if e := f.TwoDimensionEngine(context.Background(), Config{}); e.Ready() {
		t.Error("engine over a non-Native2D value should be degraded")
	}
}

func TestThreeDimensionEngineLoadsSequentially(t *testing.T) {
	f, l, a := newTestFactory(map[string]any{DefaultRender3DURL: "three"})

	e := f.ThreeDimensionEngine(context.Background(), DefaultConfig())
	if got := l.loads(); len(got) != 2 || got[0] != DefaultPhysics3DURL || got[1] != DefaultRender3DURL {
		t.Errorf("loads = %v, want physics then renderer", got)
	}
	if got := a.all(); len(got) != 1 || got[0] != "Failed to load 3D physics" {
		t.Errorf("alerts = %v", got)
	}
	if e.Ready() {
		t.Error("3D engine without physics should not be ready")
	}
	if !f.Env.Has(LibraryRender3D) {
		t.Error("renderer should load even when physics fails")
	}
}

func TestThreeDimensionEngineBothFail(t *testing.T) {
	f, _, a := newTestFactory(nil)
	f.ThreeDimensionEngine(context.Background(), DefaultConfig())
	got := a.all()
	if len(got) != 2 || got[0] != "Failed to load 3D physics" || got[1] != "Failed to load 3D renderer" {
		t.Errorf("alerts = %v", got)
	}
}

func TestThreeDimensionEngineSkipsPhysics(t *testing.T) {
	f, l, a := newTestFactory(map[string]any{DefaultRender3DURL: "three"})
	e := f.ThreeDimensionEngine(context.Background(), Config{SkipPhysics: true})
	if got := l.loads(); len(got) != 1 || got[0] != DefaultRender3DURL {
		t.Errorf("loads = %v, want only the renderer", got)
	}
	if len(a.all()) != 0 {
		t.Errorf("alerts = %v, want none", a.all())
	}
	if e.Ready() {
		t.Error("engine without physics should not be ready")
	}
}

func TestThreeDimensionEngineNotSupported(t *testing.T) {
	f, _, _ := newTestFactory(nil)
	e := f.ThreeDimensionEngine(context.Background(), Config{})

	if v := e.NewVector3(1, 2, 3); *v != (Vector3{1, 2, 3}) {
		t.Errorf("NewVector3 = %+v", *v)
	}
	if v := e.NewVector2(1, 2); *v != (Vector2{1, 2}) {
		t.Errorf("NewVector2 = %+v", *v)
	}
	if _, err := e.NewRigidBody(); !errors.Is(err, ErrNotSupported) {
		t.Errorf("NewRigidBody err = %v, want ErrNotSupported", err)
	}
	if _, err := e.NewScene(DefaultSceneConfig()); !errors.Is(err, ErrNotSupported) {
		t.Errorf("NewScene err = %v, want ErrNotSupported", err)
	}
}

func TestEngine2DFactories(t *testing.T) {
	e, n := newFakeEngine(t)

	c := e.Circle(1, 2, 3)
	r := e.Rectangle(4, 5, 6, 7, Static(), Fill("#f00"))
	rope := e.Rope(RopeBodies(c, r))
	raw := e.NewRigidBody(func() Handle { return &fakeBody{kind: "custom"} })

	tests := []struct {
		name string
		body *RigidBody
		tag  ShapeTag
		kind string
	}{
		{"circle", c, ShapeCircle, "circle"},
		{"rectangle", r, ShapeRectangle, "rectangle"},
		{"rope", rope, ShapeRope, "constraint"},
		{"raw", raw, ShapeNone, "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := tt.body.Body.(*fakeBody)
			if tt.body.Shape != tt.tag || fb.tag != tt.tag {
				t.Errorf("shape = %v, native tag = %v, want %v", tt.body.Shape, fb.tag, tt.tag)
			}
			if fb.kind != tt.kind {
				t.Errorf("kind = %q, want %q", fb.kind, tt.kind)
			}
			if tt.body.Position != (Vector2{}) {
				t.Errorf("Position mirror = %+v, want zero", tt.body.Position)
			}
		})
	}

	if fb := c.Body.(*fakeBody); fb.x != 1 || fb.y != 2 {
		t.Errorf("circle at (%v, %v), want (1, 2)", fb.x, fb.y)
	}
	rb := r.Body.(*fakeBody).body
	if !rb.IsStatic || rb.Render.FillStyle != "#f00" || rb.Friction != 0.3 {
		t.Errorf("rectangle options = %+v", rb)
	}
	ro := rope.Body.(*fakeBody).rope
	if ro.BodyA != c.Body || ro.BodyB != r.Body || ro.Stiffness != 0.9 {
		t.Errorf("rope options = %+v", ro)
	}
	if n.callCount("AddToWorld") != 0 {
		t.Error("factories should not add to the world")
	}
	if c.ID == r.ID {
		t.Error("rigid bodies should have distinct ids")
	}
}

func TestLoadImages(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewRGBA(image.Rect(0, 0, 2, 2))
	f, _, _ := newTestFactory(map[string]any{"a.png": a, "b.png": b})

	imgs, err := f.LoadImages(context.Background(), "b.png", "a.png")
	if err != nil {
		t.Fatal(err)
	}
	if len(imgs) != 2 || imgs[0] != image.Image(b) || imgs[1] != image.Image(a) {
		t.Errorf("images out of order: %v", imgs)
	}

	if _, err := f.LoadImages(context.Background(), "a.png", "missing.png"); err == nil {
		t.Error("expected an error for a missing image")
	}

	img, ok := f.LoadImage(context.Background(), "a.png")
	if !ok || img != image.Image(a) {
		t.Errorf("LoadImage = %v, %v", img, ok)
	}
}

func TestLogAlerter(t *testing.T) {
	var buf syncBuffer
	LogAlerter{Log: zerolog.New(&buf)}.Alert("Failed to load 2D physics")
	if got := buf.String(); got == "" || !contains(got, "Failed to load 2D physics") || !contains(got, `"level":"error"`) {
		t.Errorf("log = %q", got)
	}
}
