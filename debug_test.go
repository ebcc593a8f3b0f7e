package crossdim

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newDebugScene(t *testing.T) (*Scene, *fakeNative, *syncBuffer) {
	t.Helper()
	n := newFakeNative()
	env := NewEnvironment()
	env.Install(LibraryPhysics2D, n)
	buf := &syncBuffer{}
	log := zerolog.New(buf).Level(zerolog.DebugLevel)
	f := NewFactory(env, WithLoader(failingLoader(t)), WithLogger(log))
	s := f.TwoDimensionEngine(context.Background(), Config{}).NewScene(SceneConfig{})
	return s, n, buf
}

func TestDebugModeLogsFrameStats(t *testing.T) {
	s, n, buf := newDebugScene(t)
	s.SetDebugMode(true)
	s.OnTick(func() {})
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	for range debugLogEvery {
		n.renderer.onFrame()
	}
	out := buf.String()
	if strings.Count(out, `"message":"frame"`) != 1 {
		t.Errorf("want one frame line per %d frames, got:\n%s", debugLogEvery, out)
	}
	if !strings.Contains(out, `"listeners":1`) {
		t.Errorf("frame line missing listener count:\n%s", out)
	}
}

func TestDebugModeWarnsOnSlowListeners(t *testing.T) {
	s, n, buf := newDebugScene(t)
	s.SetDebugMode(true)
	s.OnTick(func() { time.Sleep(time.Second/frameRate + 5*time.Millisecond) })
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	n.renderer.onFrame()
	if !strings.Contains(buf.String(), "exceeded frame budget") {
		t.Errorf("expected a frame budget warning, got:\n%s", buf.String())
	}
}

func TestDebugModeOffIsQuiet(t *testing.T) {
	s, n, buf := newDebugScene(t)
	if err := s.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()
	for range debugLogEvery {
		n.renderer.onFrame()
	}
	if strings.Contains(buf.String(), `"message":"frame"`) {
		t.Errorf("frame stats logged without debug mode:\n%s", buf.String())
	}
}
