package crossdim

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestConfigWithDefaults(t *testing.T) {
	c := Config{Render3DURL: "http://x/three.js"}.withDefaults()
	if c.Physics2DURL != DefaultPhysics2DURL || c.Physics3DURL != DefaultPhysics3DURL {
		t.Errorf("defaults not filled: %+v", c)
	}
	if c.Render3DURL != "http://x/three.js" {
		t.Errorf("explicit URL overwritten: %q", c.Render3DURL)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("CROSSDIM_SKIP_PHYSICS", "true")
	t.Setenv("CROSSDIM_PHYSICS2D_URL", "file:///tmp/matter.js")

	c, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if !c.SkipPhysics {
		t.Error("SkipPhysics = false, want true")
	}
	if c.Physics2DURL != "file:///tmp/matter.js" {
		t.Errorf("Physics2DURL = %q", c.Physics2DURL)
	}
	if c.Render3DURL != DefaultRender3DURL {
		t.Errorf("Render3DURL = %q, want default", c.Render3DURL)
	}
}

func TestConfigFromEnvDefaults(t *testing.T) {
	c, err := ConfigFromEnv()
	if err != nil {
		t.Fatal(err)
	}
	if c != DefaultConfig() {
		t.Errorf("ConfigFromEnv = %+v, want DefaultConfig", c)
	}
}

func TestZeroConfigIsDefault(t *testing.T) {
	if got := (Config{}).withDefaults(); got != DefaultConfig() {
		t.Errorf("Config{} normalises to %+v, want DefaultConfig", got)
	}
	if DefaultConfig().SkipPhysics {
		t.Error("DefaultConfig should load physics")
	}
}

func TestConfigFromEnvInvalid(t *testing.T) {
	t.Setenv("CROSSDIM_SKIP_PHYSICS", "maybe")
	if _, err := ConfigFromEnv(); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSceneConfigDefaults(t *testing.T) {
	c := SceneConfig{RenderOptions: RenderOptions{ShowBounds: true}}.withDefaults()
	if c.Width != 800 || c.Height != 600 || c.PixelRatio != 1 || c.Timing == nil {
		t.Errorf("defaults not filled: %+v", c.RenderOptions)
	}
	if !c.ShowBounds {
		t.Error("explicit option lost")
	}
	if c.HideSleeping {
		t.Error("sleeping bodies should be shown by default")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate = %v", err)
	}
}

func TestZeroSceneConfigMatchesDefault(t *testing.T) {
	got := SceneConfig{}.withDefaults()
	want := DefaultSceneConfig()
	got.Timing, want.Timing = nil, nil
	if got != want {
		t.Errorf("SceneConfig{} normalises to %+v, want %+v", got.RenderOptions, want.RenderOptions)
	}
}

func TestLoadSceneConfig(t *testing.T) {
	cfg, err := LoadSceneConfig([]byte(`
width: 1024
showBounds: true
wireframes: true
hideSleeping: true
timing:
  historySize: 10
`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 1024 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 1024x600", cfg.Width, cfg.Height)
	}
	if !cfg.ShowBounds || !cfg.Wireframes || !cfg.HideSleeping {
		t.Error("flags not parsed")
	}
	if cfg.Timing.HistorySize != 10 {
		t.Errorf("HistorySize = %d", cfg.Timing.HistorySize)
	}
	if cfg.Background != "#14151f" {
		t.Errorf("Background = %q, want default", cfg.Background)
	}
}

func TestLoadSceneConfigInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"negative width", "width: -1"},
		{"zero ratio", "pixelRatio: 0"},
		{"empty background", `background: ""`},
		{"negative history", "timing:\n  historySize: -3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSceneConfig([]byte(tt.yaml))
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Errorf("err = %v, want validation errors", err)
			}
		})
	}
}

func TestLoadSceneConfigMalformed(t *testing.T) {
	if _, err := LoadSceneConfig([]byte("width: [")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestTimingPushTrims(t *testing.T) {
	tm := &Timing{HistorySize: 3}
	for i := range 5 {
		tm.Push(&tm.DeltaHistory, float64(i))
	}
	if len(tm.DeltaHistory) != 3 || tm.DeltaHistory[0] != 2 || tm.DeltaHistory[2] != 4 {
		t.Errorf("history = %v, want [2 3 4]", tm.DeltaHistory)
	}
}
