package crossdim

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Default URLs of the backing libraries.
const (
	DefaultPhysics2DURL = "https://unpkg.com/matter-js/build/matter.min.js"
	DefaultPhysics3DURL = "https://raw.githubusercontent.com/kripken/ammo.js/main/builds/ammo.wasm.js"
	DefaultRender3DURL  = "https://unpkg.com/three/build/three.min.js"
)

// Config selects what an engine factory loads. The zero value loads physics
// from the default URLs. It is comparable and used as the memoization key of
// InitializeEngine.
type Config struct {
	// SkipPhysics leaves the physics library alone, loaded or not.
	SkipPhysics  bool   `env:"CROSSDIM_SKIP_PHYSICS"`
	Physics2DURL string `env:"CROSSDIM_PHYSICS2D_URL"`
	Physics3DURL string `env:"CROSSDIM_PHYSICS3D_URL"`
	Render3DURL  string `env:"CROSSDIM_RENDER3D_URL"`
}

// DefaultConfig loads physics from the default URLs.
func DefaultConfig() Config {
	return Config{
		Physics2DURL: DefaultPhysics2DURL,
		Physics3DURL: DefaultPhysics3DURL,
		Render3DURL:  DefaultRender3DURL,
	}
}

// withDefaults fills empty URLs.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Physics2DURL == "" {
		c.Physics2DURL = d.Physics2DURL
	}
	if c.Physics3DURL == "" {
		c.Physics3DURL = d.Physics3DURL
	}
	if c.Render3DURL == "" {
		c.Render3DURL = d.Render3DURL
	}
	return c
}

// ConfigFromEnv reads a Config from CROSSDIM_* environment variables over
// DefaultConfig. Unset variables keep their defaults.
func ConfigFromEnv() (Config, error) {
	c := DefaultConfig()
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// --- Scene configuration ---

// Timing is renderer telemetry: frame deltas and elapsed-time histories. This
// package only allocates it; the native renderer fills it.
type Timing struct {
	HistorySize             int       `yaml:"historySize" validate:"gte=0"`
	Delta                   float64   `yaml:"-"`
	DeltaHistory            []float64 `yaml:"-"`
	LastTime                float64   `yaml:"-"`
	LastTimestamp           float64   `yaml:"-"`
	LastElapsed             float64   `yaml:"-"`
	TimestampElapsed        float64   `yaml:"-"`
	TimestampElapsedHistory []float64 `yaml:"-"`
	EngineDeltaHistory      []float64 `yaml:"-"`
	EngineElapsedHistory    []float64 `yaml:"-"`
	ElapsedHistory          []float64 `yaml:"-"`
}

// Push appends v to a history buffer, keeping at most HistorySize entries.
func (t *Timing) Push(history *[]float64, v float64) {
	*history = append(*history, v)
	if n := len(*history) - t.HistorySize; n > 0 {
		*history = (*history)[n:]
	}
}

// RenderOptions is handed to the native renderer exactly as configured.
type RenderOptions struct {
	Width               int     `yaml:"width" validate:"gt=0"`
	Height              int     `yaml:"height" validate:"gt=0"`
	PixelRatio          float64 `yaml:"pixelRatio" validate:"gt=0"`
	Background          string  `yaml:"background" validate:"required"`
	WireframeBackground string  `yaml:"wireframeBackground" validate:"required"`
	Wireframes          bool    `yaml:"wireframes"`
	HideSleeping        bool    `yaml:"hideSleeping"` // sleeping bodies are drawn faded unless set
	ShowDebug           bool    `yaml:"showDebug"`
	ShowStats           bool    `yaml:"showStats"`
	ShowPerformance     bool    `yaml:"showPerformance"`
	ShowBounds          bool    `yaml:"showBounds"`
	ShowVelocity        bool    `yaml:"showVelocity"`
	ShowCollisions      bool    `yaml:"showCollisions"`
	ShowSeparations     bool    `yaml:"showSeparations"`
	ShowAxes            bool    `yaml:"showAxes"`
	ShowPositions       bool    `yaml:"showPositions"`
	ShowAngleIndicator  bool    `yaml:"showAngleIndicator"`
	ShowIds             bool    `yaml:"showIds"`
	ShowVertexNumbers   bool    `yaml:"showVertexNumbers"`
	ShowConvexHulls     bool    `yaml:"showConvexHulls"`
	ShowInternalEdges   bool    `yaml:"showInternalEdges"`
	ShowMousePosition   bool    `yaml:"showMousePosition"`
	Timing              *Timing `yaml:"timing" validate:"required"`
}

// SceneConfig configures a Scene. Start from DefaultSceneConfig and change
// what you need; NewScene fills zero sizes, colours and a nil Timing from the
// defaults.
type SceneConfig struct {
	// Canvas is a native surface to draw into. NewScene creates one when nil.
	Canvas        Handle `yaml:"-"`
	RenderOptions `yaml:",inline"`
}

// DefaultSceneConfig returns an 800x600 scene with a dark background.
func DefaultSceneConfig() SceneConfig {
	return SceneConfig{
		RenderOptions: RenderOptions{
			Width:               800,
			Height:              600,
			PixelRatio:          1,
			Background:          "#14151f",
			WireframeBackground: "#14151f",
			Timing:              &Timing{HistorySize: 60},
		},
	}
}

func (c SceneConfig) withDefaults() SceneConfig {
	d := DefaultSceneConfig()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Height == 0 {
		c.Height = d.Height
	}
	if c.PixelRatio == 0 {
		c.PixelRatio = d.PixelRatio
	}
	if c.Background == "" {
		c.Background = d.Background
	}
	if c.WireframeBackground == "" {
		c.WireframeBackground = d.WireframeBackground
	}
	if c.Timing == nil {
		c.Timing = d.Timing
	}
	return c
}

var validate = validator.New()

// Validate reports the first invalid field of c.
func (c SceneConfig) Validate() error {
	if err := validate.Struct(c.RenderOptions); err != nil {
		return fmt.Errorf("validate scene config: %w", err)
	}
	return nil
}

// LoadSceneConfig parses YAML over DefaultSceneConfig and validates the
// result. Keys absent from data keep their defaults.
func LoadSceneConfig(data []byte) (SceneConfig, error) {
	cfg := DefaultSceneConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SceneConfig{}, fmt.Errorf("parse scene config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return SceneConfig{}, err
	}
	return cfg, nil
}
