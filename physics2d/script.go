package physics2d

import (
	"errors"
	"fmt"

	"github.com/phanxgames/crossdim"
	"gopkg.in/yaml.v3"
)

// Point is a position in world coordinates.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Target picks a point in the world. Set exactly one of Body (a body ID),
// Shape ("circle" or "rectangle", the first such body) or At.
type Target struct {
	Body  uint32 `yaml:"body,omitempty"`
	Shape string `yaml:"shape,omitempty"`
	At    *Point `yaml:"at,omitempty"`
}

func (t Target) validate() error {
	n := 0
	if t.Body != 0 {
		n++
	}
	if t.Shape != "" {
		if t.Shape != crossdim.ShapeCircle.String() && t.Shape != crossdim.ShapeRectangle.String() {
			return fmt.Errorf("unknown shape %q", t.Shape)
		}
		n++
	}
	if t.At != nil {
		n++
	}
	if n != 1 {
		return errors.New("target needs exactly one of body, shape or at")
	}
	return nil
}

type dragStep struct {
	From   Target `yaml:"from"`
	To     Point  `yaml:"to"`
	Frames int    `yaml:"frames"`
}

// scriptStep holds one action; exactly one field is set.
type scriptStep struct {
	Click      *Target   `yaml:"click"`
	Drag       *dragStep `yaml:"drag"`
	Frames     int       `yaml:"frames"`     // wait this many updates
	WorldSteps uint64    `yaml:"worldSteps"` // wait until the world has stepped this many more times
	Settle     int       `yaml:"settle"`     // wait until every body sleeps, at most this many updates
	Screenshot *string   `yaml:"screenshot"`
	Quit       bool      `yaml:"quit"`
}

func (st scriptStep) compile() (action, error) {
	var acts []action
	if st.Click != nil {
		if err := st.Click.validate(); err != nil {
			return nil, fmt.Errorf("click: %w", err)
		}
		acts = append(acts, &clickAction{target: *st.Click})
	}
	if st.Drag != nil {
		if err := st.Drag.From.validate(); err != nil {
			return nil, fmt.Errorf("drag: %w", err)
		}
		acts = append(acts, &dragAction{dragStep: *st.Drag})
	}
	if st.Frames > 0 {
		acts = append(acts, &waitFrames{left: st.Frames})
	}
	if st.WorldSteps > 0 {
		acts = append(acts, &waitSteps{n: st.WorldSteps})
	}
	if st.Settle > 0 {
		acts = append(acts, &settleAction{max: st.Settle})
	}
	if st.Screenshot != nil {
		acts = append(acts, screenshotAction(*st.Screenshot))
	}
	if st.Quit {
		acts = append(acts, quitAction{})
	}
	if len(acts) != 1 {
		return nil, fmt.Errorf("want exactly one action, got %d", len(acts))
	}
	return acts[0], nil
}

// action runs once per renderer update until it reports that it is finished.
type action interface {
	run(r *Renderer) bool
}

// clickAction clicks the target once and finishes when the click has been
// delivered.
type clickAction struct {
	target Target
	sent   bool
}

func (a *clickAction) run(r *Renderer) bool {
	if r.mouse == nil || r.world == nil {
		return true
	}
	if !a.sent {
		p, ok := r.world.locate(a.target)
		if !ok {
			log := crossdim.Logger()
			log.Warn().Interface("target", a.target).Msg("script: click target not found")
			return true
		}
		r.mouse.InjectClick(p.X, p.Y)
		a.sent = true
	}
	return r.mouse.Pending() == 0
}

// dragAction drags from the target to a point over the given frames.
type dragAction struct {
	dragStep
	sent bool
}

func (a *dragAction) run(r *Renderer) bool {
	if r.mouse == nil || r.world == nil {
		return true
	}
	if !a.sent {
		p, ok := r.world.locate(a.From)
		if !ok {
			log := crossdim.Logger()
			log.Warn().Interface("target", a.From).Msg("script: drag target not found")
			return true
		}
		r.mouse.InjectDrag(p.X, p.Y, a.To.X, a.To.Y, a.Frames)
		a.sent = true
	}
	return r.mouse.Pending() == 0
}

type waitFrames struct{ left int }

func (a *waitFrames) run(*Renderer) bool {
	a.left--
	return a.left <= 0
}

// waitSteps waits on the runner rather than the renderer, so it measures
// simulated time.
type waitSteps struct {
	n, until uint64
	armed    bool
}

func (a *waitSteps) run(r *Renderer) bool {
	if r.world == nil {
		return true
	}
	if !a.armed {
		a.until = r.world.Steps() + a.n
		a.armed = true
	}
	return r.world.Steps() >= a.until
}

type settleAction struct{ max, seen int }

func (a *settleAction) run(r *Renderer) bool {
	a.seen++
	return r.world == nil || r.world.Settled() || a.seen >= a.max
}

type screenshotAction string

func (a screenshotAction) run(r *Renderer) bool {
	r.Screenshot(string(a))
	return true
}

type quitAction struct{}

func (quitAction) run(r *Renderer) bool {
	r.quit.Store(true)
	return true
}

// Script drives a scene for automated runs: it clicks and drags bodies,
// waits on frames, world steps or the world settling, takes screenshots and
// quits. Attach it with Renderer.SetScript; one action advances per update.
//
//	steps:
//	  - settle: 300
//	  - click: {shape: circle}
//	  - drag: {from: {body: 3}, to: {x: 400, y: 80}, frames: 30}
//	  - worldSteps: 120
//	  - screenshot: thrown
//	  - quit: true
type Script struct {
	actions []action
	next    int
}

// LoadScript parses a YAML (or JSON) script.
func LoadScript(data []byte) (*Script, error) {
	var f struct {
		Steps []scriptStep `yaml:"steps"`
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, errors.New("parse script: no steps")
	}
	s := &Script{actions: make([]action, 0, len(f.Steps))}
	for i, st := range f.Steps {
		a, err := st.compile()
		if err != nil {
			return nil, fmt.Errorf("parse script: step %d: %w", i, err)
		}
		s.actions = append(s.actions, a)
	}
	return s, nil
}

// SetScript attaches a script. It is advanced once per renderer update.
func (r *Renderer) SetScript(s *Script) {
	r.mu.Lock()
	r.script = s
	r.mu.Unlock()
}

// Done reports whether every action has finished.
func (s *Script) Done() bool {
	return s.next >= len(s.actions)
}

func (s *Script) step(r *Renderer) {
	if s.Done() {
		return
	}
	if s.actions[s.next].run(r) {
		s.next++
	}
}
