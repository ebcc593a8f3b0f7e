package crossdim

// Native2D is the surface of a 2D physics/rendering library that this package
// consumes. Implementations own the meaning of every Handle they return.
// physics2d provides the default implementation.
type Native2D interface {
	// CreateCanvas returns a drawing surface of the given size.
	CreateCanvas(width, height int) Handle
	// CreateEngine returns a physics engine with an empty world.
	CreateEngine() Handle
	// CreateMouse returns a mouse input handle reading from canvas.
	CreateMouse(canvas Handle) Handle
	// CreateMouseConstraint returns a constraint that drags bodies of engine
	// with mouse.
	CreateMouseConstraint(engine, mouse Handle, opts ConstraintOptions) Handle
	// CreateRenderer returns a renderer for rs. It must not draw until run.
	CreateRenderer(rs RendererSpec) Handle
	// RunRenderer starts renderer. onFrame is called after each frame's own
	// work completes. The returned function stops the renderer.
	RunRenderer(renderer Handle, onFrame func()) (stop func())
	// CreateRunner returns a fixed-step physics runner.
	CreateRunner() Handle
	// RunRunner starts stepping engine with runner. The returned function
	// stops it and waits for the in-flight step.
	RunRunner(runner, engine Handle) (stop func())

	Circle(x, y, r float64, opts BodyOptions) Handle
	Rectangle(x, y, w, h float64, opts BodyOptions) Handle
	Constraint(opts ConstraintOptions) Handle

	// Tag records shape on the native handle.
	Tag(h Handle, shape ShapeTag)
	SetPosition(h Handle, x, y float64)
	Position(h Handle) (x, y float64)
	// AddToWorld adds every handle to engine's world in one operation.
	AddToWorld(engine Handle, handles []Handle)
}

// RendererSpec is everything a renderer is bound to. Options is forwarded
// from SceneConfig unmodified.
type RendererSpec struct {
	Canvas  Handle
	Engine  Handle
	Mouse   Handle
	Options RenderOptions
}

// unavailable2D stands in when no 2D library could be loaded. Every handle is
// nil and every operation does nothing.
type unavailable2D struct{}

func (unavailable2D) CreateCanvas(int, int) Handle                                   { return nil }
func (unavailable2D) CreateEngine() Handle                                           { return nil }
func (unavailable2D) CreateMouse(Handle) Handle                                      { return nil }
func (unavailable2D) CreateMouseConstraint(Handle, Handle, ConstraintOptions) Handle { return nil }
func (unavailable2D) CreateRenderer(RendererSpec) Handle                             { return nil }
func (unavailable2D) RunRenderer(Handle, func()) func()                              { return func() {} }
func (unavailable2D) CreateRunner() Handle                                           { return nil }
func (unavailable2D) RunRunner(Handle, Handle) func()                                { return func() {} }
func (unavailable2D) Circle(float64, float64, float64, BodyOptions) Handle           { return nil }
func (unavailable2D) Rectangle(float64, float64, float64, float64, BodyOptions) Handle {
	return nil
}
func (unavailable2D) Constraint(ConstraintOptions) Handle  { return nil }
func (unavailable2D) Tag(Handle, ShapeTag)                 {}
func (unavailable2D) SetPosition(Handle, float64, float64) {}
func (unavailable2D) Position(Handle) (float64, float64)   { return 0, 0 }
func (unavailable2D) AddToWorld(Handle, []Handle)          {}
