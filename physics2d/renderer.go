package physics2d

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/phanxgames/crossdim"
)

// Debug overlay colours.
var (
	wireframeStroke = color.RGBA{0xbb, 0xbb, 0xbb, 0xff}
	boundsColor     = color.RGBA{0x55, 0x55, 0x55, 0xff}
	velocityColor   = color.RGBA{0x0c, 0x80, 0xe5, 0xff}
	positionColor   = color.RGBA{0xff, 0x83, 0x00, 0xff}
	axesColor       = color.RGBA{0xff, 0x5a, 0x5a, 0xff}
	mouseColor      = color.RGBA{0x90, 0xee, 0x90, 0xff}
	labelColor      = color.RGBA{0xdd, 0xdd, 0xdd, 0xff}
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whitePixel returns a white 1x1 source region for DrawTriangles.
func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Renderer is the debug renderer. It implements ebiten.Game: host it with
// ebiten.RunGame (see Run). It draws only while running.
//
// ShowCollisions, ShowSeparations, ShowConvexHulls and ShowInternalEdges are
// accepted but draw nothing: bodies here are single convex shapes and contact
// data is not kept between steps.
type Renderer struct {
	Options crossdim.RenderOptions
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	canvas *ebiten.Image
	world  *World
	mouse  *Mouse

	running  atomic.Bool
	mu       sync.Mutex
	onFrame  func()
	lastDraw time.Time
	start    time.Time
	colors   map[string]color.RGBA

	script          *Script
	quit            atomic.Bool
	screenshotQueue []string
}

// CreateCanvas returns a new *ebiten.Image.
func (l *Library) CreateCanvas(width, height int) crossdim.Handle {
	return ebiten.NewImage(width, height)
}

// CreateRenderer returns a *Renderer. A canvas that is not an *ebiten.Image
// is replaced with a new one of the configured size.
func (l *Library) CreateRenderer(rs crossdim.RendererSpec) crossdim.Handle {
	r := &Renderer{
		Options:       rs.Options,
		ScreenshotDir: "screenshots",
		colors:        make(map[string]color.RGBA),
	}
	r.canvas, _ = rs.Canvas.(*ebiten.Image)
	r.world, _ = rs.Engine.(*World)
	r.mouse, _ = rs.Mouse.(*Mouse)
	return r
}

// RunRenderer makes the renderer draw and call onFrame after each frame. The
// returned function stops it.
func (l *Library) RunRenderer(renderer crossdim.Handle, onFrame func()) func() {
	r, ok := renderer.(*Renderer)
	if !ok {
		return func() {}
	}
	r.mu.Lock()
	r.onFrame = onFrame
	r.start = time.Now()
	r.mu.Unlock()
	r.running.Store(true)
	return func() { r.running.Store(false) }
}

// Running reports whether the renderer is drawing.
func (r *Renderer) Running() bool { return r.running.Load() }

// Canvas returns the image the renderer draws into.
func (r *Renderer) Canvas() *ebiten.Image { return r.canvas }

// Update advances the script, polls the mouse and moves mouse constraints.
// Once the renderer has been stopped it ends the game loop.
func (r *Renderer) Update() error {
	if !r.running.Load() || r.quit.Load() {
		return ebiten.Termination
	}
	r.mu.Lock()
	script := r.script
	r.mu.Unlock()
	if script != nil {
		script.step(r)
	}
	if r.mouse != nil {
		r.mouse.poll(r.Options.PixelRatio)
	}
	if r.world != nil {
		r.world.updateMice()
	}
	return nil
}

// Layout reports the canvas size scaled by the pixel ratio.
func (r *Renderer) Layout(int, int) (int, int) {
	pr := r.Options.PixelRatio
	if pr <= 0 {
		pr = 1
	}
	return int(float64(r.Options.Width) * pr), int(float64(r.Options.Height) * pr)
}

// Draw renders the world into the canvas, calls the frame hook, and copies
// the canvas to screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if !r.running.Load() {
		return
	}
	if r.canvas == nil {
		r.canvas = ebiten.NewImage(r.Options.Width, r.Options.Height)
	}
	r.recordTiming()

	o := r.Options
	bg := o.Background
	if o.Wireframes {
		bg = o.WireframeBackground
	}
	r.canvas.Fill(r.color(bg))

	if r.world != nil {
		r.world.mu.Lock()
		r.drawWorld()
		r.world.mu.Unlock()
	}
	r.drawOverlays()

	r.mu.Lock()
	onFrame := r.onFrame
	r.mu.Unlock()
	if onFrame != nil {
		onFrame()
	}
	r.flushScreenshots()

	op := &ebiten.DrawImageOptions{}
	if o.PixelRatio > 0 {
		op.GeoM.Scale(o.PixelRatio, o.PixelRatio)
	}
	screen.DrawImage(r.canvas, op)
}

func (r *Renderer) color(s string) color.RGBA {
	if c, ok := r.colors[s]; ok {
		return c
	}
	c := parseColor(s)
	r.colors[s] = c
	return c
}

// recordTiming fills the Timing telemetry.
func (r *Renderer) recordTiming() {
	t := r.Options.Timing
	if t == nil {
		return
	}
	now := time.Now()
	if !r.lastDraw.IsZero() {
		t.Delta = float64(now.Sub(r.lastDraw)) / float64(time.Millisecond)
		t.Push(&t.DeltaHistory, t.Delta)
	}
	r.lastDraw = now
	t.LastTime = float64(now.Sub(r.start)) / float64(time.Millisecond)
	t.LastTimestamp = float64(now.UnixMilli())
	t.TimestampElapsed = t.LastTime
	t.Push(&t.TimestampElapsedHistory, t.TimestampElapsed)
	if r.world != nil {
		r.world.mu.Lock()
		elapsed := float64(r.world.stepTime) / float64(time.Millisecond)
		r.world.mu.Unlock()
		t.LastElapsed = elapsed
		t.Push(&t.EngineElapsedHistory, elapsed)
		t.Push(&t.ElapsedHistory, elapsed)
	}
}

// drawWorld draws bodies and joints. Callers hold the world lock.
func (r *Renderer) drawWorld() {
	for _, b := range r.world.bodies {
		r.drawBody(b)
	}
	for _, j := range r.world.joints {
		r.drawJoint(j)
	}
	for _, mc := range r.world.mice {
		r.drawMouseConstraint(mc)
	}
}

func (r *Renderer) drawBody(b *Body) {
	o := r.Options
	style := b.Options.Render
	if !style.Visible {
		return
	}

	alpha := sleepAlpha(o, b.body.IsSleeping())
	fill := fade(r.color(style.FillStyle), alpha)
	stroke := fade(r.color(style.StrokeStyle), alpha)
	lw := float32(style.LineWidth)
	if o.Wireframes {
		stroke, lw = wireframeStroke, 1
	}

	pos := b.body.Position()
	angle := b.body.Angle()
	px, py := float32(pos.X), float32(pos.Y)

	var extent float64
	switch b.Kind {
	case KindCircle:
		extent = b.Radius
		if !o.Wireframes {
			vector.DrawFilledCircle(r.canvas, px, py, float32(b.Radius), fill, true)
		}
		vector.StrokeCircle(r.canvas, px, py, float32(b.Radius), lw, stroke, true)
	case KindBox:
		extent = b.Width / 2
		c := b.corners()
		if !o.Wireframes {
			r.fillQuad(c, fill)
		}
		for i := range c {
			n := c[(i+1)%len(c)]
			vector.StrokeLine(r.canvas, float32(c[i].X), float32(c[i].Y), float32(n.X), float32(n.Y), lw, stroke, true)
		}
		if o.ShowVertexNumbers {
			for i, v := range c {
				drawLabel(r.canvas, strconv.Itoa(i), v.X, v.Y, labelColor)
			}
		}
	}

	if o.ShowBounds {
		bb := b.shape.BB()
		vector.StrokeRect(r.canvas, float32(bb.L), float32(bb.B), float32(bb.R-bb.L), float32(bb.T-bb.B), 1, boundsColor, false)
	}
	if o.ShowVelocity {
		v := b.body.Velocity()
		vector.StrokeLine(r.canvas, px, py, px+float32(v.X*0.1), py+float32(v.Y*0.1), 2, velocityColor, true)
	}
	if o.ShowAngleIndicator || o.ShowAxes {
		sin, cos := math.Sincos(angle)
		ex, ey := float32(cos*extent), float32(sin*extent)
		vector.StrokeLine(r.canvas, px, py, px+ex, py+ey, 1, axesColor, true)
		if o.ShowAxes && b.Kind == KindBox {
			ax, ay := float32(-sin*b.Height/2), float32(cos*b.Height/2)
			vector.StrokeLine(r.canvas, px, py, px+ax, py+ay, 1, axesColor, true)
		}
	}
	if o.ShowPositions {
		vector.DrawFilledCircle(r.canvas, px, py, 3, positionColor, true)
	}
	if o.ShowIds {
		drawLabel(r.canvas, strconv.FormatUint(uint64(b.ID), 10), pos.X, pos.Y, labelColor)
	}
}

// sleepAlpha is the opacity of a body: sleeping bodies are faded unless
// HideSleeping is set.
func sleepAlpha(o crossdim.RenderOptions, sleeping bool) float64 {
	if sleeping && !o.HideSleeping {
		return 0.5
	}
	return 1
}

// fillQuad fills a convex quad with c using two triangles.
func (r *Renderer) fillQuad(q [4]cp.Vector, c color.RGBA) {
	cr, cg, cb, ca := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	vs := make([]ebiten.Vertex, len(q))
	for i, p := range q {
		vs[i] = ebiten.Vertex{
			DstX: float32(p.X), DstY: float32(p.Y),
			SrcX: 0, SrcY: 0,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		}
	}
	r.canvas.DrawTriangles(vs, []uint16{0, 1, 2, 0, 2, 3}, whitePixel(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *Renderer) drawJoint(j *Joint) {
	style := j.Options.Render
	if !style.Visible || j.constraint == nil {
		return
	}
	a, b := j.endpoints()
	lw := float32(style.LineWidth)
	stroke := r.color(style.StrokeStyle)
	if r.Options.Wireframes {
		stroke, lw = wireframeStroke, 1
	}
	vector.StrokeLine(r.canvas, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), lw, stroke, true)
}

func (r *Renderer) drawMouseConstraint(mc *MouseConstraint) {
	if !mc.Options.Render.Visible || mc.grabbed == nil {
		return
	}
	m := mc.mouseBody.Position()
	g := mc.grabbed.body.Position()
	vector.StrokeLine(r.canvas, float32(m.X), float32(m.Y), float32(g.X), float32(g.Y), 1, mouseColor, true)
}

func (r *Renderer) drawOverlays() {
	o := r.Options
	row := 0
	overlay := func(s string) {
		ebitenutil.DebugPrintAt(r.canvas, s, 4, 4+row*16)
		row++
	}
	if o.ShowStats || o.ShowPerformance {
		overlay(fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	if (o.ShowStats || o.ShowDebug) && r.world != nil {
		r.world.mu.Lock()
		bodies, joints, steps, step := len(r.world.bodies), len(r.world.joints), r.world.steps, r.world.stepTime
		r.world.mu.Unlock()
		overlay(fmt.Sprintf("bodies: %d  joints: %d", bodies, joints))
		if o.ShowDebug {
			overlay(fmt.Sprintf("steps: %d  step: %v", steps, step))
		}
	}
	if o.ShowMousePosition && r.mouse != nil {
		pos, _, _, _ := r.mouse.snapshot()
		ebitenutil.DebugPrintAt(r.canvas, fmt.Sprintf("%.0f, %.0f", pos.X, pos.Y), int(pos.X)+12, int(pos.Y)+12)
	}
}
