package crossdim

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// BodyTween moves a RigidBody from its current native position to a target
// by writing through SetPosition each update. Create one with TweenBody and
// either call Update(dt) yourself or hand it to Scene.Animate.
type BodyTween struct {
	x, y   *gween.Tween
	target *RigidBody
	Done   bool
}

// TweenBody creates a BodyTween that moves body to (toX, toY) over duration
// seconds using the easing function. A nil fn means linear.
func TweenBody(body *RigidBody, toX, toY float64, duration float32, fn ease.TweenFunc) *BodyTween {
	if fn == nil {
		fn = ease.Linear
	}
	from := body.NativePosition()
	return &BodyTween{
		x:      gween.New(float32(from.X), float32(toX), duration, fn),
		y:      gween.New(float32(from.Y), float32(toY), duration, fn),
		target: body,
	}
}

// Update advances the tween by dt seconds and moves the body.
func (t *BodyTween) Update(dt float32) {
	if t.Done {
		return
	}
	x, xDone := t.x.Update(dt)
	y, yDone := t.y.Update(dt)
	t.target.SetPosition(float64(x), float64(y))
	t.Done = xDone && yDone
}
