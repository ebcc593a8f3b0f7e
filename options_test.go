package crossdim

import "testing"

func TestBodyOptionsMergeOverDefaults(t *testing.T) {
	o := resolveBodyOptions([]BodyOption{Static(), Fill("#abc"), nil, Group(-2)})

	if !o.IsStatic {
		t.Error("IsStatic lost")
	}
	if o.Render.FillStyle != "#abc" {
		t.Errorf("FillStyle = %q", o.Render.FillStyle)
	}
	if o.CollisionFilter.Group != -2 {
		t.Errorf("Group = %d", o.CollisionFilter.Group)
	}

	d := DefaultBodyOptions()
	if o.Friction != d.Friction || o.Restitution != d.Restitution || o.Density != d.Density {
		t.Errorf("unmentioned physics fields lost their defaults: %+v", o)
	}
	if o.Render.StrokeStyle != d.Render.StrokeStyle || !o.Render.Visible {
		t.Errorf("unmentioned render fields lost their defaults: %+v", o.Render)
	}
	if o.CollisionFilter.Mask != d.CollisionFilter.Mask {
		t.Errorf("Mask = %x, want default", o.CollisionFilter.Mask)
	}
}

func TestBodyOptionSetters(t *testing.T) {
	o := resolveBodyOptions([]BodyOption{
		Sensor(), Kinematic(), Bullet(), FixedRotation(),
		Friction(0.1), Restitution(0.9), Density(2),
		Stroke("red"), LineWidth(3), Hidden(),
		Category(4), Mask(5),
	})
	want := BodyOptions{
		IsSensor: true, IsKinematic: true, IsBullet: true, IsFixedRotation: true,
		Friction: 0.1, Restitution: 0.9, Density: 2,
		Render:          RenderStyle{Visible: false, FillStyle: "#fff", StrokeStyle: "red", LineWidth: 3},
		CollisionFilter: CollisionFilter{Category: 4, Mask: 5, Group: 1},
	}
	if o != want {
		t.Errorf("options = %+v\nwant %+v", o, want)
	}
}

func TestWithBodyOptionsReplaces(t *testing.T) {
	o := resolveBodyOptions([]BodyOption{Static(), WithBodyOptions(BodyOptions{Density: 5})})
	if o != (BodyOptions{Density: 5}) {
		t.Errorf("options = %+v", o)
	}
}

func TestRopeOptionsMergeOverDefaults(t *testing.T) {
	a, b := &RigidBody{Body: "a"}, &RigidBody{Body: "b"}
	o := resolveRopeOptions([]RopeOption{RopeBodies(a, b), RopeLength(40), RopeLabel("chain")})

	if o.BodyA != "a" || o.BodyB != "b" {
		t.Errorf("bodies = %v, %v", o.BodyA, o.BodyB)
	}
	if o.Length != 40 || o.Label != "chain" {
		t.Errorf("Length = %v Label = %q", o.Length, o.Label)
	}
	if o.Stiffness != 0.9 || o.Render.StrokeStyle != "#ff0000" || !o.Render.Visible {
		t.Errorf("defaults lost: %+v", o)
	}
}

func TestRopePointsAreCopied(t *testing.T) {
	p := Vector2{X: 1, Y: 2}
	o := resolveRopeOptions([]RopeOption{RopePoints(p, Vector2{X: 3, Y: 4}), RopeBodies(nil, nil)})
	p.X = 100
	if o.PointA == nil || o.PointA.X != 1 || o.PointB.Y != 4 {
		t.Errorf("points = %v, %v", o.PointA, o.PointB)
	}
	if o.BodyA != nil || o.BodyB != nil {
		t.Error("nil bodies should pin to the world")
	}
}

func TestRopeSetters(t *testing.T) {
	o := resolveRopeOptions([]RopeOption{RopeStiffness(1), RopeDamping(0.1), RopeStroke("#0f0"), RopeLineWidth(2), RopeHidden()})
	if o.Stiffness != 1 || o.Damping != 0.1 || o.Render.StrokeStyle != "#0f0" || o.Render.LineWidth != 2 || o.Render.Visible {
		t.Errorf("options = %+v", o)
	}
}

func TestMouseConstraintDefaults(t *testing.T) {
	o := defaultMouseConstraintOptions()
	if o.Stiffness != 0.2 || o.Label != "Mouse Constraint" {
		t.Errorf("mouse constraint options = %+v", o)
	}
}

func TestShapeTagString(t *testing.T) {
	tests := []struct {
		tag  ShapeTag
		want string
	}{
		{ShapeCircle, "circle"},
		{ShapeRectangle, "rectangle"},
		{ShapeRope, "rope"},
		{ShapeNone, ""},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.tag, got, tt.want)
		}
	}
}
