package crossdim

import "github.com/google/uuid"

// EventType identifies a kind of scene event.
type EventType uint8

const (
	EventBodyAdded    EventType = iota // fires once per body passed to Scene.Add
	EventSceneStarted                  // fires when Scene.Start activates the loops
	EventSceneStopped                  // fires when the loops halt
	EventTick                          // fires after the tick listeners of each frame
)

func (t EventType) String() string {
	switch t {
	case EventBodyAdded:
		return "body_added"
	case EventSceneStarted:
		return "scene_started"
	case EventSceneStopped:
		return "scene_stopped"
	case EventTick:
		return "tick"
	default:
		return "unknown"
	}
}

// SceneEvent carries scene activity to an EntityStore.
type SceneEvent struct {
	Type  EventType
	Frame uint64
	// Body fields (valid for EventBodyAdded)
	BodyID uuid.UUID
	Shape  ShapeTag
}

// EntityStore is the interface for optional ECS integration. When set on a
// Scene, scene events are forwarded to it.
type EntityStore interface {
	EmitEvent(event SceneEvent)
}
