package ecs

import (
	"sync"

	"github.com/google/uuid"
	"github.com/phanxgames/crossdim"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for scene events.
// Subscribe to this in your ECS systems to receive body, lifecycle and tick
// events.
var SceneEventType = events.NewEventType[crossdim.SceneEvent]()

// BodyData is the component attached to the entity mirroring a scene body.
type BodyData struct {
	ID    uuid.UUID
	Shape crossdim.ShapeTag
	// AddedAt is the scene frame the body was added on.
	AddedAt uint64
}

// Body is the component type of BodyData.
var Body = donburi.NewComponentType[BodyData]()

// DonburiStore is an EntityStore backed by a Donburi world. Scene events may
// arrive from any goroutine, including from inside a subscriber. EmitEvent
// only queues them; the world is touched when events are processed, under
// the store's world lock.
type DonburiStore struct {
	mu    sync.Mutex // world
	world donburi.World

	qmu      sync.Mutex // pending, entities
	pending  []crossdim.SceneEvent
	entities map[uuid.UUID]donburi.Entity
}

var _ crossdim.EntityStore = (*DonburiStore)(nil)

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Every event is published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents. Each added body also gets an entity
// carrying a Body component once its event is processed.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[uuid.UUID]donburi.Entity),
	}
}

// EmitEvent queues event. It never blocks on the world, so subscribers may
// add bodies to the scene; those events are delivered by the next
// ProcessEvents.
func (s *DonburiStore) EmitEvent(event crossdim.SceneEvent) {
	s.qmu.Lock()
	s.pending = append(s.pending, event)
	s.qmu.Unlock()
}

// flush mirrors queued bodies and publishes queued events. s.mu must be held.
func (s *DonburiStore) flush() {
	s.qmu.Lock()
	batch := s.pending
	s.pending = nil
	s.qmu.Unlock()

	for _, ev := range batch {
		if ev.Type == crossdim.EventBodyAdded {
			s.mirror(ev)
		}
		SceneEventType.Publish(s.world, ev)
	}
}

func (s *DonburiStore) mirror(ev crossdim.SceneEvent) {
	s.qmu.Lock()
	_, ok := s.entities[ev.BodyID]
	s.qmu.Unlock()
	if ok {
		return
	}
	e := s.world.Create(Body)
	Body.SetValue(s.world.Entry(e), BodyData{
		ID:      ev.BodyID,
		Shape:   ev.Shape,
		AddedAt: ev.Frame,
	})
	s.qmu.Lock()
	s.entities[ev.BodyID] = e
	s.qmu.Unlock()
}

// Entity returns the entity mirroring the body with the given id. Bodies are
// mirrored when their events are processed. It is safe to call from a
// subscriber.
func (s *DonburiStore) Entity(id uuid.UUID) (donburi.Entity, bool) {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	e, ok := s.entities[id]
	return e, ok
}

// Do mirrors and publishes queued events, then runs fn with exclusive access
// to the world. fn and subscribers must not call Do or ProcessEvents.
func (s *DonburiStore) Do(fn func(w donburi.World)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flush()
	fn(s.world)
}

// ProcessEvents delivers queued scene events to subscribers.
func (s *DonburiStore) ProcessEvents() {
	s.Do(SceneEventType.ProcessEvents)
}
