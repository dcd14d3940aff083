// pkg/event/event.go
package event

import (
	"sync"

	"github.com/go-gl/mathgl/mgl64"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	ManeuverStarted   Type = "maneuver_started"
	ManeuverCompleted Type = "maneuver_completed"
	AsteroidCollision Type = "asteroid_collision"
	ShipHit           Type = "ship_hit"
	NearMiss          Type = "near_miss"
	GameOver          Type = "game_over"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
	Time      float64
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it from the bus.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run synchronously
// on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// ManeuverEvent reports a maneuver starting or completing. Net is the world
// displacement committed on completion and zero on start.
type ManeuverEvent struct {
	BaseEvent
	Kind string
	Net  mgl64.Vec3
}

// NewManeuverEvent creates a new maneuver event
func NewManeuverEvent(eventType Type, source interface{}, now float64, kind string, net mgl64.Vec3) *ManeuverEvent {
	return &ManeuverEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source, Time: now},
		Kind:      kind,
		Net:       net,
	}
}

// CollisionEvent reports the ship's box overlapping an asteroid's box.
type CollisionEvent struct {
	BaseEvent
	AsteroidIndex int
	AsteroidID    uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source interface{}, now float64, index int, id uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent:     BaseEvent{EventType: AsteroidCollision, Source: source, Time: now},
		AsteroidIndex: index,
		AsteroidID:    id,
	}
}

// NearMissEvent reports an asteroid inside the ship's bounding sphere.
type NearMissEvent struct {
	BaseEvent
	AsteroidIndex int
	AsteroidID    uint64
}

// NewNearMissEvent creates a new near miss event
func NewNearMissEvent(source interface{}, now float64, index int, id uint64) *NearMissEvent {
	return &NearMissEvent{
		BaseEvent:     BaseEvent{EventType: NearMiss, Source: source, Time: now},
		AsteroidIndex: index,
		AsteroidID:    id,
	}
}

// ShipEvent reports a change to the ship's lives.
type ShipEvent struct {
	BaseEvent
	LivesLeft int
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, now float64, livesLeft int) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source, Time: now},
		LivesLeft: livesLeft,
	}
}
