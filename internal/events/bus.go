// Package events provides a single-threaded typed event bus. Listeners are
// dispatched from a snapshot, so subscribing or unsubscribing from inside a
// handler takes effect on the next Publish.
package events

// Type identifies an event kind.
type Type int

const (
	JumpStarted Type = iota + 1
	JumpFinished
	DriftingToggled
	MultiplierChanged
	LivesChanged
	PacketSpawned
	PacketDespawned
	WireMissed
	WireSpawned
	WireRecycled
	BoostChanged
	SpawnFailed
	GameOver
)

// String returns a lowercase name for the event type.
func (t Type) String() string {
	switch t {
	case JumpStarted:
		return "jump_started"
	case JumpFinished:
		return "jump_finished"
	case DriftingToggled:
		return "drifting_toggled"
	case MultiplierChanged:
		return "multiplier_changed"
	case LivesChanged:
		return "lives_changed"
	case PacketSpawned:
		return "packet_spawned"
	case PacketDespawned:
		return "packet_despawned"
	case WireMissed:
		return "wire_missed"
	case WireSpawned:
		return "wire_spawned"
	case WireRecycled:
		return "wire_recycled"
	case BoostChanged:
		return "boost_changed"
	case SpawnFailed:
		return "spawn_failed"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is anything the bus can carry.
type Event interface {
	EventType() Type
}

// Handler receives events.
type Handler[E Event] func(ev E)

// ListenerID is returned by Subscribe and used to unsubscribe.
type ListenerID uint64

type listener[E Event] struct {
	id  ListenerID
	typ Type // 0 = all types
	fn  Handler[E]
}

// Bus dispatches events of type E to registered listeners in registration order.
type Bus[E Event] struct {
	listeners []listener[E]
	snapshot  []listener[E]
	nextID    ListenerID
}

// NewBus creates an empty bus.
func NewBus[E Event]() *Bus[E] {
	return &Bus[E]{}
}

// Subscribe registers fn for events of type t.
func (b *Bus[E]) Subscribe(t Type, fn Handler[E]) ListenerID {
	b.nextID++
	b.listeners = append(b.listeners, listener[E]{id: b.nextID, typ: t, fn: fn})
	return b.nextID
}

// SubscribeAll registers fn for every event.
func (b *Bus[E]) SubscribeAll(fn Handler[E]) ListenerID {
	return b.Subscribe(0, fn)
}

// Unsubscribe removes a listener. Unknown IDs are ignored.
func (b *Bus[E]) Unsubscribe(id ListenerID) bool {
	for i := range b.listeners {
		if b.listeners[i].id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered listeners.
func (b *Bus[E]) Len() int {
	return len(b.listeners)
}

// Publish delivers ev to every matching listener registered at call time.
func (b *Bus[E]) Publish(ev E) {
	if len(b.listeners) == 0 {
		return
	}
	// Nested publishes get their own snapshot slice.
	snap := b.snapshot[:0]
	b.snapshot = nil
	snap = append(snap, b.listeners...)

	t := ev.EventType()
	for _, l := range snap {
		if l.typ == 0 || l.typ == t {
			l.fn(ev)
		}
	}

	if b.snapshot == nil {
		b.snapshot = snap[:0]
	}
}

// Clear removes every listener.
func (b *Bus[E]) Clear() {
	b.listeners = nil
}
