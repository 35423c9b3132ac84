package ecs

import "github.com/kamstrup/intmap"

// Event is any payload delivered through an EventBus.
type Event = any

// EventStatus tells the bus whether a handler wants further events.
type EventStatus int

const (
	// Keep leaves the handler registered.
	Keep EventStatus = iota
	// Die unregisters the handler after the current trigger.
	Die
)

// EventHandler reacts to an event triggered by origin.
type EventHandler func(origin Entity, t EventType, ev Event) EventStatus

// EventBus dispatches events synchronously to the handlers registered for
// their type, in registration order.
type EventBus struct {
	handlers *intmap.Map[EventType, []*handlerEntry]
}

// handlerEntry keeps the status of a handler across nested triggers.
type handlerEntry struct {
	fn   EventHandler
	dead bool
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: intmap.New[EventType, []*handlerEntry](16),
	}
}

// RegisterHandler appends h to the handlers of t.
func (b *EventBus) RegisterHandler(t EventType, h EventHandler) bool {
	if t == InvalidEvent || h == nil {
		return false
	}
	hs, _ := b.handlers.Get(t)
	b.handlers.Put(t, append(hs, &handlerEntry{fn: h}))
	return true
}

// Handlers returns how many live handlers are registered for t.
func (b *EventBus) Handlers(t EventType) int {
	hs, _ := b.handlers.Get(t)
	n := 0
	for _, h := range hs {
		if !h.dead {
			n++
		}
	}
	return n
}

// TriggerEvent calls every handler registered for t with origin and ev and
// returns how many were called. Handlers returning Die are not called again,
// even by an outer trigger of the same type still running.
// Handlers registered while the trigger runs are first called on the next one.
func (b *EventBus) TriggerEvent(origin Entity, t EventType, ev Event) int {
	called, _ := b.trigger(origin, t, ev)
	return called
}

func (b *EventBus) trigger(origin Entity, t EventType, ev Event) (called, dropped int) {
	hs, ok := b.handlers.Get(t)
	if !ok || len(hs) == 0 {
		return 0, 0
	}

	// Handlers may register or trigger again. Entries are shared with nested
	// triggers, the list is swept as it stands once every handler returned.
	for _, h := range hs {
		if h.dead {
			continue
		}
		called++
		if h.fn(origin, t, ev) == Die {
			h.dead = true
			dropped++
		}
	}

	current, _ := b.handlers.Get(t)
	live := make([]*handlerEntry, 0, len(current))
	for _, h := range current {
		if !h.dead {
			live = append(live, h)
		}
	}
	b.handlers.Put(t, live)
	return called, dropped
}

// TypedEvent is implemented by events that carry their own type key.
// EventType must not dereference its receiver.
type TypedEvent interface {
	EventType() EventType
}

// Handle registers fn for events of type E on bus.
func Handle[E TypedEvent](bus *EventBus, fn func(origin Entity, ev E) EventStatus) bool {
	var zero E
	return bus.RegisterHandler(zero.EventType(), func(origin Entity, _ EventType, ev Event) EventStatus {
		typed, ok := ev.(E)
		if !ok {
			return Keep
		}
		return fn(origin, typed)
	})
}

// Trigger sends ev from origin to the handlers of its type.
func Trigger[E TypedEvent](bus *EventBus, origin Entity, ev E) int {
	return bus.TriggerEvent(origin, ev.EventType(), ev)
}
