package ecs_test

import (
	"fmt"

	"github.com/plus3/libes/ecs"
)

var ExplosionEvent = ecs.EventTypeOf("Explosion")

type Explosion struct {
	Radius float32
}

func (Explosion) EventType() ecs.EventType { return ExplosionEvent }

// ExampleEventBus shows one-shot and persistent handlers. A handler returning
// Die is dropped after the trigger that called it.
func ExampleEventBus() {
	m := ecs.NewManager()

	ecs.Handle(m.Events(), func(origin ecs.Entity, ev Explosion) ecs.EventStatus {
		fmt.Printf("first explosion from %d, radius %.0f\n", origin, ev.Radius)
		return ecs.Die
	})
	ecs.Handle(m.Events(), func(origin ecs.Entity, ev Explosion) ecs.EventStatus {
		fmt.Printf("explosion from %d\n", origin)
		return ecs.Keep
	})

	e := m.CreateEntity()
	ecs.Trigger(m.Events(), e, Explosion{Radius: 3})
	ecs.Trigger(m.Events(), e, Explosion{Radius: 5})

	// Output:
	// first explosion from 1, radius 3
	// explosion from 1
	// explosion from 1
}
