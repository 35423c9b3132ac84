package ecs_test

import (
	"fmt"

	"github.com/plus3/libes/ecs"
)

type CleanupSystem struct {
	*ecs.GlobalSystem
	m    *ecs.Manager
	dead int
}

func NewCleanupSystem(m *ecs.Manager) *CleanupSystem {
	s := &CleanupSystem{m: m}
	s.GlobalSystem = ecs.NewGlobalSystem(10, []ecs.ComponentType{HitpointsType}, s)
	return s
}

func (s *CleanupSystem) PreUpdate(delta float64) {
	s.dead = 0
}

func (s *CleanupSystem) UpdateEntity(delta float64, e ecs.Entity) {
	if ecs.Get[*Hitpoints](s.m, e).Current <= 0 {
		s.m.Commands().Retire(e)
		s.dead++
	}
}

func (s *CleanupSystem) PostUpdate(delta float64) {
	if s.dead > 0 {
		fmt.Printf("Queued %d dead entities for retirement\n", s.dead)
	}
}

// ExampleCommands demonstrates deferring entity retirement to the end of the
// frame. Retiring an entity in the middle of an update would pull its
// components away from systems that run later in the same frame; the
// Manager applies queued commands once the post-update pass is over.
func ExampleCommands() {
	m := ecs.NewManager()
	ecs.CreateStore[*Hitpoints](m)
	m.AddSystem(NewCleanupSystem(m))
	m.InitSystems()

	for _, hp := range []int{0, 50, 100} {
		e := m.CreateEntity()
		ecs.Add(m, e, &Hitpoints{Current: hp, Max: 100})
		m.SubscribeEntity(e)
	}

	m.UpdateSystems(1.0)

	fmt.Printf("Remaining entities: %d\n", len(m.Entities()))

	// Output:
	// Queued 1 dead entities for retirement
	// Remaining entities: 2
}

// ExampleCommands_Defer queues arbitrary work after the frame.
func ExampleCommands_Defer() {
	m := ecs.NewManager()
	m.Commands().Defer(func() { fmt.Println("after frame") })

	fmt.Println("before frame")
	m.UpdateSystems(0)

	// Output:
	// before frame
	// after frame
}
