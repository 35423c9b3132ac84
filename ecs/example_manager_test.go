package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/plus3/libes/ecs"
)

var (
	TransformType = ecs.ComponentTypeOf("Transform")
	SpeedType     = ecs.ComponentTypeOf("Speed")
	HitpointsType = ecs.ComponentTypeOf("Hitpoints")
)

type Transform struct {
	X, Y float32
}

func (*Transform) ComponentType() ecs.ComponentType { return TransformType }

type Speed struct {
	DX, DY float32
}

func (*Speed) ComponentType() ecs.ComponentType { return SpeedType }

type Hitpoints struct {
	Current, Max int
}

func (*Hitpoints) ComponentType() ecs.ComponentType { return HitpointsType }

type PhysicsSystem struct {
	*ecs.GlobalSystem
	m *ecs.Manager
}

func NewPhysicsSystem(m *ecs.Manager) *PhysicsSystem {
	s := &PhysicsSystem{m: m}
	s.GlobalSystem = ecs.NewGlobalSystem(0, []ecs.ComponentType{TransformType, SpeedType}, s)
	return s
}

func (s *PhysicsSystem) UpdateEntity(delta float64, e ecs.Entity) {
	t := ecs.Get[*Transform](s.m, e)
	v := ecs.Get[*Speed](s.m, e)
	t.X += v.DX * float32(delta)
	t.Y += v.DY * float32(delta)
}

type HealingSystem struct {
	*ecs.GlobalSystem
	m         *ecs.Manager
	RegenRate float32
}

func NewHealingSystem(m *ecs.Manager, regen float32) *HealingSystem {
	s := &HealingSystem{m: m, RegenRate: regen}
	s.GlobalSystem = ecs.NewGlobalSystem(1, []ecs.ComponentType{HitpointsType}, s)
	return s
}

func (s *HealingSystem) UpdateEntity(delta float64, e ecs.Entity) {
	hp := ecs.Get[*Hitpoints](s.m, e)
	if hp.Current < hp.Max {
		hp.Current = min(hp.Current+int(s.RegenRate*float32(delta)), hp.Max)
	}
}

// ExampleManager demonstrates building a game loop with multiple systems.
// Stores are created first, then systems are added and ordered once by
// InitSystems. Entities only reach a system after they are subscribed, which
// matches their component types against what each system needs.
func ExampleManager() {
	m := ecs.NewManager()
	ecs.CreateStore[*Transform](m)
	ecs.CreateStore[*Speed](m)
	ecs.CreateStore[*Hitpoints](m)

	m.AddSystem(NewHealingSystem(m, 10))
	m.AddSystem(NewPhysicsSystem(m))
	m.InitSystems()

	a := m.CreateEntity()
	ecs.Add(m, a, &Transform{X: 0, Y: 0})
	ecs.Add(m, a, &Speed{DX: 10, DY: 5})
	ecs.Add(m, a, &Hitpoints{Current: 80, Max: 100})
	m.SubscribeEntity(a)

	b := m.CreateEntity()
	ecs.Add(m, b, &Transform{X: 100, Y: 100})
	ecs.Add(m, b, &Speed{DX: -5, DY: -5})
	ecs.Add(m, b, &Hitpoints{Current: 50, Max: 100})
	m.SubscribeEntity(b)

	m.UpdateSystems(1.0)

	fmt.Println("After one frame:")
	for _, e := range m.Entities() {
		t := ecs.Get[*Transform](m, e)
		hp := ecs.Get[*Hitpoints](m, e)
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n", t.X, t.Y, hp.Current, hp.Max)
	}

	// Output:
	// After one frame:
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleManager_Run demonstrates running a continuous game loop.
// The Run method blocks and updates all systems at a fixed interval
// until the context is cancelled.
func ExampleManager_Run() {
	m := ecs.NewManager()
	ecs.CreateStore[*Transform](m)
	ecs.CreateStore[*Speed](m)
	m.AddSystem(NewPhysicsSystem(m))
	m.InitSystems()

	e := m.CreateEntity()
	ecs.Add(m, e, &Transform{})
	ecs.Add(m, e, &Speed{DX: 1, DY: 1})
	m.SubscribeEntity(e)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	m.Run(ctx, 16*time.Millisecond)

	fmt.Println("Manager stopped")
	// Output:
	// Manager stopped
}

// ExampleArchetype shows creating entities of a known shape. Create
// subscribes the new entity with the archetype's types, so components can be
// added afterwards without resubscribing.
func ExampleArchetype() {
	m := ecs.NewManager()
	ecs.CreateStore[*Transform](m)
	ecs.CreateStore[*Speed](m)
	physics := NewPhysicsSystem(m)
	m.AddSystem(physics)
	m.InitSystems()

	mover := ecs.NewArchetype(TransformType, SpeedType)
	for i := range 3 {
		e := mover.Create(m)
		ecs.Add(m, e, &Transform{X: float32(i)})
		ecs.Add(m, e, &Speed{DX: 1})
	}

	m.UpdateSystems(2)

	fmt.Println("Physics entities:", physics.Len())
	for _, e := range physics.Entities() {
		fmt.Printf("x=%.0f\n", ecs.Get[*Transform](m, e).X)
	}
	// Output:
	// Physics entities: 3
	// x=2
	// x=3
	// x=4
}
