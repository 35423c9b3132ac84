package main

import (
	"fmt"
	"math/rand"

	"github.com/kamstrup/intmap"
	"github.com/plus3/libes/ecs"
	"github.com/plus3/libes/internal/config"
)

const (
	gridSize      = 16
	churnPriority = 1000
)

// Counter is the payload of every generated component type.
type Counter struct {
	Value int
}

// ChurnEvent is triggered once per frame with the entities replaced.
type ChurnEvent struct {
	Retired int
	Spawned int
}

var ChurnEventType = ecs.EventTypeOf("stress.Churn")

func (ChurnEvent) EventType() ecs.EventType { return ChurnEventType }

// World drives a Manager populated with generated stores and systems.
type World struct {
	m      *ecs.Manager
	rng    *rand.Rand
	types  []ecs.ComponentType
	grids  []*ecs.LocalSystem
	cfg    config.StressConfig
	alive  []ecs.Entity
	events int

	Spawned int
	Retired int
}

func NewWorld(m *ecs.Manager, cfg config.StressConfig) *World {
	w := &World{
		m:   m,
		rng: rand.New(rand.NewSource(cfg.Seed)),
		cfg: cfg,
	}

	for i := range cfg.ComponentTypes {
		t := ecs.ComponentTypeOf(fmt.Sprintf("Component%03d", i))
		m.CreateStoreFor(t)
		w.types = append(w.types, t)
	}

	for i := range cfg.Systems {
		w.addSystem(i)
	}
	m.AddSystem(&churnSystem{
		CustomSystem: ecs.NewCustomSystem(churnPriority, nil, nil),
		world:        w,
	})
	m.InitSystems()

	ecs.Handle(m.Events(), func(origin ecs.Entity, ev ChurnEvent) ecs.EventStatus {
		w.events++
		return ecs.Keep
	})

	for range cfg.Entities {
		w.spawn()
	}
	return w
}

// randomTypes picks n distinct component types.
func (w *World) randomTypes(n int) []ecs.ComponentType {
	n = min(n, len(w.types))
	picked := make([]ecs.ComponentType, 0, n)
	for _, i := range w.rng.Perm(len(w.types))[:n] {
		picked = append(picked, w.types[i])
	}
	return picked
}

func (w *World) bump(t ecs.ComponentType) ecs.EntityUpdater {
	return ecs.UpdateFunc(func(delta float64, e ecs.Entity) {
		if c, ok := w.m.Component(e, t).(*Counter); ok {
			c.Value++
		}
	})
}

func (w *World) addSystem(i int) {
	priority := w.rng.Intn(10)
	needed := w.randomTypes(w.rng.Intn(2) + 1)

	var sys ecs.System
	switch i % 4 {
	case 0:
		sys = ecs.NewGlobalSystem(priority, needed, w.bump(needed[0]))
	case 1:
		grid := ecs.NewLocalSystem(priority, needed, gridSize, gridSize, w.bump(needed[0]))
		grid.SetFocus(w.rng.Intn(gridSize), w.rng.Intn(gridSize))
		w.grids = append(w.grids, grid)
		sys = grid
	case 2:
		sys = ecs.NewSingleSystem(priority, needed, w.bump(needed[0]))
	default:
		sys = newSampleSystem(priority, needed, w.rng.Intn(4)+2, w.bump(needed[0]))
	}
	w.m.AddSystem(sys)
}

func (w *World) spawn() ecs.Entity {
	e := w.m.CreateEntity()
	for _, t := range w.randomTypes(w.rng.Intn(5) + 1) {
		w.m.AddComponent(e, t, &Counter{})
	}
	w.m.SubscribeEntity(e)

	x, y := int(e)%gridSize, (int(e)/gridSize)%gridSize
	for _, grid := range w.grids {
		if ecs.NewArchetype(w.m.ComponentTypes(e)...).Matches(grid.NeededComponents()) {
			grid.AddLocalEntity(e, x, y)
		}
	}

	w.alive = append(w.alive, e)
	w.Spawned++
	return e
}

// churn queues the retirement of n random entities and spawns n new ones
// once the frame is over.
func (w *World) churn(n int) {
	n = min(n, len(w.alive))
	for range n {
		i := w.rng.Intn(len(w.alive))
		w.m.Commands().Retire(w.alive[i])
		w.alive[i] = w.alive[len(w.alive)-1]
		w.alive = w.alive[:len(w.alive)-1]
	}
	w.Retired += n

	w.m.Commands().Defer(func() {
		for range n {
			w.spawn()
		}
		ecs.Trigger(w.m.Events(), ecs.InvalidEntity, ChurnEvent{Retired: n, Spawned: n})
	})
}

// churnSystem is a custom system that holds no entity and replaces part of
// the population at the end of every frame.
type churnSystem struct {
	*ecs.CustomSystem
	world *World
}

func (s *churnSystem) PostUpdate(delta float64) {
	if s.world.cfg.Churn > 0 {
		s.world.churn(s.world.cfg.Churn)
	}
}

// sampleSystem is a custom system that only keeps one entity out of every
// `every` it is offered.
type sampleSystem struct {
	*ecs.CustomSystem
	every   int
	offered int
	members *intmap.Set[ecs.Entity]
}

func newSampleSystem(priority int, needed []ecs.ComponentType, every int, updater ecs.EntityUpdater) *sampleSystem {
	return &sampleSystem{
		CustomSystem: ecs.NewCustomSystem(priority, needed, updater),
		every:        every,
		members:      intmap.NewSet[ecs.Entity](64),
	}
}

func (s *sampleSystem) AddEntity(e ecs.Entity) bool {
	s.offered++
	if s.offered%s.every != 0 {
		return false
	}
	return s.members.Add(e)
}

func (s *sampleSystem) RemoveEntity(e ecs.Entity) bool {
	return s.members.Del(e)
}

func (s *sampleSystem) Update(delta float64) {
	snapshot := make([]ecs.Entity, 0, s.members.Len())
	for e := range s.members.All() {
		snapshot = append(snapshot, e)
	}
	for _, e := range snapshot {
		s.UpdateEntity(delta, e)
	}
}
