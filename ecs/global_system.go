package ecs

import "github.com/kamstrup/intmap"

// GlobalSystem updates every entity of a flat working set each frame.
type GlobalSystem struct {
	baseSystem
	entities *intmap.Set[Entity]
}

// NewGlobalSystem creates a global system. updater receives one call per
// subscribed entity during Update and may be nil.
func NewGlobalSystem(priority int, needed []ComponentType, updater EntityUpdater) *GlobalSystem {
	return &GlobalSystem{
		baseSystem: newBaseSystem(priority, needed, updater),
		entities:   intmap.NewSet[Entity](64),
	}
}

func (s *GlobalSystem) Kind() Kind { return KindGlobal }

func (s *GlobalSystem) Accept(v Visitor) { v.VisitGlobal(s) }

// AddEntity subscribes e. It returns false if e was already subscribed.
func (s *GlobalSystem) AddEntity(e Entity) bool {
	if e == InvalidEntity {
		return false
	}
	return s.entities.Add(e)
}

// RemoveEntity unsubscribes e. It returns false if e was not subscribed.
func (s *GlobalSystem) RemoveEntity(e Entity) bool {
	return s.entities.Del(e)
}

// Has reports whether e is in the working set.
func (s *GlobalSystem) Has(e Entity) bool {
	return s.entities.Has(e)
}

// Len returns the size of the working set.
func (s *GlobalSystem) Len() int {
	return s.entities.Len()
}

// Entities returns a snapshot of the working set in ascending order.
func (s *GlobalSystem) Entities() []Entity {
	return sortedEntities(s.entities)
}

// Update calls UpdateEntity for every entity subscribed when the pass
// started. Entities added or removed by the callbacks are seen next frame.
func (s *GlobalSystem) Update(delta float64) {
	for _, e := range s.Entities() {
		s.updateEntity(delta, e)
	}
}
