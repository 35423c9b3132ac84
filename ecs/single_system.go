package ecs

// SingleSystem handles at most one entity.
type SingleSystem struct {
	baseSystem
	entity Entity
}

// NewSingleSystem creates a single system with no entity.
func NewSingleSystem(priority int, needed []ComponentType, updater EntityUpdater) *SingleSystem {
	return &SingleSystem{
		baseSystem: newBaseSystem(priority, needed, updater),
	}
}

func (s *SingleSystem) Kind() Kind { return KindSingle }

func (s *SingleSystem) Accept(v Visitor) { v.VisitSingle(s) }

// AddEntity makes e the handled entity, replacing any previous one.
func (s *SingleSystem) AddEntity(e Entity) bool {
	if e == InvalidEntity {
		return false
	}
	s.entity = e
	return true
}

// RemoveEntity clears the handled entity if it is e.
func (s *SingleSystem) RemoveEntity(e Entity) bool {
	if e == InvalidEntity || s.entity != e {
		return false
	}
	s.entity = InvalidEntity
	return true
}

// Entity returns the handled entity, or InvalidEntity.
func (s *SingleSystem) Entity() Entity {
	return s.entity
}

// Update calls UpdateEntity for the handled entity, if any.
func (s *SingleSystem) Update(delta float64) {
	e := s.entity
	if e == InvalidEntity {
		return
	}
	s.updateEntity(delta, e)
}
