package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Component is any data record attached to an entity through a Store.
type Component = any

// Store holds the components of one component type, at most one per entity.
// A component handed to Add belongs to the store until it is handed back by
// Extract or dropped by Remove.
type Store struct {
	slots *intmap.Map[Entity, Component]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		slots: intmap.New[Entity, Component](256),
	}
}

// Has reports whether e holds a component in this store.
func (s *Store) Has(e Entity) bool {
	return s.slots.Has(e)
}

// Get returns the component of e, or nil if e has none.
func (s *Store) Get(e Entity) Component {
	c, ok := s.slots.Get(e)
	if !ok {
		return nil
	}
	return c
}

// Add stores c for e. It returns false if e already has a component in this
// store, in which case the existing component is left intact.
func (s *Store) Add(e Entity, c Component) bool {
	if e == InvalidEntity || c == nil {
		return false
	}
	_, added := s.slots.PutIfNotExists(e, c)
	return added
}

// Remove drops the component of e. It returns true iff one was present.
func (s *Store) Remove(e Entity) bool {
	return s.slots.Del(e)
}

// Extract detaches the component of e and hands it back to the caller.
func (s *Store) Extract(e Entity) (Component, bool) {
	c, ok := s.slots.Get(e)
	if !ok {
		return nil, false
	}
	s.slots.Del(e)
	return c, true
}

// Len returns the number of components held.
func (s *Store) Len() int {
	return s.slots.Len()
}

// Entities returns the entities holding a component, in ascending order.
func (s *Store) Entities() []Entity {
	entities := make([]Entity, 0, s.slots.Len())
	for e := range s.slots.Keys() {
		entities = append(entities, e)
	}
	slices.Sort(entities)
	return entities
}

// ComponentStore is a typed view over a Store whose components are all of type C.
type ComponentStore[C any] struct {
	store *Store
}

// NewComponentStore wraps store. It panics if store is nil.
func NewComponentStore[C any](store *Store) ComponentStore[C] {
	if store == nil {
		panic("ecs: component store requires a store")
	}
	return ComponentStore[C]{store: store}
}

// Has reports whether e holds a component.
func (cs ComponentStore[C]) Has(e Entity) bool {
	return cs.store.Has(e)
}

// Get returns the component of e, or the zero value of C if e has none.
func (cs ComponentStore[C]) Get(e Entity) C {
	c, _ := cs.store.Get(e).(C)
	return c
}

// Add stores c for e, see Store.Add.
func (cs ComponentStore[C]) Add(e Entity, c C) bool {
	return cs.store.Add(e, c)
}

// Remove drops the component of e, see Store.Remove.
func (cs ComponentStore[C]) Remove(e Entity) bool {
	return cs.store.Remove(e)
}

// Extract detaches the component of e and returns it.
func (cs ComponentStore[C]) Extract(e Entity) (C, bool) {
	c, ok := cs.store.Extract(e)
	if !ok {
		var zero C
		return zero, false
	}
	typed, ok := c.(C)
	return typed, ok
}

// Entities returns the entities holding a component, in ascending order.
func (cs ComponentStore[C]) Entities() []Entity {
	return cs.store.Entities()
}
