package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Entity is an opaque identifier. It carries no data of its own.
type Entity uint64

// InvalidEntity is never returned by EntityRegistry.Create.
const InvalidEntity Entity = 0

// EntityRegistry allocates entity identifiers and tracks which ones are alive,
// together with the component types each alive entity currently carries.
// Identifiers come from a counter starting at 1 and are never reused.
type EntityRegistry struct {
	next       Entity
	alive      *intmap.Set[Entity]
	components *intmap.Map[Entity, *intmap.Set[ComponentType]]
}

// NewEntityRegistry creates an empty registry.
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{
		next:       1,
		alive:      intmap.NewSet[Entity](256),
		components: intmap.New[Entity, *intmap.Set[ComponentType]](256),
	}
}

// Create allocates a new entity. It panics if the identifier space wrapped.
func (r *EntityRegistry) Create() Entity {
	e := r.next
	if e == InvalidEntity {
		panic("ecs: entity identifier counter overflow")
	}
	r.next++

	if !r.alive.Add(e) {
		panic("ecs: entity identifier allocated twice")
	}
	return e
}

// Destroy removes e from the alive set and forgets its component types.
// It returns true iff e was alive. Stores and systems are left untouched.
func (r *EntityRegistry) Destroy(e Entity) bool {
	if !r.alive.Del(e) {
		return false
	}
	r.components.Del(e)
	return true
}

// Alive reports whether e was created and not yet destroyed.
func (r *EntityRegistry) Alive(e Entity) bool {
	return e != InvalidEntity && r.alive.Has(e)
}

// Len returns the number of alive entities.
func (r *EntityRegistry) Len() int {
	return r.alive.Len()
}

// Entities returns a snapshot of the alive entities in ascending order.
func (r *EntityRegistry) Entities() []Entity {
	return sortedEntities(r.alive)
}

// ComponentTypes returns the component types recorded for e in ascending order.
func (r *EntityRegistry) ComponentTypes(e Entity) []ComponentType {
	set, ok := r.components.Get(e)
	if !ok {
		return nil
	}
	return sortedTypes(set)
}

func (r *EntityRegistry) attach(e Entity, t ComponentType) {
	if !r.Alive(e) {
		return
	}
	set, ok := r.components.Get(e)
	if !ok {
		set = intmap.NewSet[ComponentType](8)
		r.components.Put(e, set)
	}
	set.Add(t)
}

func (r *EntityRegistry) detach(e Entity, t ComponentType) {
	set, ok := r.components.Get(e)
	if !ok {
		return
	}
	set.Del(t)
}

func sortedTypes(set *intmap.Set[ComponentType]) []ComponentType {
	types := make([]ComponentType, 0, set.Len())
	for t := range set.All() {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func sortedEntities(set *intmap.Set[Entity]) []Entity {
	entities := make([]Entity, 0, set.Len())
	for e := range set.All() {
		entities = append(entities, e)
	}
	slices.Sort(entities)
	return entities
}
