package ecs

import (
	"slices"
	"strings"
)

// Archetype is a set of component types describing a kind of entity.
type Archetype struct {
	types []ComponentType
}

// NewArchetype creates an archetype from component types. Duplicates and
// invalid types are ignored.
func NewArchetype(types ...ComponentType) Archetype {
	set := make([]ComponentType, 0, len(types))
	for _, t := range types {
		if t != InvalidComponent {
			set = append(set, t)
		}
	}
	slices.Sort(set)
	return Archetype{types: slices.Compact(set)}
}

// Types returns the component types in ascending order.
func (a Archetype) Types() []ComponentType {
	return slices.Clone(a.types)
}

// Has reports whether t belongs to the archetype.
func (a Archetype) Has(t ComponentType) bool {
	_, found := slices.BinarySearch(a.types, t)
	return found
}

// Matches reports whether a system needing needed can handle the archetype.
func (a Archetype) Matches(needed []ComponentType) bool {
	set := slices.Clone(needed)
	slices.Sort(set)
	return includes(a.types, slices.Compact(set))
}

// Create makes a new entity on m and subscribes it to the systems its
// archetype satisfies. Components are added by the caller.
func (a Archetype) Create(m *Manager) Entity {
	e := m.CreateEntity()
	m.SubscribeEntityToSystems(e, a.types)
	return e
}

func (a Archetype) String() string {
	var b strings.Builder
	b.WriteString("Archetype{")
	for i, t := range a.types {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.String())
	}
	b.WriteString("}")
	return b.String()
}
