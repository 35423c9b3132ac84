package ecs

// TypedComponent is implemented by components that carry their own type.
// ComponentType is called on the zero value of the component type, so it
// must not dereference its receiver.
type TypedComponent interface {
	ComponentType() ComponentType
}

func componentTypeOf[C TypedComponent]() ComponentType {
	var zero C
	return zero.ComponentType()
}

// CreateStore creates the store of C on m.
func CreateStore[C TypedComponent](m *Manager) bool {
	return m.CreateStoreFor(componentTypeOf[C]())
}

// StoreOf returns the typed store of C, or false if it was not created.
func StoreOf[C TypedComponent](m *Manager) (ComponentStore[C], bool) {
	store := m.Store(componentTypeOf[C]())
	if store == nil {
		return ComponentStore[C]{}, false
	}
	return NewComponentStore[C](store), true
}

// Add hands c to m for e, see Manager.AddComponent.
func Add[C TypedComponent](m *Manager, e Entity, c C) bool {
	return m.AddComponent(e, componentTypeOf[C](), c)
}

// Get returns the component C of e, or the zero value of C.
func Get[C TypedComponent](m *Manager, e Entity) C {
	c, _ := m.Component(e, componentTypeOf[C]()).(C)
	return c
}

// Extract detaches the component C of e and returns it.
func Extract[C TypedComponent](m *Manager, e Entity) (C, bool) {
	c, ok := m.ExtractComponent(e, componentTypeOf[C]()).(C)
	return c, ok
}
