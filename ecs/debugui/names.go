package debugui

import (
	"github.com/kamstrup/intmap"
	"github.com/plus3/libes/ecs"
)

// TypeNames maps hashed component types back to readable names for display.
type TypeNames struct {
	names *intmap.Map[ecs.ComponentType, string]
}

// NewTypeNames returns an empty name table.
func NewTypeNames() *TypeNames {
	return &TypeNames{names: intmap.New[ecs.ComponentType, string](32)}
}

// Register hashes name and remembers it.
func (n *TypeNames) Register(name string) ecs.ComponentType {
	t := ecs.ComponentTypeOf(name)
	n.names.Put(t, name)
	return t
}

// Set remembers name for an explicit type.
func (n *TypeNames) Set(t ecs.ComponentType, name string) {
	n.names.Put(t, name)
}

// Name returns the registered name of t, or its hexadecimal form.
func (n *TypeNames) Name(t ecs.ComponentType) string {
	if n != nil {
		if name, ok := n.names.Get(t); ok {
			return name
		}
	}
	return t.String()
}

// List returns the names of types, in the same order.
func (n *TypeNames) List(types []ecs.ComponentType) []string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = n.Name(t)
	}
	return names
}
