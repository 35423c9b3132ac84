package ecs

import "fmt"

// Type is a generic 64-bit key that distinguishes elements of the same kind,
// such as component types or event types. Zero is never a valid Type.
type Type uint64

// InvalidType is the sentinel returned when no valid key exists.
const InvalidType Type = 0

const (
	hashOffset Type = 0xcbf29ce484222325
	hashPrime  Type = 0x100000001b3
)

// Hash computes the stable 64-bit key of a human-readable name.
// Bytes are folded from the last to the first, each one sign-extended
// before mixing, so the value only depends on the name.
// Hash panics when name is empty or hashes to InvalidType.
func Hash(name string) Type {
	if name == "" {
		panic("ecs: cannot hash an empty type name")
	}

	h := hashOffset
	for i := len(name) - 1; i >= 0; i-- {
		h = (Type(int64(int8(name[i]))) ^ h) * hashPrime
	}

	if h == InvalidType {
		panic("ecs: type name " + name + " hashes to the invalid type")
	}
	return h
}

// ComponentType selects the Store of a kind of component.
type ComponentType uint64

// InvalidComponent is the invalid component type.
const InvalidComponent ComponentType = 0

// ComponentTypeOf returns the component type derived from a name.
func ComponentTypeOf(name string) ComponentType {
	return ComponentType(Hash(name))
}

// EventType selects the handler list of a kind of event.
type EventType uint64

// InvalidEvent is the invalid event type.
const InvalidEvent EventType = 0

// EventTypeOf returns the event type derived from a name.
func EventTypeOf(name string) EventType {
	return EventType(Hash(name))
}

func (t ComponentType) String() string {
	return fmt.Sprintf("%#016x", uint64(t))
}

func (t EventType) String() string {
	return fmt.Sprintf("%#016x", uint64(t))
}
