package ecs

import "slices"

// Kind tells which iteration topology a system uses.
type Kind int

const (
	KindGlobal Kind = iota
	KindLocal
	KindSingle
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindGlobal:
		return "global"
	case KindLocal:
		return "local"
	case KindSingle:
		return "single"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// System represents a behavior that runs every frame over the entities it
// was subscribed to. User-defined systems embed one of GlobalSystem,
// LocalSystem, SingleSystem or CustomSystem and override the hooks they need
// (Init, PreUpdate, PostUpdate) by defining them on the embedding type.
type System interface {
	// Priority orders systems: lower priorities run first.
	Priority() int
	// NeededComponents returns the component types an entity must carry
	// to be handled by this system.
	NeededComponents() []ComponentType

	Init()
	PreUpdate(delta float64)
	Update(delta float64)
	PostUpdate(delta float64)

	AddEntity(e Entity) bool
	RemoveEntity(e Entity) bool

	Kind() Kind
	Accept(v Visitor)
}

// EntityUpdater receives the per-entity calls of a system's Update pass.
type EntityUpdater interface {
	UpdateEntity(delta float64, e Entity)
}

// UpdateFunc adapts a plain function to EntityUpdater.
type UpdateFunc func(delta float64, e Entity)

func (f UpdateFunc) UpdateEntity(delta float64, e Entity) {
	f(delta, e)
}

// Visitor dispatches on the concrete system variant.
type Visitor interface {
	VisitGlobal(s *GlobalSystem)
	VisitLocal(s *LocalSystem)
	VisitSingle(s *SingleSystem)
	VisitCustom(s *CustomSystem)
}

// baseSystem carries what every variant shares.
type baseSystem struct {
	priority int
	needed   []ComponentType
	updater  EntityUpdater
}

func newBaseSystem(priority int, needed []ComponentType, updater EntityUpdater) baseSystem {
	set := slices.Clone(needed)
	slices.Sort(set)
	set = slices.Compact(set)

	return baseSystem{
		priority: priority,
		needed:   set,
		updater:  updater,
	}
}

func (b *baseSystem) Priority() int {
	return b.priority
}

func (b *baseSystem) NeededComponents() []ComponentType {
	return slices.Clone(b.needed)
}

// Init does nothing by default.
func (b *baseSystem) Init() {}

// PreUpdate does nothing by default.
func (b *baseSystem) PreUpdate(delta float64) {}

// PostUpdate does nothing by default.
func (b *baseSystem) PostUpdate(delta float64) {}

// SetUpdater replaces the per-entity callback. Systems that embed a variant
// usually pass themselves here once they are fully constructed.
func (b *baseSystem) SetUpdater(updater EntityUpdater) {
	b.updater = updater
}

func (b *baseSystem) updateEntity(delta float64, e Entity) {
	if b.updater != nil {
		b.updater.UpdateEntity(delta, e)
	}
}

// includes reports whether every element of the sorted set sub is in the
// sorted set has.
func includes(has, sub []ComponentType) bool {
	i := 0
	for _, t := range sub {
		for i < len(has) && has[i] < t {
			i++
		}
		if i == len(has) || has[i] != t {
			return false
		}
		i++
	}
	return true
}
