package ecs_test

import "github.com/plus3/libes/ecs"

// Common test component types
var (
	PositionType = ecs.ComponentTypeOf("Position")
	VelocityType = ecs.ComponentTypeOf("Velocity")
	HealthType   = ecs.ComponentTypeOf("Health")
	NameType     = ecs.ComponentTypeOf("Name")
)

type Position struct {
	X, Y float32
}

func (*Position) ComponentType() ecs.ComponentType { return PositionType }

type Velocity struct {
	DX, DY float32
}

func (*Velocity) ComponentType() ecs.ComponentType { return VelocityType }

type Health struct {
	Current int
	Max     int
}

func (*Health) ComponentType() ecs.ComponentType { return HealthType }

type Name struct {
	Value string
}

func (*Name) ComponentType() ecs.ComponentType { return NameType }

func newTestManager() *ecs.Manager {
	m := ecs.NewManager()
	for _, t := range []ecs.ComponentType{PositionType, VelocityType, HealthType, NameType} {
		m.CreateStoreFor(t)
	}
	return m
}

// recorder collects the entities a system visits.
type recorder struct {
	visited []ecs.Entity
}

func (r *recorder) UpdateEntity(delta float64, e ecs.Entity) {
	r.visited = append(r.visited, e)
}
