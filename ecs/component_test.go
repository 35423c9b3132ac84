package ecs_test

import (
	"testing"

	"github.com/plus3/libes/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedHelpers(t *testing.T) {
	m := ecs.NewManager()
	assert.True(t, ecs.CreateStore[*Position](m))
	assert.False(t, ecs.CreateStore[*Position](m))

	_, ok := ecs.StoreOf[*Velocity](m)
	assert.False(t, ok)

	e := m.CreateEntity()
	require.True(t, ecs.Add(m, e, &Position{X: 1, Y: 2}))
	assert.Equal(t, &Position{X: 1, Y: 2}, ecs.Get[*Position](m, e))
	assert.Nil(t, ecs.Get[*Velocity](m, e))

	positions, ok := ecs.StoreOf[*Position](m)
	require.True(t, ok)
	assert.Equal(t, []ecs.Entity{e}, positions.Entities())

	pos, ok := ecs.Extract[*Position](m, e)
	assert.True(t, ok)
	assert.Equal(t, float32(1), pos.X)
	assert.False(t, positions.Has(e))
	assert.Empty(t, m.ComponentTypes(e))
}

func TestArchetype(t *testing.T) {
	a := ecs.NewArchetype(VelocityType, PositionType, PositionType, ecs.InvalidComponent)

	assert.Len(t, a.Types(), 2)
	assert.True(t, a.Has(PositionType))
	assert.True(t, a.Has(VelocityType))
	assert.False(t, a.Has(HealthType))

	assert.True(t, a.Matches([]ecs.ComponentType{PositionType}))
	assert.True(t, a.Matches(nil))
	assert.False(t, a.Matches([]ecs.ComponentType{PositionType, HealthType}))

	t.Run("create subscribes", func(t *testing.T) {
		m := newTestManager()
		movers := ecs.NewGlobalSystem(0, []ecs.ComponentType{PositionType, VelocityType}, nil)
		healers := ecs.NewGlobalSystem(0, []ecs.ComponentType{HealthType}, nil)
		m.AddSystem(movers)
		m.AddSystem(healers)

		e := a.Create(m)
		assert.True(t, m.Alive(e))
		assert.True(t, movers.Has(e))
		assert.False(t, healers.Has(e))
	})
}
