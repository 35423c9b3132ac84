package ecs_test

import (
	"testing"

	"github.com/plus3/libes/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reaperSystem retires entities whose health dropped to zero.
type reaperSystem struct {
	*ecs.GlobalSystem
	m *ecs.Manager
}

func newReaperSystem(m *ecs.Manager) *reaperSystem {
	s := &reaperSystem{m: m}
	s.GlobalSystem = ecs.NewGlobalSystem(0, []ecs.ComponentType{HealthType}, nil)
	s.SetUpdater(s)
	return s
}

func (s *reaperSystem) UpdateEntity(delta float64, e ecs.Entity) {
	if hp := ecs.Get[*Health](s.m, e); hp != nil && hp.Current <= 0 {
		s.m.Commands().Retire(e)
	}
}

func TestCommands(t *testing.T) {
	t.Run("retire after the frame", func(t *testing.T) {
		m := newTestManager()
		reaper := newReaperSystem(m)
		seen := 0
		counter := ecs.NewGlobalSystem(1, []ecs.ComponentType{HealthType}, ecs.UpdateFunc(func(float64, ecs.Entity) {
			seen++
		}))
		m.AddSystem(reaper)
		m.AddSystem(counter)
		m.InitSystems()

		dead := m.CreateEntity()
		ecs.Add(m, dead, &Health{Current: 0, Max: 10})
		alive := m.CreateEntity()
		ecs.Add(m, alive, &Health{Current: 5, Max: 10})
		m.SubscribeEntity(dead)
		m.SubscribeEntity(alive)

		m.UpdateSystems(0.1)
		assert.Equal(t, 2, seen, "later systems still see the retired entity this frame")
		assert.False(t, m.Alive(dead))
		assert.True(t, m.Alive(alive))
		assert.False(t, reaper.Has(dead))
		assert.Equal(t, 0, m.Commands().Len())

		m.UpdateSystems(0.1)
		assert.Equal(t, 3, seen)
	})

	t.Run("subscribe after the frame", func(t *testing.T) {
		m := newTestManager()
		movers := ecs.NewGlobalSystem(0, []ecs.ComponentType{PositionType, VelocityType}, nil)
		m.AddSystem(movers)
		m.InitSystems()

		e := m.CreateEntity()
		ecs.Add(m, e, &Position{})
		ecs.Add(m, e, &Velocity{DX: 1})
		m.Commands().Subscribe(e)
		assert.False(t, movers.Has(e))

		m.UpdateSystems(0)
		assert.True(t, movers.Has(e))
	})

	t.Run("retired entities are not resubscribed", func(t *testing.T) {
		m := newTestManager()
		sys := ecs.NewGlobalSystem(0, nil, nil)
		m.AddSystem(sys)
		e := m.CreateEntity()

		m.Commands().Subscribe(e)
		m.Commands().Retire(e)
		m.UpdateSystems(0)

		assert.False(t, m.Alive(e))
		assert.False(t, sys.Has(e))
	})

	t.Run("defer", func(t *testing.T) {
		m := ecs.NewManager()
		var order []int
		m.Commands().Defer(func() {
			order = append(order, 1)
			m.Commands().Defer(func() { order = append(order, 3) })
		})
		m.Commands().Defer(func() { order = append(order, 2) })
		m.Commands().Defer(nil)
		require.Equal(t, 2, m.Commands().Len())

		m.UpdateSystems(0)
		assert.Equal(t, []int{1, 2}, order)
		assert.Equal(t, 1, m.Commands().Len(), "queued while flushing")

		m.UpdateSystems(0)
		assert.Equal(t, []int{1, 2, 3}, order)
	})
}
