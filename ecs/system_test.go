package ecs_test

import (
	"testing"

	"github.com/plus3/libes/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalSystem(t *testing.T) {
	t.Run("membership", func(t *testing.T) {
		sys := ecs.NewGlobalSystem(0, nil, nil)

		assert.True(t, sys.AddEntity(1))
		assert.False(t, sys.AddEntity(1))
		assert.False(t, sys.AddEntity(ecs.InvalidEntity))
		assert.True(t, sys.Has(1))
		assert.Equal(t, 1, sys.Len())

		assert.True(t, sys.RemoveEntity(1))
		assert.False(t, sys.RemoveEntity(1))
		assert.Equal(t, 0, sys.Len())
	})

	t.Run("update visits every entity once", func(t *testing.T) {
		rec := &recorder{}
		sys := ecs.NewGlobalSystem(0, nil, rec)
		for _, e := range []ecs.Entity{3, 1, 2} {
			sys.AddEntity(e)
		}

		sys.Update(0.1)
		assert.Equal(t, []ecs.Entity{1, 2, 3}, rec.visited)
	})

	t.Run("self removal during update", func(t *testing.T) {
		var sys *ecs.GlobalSystem
		visits := map[ecs.Entity]int{}
		sys = ecs.NewGlobalSystem(0, nil, ecs.UpdateFunc(func(delta float64, e ecs.Entity) {
			visits[e]++
			sys.RemoveEntity(e)
		}))
		for e := ecs.Entity(1); e <= 4; e++ {
			sys.AddEntity(e)
		}

		sys.Update(0.1)
		assert.Len(t, visits, 4)
		for e, n := range visits {
			assert.Equal(t, 1, n, "entity %d", e)
		}
		assert.Equal(t, 0, sys.Len())

		sys.Update(0.1)
		assert.Len(t, visits, 4)
	})

	t.Run("entities added during update wait for the next frame", func(t *testing.T) {
		var sys *ecs.GlobalSystem
		rec := &recorder{}
		sys = ecs.NewGlobalSystem(0, nil, ecs.UpdateFunc(func(delta float64, e ecs.Entity) {
			rec.UpdateEntity(delta, e)
			sys.AddEntity(e + 100)
		}))
		sys.AddEntity(1)

		sys.Update(0)
		assert.Equal(t, []ecs.Entity{1}, rec.visited)
		assert.True(t, sys.Has(101))
	})

	t.Run("needed components are a sorted set", func(t *testing.T) {
		sys := ecs.NewGlobalSystem(7, []ecs.ComponentType{3, 1, 3, 2}, nil)
		assert.Equal(t, []ecs.ComponentType{1, 2, 3}, sys.NeededComponents())
		assert.Equal(t, 7, sys.Priority())
		assert.Equal(t, ecs.KindGlobal, sys.Kind())
	})
}

func TestLocalSystem(t *testing.T) {
	t.Run("neighborhood of the focus", func(t *testing.T) {
		rec := &recorder{}
		sys := ecs.NewLocalSystem(0, nil, 3, 3, rec)
		require.True(t, sys.AddLocalEntity(42, 1, 1))

		x, y := sys.Focus()
		assert.Equal(t, 0, x)
		assert.Equal(t, 0, y)

		sys.Update(0.1)
		assert.Equal(t, []ecs.Entity{42}, rec.visited)
	})

	t.Run("focus outside the grid is rejected", func(t *testing.T) {
		sys := ecs.NewLocalSystem(0, nil, 3, 3, nil)

		assert.False(t, sys.SetFocus(3, 3))
		assert.False(t, sys.SetFocus(-1, 0))
		x, y := sys.Focus()
		assert.Equal(t, [2]int{0, 0}, [2]int{x, y})

		assert.True(t, sys.SetFocus(2, 2))
		x, y = sys.Focus()
		assert.Equal(t, [2]int{2, 2}, [2]int{x, y})
	})

	t.Run("far cells are skipped", func(t *testing.T) {
		rec := &recorder{}
		sys := ecs.NewLocalSystem(0, nil, 5, 5, rec)
		sys.AddLocalEntity(1, 0, 0)
		sys.AddLocalEntity(2, 1, 1)
		sys.AddLocalEntity(3, 2, 2)
		sys.AddLocalEntity(4, 4, 4)

		sys.Update(0)
		assert.Equal(t, []ecs.Entity{1, 2}, rec.visited)

		rec.visited = nil
		sys.SetFocus(3, 3)
		sys.Update(0)
		assert.Equal(t, []ecs.Entity{3, 4}, rec.visited)
	})

	t.Run("entity bound to several cells is visited once", func(t *testing.T) {
		rec := &recorder{}
		sys := ecs.NewLocalSystem(0, nil, 3, 3, rec)
		sys.AddLocalEntity(7, 0, 0)
		sys.AddLocalEntity(7, 1, 0)
		sys.SetFocus(1, 1)

		sys.Update(0)
		assert.Equal(t, []ecs.Entity{7}, rec.visited)
		assert.Equal(t, 2, sys.Len())
	})

	t.Run("bindings", func(t *testing.T) {
		sys := ecs.NewLocalSystem(0, nil, 2, 2, nil)

		assert.False(t, sys.AddLocalEntity(1, 2, 0))
		assert.False(t, sys.AddLocalEntity(ecs.InvalidEntity, 0, 0))
		assert.True(t, sys.AddLocalEntity(1, 0, 0))
		assert.False(t, sys.AddLocalEntity(1, 0, 0))

		assert.True(t, sys.MoveLocalEntity(1, 0, 0, 1, 1))
		assert.Empty(t, sys.CellEntities(0, 0))
		assert.Equal(t, []ecs.Entity{1}, sys.CellEntities(1, 1))
		assert.False(t, sys.MoveLocalEntity(1, 0, 0, 1, 0))

		assert.True(t, sys.RemoveLocalEntity(1, 1, 1))
		assert.False(t, sys.RemoveLocalEntity(1, 1, 1))
	})

	t.Run("add entity needs a cell", func(t *testing.T) {
		sys := ecs.NewLocalSystem(0, nil, 2, 2, nil)
		assert.False(t, sys.AddEntity(1))
		assert.Equal(t, 0, sys.Len())
	})

	t.Run("remove entity unbinds every cell", func(t *testing.T) {
		sys := ecs.NewLocalSystem(0, nil, 2, 2, nil)
		sys.AddLocalEntity(1, 0, 0)
		sys.AddLocalEntity(1, 1, 1)

		assert.True(t, sys.RemoveEntity(1))
		assert.Equal(t, 0, sys.Len())
		assert.False(t, sys.RemoveEntity(1))
	})

	t.Run("reset", func(t *testing.T) {
		sys := ecs.NewLocalSystem(0, nil, 2, 2, nil)
		sys.AddLocalEntity(1, 1, 1)
		sys.SetFocus(1, 1)

		sys.Reset(4, 3)
		w, h := sys.Size()
		assert.Equal(t, 4, w)
		assert.Equal(t, 3, h)
		assert.Equal(t, 0, sys.Len())
		x, y := sys.Focus()
		assert.Equal(t, [2]int{0, 0}, [2]int{x, y})

		assert.Panics(t, func() { sys.Reset(0, 3) })
		assert.Panics(t, func() { ecs.NewLocalSystem(0, nil, 3, -1, nil) })
	})
}

func TestSingleSystem(t *testing.T) {
	rec := &recorder{}
	sys := ecs.NewSingleSystem(0, nil, rec)

	sys.Update(0)
	assert.Empty(t, rec.visited)

	assert.True(t, sys.AddEntity(1))
	assert.True(t, sys.AddEntity(2))
	assert.Equal(t, ecs.Entity(2), sys.Entity())
	assert.False(t, sys.AddEntity(ecs.InvalidEntity))

	sys.Update(0)
	assert.Equal(t, []ecs.Entity{2}, rec.visited)

	assert.False(t, sys.RemoveEntity(1))
	assert.True(t, sys.RemoveEntity(2))
	assert.Equal(t, ecs.InvalidEntity, sys.Entity())
}

// pairSystem keeps its own membership on top of CustomSystem.
type pairSystem struct {
	*ecs.CustomSystem
	members []ecs.Entity
}

func (s *pairSystem) AddEntity(e ecs.Entity) bool {
	if len(s.members) == 2 {
		return false
	}
	s.members = append(s.members, e)
	return true
}

func (s *pairSystem) Update(delta float64) {
	for _, e := range s.members {
		s.UpdateEntity(delta, e)
	}
}

func TestCustomSystem(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		rec := &recorder{}
		sys := ecs.NewCustomSystem(0, nil, rec)

		assert.False(t, sys.AddEntity(1))
		assert.False(t, sys.RemoveEntity(1))
		sys.Update(0)
		assert.Empty(t, rec.visited)

		sys.UpdateEntity(0, 5)
		assert.Equal(t, []ecs.Entity{5}, rec.visited)
		assert.Equal(t, ecs.KindCustom, sys.Kind())
	})

	t.Run("embedded", func(t *testing.T) {
		rec := &recorder{}
		sys := &pairSystem{CustomSystem: ecs.NewCustomSystem(0, nil, rec)}

		m := ecs.NewManager()
		m.AddSystem(sys)
		a, b, c := m.CreateEntity(), m.CreateEntity(), m.CreateEntity()
		for _, e := range []ecs.Entity{a, b, c} {
			m.SubscribeEntityToSystems(e, nil)
		}

		m.UpdateSystems(0)
		assert.Equal(t, []ecs.Entity{a, b}, rec.visited)
	})
}

type kindCounter struct {
	global, local, single, custom int
}

func (k *kindCounter) VisitGlobal(*ecs.GlobalSystem) { k.global++ }
func (k *kindCounter) VisitLocal(*ecs.LocalSystem)   { k.local++ }
func (k *kindCounter) VisitSingle(*ecs.SingleSystem) { k.single++ }
func (k *kindCounter) VisitCustom(*ecs.CustomSystem) { k.custom++ }

func TestVisitor(t *testing.T) {
	systems := []ecs.System{
		ecs.NewGlobalSystem(0, nil, nil),
		ecs.NewGlobalSystem(0, nil, nil),
		ecs.NewLocalSystem(0, nil, 1, 1, nil),
		ecs.NewSingleSystem(0, nil, nil),
		ecs.NewCustomSystem(0, nil, nil),
	}

	k := &kindCounter{}
	for _, sys := range systems {
		sys.Accept(k)
	}
	assert.Equal(t, kindCounter{global: 2, local: 1, single: 1, custom: 1}, *k)
	assert.Equal(t, "local", ecs.KindLocal.String())
}
