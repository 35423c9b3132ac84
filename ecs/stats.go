package ecs

import (
	"cmp"
	"slices"
)

// StorageStats is a snapshot of what a Manager holds.
type StorageStats struct {
	EntityCount    int
	ComponentCount int
	Stores         []StoreStats
	Systems        []SystemSize
}

// StoreStats describes one component store.
type StoreStats struct {
	Type ComponentType
	Size int
}

// SystemSize describes the working set of one system.
type SystemSize struct {
	Name     string
	Kind     Kind
	Priority int
	// Entities is the number of entities the system would visit on the next
	// update, or -1 for custom systems, whose membership is not observable.
	// For local systems it counts each entity of the focus neighborhood once.
	Entities int
	// Cells is the grid size of local systems, 0 otherwise.
	Cells int
}

// CollectStats walks the registry, the stores and the systems. Stores are
// sorted by type, systems follow the execution order.
func (m *Manager) CollectStats() StorageStats {
	stats := StorageStats{
		EntityCount: m.registry.Len(),
		Stores:      make([]StoreStats, 0, m.stores.Len()),
	}

	for t, store := range m.stores.All() {
		stats.Stores = append(stats.Stores, StoreStats{Type: t, Size: store.Len()})
		stats.ComponentCount += store.Len()
	}
	slices.SortFunc(stats.Stores, func(a, b StoreStats) int {
		return cmp.Compare(a.Type, b.Type)
	})

	for _, entry := range m.schedule() {
		v := &sizeVisitor{}
		entry.system.Accept(v)
		stats.Systems = append(stats.Systems, SystemSize{
			Name:     entry.stats.name,
			Kind:     entry.system.Kind(),
			Priority: entry.system.Priority(),
			Entities: v.entities,
			Cells:    v.cells,
		})
	}
	return stats
}

type sizeVisitor struct {
	entities int
	cells    int
}

func (v *sizeVisitor) VisitGlobal(s *GlobalSystem) {
	v.entities = s.Len()
}

func (v *sizeVisitor) VisitLocal(s *LocalSystem) {
	w, h := s.Size()
	v.entities = len(s.Neighborhood())
	v.cells = w * h
}

func (v *sizeVisitor) VisitSingle(s *SingleSystem) {
	if s.Entity() != InvalidEntity {
		v.entities = 1
	}
}

func (v *sizeVisitor) VisitCustom(*CustomSystem) {
	v.entities = -1
}
