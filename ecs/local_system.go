package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// LocalSystem bins entities into a fixed width x height grid and only updates
// the entities around a focus cell: the focus cell itself and its up to eight
// neighbors. Neighborhoods shrink at the grid borders, they never wrap.
type LocalSystem struct {
	baseSystem
	width  int
	height int
	cells  []*intmap.Set[Entity] // index = y*width + x
	focusX int
	focusY int
}

// NewLocalSystem creates a local system over a width x height grid with the
// focus on (0, 0). It panics if a dimension is not positive.
func NewLocalSystem(priority int, needed []ComponentType, width, height int, updater EntityUpdater) *LocalSystem {
	s := &LocalSystem{
		baseSystem: newBaseSystem(priority, needed, updater),
	}
	s.Reset(width, height)
	return s
}

func (s *LocalSystem) Kind() Kind { return KindLocal }

func (s *LocalSystem) Accept(v Visitor) { v.VisitLocal(s) }

// Reset reinitializes the grid to width x height, discarding every binding,
// and moves the focus back to (0, 0).
func (s *LocalSystem) Reset(width, height int) {
	if width <= 0 || height <= 0 {
		panic("ecs: local system grid must have positive dimensions")
	}

	s.width = width
	s.height = height
	s.cells = make([]*intmap.Set[Entity], width*height)
	for i := range s.cells {
		s.cells[i] = intmap.NewSet[Entity](8)
	}
	s.focusX = 0
	s.focusY = 0
}

// Size returns the grid dimensions.
func (s *LocalSystem) Size() (width, height int) {
	return s.width, s.height
}

func (s *LocalSystem) contains(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

func (s *LocalSystem) cell(x, y int) *intmap.Set[Entity] {
	return s.cells[y*s.width+x]
}

// AddLocalEntity binds e to the cell (x, y). It returns false when the cell
// is outside the grid or e is already bound to it.
func (s *LocalSystem) AddLocalEntity(e Entity, x, y int) bool {
	if e == InvalidEntity || !s.contains(x, y) {
		return false
	}
	return s.cell(x, y).Add(e)
}

// RemoveLocalEntity unbinds e from the cell (x, y).
func (s *LocalSystem) RemoveLocalEntity(e Entity, x, y int) bool {
	if !s.contains(x, y) {
		return false
	}
	return s.cell(x, y).Del(e)
}

// MoveLocalEntity rebinds e from one cell to another. Nothing changes when
// either cell is outside the grid or e is not bound to the source cell.
func (s *LocalSystem) MoveLocalEntity(e Entity, fromX, fromY, toX, toY int) bool {
	if !s.contains(fromX, fromY) || !s.contains(toX, toY) {
		return false
	}
	if fromX == toX && fromY == toY {
		return s.cell(fromX, fromY).Has(e)
	}
	if !s.cell(fromX, fromY).Del(e) {
		return false
	}
	s.cell(toX, toY).Add(e)
	return true
}

// AddEntity is not supported: an entity needs a cell, use AddLocalEntity.
func (s *LocalSystem) AddEntity(e Entity) bool {
	return false
}

// RemoveEntity unbinds e from every cell it is bound to.
func (s *LocalSystem) RemoveEntity(e Entity) bool {
	removed := false
	for _, c := range s.cells {
		if c.Del(e) {
			removed = true
		}
	}
	return removed
}

// SetFocus moves the focus to (x, y). Coordinates outside the grid are
// rejected and the previous focus is kept.
func (s *LocalSystem) SetFocus(x, y int) bool {
	if !s.contains(x, y) {
		return false
	}
	s.focusX = x
	s.focusY = y
	return true
}

// Focus returns the focus cell.
func (s *LocalSystem) Focus() (x, y int) {
	return s.focusX, s.focusY
}

// Len returns the number of bindings across all cells.
func (s *LocalSystem) Len() int {
	n := 0
	for _, c := range s.cells {
		n += c.Len()
	}
	return n
}

// CellEntities returns the entities bound to (x, y) in ascending order.
func (s *LocalSystem) CellEntities(x, y int) []Entity {
	if !s.contains(x, y) {
		return nil
	}
	return sortedEntities(s.cell(x, y))
}

// Neighborhood returns the entities of the focus cell and its neighbors,
// without duplicates, in ascending order.
func (s *LocalSystem) Neighborhood() []Entity {
	xmin, xmax := max(s.focusX-1, 0), min(s.focusX+1, s.width-1)
	ymin, ymax := max(s.focusY-1, 0), min(s.focusY+1, s.height-1)

	seen := intmap.NewSet[Entity](32)
	entities := make([]Entity, 0, 32)
	for y := ymin; y <= ymax; y++ {
		for x := xmin; x <= xmax; x++ {
			for e := range s.cell(x, y).All() {
				if seen.Add(e) {
					entities = append(entities, e)
				}
			}
		}
	}

	slices.Sort(entities)
	return entities
}

// Update calls UpdateEntity once for each entity of the neighborhood of the
// focus, as it was when the pass started.
func (s *LocalSystem) Update(delta float64) {
	for _, e := range s.Neighborhood() {
		s.updateEntity(delta, e)
	}
}
