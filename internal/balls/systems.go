package balls

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/plus3/libes/ecs"
	"go.uber.org/zap"
)

const (
	InputPriority = iota + 1
	PhysicsPriority
	GraphicsPriority
	GridPriority
	HighlightPriority
	TrackerPriority
	RenderPriority
)

const (
	// restSpeed is the impact speed under which a ball stops bouncing.
	restSpeed   = 10.0
	trailLength = 48
	burstSize   = 10
)

var (
	focusColor = color.NRGBA{R: 0x40, G: 0x80, B: 0xff, A: 0x40}
	ringColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	trailColor = color.NRGBA{R: 0xff, A: 0xc0}
)

// InputSystem spawns balls on clicks and moves the focus of the local
// systems to the cell under the cursor. It holds no entity.
type InputSystem struct {
	*ecs.CustomSystem
	world *World
	input Input
}

func NewInputSystem(w *World, input Input) *InputSystem {
	return &InputSystem{
		CustomSystem: ecs.NewCustomSystem(InputPriority, nil, nil),
		world:        w,
		input:        input,
	}
}

func (s *InputSystem) PreUpdate(delta float64) {
	x, y := s.input.Cursor()
	if x >= 0 && y >= 0 {
		s.world.m.SetFocus(x/s.world.cfg.CellSize, y/s.world.cfg.CellSize)
	}

	left, right := s.input.Clicked()
	switch {
	case right:
		for range burstSize {
			s.world.Spawn(float32(x), float32(y))
		}
	case left:
		s.world.Spawn(float32(x), float32(y))
	}
}

// PhysicsSystem applies gravity, bounces balls on the ground and retires
// the balls that left the window through a side.
type PhysicsSystem struct {
	*ecs.GlobalSystem
	world *World
}

func NewPhysicsSystem(w *World) *PhysicsSystem {
	s := &PhysicsSystem{world: w}
	s.GlobalSystem = ecs.NewGlobalSystem(PhysicsPriority, []ecs.ComponentType{PositionType, SpeedType}, s)
	return s
}

func (s *PhysicsSystem) UpdateEntity(delta float64, e ecs.Entity) {
	pos := ecs.Get[*Position](s.world.m, e)
	speed := ecs.Get[*Speed](s.world.m, e)
	if pos == nil || speed == nil {
		return
	}

	impact, out := s.world.step(pos, speed, delta)
	if impact != 0 {
		s.world.m.TriggerEvent(e, BouncedType, Bounced{Speed: impact})
	}
	if out {
		s.world.retire(e)
	}
}

// step advances one ball by delta. It returns the vertical speed of the
// impact if the ball bounced on the ground, and whether the ball is out of
// the window.
func (w *World) step(pos *Position, speed *Speed, delta float64) (impact float64, out bool) {
	r := w.cfg.BallRadius

	speed.Y -= w.cfg.Gravity * delta
	pos.X += speed.X * delta
	pos.Y += speed.Y * delta

	if pos.Y < r {
		pos.Y = r
		if speed.Y < -restSpeed {
			impact = speed.Y
			speed.Y = -speed.Y * w.cfg.Restitution
		} else {
			speed.Y = 0
		}
	}

	out = pos.X < -r || pos.X > float64(w.width)+r
	return impact, out
}

// GraphicsSystem converts world positions to screen coordinates.
type GraphicsSystem struct {
	*ecs.GlobalSystem
	world *World
}

func NewGraphicsSystem(w *World) *GraphicsSystem {
	s := &GraphicsSystem{world: w}
	s.GlobalSystem = ecs.NewGlobalSystem(GraphicsPriority, []ecs.ComponentType{PositionType, CoordsType}, s)
	return s
}

func (s *GraphicsSystem) UpdateEntity(delta float64, e ecs.Entity) {
	pos := ecs.Get[*Position](s.world.m, e)
	coords := ecs.Get[*Coords](s.world.m, e)
	if pos == nil || coords == nil {
		return
	}
	coords.X = float32(pos.X)
	coords.Y = float32(float64(s.world.height) - pos.Y)
}

// GridSystem keeps the cell bindings of the highlight system in sync with
// the screen coordinates of the balls.
type GridSystem struct {
	*ecs.GlobalSystem
	world *World
	grid  *ecs.LocalSystem
}

func NewGridSystem(w *World, grid *ecs.LocalSystem) *GridSystem {
	s := &GridSystem{world: w, grid: grid}
	s.GlobalSystem = ecs.NewGlobalSystem(GridPriority, []ecs.ComponentType{CoordsType, CellType}, s)
	return s
}

func (s *GridSystem) UpdateEntity(delta float64, e ecs.Entity) {
	coords := ecs.Get[*Coords](s.world.m, e)
	cell := ecs.Get[*Cell](s.world.m, e)
	if coords == nil || cell == nil {
		return
	}

	size := float64(s.world.cfg.CellSize)
	x := int(math.Floor(float64(coords.X) / size))
	y := int(math.Floor(float64(coords.Y) / size))
	w, h := s.grid.Size()
	inside := x >= 0 && x < w && y >= 0 && y < h

	switch {
	case !inside:
		if cell.Bound {
			s.grid.RemoveLocalEntity(e, cell.X, cell.Y)
			cell.Bound = false
		}
		return
	case !cell.Bound:
		cell.Bound = s.grid.AddLocalEntity(e, x, y)
	case cell.X != x || cell.Y != y:
		s.grid.MoveLocalEntity(e, cell.X, cell.Y, x, y)
	}
	cell.X, cell.Y = x, y
}

// HighlightSystem marks the balls around the focus cell.
type HighlightSystem struct {
	*ecs.LocalSystem
	world *World
}

func NewHighlightSystem(w *World, columns, rows int) *HighlightSystem {
	s := &HighlightSystem{world: w}
	s.LocalSystem = ecs.NewLocalSystem(HighlightPriority, []ecs.ComponentType{LookType}, columns, rows, s)
	return s
}

func (s *HighlightSystem) UpdateEntity(delta float64, e ecs.Entity) {
	if look := ecs.Get[*Look](s.world.m, e); look != nil {
		look.Highlighted = true
	}
}

// TrackerSystem follows the last spawned ball and records its trail.
type TrackerSystem struct {
	*ecs.SingleSystem
	world   *World
	tracked ecs.Entity
	trail   []Coords
}

func NewTrackerSystem(w *World) *TrackerSystem {
	s := &TrackerSystem{world: w}
	s.SingleSystem = ecs.NewSingleSystem(TrackerPriority, []ecs.ComponentType{CoordsType}, s)
	return s
}

func (s *TrackerSystem) PreUpdate(delta float64) {
	if s.Entity() != s.tracked {
		s.tracked = s.Entity()
		s.trail = s.trail[:0]
	}
}

func (s *TrackerSystem) UpdateEntity(delta float64, e ecs.Entity) {
	coords := ecs.Get[*Coords](s.world.m, e)
	if coords == nil {
		return
	}
	if len(s.trail) == trailLength {
		s.trail = slices.Delete(s.trail, 0, 1)
	}
	s.trail = append(s.trail, *coords)
}

// Trail returns the recorded screen coordinates, oldest first.
func (s *TrackerSystem) Trail() []Coords {
	return slices.Clone(s.trail)
}

// RenderSystem draws the frame on the canvas.
type RenderSystem struct {
	*ecs.GlobalSystem
	world  *World
	canvas Canvas
}

func NewRenderSystem(w *World, canvas Canvas) *RenderSystem {
	s := &RenderSystem{world: w, canvas: canvas}
	s.GlobalSystem = ecs.NewGlobalSystem(RenderPriority, []ecs.ComponentType{CoordsType, LookType}, s)
	return s
}

func (s *RenderSystem) PreUpdate(delta float64) {
	s.canvas.Clear()

	size := float32(s.world.cfg.CellSize)
	x, y := s.world.highlight.Focus()
	s.canvas.Rect(float32(x)*size, float32(y)*size, size, size, focusColor)
}

func (s *RenderSystem) UpdateEntity(delta float64, e ecs.Entity) {
	coords := ecs.Get[*Coords](s.world.m, e)
	look := ecs.Get[*Look](s.world.m, e)
	if coords == nil || look == nil {
		return
	}

	r := float32(s.world.cfg.BallRadius)
	s.canvas.Circle(coords.X, coords.Y, r, look.Color)
	if look.Highlighted {
		s.canvas.Ring(coords.X, coords.Y, r, ringColor)
		look.Highlighted = false
	}
}

func (s *RenderSystem) PostUpdate(delta float64) {
	trail := s.world.tracker.trail
	for i := 1; i < len(trail); i++ {
		s.canvas.Line(trail[i-1].X, trail[i-1].Y, trail[i].X, trail[i].Y, trailColor)
	}

	s.canvas.Text(fmt.Sprintf("balls: %d  spawned: %d  retired: %d  bounces: %d\nleft click: 1 ball, right click: %d balls",
		s.world.Alive(), s.world.Spawned, s.world.Retired, s.world.Bounces, burstSize))
}

func (w *World) retire(e ecs.Entity) {
	w.m.Commands().Retire(e)
	w.Retired++
	w.log.Debug("ball left the window", zap.Uint64("entity", uint64(e)))
}
