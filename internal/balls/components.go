// Package balls is the game logic of the balls demo: balls fall under
// gravity, bounce on the ground and leave through the sides of the window.
// Rendering and input go through the Canvas and Input interfaces so the
// game runs without a window.
package balls

import (
	"image/color"

	"github.com/plus3/libes/ecs"
)

var (
	PositionType = ecs.ComponentTypeOf("Position")
	SpeedType    = ecs.ComponentTypeOf("Speed")
	CoordsType   = ecs.ComponentTypeOf("Coords")
	LookType     = ecs.ComponentTypeOf("Look")
	CellType     = ecs.ComponentTypeOf("Cell")
)

// ComponentNames lists the readable names of the component types, for
// debug displays.
var ComponentNames = map[ecs.ComponentType]string{
	PositionType: "Position",
	SpeedType:    "Speed",
	CoordsType:   "Coords",
	LookType:     "Look",
	CellType:     "Cell",
}

// Ball is the archetype of every ball.
var Ball = ecs.NewArchetype(PositionType, SpeedType, CoordsType, LookType, CellType)

// Position is the position of the ball in the world, y pointing up.
type Position struct {
	X, Y float64
}

func (*Position) ComponentType() ecs.ComponentType { return PositionType }

// Speed is in world units per second.
type Speed struct {
	X, Y float64
}

func (*Speed) ComponentType() ecs.ComponentType { return SpeedType }

// Coords is the position of the ball on the screen, y pointing down.
type Coords struct {
	X, Y float32
}

func (*Coords) ComponentType() ecs.ComponentType { return CoordsType }

type Look struct {
	Color       color.NRGBA
	Highlighted bool
}

func (*Look) ComponentType() ecs.ComponentType { return LookType }

// Cell is the grid cell the ball is bound to in the highlight system.
type Cell struct {
	X, Y  int
	Bound bool
}

func (*Cell) ComponentType() ecs.ComponentType { return CellType }
