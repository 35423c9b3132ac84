package balls

import "github.com/plus3/libes/ecs"

var (
	BallSpawnedType = ecs.EventTypeOf("BallSpawned")
	BouncedType     = ecs.EventTypeOf("Bounced")
)

// BallSpawned is triggered by every new ball, in screen coordinates.
type BallSpawned struct {
	X, Y float32
}

func (BallSpawned) EventType() ecs.EventType { return BallSpawnedType }

// Bounced is triggered when a ball hits the ground. Speed is the vertical
// speed before the bounce.
type Bounced struct {
	Speed float64
}

func (Bounced) EventType() ecs.EventType { return BouncedType }
