package balls

import (
	"image/color"
	"math/rand"

	"github.com/plus3/libes/ecs"
	"github.com/plus3/libes/internal/config"
	"go.uber.org/zap"
)

// World owns the systems of the game and the counters shown on screen.
type World struct {
	m      *ecs.Manager
	cfg    config.WorldConfig
	width  int
	height int
	rng    *rand.Rand
	log    *zap.Logger

	highlight *HighlightSystem
	tracker   *TrackerSystem

	Spawned int
	Retired int
	Bounces int
}

type Option func(*World)

func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

// WithSeed makes the random speeds and colors reproducible.
func WithSeed(seed int64) Option {
	return func(w *World) {
		w.rng = rand.New(rand.NewSource(seed))
	}
}

// NewWorld creates the stores and the systems on m, initializes them and
// spawns the initial balls.
func NewWorld(m *ecs.Manager, cfg *config.Config, input Input, canvas Canvas, opts ...Option) *World {
	w := &World{
		m:      m,
		cfg:    cfg.World,
		width:  cfg.Window.Width,
		height: cfg.Window.Height,
		rng:    rand.New(rand.NewSource(1)),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	for _, t := range Ball.Types() {
		m.CreateStoreFor(t)
	}

	columns := (w.width + w.cfg.CellSize - 1) / w.cfg.CellSize
	rows := (w.height + w.cfg.CellSize - 1) / w.cfg.CellSize
	w.highlight = NewHighlightSystem(w, columns, rows)
	w.tracker = NewTrackerSystem(w)

	m.AddSystem(NewInputSystem(w, input))
	m.AddSystem(NewPhysicsSystem(w))
	m.AddSystem(NewGraphicsSystem(w))
	m.AddSystem(NewGridSystem(w, w.highlight.LocalSystem))
	m.AddSystem(w.highlight)
	m.AddSystem(w.tracker)
	m.AddSystem(NewRenderSystem(w, canvas))
	m.InitSystems()

	w.registerHandlers()

	for range w.cfg.InitialBalls {
		x := w.cfg.BallRadius + w.rng.Float64()*(float64(w.width)-2*w.cfg.BallRadius)
		y := w.rng.Float64() * float64(w.height) / 3
		w.Spawn(float32(x), float32(y))
	}
	return w
}

func (w *World) registerHandlers() {
	ecs.Handle(w.m.Events(), func(origin ecs.Entity, ev BallSpawned) ecs.EventStatus {
		w.log.Debug("ball spawned",
			zap.Uint64("entity", uint64(origin)),
			zap.Float32("x", ev.X),
			zap.Float32("y", ev.Y))
		return ecs.Keep
	})

	ecs.Handle(w.m.Events(), func(origin ecs.Entity, ev Bounced) ecs.EventStatus {
		w.Bounces++
		return ecs.Keep
	})

	// Only the very first bounce of the game is reported.
	ecs.Handle(w.m.Events(), func(origin ecs.Entity, ev Bounced) ecs.EventStatus {
		w.log.Info("first bounce",
			zap.Uint64("entity", uint64(origin)),
			zap.Float64("speed", ev.Speed))
		return ecs.Die
	})
}

// Spawn creates a ball at the screen coordinates (x, y) with a random speed
// and color. It returns ecs.InvalidEntity when the world is full.
func (w *World) Spawn(x, y float32) ecs.Entity {
	if w.cfg.MaxBalls > 0 && w.Alive() >= w.cfg.MaxBalls {
		return ecs.InvalidEntity
	}

	e := Ball.Create(w.m)
	ecs.Add(w.m, e, &Position{X: float64(x), Y: float64(w.height) - float64(y)})
	ecs.Add(w.m, e, &Speed{
		X: w.rng.Float64()*500 - 250,
		Y: w.rng.Float64()*300 - 150,
	})
	ecs.Add(w.m, e, &Coords{X: x, Y: y})
	ecs.Add(w.m, e, &Look{Color: color.NRGBA{
		R: uint8(w.rng.Intn(256)),
		G: uint8(w.rng.Intn(256)),
		B: uint8(w.rng.Intn(256)),
		A: 192,
	}})
	ecs.Add(w.m, e, &Cell{})
	w.Spawned++

	w.m.TriggerEvent(e, BallSpawnedType, BallSpawned{X: x, Y: y})
	return e
}

// Alive returns the number of balls not retired yet.
func (w *World) Alive() int {
	return w.Spawned - w.Retired
}

// Update runs one frame of delta seconds.
func (w *World) Update(delta float64) {
	w.m.UpdateSystems(delta)
}

func (w *World) Manager() *ecs.Manager {
	return w.m
}

func (w *World) Highlight() *HighlightSystem {
	return w.highlight
}

func (w *World) Tracker() *TrackerSystem {
	return w.tracker
}
