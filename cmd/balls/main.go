package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/libes/ecs"
	"github.com/plus3/libes/ecs/debugui"
	debugui_ebiten "github.com/plus3/libes/ecs/debugui/ebiten"
	"github.com/plus3/libes/internal/balls"
	"github.com/plus3/libes/internal/config"
	"go.uber.org/zap"
)

const debugPriority = 100

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "balls:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	debug := flag.Bool("debug", false, "Show the ImGui debug overlay.")
	initial := flag.Int("balls", -1, "Number of balls spawned at start.")
	seed := flag.Int64("seed", 0, "Random seed, 0 uses the current time.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *initial >= 0 {
		cfg.World.InitialBalls = *initial
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	m := ecs.NewManager(ecs.WithLogger(log.Named("ecs")))
	game := &Game{
		canvas: newCanvas(cfg.Window.Width, cfg.Window.Height),
		delta:  1 / float64(ebiten.TPS()),
	}

	var input mouse
	if *debug {
		game.imguiBackend = debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

		names := debugui.NewTypeNames()
		for t, name := range balls.ComponentNames {
			names.Set(t, name)
		}
		input.overlay = debugui.SpawnDebugUI(m, names, debugPriority)
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}

	game.world = balls.NewWorld(m, cfg, input, game.canvas,
		balls.WithLogger(log.Named("balls")),
		balls.WithSeed(*seed))

	log.Info("starting",
		zap.Int("balls", cfg.World.InitialBalls),
		zap.Int("systems", len(m.Systems())),
		zap.Bool("debug", *debug))

	err = ebiten.RunGame(game)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run game: %w", err)
	}

	log.Info("stopped",
		zap.Int("spawned", game.world.Spawned),
		zap.Int("retired", game.world.Retired),
		zap.Int("bounces", game.world.Bounces))
	return nil
}
