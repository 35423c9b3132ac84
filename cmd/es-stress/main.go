package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"github.com/plus3/libes/ecs"
	"github.com/plus3/libes/internal/config"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "es-stress:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "Path to a TOML or YAML config file.")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", -1, "The initial number of entities to create.")
	systemCount := flag.Int("systems", -1, "The number of generated systems.")
	componentCount := flag.Int("components", -1, "The number of generated component types.")
	churn := flag.Int("churn", -1, "Entities retired and spawned every frame.")
	frames := flag.Int("frames", -1, "Stop after this many updates, 0 runs for the whole duration.")
	seed := flag.Int64("seed", 0, "Random seed, 0 keeps the configured one.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	profileMode := flag.String("profile", "", "Write a pprof profile to the working directory: cpu, mem or allocs.")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	override(&cfg.Stress.Entities, *entityCount)
	override(&cfg.Stress.Systems, *systemCount)
	override(&cfg.Stress.ComponentTypes, *componentCount)
	override(&cfg.Stress.Churn, *churn)
	override(&cfg.Stress.Frames, *frames)
	if *seed != 0 {
		cfg.Stress.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	if *profileMode != "" {
		mode, err := profileOption(*profileMode)
		if err != nil {
			return err
		}
		p := profile.Start(mode, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
		defer p.Stop()
	}

	log.Info("starting ECS stress test",
		zap.Int("entities", cfg.Stress.Entities),
		zap.Int("components", cfg.Stress.ComponentTypes),
		zap.Int("systems", cfg.Stress.Systems),
		zap.Int("churn", cfg.Stress.Churn))

	m := ecs.NewManager(ecs.WithLogger(log.Named("ecs")))
	world := NewWorld(m, cfg.Stress)
	log.Info("population complete", zap.Int("alive", len(m.Entities())))

	report := &Report{
		Duration:       *duration,
		Entities:       cfg.Stress.Entities,
		Components:     cfg.Stress.ComponentTypes,
		Systems:        cfg.Stress.Systems,
		Churn:          cfg.Stress.Churn,
		Frames:         int64(cfg.Stress.Frames),
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation",
		zap.Duration("duration", *duration),
		zap.Int("frames", cfg.Stress.Frames))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	report.Run(ctx, m)
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Spawned = world.Spawned
	report.Retired = world.Retired
	report.Events = world.events
	report.Storage = m.CollectStats()
	report.Scheduler = m.Stats()

	log.Info("simulation finished", zap.Int64("updates", report.TotalUpdates))

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	fmt.Println("--- End of Report ---")
	return nil
}

func override(dst *int, flagValue int) {
	if flagValue >= 0 {
		*dst = flagValue
	}
}

func profileOption(mode string) (func(*profile.Profile), error) {
	switch mode {
	case "cpu":
		return profile.CPUProfile, nil
	case "mem":
		return profile.MemProfile, nil
	case "allocs":
		return profile.MemProfileAllocs, nil
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
}
