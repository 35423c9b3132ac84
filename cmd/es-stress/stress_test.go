package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/plus3/libes/ecs"
	"github.com/plus3/libes/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallConfig() config.StressConfig {
	return config.StressConfig{
		Entities:       200,
		ComponentTypes: 4,
		Systems:        8,
		Churn:          10,
		Seed:           7,
	}
}

func TestWorld(t *testing.T) {
	m := ecs.NewManager()
	w := NewWorld(m, smallConfig())

	require.Len(t, m.Entities(), 200)
	assert.Len(t, m.Systems(), 9)
	assert.Len(t, w.grids, 2)

	stats := m.CollectStats()
	kinds := map[ecs.Kind]int{}
	for _, s := range stats.Systems {
		kinds[s.Kind]++
	}
	assert.Equal(t, map[ecs.Kind]int{ecs.KindGlobal: 2, ecs.KindLocal: 2, ecs.KindSingle: 2, ecs.KindCustom: 3}, kinds)

	for range 5 {
		m.UpdateSystems(0.016)
	}

	assert.Len(t, m.Entities(), 200, "churn keeps the population stable")
	assert.Equal(t, 50, w.Retired)
	assert.Equal(t, 250, w.Spawned)
	assert.Equal(t, 5, w.events)
}

func TestWorldIsDeterministic(t *testing.T) {
	a := NewWorld(ecs.NewManager(), smallConfig())
	b := NewWorld(ecs.NewManager(), smallConfig())

	assert.Equal(t, a.m.CollectStats(), b.m.CollectStats())
}

func TestReport(t *testing.T) {
	m := ecs.NewManager()
	world := NewWorld(m, smallConfig())

	report := &Report{Duration: 20 * time.Millisecond, Entities: 200, Churn: 10}
	ctx, cancel := context.WithTimeout(context.Background(), report.Duration)
	defer cancel()

	report.Run(ctx, m)
	report.Spawned = world.Spawned
	report.Storage = m.CollectStats()
	report.Scheduler = m.Stats()

	require.Greater(t, report.TotalUpdates, int64(0))
	assert.Len(t, report.UpdateTime.Samples, int(report.TotalUpdates))
	assert.LessOrEqual(t, report.UpdateTime.Min, report.UpdateTime.Avg)
	assert.LessOrEqual(t, report.UpdateTime.Avg, report.UpdateTime.Max)

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "# ECS Stress Test Report")
	assert.Contains(t, out.String(), "| churnSystem | custom | 1000 |")
	assert.Contains(t, out.String(), "| LocalSystem | local |")
}

func TestProfileOption(t *testing.T) {
	for _, mode := range []string{"cpu", "mem", "allocs"} {
		opt, err := profileOption(mode)
		assert.NoError(t, err)
		assert.NotNil(t, opt)
	}
	_, err := profileOption("trace")
	assert.Error(t, err)
}

func TestReportFrameCap(t *testing.T) {
	m := ecs.NewManager()
	NewWorld(m, smallConfig())

	report := &Report{Duration: time.Minute, Frames: 5}
	ctx, cancel := context.WithTimeout(context.Background(), report.Duration)
	defer cancel()

	report.Run(ctx, m)
	assert.Equal(t, int64(5), report.TotalUpdates)
	assert.Len(t, report.UpdateTime.Samples, 5)
	assert.EqualValues(t, 5, m.Stats().Frames)
	assert.Less(t, report.TotalTime, report.Duration)

	report.Storage = m.CollectStats()
	report.Scheduler = m.Stats()
	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "- **Frame Cap:** 5")
}
