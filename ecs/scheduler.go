package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about system execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system. Durations
// cover the three phases of one frame together.
type SystemStats struct {
	Name           string
	Kind           Kind
	Priority       int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
	frameDuration  time.Duration
}

// systemEntry pairs a system with its execution statistics.
type systemEntry struct {
	system System
	stats  systemStatsInternal
}

func newSystemEntry(system System) *systemEntry {
	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	return &systemEntry{
		system: system,
		stats: systemStatsInternal{
			name:        systemType.Name(),
			minDuration: time.Duration(1<<63 - 1),
		},
	}
}

func (e *systemEntry) timed(phase func()) {
	start := time.Now()
	phase()
	e.stats.frameDuration += time.Since(start)
}

func (e *systemEntry) endFrame() {
	stats := &e.stats
	duration := stats.frameDuration
	stats.frameDuration = 0

	stats.executionCount++
	stats.lastDuration = duration
	stats.totalDuration += duration

	if duration < stats.minDuration {
		stats.minDuration = duration
	}
	if duration > stats.maxDuration {
		stats.maxDuration = duration
	}
}

// Run calls UpdateSystems at the given interval with the measured elapsed
// time until the context is cancelled. Everything runs on the calling
// goroutine.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			m.UpdateSystems(dt)
		}
	}
}

// Stats returns statistics about system execution, in execution order.
func (m *Manager) Stats() *SchedulerStats {
	schedule := m.schedule()
	stats := &SchedulerStats{
		SystemCount: len(schedule),
		Frames:      m.frames,
		Systems:     make([]SystemStats, len(schedule)),
	}

	var totalExecs int64
	for i, entry := range schedule {
		internal := entry.stats
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Kind:           entry.system.Kind(),
			Priority:       entry.system.Priority(),
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
