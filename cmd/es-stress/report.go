package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/libes/ecs"
)

type Report struct {
	// Configuration
	Duration   time.Duration
	Entities   int
	Components int
	Systems    int
	Churn      int
	Frames     int64

	// Results
	TotalUpdates   int64
	TotalTime      time.Duration
	UpdateTime     Stats
	Spawned        int
	Retired        int
	Events         int
	Storage        ecs.StorageStats
	Scheduler      *ecs.SchedulerStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Run updates m as fast as possible until ctx is done or Frames updates ran
// when Frames is positive, sampling the time each frame takes.
func (r *Report) Run(ctx context.Context, m *ecs.Manager) {
	startTime := time.Now()
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			m.UpdateSystems(deltaTime.Seconds())
			updateDuration := time.Since(updateStart)

			r.UpdateTime.Samples = append(r.UpdateTime.Samples, updateDuration)
			r.TotalUpdates++
			if r.Frames > 0 && r.TotalUpdates >= r.Frames {
				break Loop
			}
		}
	}

	r.TotalTime = time.Since(startTime)
	r.UpdateTime.Finalize()
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# ECS Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Initial Entities:** {{.Entities}}
- **Generated Components:** {{.Components}}
- **Generated Systems:** {{.Systems}}
- **Churn Per Frame:** {{.Churn}}
- **Frame Cap:** {{if .Frames}}{{.Frames}}{{else}}none{{end}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}

## Entity Lifecycle
- **Spawned:** {{.Spawned}}
- **Retired:** {{.Retired}}
- **Alive At End:** {{.Storage.EntityCount}}
- **Components At End:** {{.Storage.ComponentCount}} in {{len .Storage.Stores}} stores
- **Churn Events Handled:** {{.Events}}
{{if .Scheduler}}
## Systems
| System | Kind | Priority | Entities | Runs | Avg | Max |
|---|---|---|---|---|---|---|
{{range $i, $s := .Scheduler.Systems}}{{with index $.Storage.Systems $i}}| {{$s.Name}} | {{$s.Kind}} | {{$s.Priority}} | {{.Entities}} | {{$s.ExecutionCount}} | {{$s.AvgDuration}} | {{$s.MaxDuration}} |
{{end}}{{end}}{{end}}
## Memory Usage
- Heap Alloc:     {{.MemStatsStart.HeapAlloc | mb}} MB (start) -> {{.MemStatsEnd.HeapAlloc | mb}} MB (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Sys Memory:     {{.MemStatsStart.Sys}} (start) -> {{.MemStatsEnd.Sys}} (end) -> delta: {{bsub .MemStatsEnd.Sys .MemStatsStart.Sys}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
