package debugui

import (
	"github.com/plus3/libes/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selected           ecs.Entity
	filterText         string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selected ecs.Entity
}

type StoreViewerComponent struct {
	cache         *StoreViewerCache
	selectedType  ecs.ComponentType
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type SystemViewerComponent struct {
	selectedComponentTypes map[ecs.ComponentType]bool
}
