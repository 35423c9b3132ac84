package debugui

import "github.com/plus3/libes/ecs"

// DebugUI groups the inspection windows of one Manager.
type DebugUI struct {
	m     *ecs.Manager
	names *TypeNames
	timer *FrameTimer

	browser     EntityBrowserComponent
	inspector   ComponentInspectorComponent
	stores      StoreViewerComponent
	performance PerformanceStatsComponent
	systems     SystemViewerComponent
}

// NewDebugUI creates the debug windows for m. A nil names shows types in
// their hexadecimal form.
func NewDebugUI(m *ecs.Manager, names *TypeNames) *DebugUI {
	if names == nil {
		names = NewTypeNames()
	}
	names.Set(ImguiItemType, "debugui.ImguiItem")

	return &DebugUI{
		m:           m,
		names:       names,
		timer:       NewFrameTimer(),
		browser:     NewEntityBrowserComponent(100),
		inspector:   NewComponentInspectorComponent(),
		stores:      NewStoreViewerComponent(),
		performance: NewPerformanceStatsComponent(120),
		systems:     NewSystemViewerComponent(),
	}
}

// Render draws every window. It must run between the backend's BeginFrame
// and EndFrame.
func (ui *DebugUI) Render() {
	stats := ui.m.CollectStats()

	ui.browser.Render(ui.m, ui.names)
	ui.inspector.Render(ui.m, ui.names, ui.browser.GetSelectedEntity())
	ui.stores.Render(stats, ui.names)
	ui.performance.Render(ui.m, stats, ui.timer.GetDeltaTime())
	ui.systems.Render(ui.m, stats, ui.names)
}

// SpawnDebugUI adds an ImguiSystem to m together with an entity rendering
// the debug windows, and returns the system.
func SpawnDebugUI(m *ecs.Manager, names *TypeNames, priority int) *ImguiSystem {
	sys := NewImguiSystem(m, priority)
	m.AddSystem(sys)

	ui := NewDebugUI(m, names)
	AddItem(m, ui.Render)
	return sys
}
