// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Render functions are carried by ImguiItem components and run by ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/libes/ecs"
)

// ImguiItemType is the component type of ImguiItem.
var ImguiItemType = ecs.ComponentTypeOf("debugui.ImguiItem")

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

func (*ImguiItem) ComponentType() ecs.ComponentType { return ImguiItemType }

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem collects the render functions of every ImguiItem entity and
// defers them to the end of the frame, after all game systems have run.
// It also refreshes the input capture state before the update pass.
type ImguiSystem struct {
	*ecs.GlobalSystem
	m     *ecs.Manager
	state ImguiInputState
	input func() ImguiInputState
}

// NewImguiSystem creates the system. The store of ImguiItem is created on m
// if needed.
func NewImguiSystem(m *ecs.Manager, priority int) *ImguiSystem {
	ecs.CreateStore[*ImguiItem](m)

	s := &ImguiSystem{m: m, input: currentInputState}
	s.GlobalSystem = ecs.NewGlobalSystem(priority, []ecs.ComponentType{ImguiItemType}, s)
	return s
}

func currentInputState() ImguiInputState {
	io := imgui.CurrentIO()
	return ImguiInputState{
		WantCaptureMouse:    io.WantCaptureMouse(),
		WantCaptureKeyboard: io.WantCaptureKeyboard(),
	}
}

// InputState returns the capture state read at the start of the last frame.
func (s *ImguiSystem) InputState() ImguiInputState {
	return s.state
}

func (s *ImguiSystem) PreUpdate(delta float64) {
	s.state = s.input()
}

// UpdateEntity queues the render function of e.
func (s *ImguiSystem) UpdateEntity(delta float64, e ecs.Entity) {
	item := ecs.Get[*ImguiItem](s.m, e)
	if item == nil || item.Render == nil {
		return
	}
	s.m.Commands().Defer(item.Render)
}

// AddItem creates an entity carrying render and subscribes it.
func AddItem(m *ecs.Manager, render func()) ecs.Entity {
	e := m.CreateEntity()
	ecs.Add(m, e, &ImguiItem{Render: render})
	m.SubscribeEntity(e)
	return e
}
