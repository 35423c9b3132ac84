package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/libes/ecs"
)

// SystemInfo describes one system as shown in the viewer.
type SystemInfo struct {
	Name     string
	Kind     ecs.Kind
	Priority int
	Needed   []string
	Size     string
	Focus    string
}

func NewSystemViewerComponent() SystemViewerComponent {
	return SystemViewerComponent{
		selectedComponentTypes: make(map[ecs.ComponentType]bool),
	}
}

// describeSystems merges the execution order of m with the sizes in stats.
func describeSystems(m *ecs.Manager, stats ecs.StorageStats, names *TypeNames) []SystemInfo {
	systems := m.Systems()
	infos := make([]SystemInfo, len(systems))
	for i, sys := range systems {
		size := stats.Systems[i]
		info := SystemInfo{
			Name:     size.Name,
			Kind:     size.Kind,
			Priority: size.Priority,
			Needed:   names.List(sys.NeededComponents()),
			Size:     fmt.Sprintf("%d", size.Entities),
		}
		if size.Entities < 0 {
			info.Size = "?"
		}

		v := &focusReader{}
		sys.Accept(v)
		if v.ok {
			info.Size = fmt.Sprintf("%s in %d cells", info.Size, size.Cells)
			info.Focus = fmt.Sprintf("(%d, %d)", v.x, v.y)
		}
		infos[i] = info
	}
	return infos
}

// matchingSystems returns the names of the systems an entity carrying types
// would be added to.
func matchingSystems(m *ecs.Manager, types []ecs.ComponentType) []string {
	archetype := ecs.NewArchetype(types...)
	stats := m.Stats()
	var names []string
	for i, sys := range m.Systems() {
		if archetype.Matches(sys.NeededComponents()) {
			names = append(names, stats.Systems[i].Name)
		}
	}
	return names
}

func (sv *SystemViewerComponent) Render(m *ecs.Manager, stats ecs.StorageStats, names *TypeNames) {
	if !imgui.BeginV("System Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Priority")
		imgui.TableSetupColumn("Needs")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		for _, info := range describeSystems(m, stats, names) {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(info.Name)
			imgui.TableNextColumn()
			imgui.Text(info.Kind.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.Priority))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.Needed, ", "))
			imgui.TableNextColumn()
			if info.Focus != "" {
				imgui.Text(fmt.Sprintf("%s, focus %s", info.Size, info.Focus))
			} else {
				imgui.Text(info.Size)
			}
		}

		imgui.EndTable()
	}

	imgui.Separator()
	imgui.Text("Subscription preview:")
	if imgui.Button("Clear All") {
		sv.selectedComponentTypes = make(map[ecs.ComponentType]bool)
	}

	var selected []ecs.ComponentType
	for _, store := range stats.Stores {
		checked := sv.selectedComponentTypes[store.Type]
		if imgui.Checkbox(names.Name(store.Type), &checked) {
			if checked {
				sv.selectedComponentTypes[store.Type] = true
			} else {
				delete(sv.selectedComponentTypes, store.Type)
			}
		}
		if sv.selectedComponentTypes[store.Type] {
			selected = append(selected, store.Type)
		}
	}

	matching := matchingSystems(m, selected)
	imgui.Text(fmt.Sprintf("Matching Systems: %d", len(matching)))
	for _, name := range matching {
		imgui.BulletText(name)
	}

	imgui.End()
}

type focusReader struct {
	x, y int
	ok   bool
}

func (r *focusReader) VisitGlobal(*ecs.GlobalSystem) {}
func (r *focusReader) VisitSingle(*ecs.SingleSystem) {}
func (r *focusReader) VisitCustom(*ecs.CustomSystem) {}

func (r *focusReader) VisitLocal(s *ecs.LocalSystem) {
	r.x, r.y = s.Focus()
	r.ok = true
}
