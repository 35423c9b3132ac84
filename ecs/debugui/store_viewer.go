package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/libes/ecs"
)

type StoreInfo struct {
	Type ecs.ComponentType
	Name string
	Size int
}

type StoreViewerCache struct {
	stores []StoreInfo
}

func NewStoreViewerComponent() StoreViewerComponent {
	return StoreViewerComponent{
		cache:         &StoreViewerCache{},
		sortColumn:    2,
		sortAscending: false,
	}
}

// Render lists every component store with its size. It returns the type of
// the row clicked this frame, or InvalidComponent.
func (sv *StoreViewerComponent) Render(stats ecs.StorageStats, names *TypeNames) ecs.ComponentType {
	if !imgui.BeginV("Store Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return ecs.InvalidComponent
	}

	sv.rebuildCache(stats, names)

	maxSize := 0
	for _, store := range sv.cache.stores {
		maxSize = max(maxSize, store.Size)
	}

	clicked := ecs.InvalidComponent

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("StoreTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Type")
		imgui.TableSetupColumn("Name")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			sv.sortColumn = int(spec.ColumnIndex())
			sv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sv.sortStores()
			sortSpecs.SetSpecsDirty(false)
		}

		for _, store := range sv.cache.stores {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := sv.selectedType == store.Type
			if imgui.SelectableBoolV(store.Type.String(), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				sv.selectedType = store.Type
				clicked = store.Type
			}

			imgui.TableNextColumn()
			imgui.Text(store.Name)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", store.Size))

			if maxSize > 0 {
				barWidth := float32(store.Size) / float32(maxSize) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func (sv *StoreViewerComponent) rebuildCache(stats ecs.StorageStats, names *TypeNames) {
	sv.cache.stores = sv.cache.stores[:0]
	for _, store := range stats.Stores {
		sv.cache.stores = append(sv.cache.stores, StoreInfo{
			Type: store.Type,
			Name: names.Name(store.Type),
			Size: store.Size,
		})
	}
	sv.sortStores()
}

func (sv *StoreViewerComponent) sortStores() {
	sort.SliceStable(sv.cache.stores, func(i, j int) bool {
		a, b := sv.cache.stores[i], sv.cache.stores[j]
		if !sv.sortAscending {
			a, b = b, a
		}
		var less bool

		switch sv.sortColumn {
		case 0:
			less = a.Type < b.Type
		case 1:
			less = a.Name < b.Name
		default:
			less = a.Size < b.Size
		}

		return less
	})
}
