// Package lane manages the ordered set of horizontal display tracks a
// viewer stacks vertically: one per thread, plus auxiliary tracks for
// counters, markers, async spans, and frames.
package lane

import (
	"github.com/dicklesworthstone/spanscope/pkg/geometry"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

const (
	headerHeight      = 28
	dragHandleHeight  = 6
	defaultRowHeight  = 20
)

// Kind identifies what a Lane is bound to.
type Kind int

const (
	KindThread Kind = iota
	KindCounter
	KindMarker
	KindAsync
	KindFrame
)

// Lane is one track in the vertical stack.
type Lane struct {
	ID        int64
	Kind      Kind
	Label     string
	Visible   bool
	RowHeight float32 // content height excluding header; thread lanes scale by depth elsewhere
	Depth     uint16  // max nesting depth, used by callers to size thread lanes
}

// ContentHeight returns the pixel height of the lane's content area (not
// counting its header strip).
func (l Lane) ContentHeight() float32 {
	if l.Kind == KindThread {
		h := float32(l.Depth+1) * l.RowHeight
		if h <= 0 {
			h = l.RowHeight
		}
		return h
	}
	return l.RowHeight
}

// Manager owns the ordered list of lanes and the shared vertical scroll
// offset.
type Manager struct {
	lanes         []Lane
	globalScrollY float32
}

// New returns a Manager over the given lanes, in display order.
func New(lanes []Lane) *Manager {
	return &Manager{lanes: lanes}
}

// VisibleLanes returns lanes with Visible set, preserving order.
func (m *Manager) VisibleLanes() []Lane {
	out := make([]Lane, 0, len(m.lanes))
	for _, l := range m.lanes {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// LaneY returns the cumulative pixel offset above the visibleIndex'th
// visible lane's content area (header not included), before scroll.
func (m *Manager) LaneY(visibleIndex int) float32 {
	var y float32
	visible := m.VisibleLanes()
	for i, l := range visible {
		if i == visibleIndex {
			return y
		}
		y += headerHeight + l.ContentHeight()
	}
	return y
}

// TotalHeight sums header + content height over every visible lane.
func (m *Manager) TotalHeight() float32 {
	var total float32
	for _, l := range m.VisibleLanes() {
		total += headerHeight + l.ContentHeight()
	}
	return total
}

// LaneAtY returns the visible lane (and its index) whose content or header
// band contains y, honoring the current global scroll offset. The second
// return value is false if y falls outside every lane.
func (m *Manager) LaneAtY(y float32) (Lane, int, bool) {
	target := y + m.globalScrollY
	var cursor float32
	visible := m.VisibleLanes()
	for i, l := range visible {
		band := headerHeight + l.ContentHeight()
		if target >= cursor && target < cursor+band {
			return l, i, true
		}
		cursor += band
	}
	return Lane{}, -1, false
}

// DragHandleAtY reports whether y falls within the draggable resize handle
// at the bottom edge of a visible lane's content area, returning that
// lane's index.
func (m *Manager) DragHandleAtY(y float32) (int, bool) {
	target := y + m.globalScrollY
	var cursor float32
	visible := m.VisibleLanes()
	for i, l := range visible {
		band := headerHeight + l.ContentHeight()
		handleStart := cursor + band - dragHandleHeight
		if target >= handleStart && target < cursor+band {
			return i, true
		}
		cursor += band
	}
	return -1, false
}

// MoveLane relocates the lane at index from to index to within the full
// ordered list (not just the visible subset), preserving every other
// lane's relative order.
func (m *Manager) MoveLane(from, to int) {
	if from < 0 || from >= len(m.lanes) || to < 0 || to >= len(m.lanes) || from == to {
		return
	}
	l := m.lanes[from]
	m.lanes = append(m.lanes[:from], m.lanes[from+1:]...)
	m.lanes = append(m.lanes[:to], append([]Lane{l}, m.lanes[to:]...)...)
}

// SetVisible toggles visibility of the lane with the given ID.
func (m *Manager) SetVisible(id int64, visible bool) {
	for i := range m.lanes {
		if m.lanes[i].ID == id {
			m.lanes[i].Visible = visible
			return
		}
	}
}

// SetRowHeight clamps and applies a new row height to the lane with the
// given ID; out-of-range indices are a no-op per the façade's "never fail"
// policy.
func (m *Manager) SetRowHeight(id int64, height float32) {
	if height < 16 {
		height = 16
	}
	if height > 600 {
		height = 600
	}
	for i := range m.lanes {
		if m.lanes[i].ID == id {
			m.lanes[i].RowHeight = height
			return
		}
	}
}

// ScrollGlobal adjusts the shared vertical scroll offset by dy, clamped to
// [0, max(0, totalHeight-viewportHeight)].
func (m *Manager) ScrollGlobal(dy, viewportHeight float32) {
	max := m.TotalHeight() - viewportHeight
	if max < 0 {
		max = 0
	}
	v := m.globalScrollY + dy
	if v < 0 {
		v = 0
	}
	if v > max {
		v = max
	}
	m.globalScrollY = v
}

// GlobalScrollY returns the current shared vertical scroll offset.
func (m *Manager) GlobalScrollY() float32 { return m.globalScrollY }

// RenderHeaders emits one fixed-height header strip per visible lane,
// stacked starting at yOffset.
func (m *Manager) RenderHeaders(width float32, yOffset float32) []render.Command {
	var cmds []render.Command
	y := yOffset - m.globalScrollY
	for _, l := range m.VisibleLanes() {
		rect := geometry.Rect{X: 0, Y: y, W: width, H: headerHeight}
		cmds = append(cmds,
			render.DrawRect{Rect: toRenderRect(rect), FillToken: theme.LaneHeaderBackground},
			render.DrawText{Pos: render.PointShape{X: 4, Y: y + headerHeight/2 + 4}, Text: l.Label, Token: theme.LaneHeaderText},
		)
		y += headerHeight + l.ContentHeight()
	}
	return cmds
}

func toRenderRect(r geometry.Rect) render.RectShape {
	return render.RectShape{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// DefaultRowHeight is the row height new thread lanes are created with.
func DefaultRowHeight() float32 { return defaultRowHeight }
