package layout

import (
	"github.com/dicklesworthstone/spanscope/pkg/geometry"
	"github.com/dicklesworthstone/spanscope/pkg/render"
)

// ToRectShape converts a geometry.Rect to render's dependency-light
// RectShape, the boundary between layout's geometric math and the
// renderer-agnostic command protocol.
func ToRectShape(r geometry.Rect) render.RectShape {
	return render.RectShape{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// ToPointShape converts a geometry.Point to render's PointShape.
func ToPointShape(p geometry.Point) render.PointShape {
	return render.PointShape{X: p.X, Y: p.Y}
}

// FromRectShape converts a render.RectShape back to geometry.Rect, used by
// hit testing to run geometry.Rect.Contains against cached render output.
func FromRectShape(r render.RectShape) geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
}
