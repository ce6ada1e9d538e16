package layout

import (
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// LaneYOf resolves a thread ID to its lane's Y origin; callers supply this
// from the lane manager so FlowArrows stays pure and layout-agnostic.
type LaneYOf func(threadID int64) (y float32, visible bool)

// FlowArrows draws a cubic-Bézier approximation (as a chain of short line
// segments) plus a two-line arrowhead for each edge whose endpoints are
// both within [t0, t1] and whose thread lanes are both visible. An edge
// with either endpoint hidden is skipped entirely.
func FlowArrows(edges []model.FlowEdge, t0, t1 int64, widthPx float32, laneY LaneYOf) []render.Command {
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 {
		return nil
	}
	var cmds []render.Command
	for _, e := range edges {
		if e.FromTs < t0 || e.FromTs > t1 || e.ToTs < t0 || e.ToTs > t1 {
			continue
		}
		fromY, ok1 := laneY(e.FromTid)
		toY, ok2 := laneY(e.ToTid)
		if !ok1 || !ok2 {
			continue
		}
		x0 := float32(e.FromTs-t0) * ppu
		x1 := float32(e.ToTs-t0) * ppu
		cmds = append(cmds, bezierArrow(x0, fromY, x1, toY, theme.FlowArrow)...)
	}
	return cmds
}

const bezierSegments = 12

func bezierArrow(x0, y0, x1, y1 float32, tok theme.Token) []render.Command {
	c0x, c0y := x0+(x1-x0)*0.5, y0
	c1x, c1y := x0+(x1-x0)*0.5, y1

	var cmds []render.Command
	var prevX, prevY float32
	for i := 0; i <= bezierSegments; i++ {
		t := float32(i) / bezierSegments
		x, y := cubicBezier(x0, y0, c0x, c0y, c1x, c1y, x1, y1, t)
		if i > 0 {
			cmds = append(cmds, render.DrawLine{From: render.PointShape{X: prevX, Y: prevY}, To: render.PointShape{X: x, Y: y}, Token: tok, Width: 1})
		}
		prevX, prevY = x, y
	}

	dx, dy := x1-prevX, y1-prevY
	_ = dx
	_ = dy
	const headLen = 5
	cmds = append(cmds,
		render.DrawLine{From: render.PointShape{X: x1, Y: y1}, To: render.PointShape{X: x1 - headLen, Y: y1 - headLen}, Token: tok, Width: 1},
		render.DrawLine{From: render.PointShape{X: x1, Y: y1}, To: render.PointShape{X: x1 - headLen, Y: y1 + headLen}, Token: tok, Width: 1},
	)
	return cmds
}

func cubicBezier(x0, y0, c0x, c0y, c1x, c1y, x1, y1, t float32) (float32, float32) {
	mt := 1 - t
	x := mt*mt*mt*x0 + 3*mt*mt*t*c0x + 3*mt*t*t*c1x + t*t*t*x1
	y := mt*mt*mt*y0 + 3*mt*mt*t*c0y + 3*mt*t*t*c1y + t*t*t*y1
	return x, y
}
