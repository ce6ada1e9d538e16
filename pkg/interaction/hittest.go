// Package interaction implements hit testing against cached render output
// and selection/search state, per §4.7 and §4.8. Hit testing never
// re-layouts: it scans the last render.Command list produced for a lane.
package interaction

import (
	"github.com/dicklesworthstone/spanscope/pkg/geometry"
	"github.com/dicklesworthstone/spanscope/pkg/layout"
	"github.com/dicklesworthstone/spanscope/pkg/render"
)

// LaneCommands caches the last-drawn render commands for one lane, keyed
// by a stable lane ID.
type LaneCommands struct {
	LaneID int64
	LaneY  float32 // lane's top-left Y within the overall canvas
	Cmds   []render.Command
}

// HitTest resolves (mx, my) to a span's FrameID, given the lane at my
// (supplied by the caller via LaneManager.laneAtY) and that lane's cached
// commands. It scans in last-drawn-first order so the topmost span wins
// overlap, and returns the first DrawRect whose bounds contain the point
// and carries a non-zero FrameID.
func HitTest(lane LaneCommands, mx, my float32) (uint64, bool) {
	localY := my - lane.LaneY
	for i := len(lane.Cmds) - 1; i >= 0; i-- {
		rect, ok := lane.Cmds[i].(render.DrawRect)
		if !ok || rect.FrameID == 0 {
			continue
		}
		bounds := layout.FromRectShape(rect.Rect)
		if bounds.Contains(geometry.Point{X: mx, Y: localY}) {
			return rect.FrameID, true
		}
	}
	return 0, false
}
