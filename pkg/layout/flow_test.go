package layout

import (
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
)

func laneYAllVisible(threadID int64) (float32, bool) {
	return float32(threadID) * 40, true
}

func laneYHidesThread(hidden int64) LaneYOf {
	return func(threadID int64) (float32, bool) {
		if threadID == hidden {
			return 0, false
		}
		return float32(threadID) * 40, true
	}
}

func TestFlowArrowsZeroWidthWindowReturnsNil(t *testing.T) {
	edges := []model.FlowEdge{{FromTs: 0, FromTid: 1, ToTs: 100, ToTid: 2}}
	if cmds := FlowArrows(edges, 100, 100, 200, laneYAllVisible); cmds != nil {
		t.Fatalf("degenerate window should return nil, got %v", cmds)
	}
}

func TestFlowArrowsSkipsEdgeWithHiddenEndpoint(t *testing.T) {
	edges := []model.FlowEdge{{FromTs: 0, FromTid: 1, ToTs: 500, ToTid: 2}}
	cmds := FlowArrows(edges, 0, 1000, 200, laneYHidesThread(2))
	if cmds != nil {
		t.Fatalf("edge with a hidden endpoint lane should be skipped, got %v", cmds)
	}
}

func TestFlowArrowsSkipsEdgeOutsideWindow(t *testing.T) {
	edges := []model.FlowEdge{{FromTs: 2000, FromTid: 1, ToTs: 2500, ToTid: 2}}
	if cmds := FlowArrows(edges, 0, 1000, 200, laneYAllVisible); cmds != nil {
		t.Fatalf("edge outside [t0,t1] should be skipped, got %v", cmds)
	}
}

func TestFlowArrowsDrawsSegmentsPlusArrowhead(t *testing.T) {
	edges := []model.FlowEdge{{FromTs: 0, FromTid: 1, ToTs: 500, ToTid: 2}}
	cmds := FlowArrows(edges, 0, 1000, 200, laneYAllVisible)
	// bezierSegments line segments plus a two-line arrowhead.
	want := bezierSegments + 2
	if len(cmds) != want {
		t.Fatalf("got %d commands, want %d", len(cmds), want)
	}
	for _, c := range cmds {
		if _, ok := c.(render.DrawLine); !ok {
			t.Fatalf("every flow-arrow command should be a DrawLine, got %T", c)
		}
	}
}

func TestCubicBezierEndpointsMatchControlPoints(t *testing.T) {
	x0, y0 := cubicBezier(0, 0, 10, 0, 10, 20, 20, 20, 0)
	if x0 != 0 || y0 != 0 {
		t.Fatalf("cubicBezier(t=0) = (%v,%v), want (0,0)", x0, y0)
	}
	x1, y1 := cubicBezier(0, 0, 10, 0, 10, 20, 20, 20, 1)
	if x1 != 20 || y1 != 20 {
		t.Fatalf("cubicBezier(t=1) = (%v,%v), want (20,20)", x1, y1)
	}
}
