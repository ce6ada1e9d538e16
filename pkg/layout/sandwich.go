package layout

import (
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// SandwichStats carries the aggregated total/self time for the sandwiched
// frame across every occurrence in the profile, per §4.6's "Total time =
// Σ durations of F instances; self time = Σ self_times".
type SandwichStats struct {
	TotalUs int64
	SelfUs  int64
}

// Sandwich requires a selected frame F. It returns two command lists and
// the aggregated total/self time across every instance of F. The upper half
// draws one bar per distinct direct caller of F and the lower half one bar
// per distinct direct callee, laid out by renderSandwichHalf. Callers of
// callers and callees of callees are not drawn, and no bar is drawn for F
// itself.
func Sandwich(profile *model.Profile, target model.FrameID, widthPx, halfHeightPx float32) (upper, lower []render.Command, stats SandwichStats, err error) {
	if target == 0 {
		return nil, nil, SandwichStats{}, spanerr.NewViewError("sandwich", spanerr.SandwichRequiresSelection)
	}
	root := profile.SpanByID(target)
	if root == nil {
		return nil, nil, SandwichStats{}, spanerr.NewViewError("sandwich", spanerr.SandwichRequiresSelection)
	}

	cg := buildCallGraph(profile)
	targetTotal, targetSelf := aggregateInstances(profile, root.Name)

	callers := cg.aggregatedCallers(root.Name)
	callees := cg.aggregatedCallees(root.Name)

	upper = renderSandwichHalf(profile, callers, targetTotal, widthPx, halfHeightPx, true)
	lower = renderSandwichHalf(profile, callees, targetTotal, widthPx, halfHeightPx, false)
	stats = SandwichStats{TotalUs: targetTotal, SelfUs: targetSelf}
	return upper, lower, stats, nil
}

// aggregateInstances sums total and self time across every span sharing
// name across the whole profile (every occurrence of the selected frame).
func aggregateInstances(profile *model.Profile, name int32) (totalUs, selfUs int64) {
	for i := range profile.Arena {
		s := &profile.Arena[i]
		if s.Name == name {
			totalUs += s.Duration()
			selfUs += s.SelfUs
		}
	}
	return
}

// renderSandwichHalf draws one bar per aggregated caller/callee edge,
// width proportional to that edge's share of targetTotal; edges narrower
// than MinWidthPx are dropped. Each bar starts where the previous one ended
// and sits one row further from the split. With rootAtBottom (caller side)
// the bars climb from the second row above the bottom of the half;
// otherwise (callee side) they descend from the second row below its top.
// The row next to the split stays empty.
func renderSandwichHalf(profile *model.Profile, edges []callEdge, targetTotal int64, widthPx, heightPx float32, rootAtBottom bool) []render.Command {
	if targetTotal <= 0 {
		return nil
	}
	var cmds []render.Command
	x := float32(0)
	row := float32(0)
	var rowY float32
	if rootAtBottom {
		rowY = heightPx - RowH
	} else {
		rowY = 0
	}

	for _, e := range edges {
		w := float32(e.totalUs) / float32(targetTotal) * widthPx
		if w < MinWidthPx {
			continue
		}
		name := profile.Name(e.fromName)
		if !rootAtBottom {
			name = profile.Name(e.toName)
		}
		y := rowY
		if rootAtBottom {
			y = heightPx - RowH - row*RowH - RowH
		} else {
			y = RowH + row*RowH
		}
		label := ""
		if w > LabelMinPx {
			label = name
		}
		cmds = append(cmds, render.DrawRect{
			Rect:        render.RectShape{X: snapX(x), Y: y, W: w, H: RowH - 1},
			FillToken:   theme.FlameWarm,
			BorderToken: theme.Border,
			HasBorder:   true,
			Label:       label,
		})
		x += w
		row++
	}
	return cmds
}
