// Package layout holds the pure view-transform functions: given a profile,
// a lane, a viewport, a canvas size, the active selection, and search
// state, each transform returns an owned slice of render.Command and never
// mutates its inputs or retains rendering resources.
package layout

import (
	"math"

	"github.com/dicklesworthstone/spanscope/pkg/colormap"
	"github.com/dicklesworthstone/spanscope/pkg/geometry"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
	"github.com/dicklesworthstone/spanscope/pkg/viewport"
)

const (
	// RowH is the pixel height of one span row, including the 1px gap
	// subtracted from the drawn rect's height.
	RowH float32 = 20
	// MinWidthPx is the narrowest a span rect may be before it is culled.
	MinWidthPx float32 = 0.5
	// LabelMinPx is the minimum rect width a label is drawn at.
	LabelMinPx float32 = 20
)

// Selection holds the currently selected span, if any.
type Selection struct {
	Active  bool
	FrameID model.FrameID
}

// SearchState holds the active query's match set, per §4.8.
type SearchState struct {
	Active      bool
	Query       string
	Matches     map[model.FrameID]bool
	MatchCount  int
	TotalCount  int
	ActiveIndex int
}

// Window resolves the absolute [t0, t1] microsecond time window a viewport
// state covers within a profile's virtual duration.
func Window(virtualStartUs, virtualEndUs int64, vp viewport.State) (t0, t1 int64) {
	duration := float64(virtualEndUs - virtualStartUs)
	t0 = virtualStartUs + int64(vp.Start*duration)
	t1 = virtualStartUs + int64(vp.End*duration)
	return
}

// pixelsPerUs computes the horizontal scale for a time window onto a pixel
// width.
func pixelsPerUs(t0, t1 int64, widthPx float32) float32 {
	dur := float64(t1 - t0)
	if dur <= 0 {
		return 0
	}
	return widthPx / float32(dur)
}

func intersects(startUs, endUs, t0, t1 int64) bool {
	return startUs <= t1 && endUs >= t0
}

func snapX(x float32) float32 { return float32(math.Round(float64(x))) }

// spanColorAndLabel resolves the fill token and whether a border is drawn
// for a span, applying search dimming: matches keep their color and the caller adds a
// SearchHighlight overlay separately, non-matches are recolored neutral
// and lose their border.
func spanColorAndLabel(mapper colormap.Mapper, profile *model.Profile, span *model.Span, search SearchState) (theme.Token, bool) {
	fill := mapper.Resolve(span)
	hasBorder := true
	if search.Active && len(search.Matches) > 0 {
		if !search.Matches[span.FrameID] {
			fill = theme.FlameNeutral
			hasBorder = false
		}
	}
	return fill, hasBorder
}

// TimeOrder lays out spans in their natural start-time order: x from
// timestamp, y from nesting depth.
func TimeOrder(profile *model.Profile, threadID int64, vp viewport.State, widthPx, heightPx float32, mapper colormap.Mapper, sel Selection, search SearchState) []render.Command {
	return timeOrderLike(profile, threadID, vp, widthPx, heightPx, mapper, sel, search, false)
}

// Icicle is time-order layout with Y measured from the root downward
// instead of from leaves upward; visually identical to TimeOrder since
// depth already increases downward here, the distinction in this model is
// purely about which edge callers treat as the anchor for root analysis.
func Icicle(profile *model.Profile, threadID int64, vp viewport.State, widthPx, heightPx float32, mapper colormap.Mapper, sel Selection, search SearchState) []render.Command {
	return timeOrderLike(profile, threadID, vp, widthPx, heightPx, mapper, sel, search, true)
}

func timeOrderLike(profile *model.Profile, threadID int64, vp viewport.State, widthPx, heightPx float32, mapper colormap.Mapper, sel Selection, search SearchState, icicle bool) []render.Command {
	t0, t1 := Window(profile.StartTimeUs, profile.EndTimeUs, vp)
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 {
		return nil
	}

	var cmds []render.Command
	for i := range profile.Arena {
		s := &profile.Arena[i]
		if s.ThreadID != threadID {
			continue
		}
		if !intersects(s.StartUs, s.EndUs, t0, t1) {
			continue
		}
		x := float32(s.StartUs-t0) * ppu
		w := float32(s.EndUs-s.StartUs) * ppu
		if w < MinWidthPx {
			continue
		}
		x = snapX(x)

		// Depth already grows downward from the root in this arena model, so
		// icicle and time-order share the same Y computation.
		y := float32(s.Depth) * RowH

		fill, hasBorder := spanColorAndLabel(mapper, profile, s, search)
		label := ""
		if w > LabelMinPx {
			label = profile.Name(s.Name)
		}

		rect := render.DrawRect{
			Rect:        render.RectShape{X: x, Y: y, W: w, H: RowH - 1},
			FillToken:   fill,
			BorderToken: theme.Border,
			HasBorder:   hasBorder,
			Label:       label,
			FrameID:     uint64(s.FrameID),
		}
		cmds = append(cmds, rect)

		if search.Active && search.Matches[s.FrameID] {
			cmds = append(cmds, render.DrawRect{
				Rect:      rect.Rect,
				FillToken: theme.SearchHighlight,
				FrameID:   uint64(s.FrameID),
			})
		}
		if sel.Active && sel.FrameID == s.FrameID {
			cmds = append(cmds, render.DrawRect{
				Rect:        rect.Rect,
				FillToken:   theme.SelectionHighlight,
				BorderToken: theme.SelectionHighlight,
				HasBorder:   true,
				FrameID:     uint64(s.FrameID),
			})
		}
	}
	return cmds
}

// LeftHeavy lays out one thread's spans with children sorted by total
// duration descending within each parent, discarding original timestamps:
// x positions are recomputed as cumulative sums starting at the parent's
// left edge.
func LeftHeavy(profile *model.Profile, threadID int64, widthPx, heightPx float32, mapper colormap.Mapper, sel Selection, search SearchState) []render.Command {
	var roots []*model.Span
	for _, th := range profile.Threads {
		if th.ID != threadID {
			continue
		}
		for _, id := range th.RootIDs {
			roots = append(roots, profile.SpanByID(id))
		}
	}
	totalUs := profile.EndTimeUs - profile.StartTimeUs
	if totalUs <= 0 {
		return nil
	}
	ppu := widthPx / float32(totalUs)

	var cmds []render.Command
	var walk func(spans []*model.Span, x float32)
	walk = func(spans []*model.Span, x float32) {
		sortByDurationDesc(spans, profile)
		for _, s := range spans {
			w := float32(s.Duration()) * ppu
			if w < MinWidthPx {
				continue
			}
			y := float32(s.Depth) * RowH
			fill, hasBorder := spanColorAndLabel(mapper, profile, s, search)
			label := ""
			if w > LabelMinPx {
				label = profile.Name(s.Name)
			}
			cmds = append(cmds, render.DrawRect{
				Rect:        render.RectShape{X: snapX(x), Y: y, W: w, H: RowH - 1},
				FillToken:   fill,
				BorderToken: theme.Border,
				HasBorder:   hasBorder,
				Label:       label,
				FrameID:     uint64(s.FrameID),
			})
			walk(profile.Children(s), x)
			x += w
		}
	}
	walk(roots, 0)
	return cmds
}

func sortByDurationDesc(spans []*model.Span, profile *model.Profile) {
	for i := 1; i < len(spans); i++ {
		j := i
		for j > 0 && spans[j-1].Duration() < spans[j].Duration() {
			spans[j-1], spans[j] = spans[j], spans[j-1]
			j--
		}
	}
}
