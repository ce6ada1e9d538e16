package layout

import (
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// CounterTrack projects counter samples within [t0, t1] to pixel x,
// normalizing value into [trackMin, trackMax], emitting a filled polyline
// approximated as thin rects between adjacent samples.
func CounterTrack(counter model.Counter, t0, t1 int64, widthPx, heightPx float32) []render.Command {
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 || len(counter.Samples) == 0 {
		return nil
	}
	trackMin, trackMax := counter.Samples[0].Value, counter.Samples[0].Value
	for _, s := range counter.Samples {
		if s.Value < trackMin {
			trackMin = s.Value
		}
		if s.Value > trackMax {
			trackMax = s.Value
		}
	}
	rng := trackMax - trackMin
	if rng == 0 {
		rng = 1
	}

	var cmds []render.Command
	var prevX, prevY float32
	havePrev := false
	for _, s := range counter.Samples {
		if s.TimestampUs < t0 || s.TimestampUs > t1 {
			continue
		}
		x := float32(s.TimestampUs-t0) * ppu
		norm := float32((s.Value - trackMin) / rng)
		y := heightPx - norm*heightPx
		if havePrev {
			w := x - prevX
			if w < 0 {
				w = 0
			}
			top := y
			if prevY < top {
				top = prevY
			}
			h := heightPx - top
			cmds = append(cmds, render.DrawRect{
				Rect:      render.RectShape{X: prevX, Y: top, W: w, H: h},
				FillToken: theme.CounterFill,
			})
			cmds = append(cmds, render.DrawLine{From: render.PointShape{X: prevX, Y: prevY}, To: render.PointShape{X: x, Y: y}, Token: theme.CounterLine, Width: 1})
		}
		prevX, prevY, havePrev = x, y, true
	}
	return cmds
}

// MarkerTrack emits a vertical line plus a clipped label for each marker
// within [t0, t1].
func MarkerTrack(markers []model.Marker, t0, t1 int64, widthPx, heightPx float32) []render.Command {
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 {
		return nil
	}
	var cmds []render.Command
	for _, m := range markers {
		if m.TimestampUs < t0 || m.TimestampUs > t1 {
			continue
		}
		x := snapX(float32(m.TimestampUs-t0) * ppu)
		cmds = append(cmds,
			render.SetClip{Rect: render.RectShape{X: 0, Y: 0, W: widthPx, H: heightPx}},
			render.DrawLine{From: render.PointShape{X: x, Y: 0}, To: render.PointShape{X: x, Y: heightPx}, Token: theme.MarkerLine, Width: 1},
			render.DrawText{Pos: render.PointShape{X: x + 2, Y: heightPx - 4}, Text: m.Name, Token: theme.MarkerText},
			render.ClearClip{},
		)
	}
	return cmds
}

// AsyncTrack lays out async spans in 1..N rows using greedy stacking: each
// span is placed in the lowest row whose last-placed span already ended at
// or before the new span's start.
func AsyncTrack(spans []model.AsyncSpan, t0, t1 int64, widthPx float32) []render.Command {
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 {
		return nil
	}
	var rowEnds []int64
	var cmds []render.Command
	for _, s := range spans {
		if !intersects(s.StartUs, s.EndUs, t0, t1) {
			continue
		}
		row := -1
		for i, end := range rowEnds {
			if end <= s.StartUs {
				row = i
				break
			}
		}
		if row < 0 {
			row = len(rowEnds)
			rowEnds = append(rowEnds, 0)
		}
		rowEnds[row] = s.EndUs

		x := snapX(float32(s.StartUs-t0) * ppu)
		w := float32(s.EndUs-s.StartUs) * ppu
		if w < MinWidthPx {
			continue
		}
		y := float32(row) * RowH
		label := ""
		if w > LabelMinPx {
			label = s.Name
		}
		cmds = append(cmds, render.DrawRect{
			Rect:        render.RectShape{X: x, Y: y, W: w, H: RowH - 1},
			FillToken:   theme.AsyncSpanFill,
			BorderToken: theme.AsyncSpanBorder,
			HasBorder:   true,
			Label:       label,
			FrameID:     uint64(s.ID),
		})
	}
	return cmds
}

// FrameTrack emits one fixed-height rect per frame, tokenized by its
// budget classification.
func FrameTrack(frames []model.Frame, t0, t1 int64, widthPx, heightPx float32) []render.Command {
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 {
		return nil
	}
	var cmds []render.Command
	for _, f := range frames {
		if !intersects(f.StartUs, f.EndUs, t0, t1) {
			continue
		}
		x := snapX(float32(f.StartUs-t0) * ppu)
		w := float32(f.EndUs-f.StartUs) * ppu
		if w < MinWidthPx {
			continue
		}
		tok := theme.FrameGood
		switch f.Classification {
		case model.FrameWarning:
			tok = theme.FrameWarning
		case model.FrameDropped:
			tok = theme.FrameDropped
		}
		cmds = append(cmds, render.DrawRect{
			Rect:      render.RectShape{X: x, Y: 0, W: w, H: heightPx},
			FillToken: tok,
		})
	}
	return cmds
}
