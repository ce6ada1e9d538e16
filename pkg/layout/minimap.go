package layout

import (
	"math"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
	"github.com/dicklesworthstone/spanscope/pkg/viewport"
)

// Minimap renders a fixed-height density heatmap of the entire [0,1]
// timeline, plus a translucent overlay for the current viewport window.
func Minimap(profile *model.Profile, vp viewport.State, widthPx, heightPx float32) []render.Command {
	var cmds []render.Command
	width := int(widthPx)
	if width <= 0 {
		return nil
	}
	counts := make([]int, width)
	duration := profile.EndTimeUs - profile.StartTimeUs
	if duration <= 0 {
		return cmds
	}

	for i := range profile.Arena {
		s := &profile.Arena[i]
		frac := float64(s.StartUs-profile.StartTimeUs) / float64(duration)
		px := int(frac * float64(width))
		if px < 0 {
			px = 0
		}
		if px >= width {
			px = width - 1
		}
		counts[px]++
	}

	maxLog := 0.0
	logs := make([]float64, width)
	for i, c := range counts {
		logs[i] = math.Log(float64(c) + 1)
		if logs[i] > maxLog {
			maxLog = logs[i]
		}
	}

	cmds = append(cmds, render.DrawRect{Rect: render.RectShape{X: 0, Y: 0, W: widthPx, H: heightPx}, FillToken: theme.MinimapBackground})

	if maxLog > 0 {
		for x, l := range logs {
			if l <= 0 {
				continue
			}
			h := float32(l/maxLog) * heightPx
			cmds = append(cmds, render.DrawRect{
				Rect:      render.RectShape{X: float32(x), Y: heightPx - h, W: 1, H: h},
				FillToken: theme.BarFill,
			})
		}
	}

	vx := float32(vp.Start) * widthPx
	vw := float32(vp.Span()) * widthPx
	cmds = append(cmds, render.DrawRect{
		Rect:      render.RectShape{X: vx, Y: 0, W: vw, H: heightPx},
		FillToken: theme.MinimapViewport,
	})
	return cmds
}
