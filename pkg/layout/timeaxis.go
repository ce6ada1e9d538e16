package layout

import (
	"fmt"
	"math"

	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// niceMultipliers are the multipliers m of the preferred m*10^k tick
// intervals, in microseconds.
var niceMultipliers = [3]float64{1, 2, 5}

// tickInterval chooses a tick spacing (in microseconds) that yields
// roughly targetTicks labels across span microseconds.
func tickInterval(spanUs float64, targetTicks int) float64 {
	if spanUs <= 0 || targetTicks <= 0 {
		return 1
	}
	raw := spanUs / float64(targetTicks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	best := niceMultipliers[0] * mag
	bestDiff := math.Abs(raw - best)
	for _, m := range niceMultipliers[1:] {
		cand := m * mag
		if d := math.Abs(raw - cand); d < bestDiff {
			best, bestDiff = cand, d
		}
	}
	if next := niceMultipliers[0] * mag * 10; math.Abs(raw-next) < bestDiff {
		best = next
	}
	return best
}

func formatDurationUs(us int64) string {
	switch {
	case us < 1000:
		return fmt.Sprintf("%dns", us*1000)
	case us < 1_000_000:
		return fmt.Sprintf("%.1fµs", float64(us))
	case us < 1_000_000_000:
		return fmt.Sprintf("%.1fms", float64(us)/1000)
	default:
		return fmt.Sprintf("%.2fs", float64(us)/1_000_000)
	}
}

// TimeAxis lays out tick marks and labels across widthPx for the absolute
// window [t0, t1], preferring 6-10 labels at 1/2/5*10^k microsecond
// intervals. gridHeight, if > 0, draws a full-height vertical gridline per
// tick instead of a short tick mark.
func TimeAxis(t0, t1 int64, widthPx, gridHeight float32) []render.Command {
	ppu := pixelsPerUs(t0, t1, widthPx)
	if ppu == 0 {
		return nil
	}
	step := tickInterval(float64(t1-t0), 8)
	if step <= 0 {
		return nil
	}

	var cmds []render.Command
	start := float64(t0) - math.Mod(float64(t0), step)
	for tickUs := start; tickUs <= float64(t1); tickUs += step {
		x := snapX(float32(tickUs-float64(t0)) * ppu)
		if x < 0 || x > widthPx {
			continue
		}
		lineH := float32(6)
		if gridHeight > 0 {
			lineH = gridHeight
		}
		cmds = append(cmds,
			render.DrawLine{From: render.PointShape{X: x, Y: 0}, To: render.PointShape{X: x, Y: lineH}, Token: theme.Border, Width: 1},
			render.DrawText{Pos: render.PointShape{X: x + 2, Y: lineH + 10}, Text: formatDurationUs(int64(tickUs) - t0), Token: theme.TextSecondary},
		)
	}
	return cmds
}
