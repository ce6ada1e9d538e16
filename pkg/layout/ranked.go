package layout

import (
	"sort"

	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
)

// RankMetric selects which aggregate the Ranked view sorts and sizes bars
// by.
type RankMetric int

const (
	RankSelf RankMetric = iota
	RankTotal
)

type rankedRow struct {
	name     int32
	category int32
	selfUs   int64
	totalUs  int64
}

// Ranked flattens the profile to one row per unique (name, category),
// sorted by metric descending, name lexicographic on ties.
func Ranked(profile *model.Profile, metric RankMetric, widthPx float32, mapper func(name int32) theme.Token) []render.Command {
	rows := map[[2]int32]*rankedRow{}
	for i := range profile.Arena {
		s := &profile.Arena[i]
		key := [2]int32{s.Name, s.Category}
		r, ok := rows[key]
		if !ok {
			r = &rankedRow{name: s.Name, category: s.Category}
			rows[key] = r
		}
		r.selfUs += s.SelfUs
		r.totalUs += s.Duration()
	}

	list := make([]*rankedRow, 0, len(rows))
	for _, r := range rows {
		list = append(list, r)
	}
	sort.Slice(list, func(i, j int) bool {
		vi, vj := metricOf(list[i], metric), metricOf(list[j], metric)
		if vi != vj {
			return vi > vj
		}
		return profile.Name(list[i].name) < profile.Name(list[j].name)
	})

	var maxVal int64
	for _, r := range list {
		if v := metricOf(r, metric); v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		return nil
	}

	var cmds []render.Command
	for i, r := range list {
		v := metricOf(r, metric)
		w := float32(v) / float32(maxVal) * widthPx
		y := float32(i) * RowH
		tok := theme.BarFill
		if mapper != nil {
			tok = mapper(r.name)
		}
		cmds = append(cmds, render.DrawRect{
			Rect:      render.RectShape{X: 0, Y: y, W: w, H: RowH - 1},
			FillToken: tok,
			Label:     profile.Name(r.name),
		})
	}
	return cmds
}

func metricOf(r *rankedRow, metric RankMetric) int64 {
	if metric == RankTotal {
		return r.totalUs
	}
	return r.selfUs
}
