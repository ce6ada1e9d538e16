package interaction

import (
	"strings"

	"github.com/dicklesworthstone/spanscope/pkg/layout"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/viewport"
)

const animateDurationMs = 250

// Search tracks a case-insensitive substring query over span names across
// a profile, the ordered match list it produces, and the active index.
type Search struct {
	profile *model.Profile
	query   string
	matches []model.FrameID
	matchSet map[model.FrameID]bool
	active  int
}

// NewSearch returns an empty Search bound to profile.
func NewSearch(profile *model.Profile) *Search {
	return &Search{profile: profile}
}

// SetQuery re-runs the search. An empty query clears highlights and match
// counts.
func (s *Search) SetQuery(q string) {
	s.query = q
	s.matches = nil
	s.matchSet = nil
	s.active = -1
	if q == "" {
		return
	}
	needle := strings.ToLower(q)
	s.matchSet = make(map[model.FrameID]bool)
	for i := range s.profile.Arena {
		span := &s.profile.Arena[i]
		name := strings.ToLower(s.profile.Name(span.Name))
		if strings.Contains(name, needle) {
			s.matches = append(s.matches, span.FrameID)
			s.matchSet[span.FrameID] = true
		}
	}
}

// MatchCount returns the number of matching spans.
func (s *Search) MatchCount() int { return len(s.matches) }

// TotalCount returns the number of spans the query was run against, the
// denominator a host UI pairs with MatchCount (e.g. "3 of 12 spans match").
func (s *Search) TotalCount() int {
	if s.profile == nil {
		return 0
	}
	return len(s.profile.Arena)
}

// ActiveIndex returns the 1-based position of the active match within the
// match list, or 0 if there are no matches or none has been navigated to yet.
func (s *Search) ActiveIndex() int {
	if len(s.matches) == 0 || s.active < 0 {
		return 0
	}
	return s.active + 1
}

// State returns the layout.SearchState view used by view transforms.
func (s *Search) State() layout.SearchState {
	return layout.SearchState{
		Active:      s.query != "",
		Query:       s.query,
		Matches:     s.matchSet,
		MatchCount:  len(s.matches),
		TotalCount:  s.TotalCount(),
		ActiveIndex: s.ActiveIndex(),
	}
}

// NextMatch advances to the next match and returns a viewport animation
// centering it, clamped to the profile's bounds.
func (s *Search) NextMatch(vp *viewport.Viewport, nowMs float64) (model.FrameID, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	s.active = (s.active + 1) % len(s.matches)
	return s.centerActive(vp, nowMs)
}

// PrevMatch retreats to the previous match and centers it.
func (s *Search) PrevMatch(vp *viewport.Viewport, nowMs float64) (model.FrameID, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	if s.active < 0 {
		s.active = len(s.matches) - 1
	} else {
		s.active = (s.active - 1 + len(s.matches)) % len(s.matches)
	}
	return s.centerActive(vp, nowMs)
}

func (s *Search) centerActive(vp *viewport.Viewport, nowMs float64) (model.FrameID, bool) {
	id := s.matches[s.active]
	span := s.profile.SpanByID(id)
	if span == nil {
		return 0, false
	}
	duration := s.profile.EndTimeUs - s.profile.StartTimeUs
	if duration <= 0 {
		return id, true
	}
	midFrac := (float64(span.StartUs+span.EndUs)/2 - float64(s.profile.StartTimeUs)) / float64(duration)
	span0 := vp.Current().Span()
	start := midFrac - span0/2
	end := start + span0
	if start < 0 {
		start, end = 0, span0
	}
	if end > 1 {
		end, start = 1, 1-span0
	}
	vp.AnimateTo(start, end, nowMs, animateDurationMs)
	return id, true
}
