package interaction

import (
	"github.com/dicklesworthstone/spanscope/pkg/layout"
	"github.com/dicklesworthstone/spanscope/pkg/model"
)

// Selection tracks the currently selected span and supports O(1)
// hierarchy navigation using the arena's parent/child/sibling links.
type Selection struct {
	profile *model.Profile
	active  bool
	frameID model.FrameID
}

// NewSelection returns an empty Selection bound to profile.
func NewSelection(profile *model.Profile) *Selection {
	return &Selection{profile: profile}
}

// Select sets the active span by FrameID.
func (s *Selection) Select(id model.FrameID) {
	if s.profile.SpanByID(id) == nil {
		return
	}
	s.frameID = id
	s.active = true
}

// Clear deselects.
func (s *Selection) Clear() {
	s.active = false
	s.frameID = 0
}

// State returns the layout.Selection view of the current selection.
func (s *Selection) State() layout.Selection {
	return layout.Selection{Active: s.active, FrameID: s.frameID}
}

// NavigateParent moves the selection to the current span's parent, if any.
func (s *Selection) NavigateParent() {
	s.navigate(func(sp *model.Span) model.FrameID { return sp.Parent })
}

// NavigateChild moves the selection to the current span's first child.
func (s *Selection) NavigateChild() {
	s.navigate(func(sp *model.Span) model.FrameID { return sp.FirstChild })
}

// NavigateNextSibling moves the selection to the next sibling.
func (s *Selection) NavigateNextSibling() {
	s.navigate(func(sp *model.Span) model.FrameID { return sp.NextSibling })
}

// NavigatePrevSibling moves the selection to the previous sibling.
func (s *Selection) NavigatePrevSibling() {
	if !s.active {
		return
	}
	cur := s.profile.SpanByID(s.frameID)
	if cur == nil {
		return
	}
	if prev := s.profile.PrevSibling(cur); prev != nil {
		s.frameID = prev.FrameID
	}
}

func (s *Selection) navigate(next func(*model.Span) model.FrameID) {
	if !s.active {
		return
	}
	cur := s.profile.SpanByID(s.frameID)
	if cur == nil {
		return
	}
	if target := next(cur); target != 0 {
		s.frameID = target
	}
}
