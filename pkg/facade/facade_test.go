package facade

import (
	"context"
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/session"
)

func fixedNowMs() float64 { return 1000 }

func collapsedSample() []byte {
	return []byte("main;parseHTML;layout 5\nmain;paint 3\n")
}

func TestLoadProfileActivatesFirstLoad(t *testing.T) {
	f := New(fixedNowMs)
	handle, err := f.LoadProfile("a.txt", collapsedSample())
	if err != nil {
		t.Fatalf("LoadProfile() error = %v", err)
	}
	state := f.GetState()
	if !state.HasActive || state.ActiveHandle != handle {
		t.Fatalf("first loaded profile should become active: %+v", state)
	}
	if len(state.Entries) != 1 {
		t.Fatalf("Entries len = %d, want 1", len(state.Entries))
	}
}

func TestLoadProfileSecondDoesNotStealActive(t *testing.T) {
	f := New(fixedNowMs)
	h1, _ := f.LoadProfile("a.txt", collapsedSample())
	f.LoadProfile("b.txt", collapsedSample())

	if got := f.GetState().ActiveHandle; got != h1 {
		t.Fatalf("ActiveHandle = %d, want first loaded handle %d", got, h1)
	}
}

func TestLoadProfileInvalidDataErrors(t *testing.T) {
	f := New(fixedNowMs)
	if _, err := f.LoadProfile("bad.bin", []byte{0x00, 0x01}); err == nil {
		t.Fatalf("LoadProfile with garbage data should error")
	}
	if f.GetState().HasActive {
		t.Fatalf("a failed load should not activate anything")
	}
}

func TestLoadProfilesActivatesFirstSuccess(t *testing.T) {
	f := New(fixedNowMs)
	sources := []session.Source{
		{Label: "a.txt", Data: collapsedSample()},
		{Label: "b.txt", Data: collapsedSample()},
	}
	handles, errs := f.LoadProfiles(context.Background(), sources)
	if len(errs) != 0 {
		t.Fatalf("LoadProfiles() errs = %v, want none", errs)
	}
	if !f.GetState().HasActive {
		t.Fatalf("LoadProfiles should activate the first loaded profile")
	}
	if len(handles) != 2 {
		t.Fatalf("handles len = %d, want 2", len(handles))
	}
}

func TestClearSessionResetsState(t *testing.T) {
	f := New(fixedNowMs)
	f.LoadProfile("a.txt", collapsedSample())
	f.ClearSession()

	state := f.GetState()
	if state.HasActive || len(state.Entries) != 0 {
		t.Fatalf("ClearSession should drop every entry and deactivate: %+v", state)
	}
	if f.ActiveProfile() != nil {
		t.Fatalf("ActiveProfile() after Clear should be nil")
	}
}

func TestSetThemeUpdatesSnapshot(t *testing.T) {
	f := New(fixedNowMs)
	f.SetTheme("light")
	if got := f.GetState().Theme; got != "light" {
		t.Fatalf("Theme = %q, want light", got)
	}
	if got := f.Theme().Name(); got != "light" {
		t.Fatalf("Theme().Name() = %q, want light", got)
	}
}

func TestSetViewTypeAndColorMode(t *testing.T) {
	f := New(fixedNowMs)
	f.SetViewType(ViewRanked)
	f.SetColorMode(1) // ByDepth

	state := f.GetState()
	if state.View != ViewRanked {
		t.Fatalf("View = %v, want ViewRanked", state.View)
	}
	if int(state.ColorMode) != 1 {
		t.Fatalf("ColorMode = %v, want 1", state.ColorMode)
	}
}

func TestColorMapperRequiresActiveProfile(t *testing.T) {
	f := New(fixedNowMs)
	if _, ok := f.ColorMapper(); ok {
		t.Fatalf("ColorMapper should fail with no active profile")
	}
	f.LoadProfile("a.txt", collapsedSample())
	if _, ok := f.ColorMapper(); !ok {
		t.Fatalf("ColorMapper should succeed once a profile is active")
	}
}

func TestSearchLifecycle(t *testing.T) {
	f := New(fixedNowMs)
	f.LoadProfile("a.txt", collapsedSample())

	f.SetSearch("parse")
	state := f.GetState()
	if state.SearchQuery != "parse" || state.SearchMatches == 0 {
		t.Fatalf("SetSearch did not populate snapshot: %+v", state)
	}
	if state.SearchTotal < state.SearchMatches {
		t.Fatalf("SearchTotal = %d, want >= SearchMatches %d", state.SearchTotal, state.SearchMatches)
	}

	if _, ok := f.NextSearchResult(); !ok {
		t.Fatalf("NextSearchResult should find a match")
	}
	if got := f.GetState().SearchActive; got != 1 {
		t.Fatalf("SearchActive after first NextSearchResult = %d, want 1", got)
	}
	if _, ok := f.PrevSearchResult(); !ok {
		t.Fatalf("PrevSearchResult should find a match")
	}
}

func TestSearchWithoutActiveProfileIsNoOp(t *testing.T) {
	f := New(fixedNowMs)
	f.SetSearch("anything") // no active profile: should not panic
	if _, ok := f.NextSearchResult(); ok {
		t.Fatalf("NextSearchResult without an active profile should return ok=false")
	}
}

func TestSelectSpanRequiresActiveProfile(t *testing.T) {
	f := New(fixedNowMs)
	if err := f.SelectSpan(1); err == nil {
		t.Fatalf("SelectSpan with no active profile should error")
	}

	f.LoadProfile("a.txt", collapsedSample())
	p := f.ActiveProfile()
	if err := f.SelectSpan(p.Arena[0].FrameID); err != nil {
		t.Fatalf("SelectSpan() error = %v", err)
	}
	state := f.GetState()
	if !state.HasSelection {
		t.Fatalf("expected a selection after SelectSpan, got %+v", state)
	}

	f.ClearSelection()
	if f.GetState().HasSelection {
		t.Fatalf("ClearSelection should deselect")
	}
}

func TestNavigationCommandsDoNotPanicWithoutSelection(t *testing.T) {
	f := New(fixedNowMs)
	f.LoadProfile("a.txt", collapsedSample())
	f.NavigateToParent()
	f.NavigateToChild()
	f.NavigateToNextSibling()
	f.NavigateToPrevSibling()
	// No assertion beyond "did not panic" — these are no-ops without a
	// selection, per the façade's never-fail policy.
}

func TestViewportCommands(t *testing.T) {
	f := New(fixedNowMs)
	f.SetViewport(0.2, 0.4)
	state := f.GetState()
	if state.ViewportStart != 0.2 || state.ViewportEnd != 0.4 {
		t.Fatalf("SetViewport did not apply: %+v", state)
	}
	f.ResetZoom()
	state = f.GetState()
	if state.ViewportStart != 0 || state.ViewportEnd != 1 {
		t.Fatalf("ResetZoom did not restore full range: %+v", state)
	}
}

func TestZoomToSelectionRequiresSelectionAndProfile(t *testing.T) {
	f := New(fixedNowMs)
	if f.ZoomToSelection() {
		t.Fatalf("ZoomToSelection with no active profile should return false")
	}
	f.LoadProfile("a.txt", collapsedSample())
	if f.ZoomToSelection() {
		t.Fatalf("ZoomToSelection with no selection should return false")
	}
	p := f.ActiveProfile()
	f.SelectSpan(p.Arena[0].FrameID)
	if !f.ZoomToSelection() {
		t.Fatalf("ZoomToSelection with an active selection should succeed")
	}
}

func TestNavigateBackForwardNoOpOnEmptyHistory(t *testing.T) {
	f := New(fixedNowMs)
	f.NavigateBack()
	f.NavigateForward()
	state := f.GetState()
	if state.ViewportStart != 0 || state.ViewportEnd != 1 {
		t.Fatalf("no-op history navigation should leave the default window: %+v", state)
	}
}

func TestLaneCommandsRequireActiveProfile(t *testing.T) {
	f := New(fixedNowMs)
	f.SetLaneVisibility(1, false) // no active profile: should not panic
	f.SetLaneHeight(1, 40)
	f.ReorderLanes(0, 1)

	f.LoadProfile("a.txt", collapsedSample())
	lanes := f.Lanes()
	if lanes == nil {
		t.Fatalf("Lanes() should be non-nil once a profile is active")
	}
}

func TestSetActiveProfileSwitchesDerivedState(t *testing.T) {
	f := New(fixedNowMs)
	h1, _ := f.LoadProfile("a.txt", collapsedSample())
	h2, _ := f.LoadProfile("b.txt", collapsedSample())

	if err := f.SetActiveProfile(h2); err != nil {
		t.Fatalf("SetActiveProfile() error = %v", err)
	}
	if got := f.GetState().ActiveHandle; got != h2 {
		t.Fatalf("ActiveHandle = %d, want %d", got, h2)
	}
	if err := f.SetActiveProfile(99999); err == nil {
		t.Fatalf("SetActiveProfile with an unknown handle should error")
	}
	_ = h1
}

func TestOnStateChangeFiresAfterCommands(t *testing.T) {
	f := New(fixedNowMs)
	calls := 0
	f.OnStateChange(func(Snapshot) { calls++ })

	f.LoadProfile("a.txt", collapsedSample())
	f.SetTheme("light")
	f.SetViewType(ViewRanked)

	if calls != 3 {
		t.Fatalf("subscriber fired %d times, want 3 (one per command)", calls)
	}
}
