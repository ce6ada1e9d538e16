// Package facade exposes the narrow command surface a host UI drives:
// load/clear/navigate/select/export, plus a flat JSON-serializable state
// snapshot and a change-subscription mechanism, per §4.10. Every command
// runs synchronously to completion (including the change notification)
// before returning, matching the single-threaded cooperative scheduling
// model of §5 — callers on a UI event loop never observe a partial commit.
package facade

import (
	"context"
	"sync"

	"github.com/dicklesworthstone/spanscope/pkg/colormap"
	"github.com/dicklesworthstone/spanscope/pkg/interaction"
	"github.com/dicklesworthstone/spanscope/pkg/lane"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/session"
	"github.com/dicklesworthstone/spanscope/pkg/spanerr"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
	"github.com/dicklesworthstone/spanscope/pkg/viewport"
)

// ViewType selects which view transform a renderer should apply to the
// active profile's lanes.
type ViewType int

const (
	ViewTimeOrder ViewType = iota
	ViewIcicle
	ViewLeftHeavy
	ViewSandwich
	ViewRanked
)

// Subscriber is called after any command mutates facade state.
type Subscriber func(Snapshot)

// EntrySnapshot mirrors one session.Entry for external consumers.
type EntrySnapshot struct {
	Handle   int    `json:"handle"`
	Label    string `json:"label"`
	Format   string `json:"format"`
	OffsetUs int64  `json:"offset_us"`
}

// Snapshot is the flat, JSON-serializable external view of facade state.
type Snapshot struct {
	Entries        []EntrySnapshot `json:"entries"`
	ActiveHandle   int             `json:"active_handle"`
	HasActive      bool            `json:"has_active"`
	Theme          string          `json:"theme"`
	View           ViewType        `json:"view"`
	ColorMode      colormap.Mode   `json:"color_mode"`
	SearchQuery    string          `json:"search_query"`
	SearchMatches  int             `json:"search_matches"`
	SearchTotal    int             `json:"search_total"`
	SearchActive   int             `json:"search_active_index"`
	SelectionFrame uint64          `json:"selection_frame"`
	HasSelection   bool            `json:"has_selection"`
	ViewportStart  float64         `json:"viewport_start"`
	ViewportEnd    float64         `json:"viewport_end"`
	VirtualStartUs int64           `json:"virtual_start_us"`
	VirtualEndUs   int64           `json:"virtual_end_us"`
	Lanes          []LaneSnapshot  `json:"lanes"`
}

// LaneSnapshot mirrors one lane.Lane for external consumers.
type LaneSnapshot struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"`
	Label     string `json:"label"`
	Visible   bool   `json:"visible"`
	RowHeight int    `json:"row_height"`
}

// Facade coordinates the session, viewport, selection, search and lane
// manager behind the command surface described in §4.10/§6.
type Facade struct {
	mu sync.Mutex

	sess   *session.Session
	active session.Handle
	has    bool

	th        theme.Theme
	view      ViewType
	colorMode colormap.Mode

	vp      *viewport.Viewport
	sel     *interaction.Selection
	search  *interaction.Search
	lanes   *lane.Manager
	nowMsFn func() float64

	subscribers []Subscriber
}

// New returns a Facade with an empty session and sensible defaults.
func New(nowMsFn func() float64) *Facade {
	return &Facade{
		sess:    session.New(),
		th:      theme.Dark(),
		view:    ViewTimeOrder,
		vp:      viewport.New(),
		nowMsFn: nowMsFn,
	}
}

// OnStateChange registers a subscriber fired after every command.
func (f *Facade) OnStateChange(sub Subscriber) {
	f.mu.Lock()
	f.subscribers = append(f.subscribers, sub)
	f.mu.Unlock()
}

func (f *Facade) notify() {
	snap := f.snapshotLocked()
	for _, sub := range f.subscribers {
		sub(snap)
	}
}

// GetState returns the current flat snapshot.
func (f *Facade) GetState() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Facade) snapshotLocked() Snapshot {
	info := f.sess.Info()
	snap := Snapshot{
		ActiveHandle:   int(f.active),
		HasActive:      f.has,
		Theme:          f.th.Name(),
		View:           f.view,
		ColorMode:      f.colorMode,
		VirtualStartUs: info.VirtualStart,
		VirtualEndUs:   info.VirtualEnd,
	}
	for _, e := range info.Entries {
		snap.Entries = append(snap.Entries, EntrySnapshot{
			Handle:   int(e.Handle),
			Label:    e.Label,
			Format:   string(e.Format),
			OffsetUs: e.OffsetUs,
		})
	}
	cur := f.vp.Current()
	snap.ViewportStart, snap.ViewportEnd = cur.Start, cur.End
	if f.search != nil {
		st := f.search.State()
		snap.SearchQuery = st.Query
		snap.SearchMatches = st.MatchCount
		snap.SearchTotal = st.TotalCount
		snap.SearchActive = st.ActiveIndex
	}
	if f.sel != nil {
		selState := f.sel.State()
		snap.HasSelection = selState.Active
		snap.SelectionFrame = uint64(selState.FrameID)
	}
	if f.lanes != nil {
		for _, l := range f.lanes.VisibleLanes() {
			snap.Lanes = append(snap.Lanes, LaneSnapshot{
				ID:        l.ID,
				Kind:      kindName(l.Kind),
				Label:     l.Label,
				Visible:   l.Visible,
				RowHeight: int(l.RowHeight),
			})
		}
	}
	return snap
}

// LoadProfile adds a named byte source to the session and, if this is the
// first profile loaded, makes it active.
func (f *Facade) LoadProfile(label string, data []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	h, err := f.sess.AddProfile(label, data)
	if err != nil {
		return 0, err
	}
	if !f.has {
		f.setActiveLocked(h)
	}
	f.notify()
	return int(h), nil
}

// LoadProfiles adds several byte sources in parallel; see session.AddProfiles.
func (f *Facade) LoadProfiles(ctx context.Context, sources []session.Source) ([]int, []error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	handles, errs := f.sess.AddProfiles(ctx, sources)
	if !f.has {
		for _, h := range handles {
			f.setActiveLocked(h)
			break
		}
	}
	f.notify()
	ints := make([]int, len(handles))
	for i, h := range handles {
		ints[i] = int(h)
	}
	return ints, errs
}

// ClearSession discards every loaded profile and resets derived state.
func (f *Facade) ClearSession() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess.Clear()
	f.has = false
	f.active = 0
	f.vp = viewport.New()
	f.sel = nil
	f.search = nil
	f.lanes = nil
	f.notify()
}

// SetProfileOffset re-aligns one profile's position on the virtual timeline.
func (f *Facade) SetProfileOffset(handle int, offsetUs int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.sess.SetOffset(session.Handle(handle), offsetUs); err != nil {
		return err
	}
	f.notify()
	return nil
}

// SetTheme swaps the active color theme by name ("dark" or "light").
func (f *Facade) SetTheme(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.th = theme.ByName(name)
	f.notify()
}

// Theme returns the active theme for use by a renderer.
func (f *Facade) Theme() theme.Theme {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.th
}

// SetViewType switches the active flame/icicle/left-heavy/sandwich/ranked view.
func (f *Facade) SetViewType(v ViewType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.view = v
	f.notify()
}

// SetColorMode switches between by-name and by-depth span coloring.
func (f *Facade) SetColorMode(m colormap.Mode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.colorMode = m
	f.notify()
}

// ColorMapper returns a colormap.Mapper for the active profile under the
// current color mode, or false if no profile is active.
func (f *Facade) ColorMapper() (colormap.Mapper, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.activeProfileLocked()
	if p == nil {
		return colormap.Mapper{}, false
	}
	return colormap.New(p, f.colorMode), true
}

// SetSearch sets the active-profile search query.
func (f *Facade) SetSearch(query string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.search == nil {
		return
	}
	f.search.SetQuery(query)
	f.notify()
}

// NextSearchResult advances to, and centers the viewport on, the next match.
func (f *Facade) NextSearchResult() (model.FrameID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.search == nil {
		return 0, false
	}
	id, ok := f.search.NextMatch(f.vp, f.nowMsFn())
	f.notify()
	return id, ok
}

// PrevSearchResult retreats to, and centers the viewport on, the previous match.
func (f *Facade) PrevSearchResult() (model.FrameID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.search == nil {
		return 0, false
	}
	id, ok := f.search.PrevMatch(f.vp, f.nowMsFn())
	f.notify()
	return id, ok
}

// SelectSpan marks id as the active selection.
func (f *Facade) SelectSpan(id model.FrameID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sel == nil {
		return spanerr.NewSessionError("selectSpan", spanerr.EmptySession)
	}
	f.sel.Select(id)
	f.notify()
	return nil
}

// ClearSelection drops the active selection, if any.
func (f *Facade) ClearSelection() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sel != nil {
		f.sel.Clear()
	}
	f.notify()
}

// NavigateToParent moves the selection to its parent span.
func (f *Facade) NavigateToParent() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sel != nil {
		f.sel.NavigateParent()
	}
	f.notify()
}

// NavigateToChild moves the selection to its first child span.
func (f *Facade) NavigateToChild() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sel != nil {
		f.sel.NavigateChild()
	}
	f.notify()
}

// NavigateToNextSibling moves the selection to its next sibling span.
func (f *Facade) NavigateToNextSibling() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sel != nil {
		f.sel.NavigateNextSibling()
	}
	f.notify()
}

// NavigateToPrevSibling moves the selection to its previous sibling span.
func (f *Facade) NavigateToPrevSibling() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sel != nil {
		f.sel.NavigatePrevSibling()
	}
	f.notify()
}

// SetLaneVisibility shows or hides one lane.
func (f *Facade) SetLaneVisibility(laneID int64, visible bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lanes != nil {
		f.lanes.SetVisible(laneID, visible)
	}
	f.notify()
}

// SetLaneHeight resizes one lane's row height in pixels.
func (f *Facade) SetLaneHeight(laneID int64, heightPx float32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lanes != nil {
		f.lanes.SetRowHeight(laneID, heightPx)
	}
	f.notify()
}

// ReorderLanes moves the lane at position from to position to.
func (f *Facade) ReorderLanes(from, to int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lanes != nil {
		f.lanes.MoveLane(from, to)
	}
	f.notify()
}

// SetViewport pins the visible time window directly (as virtual-timeline
// fractions in [0,1], matching viewport.State).
func (f *Facade) SetViewport(start, end float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vp.SetWindow(start, end)
	f.notify()
}

// ResetZoom restores the full-timeline viewport.
func (f *Facade) ResetZoom() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vp.ResetZoom()
	f.notify()
}

// ZoomToSelection animates the viewport to frame the active selection's span.
func (f *Facade) ZoomToSelection() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.activeProfileLocked()
	if p == nil || f.sel == nil {
		return false
	}
	st := f.sel.State()
	if !st.Active {
		return false
	}
	span := p.SpanByID(st.FrameID)
	if span == nil {
		return false
	}
	info := f.sess.Info()
	total := float64(info.VirtualEnd - info.VirtualStart)
	if total <= 0 {
		return false
	}
	start := float64(span.StartUs-info.VirtualStart) / total
	end := float64(span.EndUs-info.VirtualStart) / total
	f.vp.AnimateTo(start, end, f.nowMsFn(), 300)
	f.notify()
	return true
}

// NavigateBack restores the previous viewport from history.
func (f *Facade) NavigateBack() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vp.Back()
	f.notify()
}

// NavigateForward restores the next viewport from history.
func (f *Facade) NavigateForward() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.vp.Forward()
	f.notify()
}

// Viewport returns the viewport driving this facade, for a renderer to
// advance per frame and for animation-sensitive tests.
func (f *Facade) Viewport() *viewport.Viewport {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.vp
}

// Lanes returns the lane manager for the active profile, or nil if none.
func (f *Facade) Lanes() *lane.Manager {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lanes
}

// ActiveProfile returns the currently active profile, or nil.
func (f *Facade) ActiveProfile() *model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeProfileLocked()
}

func (f *Facade) activeProfileLocked() *model.Profile {
	if !f.has {
		return nil
	}
	return f.sess.Profile(f.active)
}

// SetActiveProfile switches which loaded profile drives selection/search/lanes.
func (f *Facade) SetActiveProfile(handle int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := f.sess.Profile(session.Handle(handle))
	if p == nil {
		return spanerr.NewSessionError("setActiveProfile", spanerr.UnknownProfileHandle)
	}
	f.setActiveLocked(session.Handle(handle))
	f.notify()
	return nil
}

func (f *Facade) setActiveLocked(h session.Handle) {
	f.active = h
	f.has = true
	p := f.sess.Profile(h)
	f.sel = interaction.NewSelection(p)
	f.search = interaction.NewSearch(p)
	f.lanes = lane.New(lanesFor(p))
}

func lanesFor(p *model.Profile) []lane.Lane {
	lanes := make([]lane.Lane, 0, len(p.Threads))
	for _, th := range p.Threads {
		lanes = append(lanes, lane.Lane{
			ID:        th.ID,
			Kind:      lane.KindThread,
			Label:     th.Name,
			Visible:   true,
			RowHeight: lane.DefaultRowHeight(),
		})
	}
	return lanes
}

func kindName(k lane.Kind) string {
	switch k {
	case lane.KindCounter:
		return "counter"
	case lane.KindMarker:
		return "marker"
	case lane.KindAsync:
		return "async"
	case lane.KindFrame:
		return "frame"
	default:
		return "thread"
	}
}
