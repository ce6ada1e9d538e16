package layout

import (
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/colormap"
	"github.com/dicklesworthstone/spanscope/pkg/model"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
	"github.com/dicklesworthstone/spanscope/pkg/viewport"
)

// buildThread constructs a single thread with a root span "main" [0,100)
// and two children "a" [0,60) and "b" [60,100), all on ThreadID 1.
func buildThread(t *testing.T) *model.Profile {
	t.Helper()
	p := model.NewProfile(model.FormatChrome)
	p.StartTimeUs = 0
	p.EndTimeUs = 100

	mainName := p.Interner().Intern("main")
	aName := p.Interner().Intern("a")
	bName := p.Interner().Intern("b")

	rootID := p.AddSpan(model.Span{Name: mainName, Category: -1, ThreadID: 1, StartUs: 0, EndUs: 100, SelfUs: 0, Depth: 0})
	aID := p.AddSpan(model.Span{Name: aName, Category: -1, ThreadID: 1, StartUs: 0, EndUs: 60, SelfUs: 60, Depth: 1, Parent: rootID})
	bID := p.AddSpan(model.Span{Name: bName, Category: -1, ThreadID: 1, StartUs: 60, EndUs: 100, SelfUs: 40, Depth: 1, Parent: rootID})

	root := p.SpanByID(rootID)
	root.FirstChild = aID
	a := p.SpanByID(aID)
	a.NextSibling = bID

	p.Threads = append(p.Threads, model.Thread{ID: 1, Name: "main", RootIDs: []model.FrameID{rootID}})
	return p
}

func fullWindow() viewport.State { return viewport.State{Start: 0, End: 1} }

func TestTimeOrderProducesOneRectPerVisibleSpan(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	cmds := TimeOrder(p, 1, fullWindow(), 200, 100, mapper, Selection{}, SearchState{})

	var rects []render.DrawRect
	for _, c := range cmds {
		if r, ok := c.(render.DrawRect); ok {
			rects = append(rects, r)
		}
	}
	if len(rects) != 3 {
		t.Fatalf("got %d rects, want 3 (root + 2 children)", len(rects))
	}
}

func TestTimeOrderFiltersByThread(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	cmds := TimeOrder(p, 999, fullWindow(), 200, 100, mapper, Selection{}, SearchState{})
	if len(cmds) != 0 {
		t.Fatalf("unrelated thread id should produce no commands, got %d", len(cmds))
	}
}

func TestTimeOrderCullsNarrowSpans(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	// With a 1px-wide canvas over a 100us window, the 40us child is 0.4px
	// wide, below MinWidthPx, and is culled; the root (1px) and the 60us
	// child (0.6px) survive.
	cmds := TimeOrder(p, 1, fullWindow(), 1, 100, mapper, Selection{}, SearchState{})
	if len(cmds) != 2 {
		t.Fatalf("got %d commands, want 2 (root and the 60us child)", len(cmds))
	}
}

func TestTimeOrderZeroSpanWindowReturnsNil(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	cmds := TimeOrder(p, 1, viewport.State{Start: 0.5, End: 0.5}, 200, 100, mapper, Selection{}, SearchState{})
	if cmds != nil {
		t.Fatalf("degenerate window should return nil, got %v", cmds)
	}
}

func TestTimeOrderAppliesSelectionHighlight(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	root := &p.Arena[0]
	sel := Selection{Active: true, FrameID: root.FrameID}
	cmds := TimeOrder(p, 1, fullWindow(), 200, 100, mapper, sel, SearchState{})

	highlights := 0
	for _, c := range cmds {
		if r, ok := c.(render.DrawRect); ok && r.FrameID == uint64(root.FrameID) && r.FillToken == theme.SelectionHighlight {
			highlights++
		}
	}
	if highlights != 1 {
		t.Fatalf("expected exactly one selection highlight command, got %d", highlights)
	}
	// selection adds one extra DrawRect beyond the base 3 spans.
	if len(cmds) != 4 {
		t.Fatalf("got %d commands, want 4 (3 spans + 1 selection highlight)", len(cmds))
	}
}

func TestTimeOrderAppliesSearchHighlightAndDimsNonMatches(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	root := &p.Arena[0]
	search := SearchState{Active: true, Matches: map[model.FrameID]bool{root.FrameID: true}}
	cmds := TimeOrder(p, 1, fullWindow(), 200, 100, mapper, Selection{}, search)
	// 3 base spans + 1 search highlight for the matching root.
	if len(cmds) != 4 {
		t.Fatalf("got %d commands, want 4 (3 spans + 1 search highlight)", len(cmds))
	}
}

func TestIcicleMatchesTimeOrderShape(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	a := TimeOrder(p, 1, fullWindow(), 200, 100, mapper, Selection{}, SearchState{})
	b := Icicle(p, 1, fullWindow(), 200, 100, mapper, Selection{}, SearchState{})
	if len(a) != len(b) {
		t.Fatalf("Icicle produced %d commands, TimeOrder produced %d, want equal", len(b), len(a))
	}
}

func TestLeftHeavySortsChildrenByDurationDescending(t *testing.T) {
	p := buildThread(t)
	mapper := colormap.New(p, colormap.ByName)
	cmds := LeftHeavy(p, 1, 200, 100, mapper, Selection{}, SearchState{})

	var rects []render.DrawRect
	for _, c := range cmds {
		if r, ok := c.(render.DrawRect); ok {
			rects = append(rects, r)
		}
	}
	if len(rects) != 3 {
		t.Fatalf("got %d rects, want 3", len(rects))
	}
	// "a" (60us) is longer than "b" (40us), so it should be placed first
	// (leftmost, smallest X) among the two children.
	var aX, bX float32 = -1, -1
	for _, r := range rects {
		switch r.Label {
		case "a":
			aX = r.Rect.X
		case "b":
			bX = r.Rect.X
		}
	}
	if aX < 0 || bX < 0 {
		t.Fatalf("expected labeled rects for both children, got %+v", rects)
	}
	if aX >= bX {
		t.Fatalf("longer child 'a' (x=%v) should sort before shorter child 'b' (x=%v)", aX, bX)
	}
}

func TestLeftHeavyZeroDurationProfileReturnsNil(t *testing.T) {
	p := buildThread(t)
	p.EndTimeUs = p.StartTimeUs
	mapper := colormap.New(p, colormap.ByName)
	if cmds := LeftHeavy(p, 1, 200, 100, mapper, Selection{}, SearchState{}); cmds != nil {
		t.Fatalf("zero-duration profile should return nil, got %v", cmds)
	}
}

func TestWindowResolvesFractionalViewport(t *testing.T) {
	t0, t1 := Window(0, 1000, viewport.State{Start: 0.25, End: 0.75})
	if t0 != 250 || t1 != 750 {
		t.Fatalf("Window() = (%d, %d), want (250, 750)", t0, t1)
	}
}
