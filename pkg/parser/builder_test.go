package parser

import (
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

func TestBuilderBeginEndNestsChildren(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: Begin, ThreadID: 1, ThreadName: "main", TimestampUs: 0, Name: "outer"})
	b.AddEvent(Event{Kind: Begin, ThreadID: 1, TimestampUs: 10, Name: "inner"})
	b.AddEvent(Event{Kind: End, ThreadID: 1, TimestampUs: 40})
	b.AddEvent(Event{Kind: End, ThreadID: 1, TimestampUs: 50})
	p := b.Finish("demo")

	if len(p.Arena) != 2 {
		t.Fatalf("Arena len = %d, want 2", len(p.Arena))
	}
	outer := &p.Arena[0]
	inner := &p.Arena[1]
	if p.Name(outer.Name) != "outer" || p.Name(inner.Name) != "inner" {
		t.Fatalf("unexpected names: outer=%q inner=%q", p.Name(outer.Name), p.Name(inner.Name))
	}
	if inner.Parent != 1 {
		t.Fatalf("inner.Parent = %d, want 1 (outer's FrameID)", inner.Parent)
	}
	if outer.StartUs != 0 || outer.EndUs != 50 {
		t.Fatalf("outer span = [%d,%d), want [0,50)", outer.StartUs, outer.EndUs)
	}
	// self time: outer duration 50 minus inner's 30 = 20.
	if outer.SelfUs != 20 {
		t.Fatalf("outer.SelfUs = %d, want 20", outer.SelfUs)
	}
	if inner.SelfUs != 30 {
		t.Fatalf("inner.SelfUs = %d, want 30", inner.SelfUs)
	}
}

func TestBuilderUnmatchedEndIsIgnored(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: End, ThreadID: 1, TimestampUs: 10})
	b.AddEvent(Event{Kind: Begin, ThreadID: 1, TimestampUs: 20, Name: "a"})
	b.AddEvent(Event{Kind: End, ThreadID: 1, TimestampUs: 30})
	p := b.Finish("demo")

	if len(p.Arena) != 1 {
		t.Fatalf("Arena len = %d, want 1 (stray End should be a no-op)", len(p.Arena))
	}
}

func TestBuilderUnclosedSpanClosesAtLastTimestamp(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: Begin, ThreadID: 1, TimestampUs: 0, Name: "leaked"})
	b.AddEvent(Event{Kind: Begin, ThreadID: 1, TimestampUs: 5, Name: "child"})
	b.AddEvent(Event{Kind: End, ThreadID: 1, TimestampUs: 15})
	p := b.Finish("demo")

	if p.Arena[0].EndUs != 15 {
		t.Fatalf("unclosed span EndUs = %d, want 15 (last observed timestamp)", p.Arena[0].EndUs)
	}
}

func TestBuilderCompletePopsNonOverlappingFrames(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: Complete, ThreadID: 1, TimestampUs: 0, DurationUs: 10, Name: "first"})
	b.AddEvent(Event{Kind: Complete, ThreadID: 1, TimestampUs: 20, DurationUs: 10, Name: "second"})
	p := b.Finish("demo")

	if len(p.Arena) != 2 {
		t.Fatalf("Arena len = %d, want 2", len(p.Arena))
	}
	if p.Arena[0].Parent != 0 || p.Arena[1].Parent != 0 {
		t.Fatalf("expected two sibling root spans, got parents %d,%d", p.Arena[0].Parent, p.Arena[1].Parent)
	}
}

func TestBuilderCompleteNestsWithinOverlappingParent(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: Complete, ThreadID: 1, TimestampUs: 0, DurationUs: 100, Name: "outer"})
	b.AddEvent(Event{Kind: Complete, ThreadID: 1, TimestampUs: 10, DurationUs: 20, Name: "inner"})
	p := b.Finish("demo")

	if p.Arena[1].Parent != 1 {
		t.Fatalf("inner.Parent = %d, want 1 (nested within overlapping outer)", p.Arena[1].Parent)
	}
}

func TestBuilderSampleReconstructsSharedPrefix(t *testing.T) {
	b := NewBuilder(model.FormatV8)
	b.AddEvent(Event{Kind: Sample, ThreadID: 1, TimestampUs: 0, Stack: []StackFrame{
		{Name: "main"}, {Name: "a"},
	}})
	b.AddEvent(Event{Kind: Sample, ThreadID: 1, TimestampUs: 10, Stack: []StackFrame{
		{Name: "main"}, {Name: "b"},
	}})
	p := b.Finish("demo")

	// main stays open across both samples (shared prefix); a closes at t=10,
	// b opens at t=10.
	if len(p.Arena) != 3 {
		t.Fatalf("Arena len = %d, want 3 (main, a, b)", len(p.Arena))
	}
	main := &p.Arena[0]
	a := &p.Arena[1]
	b2 := &p.Arena[2]
	if p.Name(main.Name) != "main" || p.Name(a.Name) != "a" || p.Name(b2.Name) != "b" {
		t.Fatalf("unexpected names: %q %q %q", p.Name(main.Name), p.Name(a.Name), p.Name(b2.Name))
	}
	if a.EndUs != 10 {
		t.Fatalf("a.EndUs = %d, want 10 (closed at divergence point)", a.EndUs)
	}
	if b2.StartUs != 10 {
		t.Fatalf("b.StartUs = %d, want 10", b2.StartUs)
	}
	if main.Parent != 0 || a.Parent != 1 || b2.Parent != 1 {
		t.Fatalf("unexpected parents: main=%d a=%d b=%d", main.Parent, a.Parent, b2.Parent)
	}
}

func TestBuilderSampleDivergingStackClosesDeeperFrames(t *testing.T) {
	b := NewBuilder(model.FormatV8)
	b.AddEvent(Event{Kind: Sample, ThreadID: 1, TimestampUs: 0, Stack: []StackFrame{
		{Name: "main"}, {Name: "deep"}, {Name: "deeper"},
	}})
	b.AddEvent(Event{Kind: Sample, ThreadID: 1, TimestampUs: 5, Stack: []StackFrame{
		{Name: "main"},
	}})
	p := b.Finish("demo")

	for i := range p.Arena {
		if p.Name(p.Arena[i].Name) != "main" && p.Arena[i].EndUs != 5 {
			t.Fatalf("span %q should have closed at t=5, got EndUs=%d", p.Name(p.Arena[i].Name), p.Arena[i].EndUs)
		}
	}
}

func TestFinishSortsThreadsByNameThenID(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: Complete, ThreadID: 2, ThreadName: "zeta", TimestampUs: 0, DurationUs: 1, Name: "z"})
	b.AddEvent(Event{Kind: Complete, ThreadID: 1, ThreadName: "alpha", TimestampUs: 0, DurationUs: 1, Name: "a"})
	p := b.Finish("demo")

	if len(p.Threads) != 2 {
		t.Fatalf("Threads len = %d, want 2", len(p.Threads))
	}
	if p.Threads[0].Name != "alpha" || p.Threads[1].Name != "zeta" {
		t.Fatalf("Threads = %+v, want sorted alpha before zeta", p.Threads)
	}
}

func TestFinishSetsProfileTimeRangeFromObservedTimestamps(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	b.AddEvent(Event{Kind: Complete, ThreadID: 1, TimestampUs: 5, DurationUs: 20, Name: "a"})
	p := b.Finish("demo")

	if p.StartTimeUs != 5 || p.EndTimeUs != 25 {
		t.Fatalf("time range = [%d,%d), want [5,25)", p.StartTimeUs, p.EndTimeUs)
	}
}

func TestFinishEmptyBuilderProducesZeroRange(t *testing.T) {
	b := NewBuilder(model.FormatChrome)
	p := b.Finish("empty")

	if p.StartTimeUs != 0 || p.EndTimeUs != 0 {
		t.Fatalf("time range = [%d,%d), want [0,0)", p.StartTimeUs, p.EndTimeUs)
	}
	if len(p.Threads) != 0 {
		t.Fatalf("Threads len = %d, want 0", len(p.Threads))
	}
}
