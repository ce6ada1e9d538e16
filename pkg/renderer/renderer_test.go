package renderer

import (
	"errors"
	"testing"

	"github.com/dicklesworthstone/spanscope/pkg/render"
)

type recordingRenderer struct {
	began, ended bool
	cmds         []render.Command
	failOn       int // Submit call index (0-based) to fail on, -1 = never
}

func (r *recordingRenderer) Begin(w, h float32) error {
	r.began = true
	return nil
}

func (r *recordingRenderer) Submit(cmd render.Command) error {
	if r.failOn == len(r.cmds) {
		return errors.New("submit failed")
	}
	r.cmds = append(r.cmds, cmd)
	return nil
}

func (r *recordingRenderer) End() error {
	r.ended = true
	return nil
}

func TestRunDrivesBeginSubmitEndInOrder(t *testing.T) {
	rr := &recordingRenderer{failOn: -1}
	cmds := []render.Command{
		render.DrawRect{Rect: render.RectShape{W: 10, H: 10}},
		render.DrawLine{},
	}
	if err := Run(rr, 100, 50, cmds); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !rr.began || !rr.ended {
		t.Fatalf("Run() should call Begin and End")
	}
	if len(rr.cmds) != 2 {
		t.Fatalf("Run() submitted %d commands, want 2", len(rr.cmds))
	}
}

func TestRunStopsAtFirstSubmitError(t *testing.T) {
	rr := &recordingRenderer{failOn: 1}
	cmds := []render.Command{
		render.DrawRect{},
		render.DrawRect{},
		render.DrawRect{},
	}
	if err := Run(rr, 100, 50, cmds); err == nil {
		t.Fatalf("Run() should surface the Submit error")
	}
	if len(rr.cmds) != 1 {
		t.Fatalf("Run() should stop submitting after the failure, got %d commands", len(rr.cmds))
	}
	if rr.ended {
		t.Fatalf("Run() should not call End() after a Submit error")
	}
}

func TestScissorStackPushIntersectsWithParent(t *testing.T) {
	var s ScissorStack
	top := s.Push(render.RectShape{X: 0, Y: 0, W: 100, H: 100})
	if top != (render.RectShape{X: 0, Y: 0, W: 100, H: 100}) {
		t.Fatalf("first push should be unclipped, got %+v", top)
	}
	top = s.Push(render.RectShape{X: 50, Y: 50, W: 100, H: 100})
	want := render.RectShape{X: 50, Y: 50, W: 50, H: 50}
	if top != want {
		t.Fatalf("second push = %+v, want intersection %+v", top, want)
	}
}

func TestScissorStackPushDisjointClipsToZeroArea(t *testing.T) {
	var s ScissorStack
	s.Push(render.RectShape{X: 0, Y: 0, W: 10, H: 10})
	top := s.Push(render.RectShape{X: 20, Y: 20, W: 10, H: 10})
	if top.W != 0 || top.H != 0 {
		t.Fatalf("disjoint clip push should collapse to zero area, got %+v", top)
	}
}

func TestScissorStackPopRestoresParentThenEmpties(t *testing.T) {
	var s ScissorStack
	s.Push(render.RectShape{X: 0, Y: 0, W: 100, H: 100})
	s.Push(render.RectShape{X: 10, Y: 10, W: 10, H: 10})

	top, ok := s.Pop()
	if !ok || top != (render.RectShape{X: 0, Y: 0, W: 100, H: 100}) {
		t.Fatalf("Pop() = (%+v, %v), want the restored parent clip", top, ok)
	}
	if _, ok := s.Pop(); ok {
		t.Fatalf("Pop() on the last remaining clip should report no more clips")
	}
}

func TestScissorStackPopOnEmptyReturnsFalse(t *testing.T) {
	var s ScissorStack
	if _, ok := s.Pop(); ok {
		t.Fatalf("Pop() on an empty stack should return ok=false")
	}
}
