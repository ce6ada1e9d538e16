// Package renderer defines the Renderer contract every adapter (GPU,
// raster, SVG, terminal) implements. The core never holds GPU buffers or
// canvas handles; it only produces render.Command slices and hands them
// to a Renderer collaborator, per the "cyclic DOM + renderer references"
// re-architecture note.
package renderer

import "github.com/dicklesworthstone/spanscope/pkg/render"

// Renderer consumes one frame's worth of render commands. Implementations
// own a LIFO scissor (clip) stack and a LIFO affine-transform stack,
// pushed/popped by SetClip/ClearClip and PushTransform/PopTransform
// respectively; BeginGroup/EndGroup are semantic hints export renderers
// honor and rasterizing renderers may ignore.
type Renderer interface {
	// Begin prepares the renderer for a new frame of widthPx x heightPx.
	Begin(widthPx, heightPx float32) error
	// Submit executes one command against the current frame.
	Submit(cmd render.Command) error
	// End finalizes the frame. Implementations that buffer commands (SVG,
	// raster export) perform their actual serialization here.
	End() error
}

// Run is a convenience that drives a full frame through a Renderer,
// surfacing the first error encountered.
func Run(r Renderer, widthPx, heightPx float32, cmds []render.Command) error {
	if err := r.Begin(widthPx, heightPx); err != nil {
		return err
	}
	for _, cmd := range cmds {
		if err := r.Submit(cmd); err != nil {
			return err
		}
	}
	return r.End()
}

// ScissorStack tracks nested SetClip/ClearClip rectangles for adapters
// that need to intersect clips rather than replace them outright.
type ScissorStack struct {
	stack []render.RectShape
}

// Push intersects rect with the current top (if any) and pushes the
// result.
func (s *ScissorStack) Push(rect render.RectShape) render.RectShape {
	if len(s.stack) > 0 {
		rect = intersectRect(s.stack[len(s.stack)-1], rect)
	}
	s.stack = append(s.stack, rect)
	return rect
}

// Pop removes the most recently pushed clip and returns the new top, or
// false if the stack is now empty.
func (s *ScissorStack) Pop() (render.RectShape, bool) {
	if len(s.stack) == 0 {
		return render.RectShape{}, false
	}
	s.stack = s.stack[:len(s.stack)-1]
	if len(s.stack) == 0 {
		return render.RectShape{}, false
	}
	return s.stack[len(s.stack)-1], true
}

func intersectRect(a, b render.RectShape) render.RectShape {
	x0 := maxF(a.X, b.X)
	y0 := maxF(a.Y, b.Y)
	x1 := minF(a.X+a.W, b.X+b.W)
	y1 := minF(a.Y+a.H, b.Y+b.H)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return render.RectShape{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
