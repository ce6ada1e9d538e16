// Package viewport holds the visible fractional time window [start, end]
// in [0,1] that every view transform renders against, plus its animation
// and navigation-history state.
package viewport

import "math"

const (
	minSpan = 0.0001
	maxHistory = 64
)

// State is a viewport's visible window.
type State struct {
	Start, End float64
}

// Span returns End - Start.
func (s State) Span() float64 { return s.End - s.Start }

type animation struct {
	from, to   State
	startMs    float64
	durationMs float64
}

// Viewport tracks the current window, an optional in-flight animation, and
// bounded back/forward history stacks.
type Viewport struct {
	current State
	anim    *animation
	back    []State
	forward []State
}

// New returns a Viewport covering the full [0,1] range.
func New() *Viewport {
	return &Viewport{current: State{Start: 0, End: 1}}
}

// Current returns the active viewport window, ignoring any in-flight
// animation (callers that want the animated value use Advance's return).
func (v *Viewport) Current() State { return v.current }

// ScrollBy converts a pixel delta into a fractional shift and clamps Start
// to [0, 1-span].
func (v *Viewport) ScrollBy(dxPixels, canvasWidth float64) {
	v.cancelAnimation()
	if canvasWidth <= 0 {
		return
	}
	span := v.current.Span()
	delta := (dxPixels / canvasWidth) * span
	v.setStart(v.current.Start + delta)
}

func (v *Viewport) setStart(start float64) {
	span := v.current.Span()
	if start < 0 {
		start = 0
	}
	if start > 1-span {
		start = 1 - span
	}
	v.current.Start = start
	v.current.End = start + span
}

// ZoomAt rescales the window by factor, keeping the point under focalPx
// stationary.
func (v *Viewport) ZoomAt(factor, focalPx, canvasWidth float64) {
	v.cancelAnimation()
	if canvasWidth <= 0 || factor <= 0 {
		return
	}
	span := v.current.Span()
	focalFrac := focalPx / canvasWidth
	focalTime := v.current.Start + focalFrac*span

	newSpan := span / factor
	if newSpan < minSpan {
		newSpan = minSpan
	}
	if newSpan > 1 {
		newSpan = 1
	}

	start := focalTime - focalFrac*newSpan
	if start < 0 {
		start = 0
	}
	if start > 1-newSpan {
		start = 1 - newSpan
	}
	v.current = State{Start: start, End: start + newSpan}
}

// AnimateTo begins (or replaces) a cubic ease-out animation to the target
// window over durationMs, starting at nowMs.
func (v *Viewport) AnimateTo(targetStart, targetEnd, nowMs, durationMs float64) {
	v.anim = &animation{
		from:       v.current,
		to:         State{Start: targetStart, End: targetEnd},
		startMs:    nowMs,
		durationMs: durationMs,
	}
}

// Advance steps any in-flight animation to nowMs, applying cubic ease-out
// interpolation, and returns the current (possibly mid-animation) window.
// The host supplies nowMs each tick; there are no callback closures here.
func (v *Viewport) Advance(nowMs float64) State {
	if v.anim == nil {
		return v.current
	}
	t := (nowMs - v.anim.startMs) / v.anim.durationMs
	if t >= 1 {
		v.current = v.anim.to
		v.anim = nil
		return v.current
	}
	if t < 0 {
		t = 0
	}
	eased := 1 - math.Pow(1-t, 3)
	v.current = State{
		Start: v.anim.from.Start + (v.anim.to.Start-v.anim.from.Start)*eased,
		End:   v.anim.from.End + (v.anim.to.End-v.anim.from.End)*eased,
	}
	return v.current
}

func (v *Viewport) cancelAnimation() { v.anim = nil }

// PushHistory records the current window on the back stack, truncating any
// forward stack accumulated from earlier Back calls, per the "pushing
// after a back truncates forward" rule.
func (v *Viewport) PushHistory() {
	v.back = append(v.back, v.current)
	if len(v.back) > maxHistory {
		v.back = v.back[len(v.back)-maxHistory:]
	}
	v.forward = nil
}

// Back restores the most recently pushed window, moving the current one
// onto the forward stack. No-op if the back stack is empty.
func (v *Viewport) Back() {
	if len(v.back) == 0 {
		return
	}
	v.cancelAnimation()
	n := len(v.back) - 1
	prev := v.back[n]
	v.back = v.back[:n]
	v.forward = append(v.forward, v.current)
	v.current = prev
}

// Forward re-applies a window undone by Back. No-op if the forward stack
// is empty.
func (v *Viewport) Forward() {
	if len(v.forward) == 0 {
		return
	}
	v.cancelAnimation()
	n := len(v.forward) - 1
	next := v.forward[n]
	v.forward = v.forward[:n]
	v.back = append(v.back, v.current)
	v.current = next
}

// SetWindow directly replaces the current window, clamped to valid bounds.
func (v *Viewport) SetWindow(start, end float64) {
	v.cancelAnimation()
	if start < 0 {
		start = 0
	}
	if end > 1 {
		end = 1
	}
	if end-start < minSpan {
		if start > 1-minSpan {
			start = 1 - minSpan
		}
		end = start + minSpan
		for end-start < minSpan {
			if end < 1 {
				end = math.Nextafter(end, 2)
			} else {
				start = math.Nextafter(start, -1)
			}
		}
	}
	v.current = State{Start: start, End: end}
}

// ResetZoom restores the full [0,1] window, pushing the pre-reset window
// onto the back-history stack so a following Back call restores it.
func (v *Viewport) ResetZoom() {
	v.cancelAnimation()
	v.PushHistory()
	v.current = State{Start: 0, End: 1}
}

// Spring is the WASD keyboard pan/zoom smoothing layer: a cosmetic
// acceleration-toward-target integrator sitting on top of the viewport's
// direct contracts. Its constants are exported fields that the caller sets;
// DefaultSpring supplies the built-in values.
type Spring struct {
	Acceleration float64
	Friction     float64
	SnapEpsilon  float64

	velocityStart float64
	velocityEnd   float64
}

// DefaultSpring returns empirically reasonable constants for a 60fps host.
func DefaultSpring() Spring {
	return Spring{Acceleration: 0.006, Friction: 0.85, SnapEpsilon: 1e-5}
}

// Step integrates one frame of spring-driven pan, given unit-scale input
// axes (-1..1) for start/end drift (e.g. from held A/D keys), applying the
// result directly to v's current window.
func (sp *Spring) Step(v *Viewport, inputStart, inputEnd float64) {
	sp.velocityStart = sp.velocityStart*sp.Friction + inputStart*sp.Acceleration
	sp.velocityEnd = sp.velocityEnd*sp.Friction + inputEnd*sp.Acceleration

	if math.Abs(sp.velocityStart) < sp.SnapEpsilon {
		sp.velocityStart = 0
	}
	if math.Abs(sp.velocityEnd) < sp.SnapEpsilon {
		sp.velocityEnd = 0
	}
	if sp.velocityStart == 0 && sp.velocityEnd == 0 {
		return
	}

	v.cancelAnimation()
	start := v.current.Start + sp.velocityStart
	end := v.current.End + sp.velocityEnd
	if start < 0 {
		start = 0
	}
	if end > 1 {
		end = 1
	}
	if end-start < minSpan {
		end = start + minSpan
	}
	v.current = State{Start: start, End: end}
}
