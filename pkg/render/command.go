// Package render defines the renderer-agnostic intermediate language that
// every view transform emits and every Renderer collaborator consumes. The
// command set is a closed sum type: invalid combinations (a SetColor
// followed by a stateless DrawRect, for instance) are unrepresentable
// because there is no mutable paint state at all, only self-contained
// commands.
package render

import "github.com/dicklesworthstone/spanscope/pkg/theme"

// Align is text horizontal alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Command is implemented by every render-command variant. The method is
// unexported so the set is closed to this package.
type Command interface {
	isCommand()
}

// DrawRect paints a filled, optionally bordered and labeled rectangle.
// FrameID is non-zero when the rect corresponds to a hit-testable span.
type DrawRect struct {
	Rect        RectShape
	FillToken   theme.Token
	BorderToken theme.Token
	HasBorder   bool
	Label       string
	FrameID     uint64
}

// DrawText paints a text run anchored at Pos.
type DrawText struct {
	Pos      PointShape
	Text     string
	Token    theme.Token
	FontSize float32
	Align    Align
}

// DrawLine paints a straight segment.
type DrawLine struct {
	From  PointShape
	To    PointShape
	Token theme.Token
	Width float32
}

// SetClip pushes a scissor rectangle onto the LIFO clip stack.
type SetClip struct {
	Rect RectShape
}

// ClearClip pops the most recently pushed clip rectangle.
type ClearClip struct{}

// PushTransform pushes a 2-D affine transform (translate then per-axis
// scale) onto the LIFO transform stack.
type PushTransform struct {
	TranslateX float32
	TranslateY float32
	ScaleX     float32
	ScaleY     float32
}

// PopTransform pops the most recently pushed transform.
type PopTransform struct{}

// BeginGroup opens a semantic grouping used only by export renderers;
// rasterizing renderers treat it as a no-op.
type BeginGroup struct {
	ID    string
	Label string
}

// EndGroup closes the most recently opened BeginGroup.
type EndGroup struct{}

func (DrawRect) isCommand()      {}
func (DrawText) isCommand()      {}
func (DrawLine) isCommand()      {}
func (SetClip) isCommand()       {}
func (ClearClip) isCommand()     {}
func (PushTransform) isCommand() {}
func (PopTransform) isCommand()  {}
func (BeginGroup) isCommand()    {}
func (EndGroup) isCommand()      {}

// RectShape and PointShape duplicate pkg/geometry's fields rather than
// importing it, so the protocol package has zero dependencies beyond theme
// and can be consumed by renderer adapters without pulling in layout code.
// Layout code converts geometry.Rect/Point to these at the point of emission
// (see pkg/layout/convert.go).
type RectShape struct {
	X, Y, W, H float32
}

type PointShape struct {
	X, Y float32
}
