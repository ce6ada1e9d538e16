// Package theme resolves the closed set of semantic color tokens the core
// emits in render commands to concrete RGBA values. Themes are data, not
// inheritance: a Theme is a total lookup table over Token.
package theme

import "image/color"

// Token is a semantic color name. The set is closed; every view transform
// only ever emits members of this enumeration, never a raw color.
type Token int

const (
	Background Token = iota
	Surface
	Border
	TextPrimary
	TextSecondary
	TextMuted

	LaneBackground
	LaneBorder
	LaneHeaderBackground
	LaneHeaderText

	FlameHot
	FlameWarm
	FlameCold
	FlameNeutral

	SelectionHighlight
	HoverHighlight
	SearchHighlight

	ToolbarBackground
	ToolbarText
	ToolbarTabActive
	ToolbarTabHover

	MinimapBackground
	MinimapViewport

	TableRowEven
	TableRowOdd
	TableHeaderBackground
	TableBorder

	BarFill

	CounterFill
	CounterLine
	CounterText

	MarkerLine
	MarkerText

	AsyncSpanFill
	AsyncSpanBorder

	FrameGood
	FrameWarning
	FrameDropped

	FlowArrow

	NetworkBar
	NetworkTTFB

	tokenCount
)

// Theme is a total mapping of Token to RGBA, resolved once per frame by view
// transforms and render-command consumers.
type Theme struct {
	name   string
	colors [tokenCount]color.RGBA
}

// Name returns the theme's identifier ("dark", "light", ...).
func (t Theme) Name() string { return t.name }

// Resolve returns the RGBA value for tok. Tokens outside the enumeration
// (which cannot occur through the public API) resolve to fully transparent
// black rather than panicking, keeping Theme a total function as specified.
func (t Theme) Resolve(tok Token) color.RGBA {
	if tok < 0 || tok >= tokenCount {
		return color.RGBA{}
	}
	return t.colors[tok]
}

func rgba(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 24),
		G: uint8(hex >> 16),
		B: uint8(hex >> 8),
		A: uint8(hex),
	}
}

// Dark returns the default dark theme, a Dracula-inspired palette matching
// the tone of the pack's terminal themes but rendered as opaque RGBA.
func Dark() Theme {
	t := Theme{name: "dark"}
	t.colors = [tokenCount]color.RGBA{
		Background:            rgba(0x282A36FF),
		Surface:               rgba(0x21222CFF),
		Border:                rgba(0x44475AFF),
		TextPrimary:           rgba(0xF8F8F2FF),
		TextSecondary:         rgba(0x6272A4FF),
		TextMuted:             rgba(0xBFBFBFFF),
		LaneBackground:        rgba(0x282A36FF),
		LaneBorder:            rgba(0x44475AFF),
		LaneHeaderBackground:  rgba(0x343746FF),
		LaneHeaderText:        rgba(0xF8F8F2FF),
		FlameHot:              rgba(0xFF5555FF),
		FlameWarm:             rgba(0xFFB86CFF),
		FlameCold:             rgba(0x8BE9FDFF),
		FlameNeutral:          rgba(0x44475AFF),
		SelectionHighlight:    rgba(0xBD93F9FF),
		HoverHighlight:        rgba(0x6272A4FF),
		SearchHighlight:       rgba(0xF1FA8CFF),
		ToolbarBackground:     rgba(0x21222CFF),
		ToolbarText:           rgba(0xF8F8F2FF),
		ToolbarTabActive:      rgba(0xBD93F9FF),
		ToolbarTabHover:       rgba(0x44475AFF),
		MinimapBackground:     rgba(0x191A21FF),
		MinimapViewport:       rgba(0xBD93F966),
		TableRowEven:          rgba(0x282A36FF),
		TableRowOdd:           rgba(0x2E303EFF),
		TableHeaderBackground: rgba(0x343746FF),
		TableBorder:           rgba(0x44475AFF),
		BarFill:               rgba(0x50FA7BFF),
		CounterFill:           rgba(0x8BE9FD66),
		CounterLine:           rgba(0x8BE9FDFF),
		CounterText:           rgba(0xF8F8F2FF),
		MarkerLine:            rgba(0xFFB86CFF),
		MarkerText:            rgba(0xF8F8F2FF),
		AsyncSpanFill:         rgba(0xBD93F966),
		AsyncSpanBorder:       rgba(0xBD93F9FF),
		FrameGood:             rgba(0x50FA7BFF),
		FrameWarning:          rgba(0xF1FA8CFF),
		FrameDropped:          rgba(0xFF5555FF),
		FlowArrow:             rgba(0xFF79C6FF),
		NetworkBar:            rgba(0x8BE9FDFF),
		NetworkTTFB:           rgba(0xFFB86CFF),
	}
	return t
}

// Light returns the light-mode counterpart to Dark.
func Light() Theme {
	t := Theme{name: "light"}
	t.colors = [tokenCount]color.RGBA{
		Background:            rgba(0xFFFFFFFF),
		Surface:               rgba(0xF5F5F5FF),
		Border:                rgba(0xDDDDDDFF),
		TextPrimary:           rgba(0x000000FF),
		TextSecondary:         rgba(0x555555FF),
		TextMuted:             rgba(0x999999FF),
		LaneBackground:        rgba(0xFFFFFFFF),
		LaneBorder:            rgba(0xDDDDDDFF),
		LaneHeaderBackground:  rgba(0xEEEEEEFF),
		LaneHeaderText:        rgba(0x000000FF),
		FlameHot:              rgba(0xD80000FF),
		FlameWarm:             rgba(0xD88000FF),
		FlameCold:             rgba(0x007EA8FF),
		FlameNeutral:          rgba(0xDDDDDDFF),
		SelectionHighlight:    rgba(0x7D56F4FF),
		HoverHighlight:        rgba(0xCCCCCCFF),
		SearchHighlight:       rgba(0xA8A800FF),
		ToolbarBackground:     rgba(0xF5F5F5FF),
		ToolbarText:           rgba(0x000000FF),
		ToolbarTabActive:      rgba(0x7D56F4FF),
		ToolbarTabHover:       rgba(0xDDDDDDFF),
		MinimapBackground:     rgba(0xEFEFEFFF),
		MinimapViewport:       rgba(0x7D56F466),
		TableRowEven:          rgba(0xFFFFFFFF),
		TableRowOdd:           rgba(0xF5F5F5FF),
		TableHeaderBackground: rgba(0xEEEEEEFF),
		TableBorder:           rgba(0xDDDDDDFF),
		BarFill:               rgba(0x00A800FF),
		CounterFill:           rgba(0x007EA866),
		CounterLine:           rgba(0x007EA8FF),
		CounterText:           rgba(0x000000FF),
		MarkerLine:            rgba(0xD88000FF),
		MarkerText:            rgba(0x000000FF),
		AsyncSpanFill:         rgba(0x7D56F466),
		AsyncSpanBorder:       rgba(0x7D56F4FF),
		FrameGood:             rgba(0x00A800FF),
		FrameWarning:          rgba(0xA8A800FF),
		FrameDropped:          rgba(0xD80000FF),
		FlowArrow:             rgba(0xD800A0FF),
		NetworkBar:            rgba(0x007EA8FF),
		NetworkTTFB:           rgba(0xD88000FF),
	}
	return t
}

// ByName looks up a theme by its identifier, falling back to Dark.
func ByName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

// FlameRamp is the fixed 6-token ramp the colormap package cycles through
// for ByName/ByDepth span coloring.
var FlameRamp = [6]Token{FlameHot, FlameWarm, FlameCold, BarFill, SelectionHighlight, FlowArrow}
