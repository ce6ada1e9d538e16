// Package tui holds the terminal presentation layer for cmd/spanview: a
// lipgloss color theme and a handful of small text-rendering helpers shared
// across the bubbletea screens.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dicklesworthstone/spanscope/pkg/model"
)

// Theme holds the adaptive (light/dark aware) colors and composed styles
// used throughout the TUI.
type Theme struct {
	Renderer *lipgloss.Renderer

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Per-category span colors, mirroring pkg/colormap's category overrides.
	GC        lipgloss.AdaptiveColor
	Network   lipgloss.AdaptiveColor
	Component lipgloss.AdaptiveColor
	Idle      lipgloss.AdaptiveColor

	// Frame-budget classification colors.
	FrameGood    lipgloss.AdaptiveColor
	FrameWarning lipgloss.AdaptiveColor
	FrameDropped lipgloss.AdaptiveColor

	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor

	Base     lipgloss.Style
	Selected lipgloss.Style
	Header   lipgloss.Style
}

// DefaultTheme returns the standard dark-capable theme for a given renderer.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Primary:   lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
		Subtext:   lipgloss.AdaptiveColor{Light: "#999999", Dark: "#BFBFBF"},

		GC:        lipgloss.AdaptiveColor{Light: "#D80000", Dark: "#FF5555"},
		Network:   lipgloss.AdaptiveColor{Light: "#007EA8", Dark: "#8BE9FD"},
		Component: lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#BD93F9"},
		Idle:      lipgloss.AdaptiveColor{Light: "#999999", Dark: "#44475A"},

		FrameGood:    lipgloss.AdaptiveColor{Light: "#00A800", Dark: "#50FA7B"},
		FrameWarning: lipgloss.AdaptiveColor{Light: "#A8A800", Dark: "#F1FA8C"},
		FrameDropped: lipgloss.AdaptiveColor{Light: "#D80000", Dark: "#FF5555"},

		Border:    lipgloss.AdaptiveColor{Light: "#DDDDDD", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#44475A"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Selected = r.NewStyle().
		Background(t.Highlight).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(t.Primary).
		PaddingLeft(1).
		Bold(true)

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	return t
}

// CategoryColor returns the theme color for one of the categories pkg/colormap
// special-cases (gc, network, component, idle), falling back to Secondary.
func (t Theme) CategoryColor(category string) lipgloss.AdaptiveColor {
	switch category {
	case "gc":
		return t.GC
	case "network":
		return t.Network
	case "component":
		return t.Component
	case "idle":
		return t.Idle
	default:
		return t.Secondary
	}
}

// FrameClassColor returns the theme color for a frame's budget classification.
func (t Theme) FrameClassColor(c model.FrameClass) lipgloss.AdaptiveColor {
	switch c {
	case model.FrameWarning:
		return t.FrameWarning
	case model.FrameDropped:
		return t.FrameDropped
	default:
		return t.FrameGood
	}
}
