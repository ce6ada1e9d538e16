package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderSparkline draws a single-line bar for a counter-track sample shown
// in the TUI sidebar, val normalized to [0,1].
func RenderSparkline(val float64, width int) string {
	if width <= 0 {
		return ""
	}
	chars := []string{" ", "▂", "▃", "▄", "▅", "▆", "▇", "█"}

	if math.IsNaN(val) {
		val = 0
	}
	if val < 0 {
		val = 0
	}
	if val > 1 {
		val = 1
	}

	fullChars := int(val * float64(width))
	remainder := (val * float64(width)) - float64(fullChars)

	var sb strings.Builder
	for i := 0; i < fullChars; i++ {
		sb.WriteString("█")
	}

	if fullChars < width {
		idx := int(remainder * float64(len(chars)))
		if idx == 0 && remainder > 0 {
			idx = 1
		}
		if idx >= len(chars) {
			idx = len(chars) - 1
		}
		if idx > 0 {
			sb.WriteString(chars[idx])
		} else {
			sb.WriteString(" ")
		}
	}

	padding := width - fullChars - 1
	if padding > 0 {
		sb.WriteString(strings.Repeat(" ", padding))
	}

	return sb.String()
}

// heatGradient is the cold-to-hot ramp used to shade the ranked view's
// self-time bars in the terminal, where full RGB flame coloring would be
// unreadable against a 16/256-color terminal palette.
var heatGradient = []lipgloss.Color{
	lipgloss.Color("#1a1a2e"),
	lipgloss.Color("#16213e"),
	lipgloss.Color("#0f4c75"),
	lipgloss.Color("#3282b8"),
	lipgloss.Color("#bbe1fa"),
	lipgloss.Color("#f7dc6f"),
	lipgloss.Color("#e94560"),
	lipgloss.Color("#ff2e63"),
}

// HeatColor maps a normalized intensity (0-1, e.g. a span's self-time share
// of its rank list's maximum) to a color on heatGradient.
func HeatColor(intensity float64) lipgloss.Color {
	if intensity <= 0 {
		return heatGradient[0]
	}
	if intensity >= 1 {
		return heatGradient[len(heatGradient)-1]
	}
	idx := int(intensity * float64(len(heatGradient)-1))
	if idx >= len(heatGradient)-1 {
		idx = len(heatGradient) - 2
	}
	return heatGradient[idx+1]
}

// ContrastColor returns white or near-black text for readability against bg.
func ContrastColor(bg lipgloss.Color) lipgloss.Color {
	bgStr := string(bg)
	if len(bgStr) >= 7 && bgStr[0] == '#' {
		c := bgStr[1]
		if c >= 'a' || (c >= '8' && c <= '9') || c == 'f' || c == 'F' || c == 'e' || c == 'E' {
			return lipgloss.Color("#1a1a2e")
		}
	}
	return lipgloss.Color("#ffffff")
}

// formatColors assigns a stable, visually distinct color to each loaded
// profile's source format, so a multi-profile session's lane headers stay
// distinguishable at a glance.
var formatColors = []lipgloss.Color{
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#4ECDC4"),
	lipgloss.Color("#45B7D1"),
	lipgloss.Color("#96CEB4"),
	lipgloss.Color("#DDA0DD"),
	lipgloss.Color("#F7DC6F"),
	lipgloss.Color("#BB8FCE"),
	lipgloss.Color("#85C1E9"),
}

// FormatColor returns a consistent color for a profile label based on a hash
// of its text, used to tint lane badges in a multi-profile session.
func FormatColor(label string) lipgloss.Color {
	if label == "" {
		return lipgloss.Color("#6272a4")
	}
	hash := 0
	for _, c := range label {
		hash = (hash*31 + int(c)) % len(formatColors)
	}
	if hash < 0 {
		hash = -hash
	}
	return formatColors[hash%len(formatColors)]
}

// Badge renders a compact colored label, e.g. for a lane's source format.
func Badge(text string, color lipgloss.Color) string {
	if text == "" {
		return ""
	}
	display := strings.ToUpper(text)
	if len(display) > 4 {
		display = display[:4]
	}
	return lipgloss.NewStyle().Foreground(color).Bold(true).Render("[" + display + "]")
}
