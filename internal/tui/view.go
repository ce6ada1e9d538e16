package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tuitheme "github.com/dicklesworthstone/spanscope/pkg/tui"
)

func (m Model) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Foreground(m.th.GC).Render(fmt.Sprintf("error: %v\n", m.err))
	}

	if m.showHelp {
		return renderHelp(m.width)
	}

	if m.confirmingClear {
		return m.clearForm.View()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.searching {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderRanked())

	if m.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(m.th.Subtext).Render(m.statusMsg))
	}
	return b.String()
}

func (m Model) renderHeader() string {
	state := m.fac.GetState()
	title := "spanview"
	if len(state.Entries) > 0 {
		title = fmt.Sprintf("spanview — %d profile(s), theme=%s, view=%d", len(state.Entries), state.Theme, state.View)
	}
	return m.th.Header.Render(title)
}

func (m Model) renderRanked() string {
	if len(m.rows) == 0 {
		return lipgloss.NewStyle().Foreground(m.th.Subtext).Render("(no profile loaded — pass a trace file on the command line)")
	}
	barWidth := 40
	var b strings.Builder
	for i, row := range m.rows {
		if i > 20 {
			b.WriteString(lipgloss.NewStyle().Foreground(m.th.Subtext).Render(fmt.Sprintf("… %d more\n", len(m.rows)-i)))
			break
		}
		full := int(row.frac * float32(barWidth))
		bar := strings.Repeat("█", full) + strings.Repeat(" ", barWidth-full)
		color := tuitheme.HeatColor(float64(row.frac))
		line := lipgloss.NewStyle().Foreground(color).Render(bar) + " " + row.label
		if i == m.cursor {
			line = m.th.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
