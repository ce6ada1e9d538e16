package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dicklesworthstone/spanscope/pkg/colormap"
)

// ReloadedMsg is sent by the file-watch goroutine in cmd/spanview once a
// watched trace file has been re-read and reloaded into the facade, telling
// the model to recompute its rows from the new active profile.
type ReloadedMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ReloadedMsg:
		m.rebuildRows()
		m.statusMsg = "reloaded from disk"
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.confirmingClear {
			return m.updateConfirmingClear(msg)
		}
		if m.showHelp {
			if matchesKey(msg, m.keys.Help) || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.searching {
			return m.updateSearching(msg)
		}
		return m.updateNormal(msg)
	}

	if m.confirmingClear {
		return m.updateConfirmingClear(msg)
	}
	return m, nil
}

// updateConfirmingClear drives the huh confirm form until it completes,
// clearing the session only when the user affirms.
func (m Model) updateConfirmingClear(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.clearForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.clearForm = f
	}
	if m.clearForm.State() == huh.StateCompleted {
		m.confirmingClear = false
		if m.clearAnswer {
			m.fac.ClearSession()
			m.rebuildRows()
			m.statusMsg = "session cleared"
		}
		return m, nil
	}
	return m, cmd
}

func (m Model) updateSearching(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.fac.SetSearch(m.search.Value())
		m.searching = false
		return m, nil
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.fac.SetSearch("")
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case matchesKey(msg, m.keys.Quit):
		return m, tea.Quit

	case matchesKey(msg, m.keys.Search):
		m.searching = true
		m.search.Focus()
		return m, nil

	case matchesKey(msg, m.keys.Clear):
		m.fac.ClearSelection()
		return m, nil

	case matchesKey(msg, m.keys.ClearSession):
		m.clearAnswer = false
		m.clearForm = newClearConfirmForm(&m.clearAnswer)
		m.confirmingClear = true
		return m, m.clearForm.Init()

	case matchesKey(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case matchesKey(msg, m.keys.ScrollDown):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		return m, nil

	case matchesKey(msg, m.keys.ScrollUp):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case matchesKey(msg, m.keys.PanLeft):
		m.fac.Viewport().ScrollBy(-20, float64(m.width))
		return m, nil

	case matchesKey(msg, m.keys.PanRight):
		m.fac.Viewport().ScrollBy(20, float64(m.width))
		return m, nil

	case matchesKey(msg, m.keys.ZoomIn):
		m.fac.Viewport().ZoomAt(1.1, float64(m.width)/2, float64(m.width))
		return m, nil

	case matchesKey(msg, m.keys.ZoomOut):
		m.fac.Viewport().ZoomAt(0.9, float64(m.width)/2, float64(m.width))
		return m, nil

	case matchesKey(msg, m.keys.ResetZoom):
		m.fac.ResetZoom()
		return m, nil

	case matchesKey(msg, m.keys.ZoomToSel):
		m.fac.ZoomToSelection()
		return m, nil

	case matchesKey(msg, m.keys.ToggleTheme):
		if m.fac.GetState().Theme == "dark" {
			m.fac.SetTheme("light")
		} else {
			m.fac.SetTheme("dark")
		}
		return m, nil

	case matchesKey(msg, m.keys.NextMatch):
		m.fac.NextSearchResult()
		return m, nil

	case matchesKey(msg, m.keys.PrevMatch):
		m.fac.PrevSearchResult()
		return m, nil

	case matchesKey(msg, m.keys.Parent):
		m.fac.NavigateToParent()
		return m, nil

	case matchesKey(msg, m.keys.Child):
		m.fac.NavigateToChild()
		return m, nil

	case matchesKey(msg, m.keys.NextSib):
		m.fac.NavigateToNextSibling()
		return m, nil

	case matchesKey(msg, m.keys.PrevSib):
		m.fac.NavigateToPrevSibling()
		return m, nil

	case msg.String() == "c":
		m.fac.SetColorMode(nextColorMode(m.fac.GetState().ColorMode))
		m.rebuildRows()
		return m, nil
	}
	return m, nil
}

func matchesKey(msg tea.KeyMsg, b interface{ Keys() []string }) bool {
	for _, k := range b.Keys() {
		if msg.String() == k {
			return true
		}
	}
	return false
}

func nextColorMode(m colormap.Mode) colormap.Mode {
	if m == colormap.ByName {
		return colormap.ByDepth
	}
	return colormap.ByName
}
