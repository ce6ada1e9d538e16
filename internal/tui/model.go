// Package tui implements the bubbletea terminal front end for spanview:
// a thin presentation layer over pkg/facade, rendering the ranked self-time
// view and a lane list as the terminal's stand-in for a full canvas
// renderer.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/dicklesworthstone/spanscope/pkg/config"
	"github.com/dicklesworthstone/spanscope/pkg/facade"
	"github.com/dicklesworthstone/spanscope/pkg/layout"
	"github.com/dicklesworthstone/spanscope/pkg/render"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
	tuitheme "github.com/dicklesworthstone/spanscope/pkg/tui"
)

const rankedBarWidthUnits = 100

// rankedRowView is one bar the View function draws, extracted from the
// render.Command list layout.Ranked produces.
type rankedRowView struct {
	label string
	frac  float32 // bar width as a fraction of rankedBarWidthUnits
}

// Model is the bubbletea root model for the spanview TUI.
type Model struct {
	fac  *facade.Facade
	cfg  config.Config
	keys keyMap
	th   tuitheme.Theme

	width  int
	height int

	searching bool
	search    textinput.Model

	confirmingClear bool
	clearAnswer     bool
	clearForm       *huh.Form

	showHelp bool

	statusMsg string
	err       error

	rows   []rankedRowView
	cursor int
}

// New builds a Model over fac using cfg for visual defaults.
func New(fac *facade.Facade, cfg config.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "search span names…"
	ti.CharLimit = 128
	m := Model{
		fac:    fac,
		cfg:    cfg,
		keys:   defaultKeyMap(),
		th:     tuitheme.DefaultTheme(nil),
		search: ti,
	}
	m.rebuildRows()
	return m
}

// NowMs is injected into facade.New so viewport animations and spring
// integration can be driven by wall-clock time without the facade package
// importing time directly.
func NowMs() float64 {
	return float64(time.Now().UnixMilli())
}

func (m Model) Init() tea.Cmd {
	return nil
}

// rebuildRows recomputes the ranked self-time bars for the active profile
// by walking the render.Command list layout.Ranked produces — the terminal
// front end's way of consuming the same view transform a canvas renderer
// would, rather than re-deriving rank order from the profile itself.
func (m *Model) rebuildRows() {
	m.rows = nil
	p := m.fac.ActiveProfile()
	if p == nil {
		return
	}
	cmds := layout.Ranked(p, layout.RankSelf, rankedBarWidthUnits, func(int32) theme.Token {
		return theme.BarFill
	})
	for _, c := range cmds {
		rect, ok := c.(render.DrawRect)
		if !ok {
			continue
		}
		m.rows = append(m.rows, rankedRowView{
			label: rect.Label,
			frac:  rect.Rect.W / rankedBarWidthUnits,
		})
	}
}
