package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap is the keyboard surface from §6: pan, zoom, navigation, search,
// view switching and lane sidebar toggle.
type keyMap struct {
	PanLeft      key.Binding
	PanRight     key.Binding
	ScrollUp     key.Binding
	ScrollDown   key.Binding
	ZoomIn       key.Binding
	ZoomOut      key.Binding
	ResetZoom    key.Binding
	Fit          key.Binding
	ZoomToSel    key.Binding
	ToggleTheme  key.Binding
	Search       key.Binding
	Clear        key.Binding
	ViewSwitch   key.Binding
	LaneToggle   key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding
	Parent       key.Binding
	Child        key.Binding
	NextSib      key.Binding
	PrevSib      key.Binding
	Quit         key.Binding
	Help         key.Binding
	ClearSession key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PanLeft:      key.NewBinding(key.WithKeys("left", "a")),
		PanRight:     key.NewBinding(key.WithKeys("right", "d")),
		ScrollUp:     key.NewBinding(key.WithKeys("up", "w")),
		ScrollDown:   key.NewBinding(key.WithKeys("down", "s")),
		ZoomIn:       key.NewBinding(key.WithKeys("+", "=")),
		ZoomOut:      key.NewBinding(key.WithKeys("-", "_")),
		ResetZoom:    key.NewBinding(key.WithKeys("0", "home")),
		Fit:          key.NewBinding(key.WithKeys("f")),
		ZoomToSel:    key.NewBinding(key.WithKeys("z")),
		ToggleTheme:  key.NewBinding(key.WithKeys("t")),
		Search:       key.NewBinding(key.WithKeys("/")),
		Clear:        key.NewBinding(key.WithKeys("esc")),
		ViewSwitch:   key.NewBinding(key.WithKeys("1", "2", "3", "4")),
		LaneToggle:   key.NewBinding(key.WithKeys("l")),
		NextMatch:    key.NewBinding(key.WithKeys("enter")),
		PrevMatch:    key.NewBinding(key.WithKeys("shift+enter")),
		Parent:       key.NewBinding(key.WithKeys("[")),
		Child:        key.NewBinding(key.WithKeys("]")),
		NextSib:      key.NewBinding(key.WithKeys("shift+]")),
		PrevSib:      key.NewBinding(key.WithKeys("shift+[")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c", "q")),
		Help:         key.NewBinding(key.WithKeys("?")),
		ClearSession: key.NewBinding(key.WithKeys("ctrl+x")),
	}
}
