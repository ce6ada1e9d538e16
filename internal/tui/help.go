package tui

import "github.com/charmbracelet/glamour"

// helpMarkdown is the `?` screen's source text, rendered through glamour so
// it gets the same heading/list styling a README would in a terminal pager.
const helpMarkdown = `# spanview keys

## Navigation
- **left/a, right/d** — pan
- **up/w, down/s** — move cursor
- **[, ]** — select parent / child frame
- **shift+[, shift+]** — select previous / next sibling

## Zoom
- **+/=, -/_** — zoom in / out
- **0, home** — reset zoom
- **z** — zoom to selection

## Search
- **/** — start search
- **enter, shift+enter** — next / previous match

## Session
- **t** — toggle theme
- **c** — cycle color mode
- **esc** — clear selection
- **ctrl+x** — clear session (asks for confirmation)
- **?** — toggle this screen
- **q, ctrl+c** — quit
`

func renderHelp(width int) string {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	return out
}
