package tui

import "github.com/charmbracelet/huh"

// newClearConfirmForm builds the destructive-action confirm prompt for
// ctrl+x, with its result written into confirmed once the form completes.
func newClearConfirmForm(confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear session?").
				Description("Drops every loaded profile. This cannot be undone.").
				Affirmative("Clear").
				Negative("Cancel").
				Value(confirmed),
		),
	).WithShowHelp(false)
}
