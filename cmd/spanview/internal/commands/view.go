package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dicklesworthstone/spanscope/internal/tui"
	"github.com/dicklesworthstone/spanscope/pkg/config"
	"github.com/dicklesworthstone/spanscope/pkg/facade"
	"github.com/dicklesworthstone/spanscope/pkg/session"
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <trace-file> [more-trace-files...]",
		Short: "Open one or more trace files in the interactive terminal viewer",
		Args:  cobra.MinimumNArgs(0),
		RunE:  runView,
	}
	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	fac := facade.New(tui.NowMs)
	fac.SetTheme(cfg.Theme)

	if len(args) > 0 {
		sources := make([]session.Source, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			sources = append(sources, session.Source{Label: path, Data: data})
		}
		ctx := context.Background()
		if _, errs := fac.LoadProfiles(ctx, sources); len(errs) > 0 {
			for _, e := range errs {
				if e != nil {
					fmt.Fprintln(os.Stderr, "load:", e)
				}
			}
		}
	}

	model := tui.New(fac, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if len(args) > 0 {
		stop := watchAndReload(program, fac, args)
		defer stop()
	}

	_, err = program.Run()
	return err
}

// watchAndReload starts an fsnotify watch on every path in args, re-reading
// and reloading a file into fac each time it is written, then nudging the
// running program to recompute its rows. Watch failures are logged and
// otherwise ignored: live reload is a convenience, not load-bearing.
func watchAndReload(program *tea.Program, fac *facade.Facade, paths []string) func() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("spanview: file watch disabled: %v", err)
		return func() {}
	}
	for _, p := range paths {
		if err := watcher.Add(p); err != nil {
			log.Printf("spanview: watch %s: %v", p, err)
		}
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				data, err := os.ReadFile(event.Name)
				if err != nil {
					log.Printf("spanview: reload %s: %v", event.Name, err)
					continue
				}
				handle, err := fac.LoadProfile(event.Name, data)
				if err != nil {
					log.Printf("spanview: reparse %s: %v", event.Name, err)
					continue
				}
				if err := fac.SetActiveProfile(handle); err != nil {
					log.Printf("spanview: activate reloaded %s: %v", event.Name, err)
					continue
				}
				program.Send(tui.ReloadedMsg{})
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("spanview: watch error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }
}
