package commands

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/dicklesworthstone/spanscope/pkg/colormap"
	"github.com/dicklesworthstone/spanscope/pkg/export"
	"github.com/dicklesworthstone/spanscope/pkg/layout"
	"github.com/dicklesworthstone/spanscope/pkg/session"
	"github.com/dicklesworthstone/spanscope/pkg/theme"
	"github.com/dicklesworthstone/spanscope/pkg/viewport"
)

func exportCmd() *cobra.Command {
	var format, output string
	var copyPath bool
	cmd := &cobra.Command{
		Use:   "export <trace-file>",
		Short: "Export a trace file to json, svg, sqlite, or mermaid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(args[0], format, output, copyPath)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, svg, sqlite, mermaid")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (defaults to <input>.<format>)")
	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "copy the output path to the system clipboard")
	return cmd
}

func runExport(inputPath, format, output string, copyPath bool) error {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inputPath, err)
	}

	sess := session.New()
	handle, err := sess.AddProfile(inputPath, data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", inputPath, err)
	}
	profile := sess.Profile(handle)

	if output == "" {
		output = inputPath + "." + format
	}

	var writeErr error
	switch format {
	case "json":
		out, err := export.ProfileJSON(profile)
		if err != nil {
			return err
		}
		writeErr = os.WriteFile(output, out, 0644)

	case "svg":
		var threadID int64
		if len(profile.Threads) > 0 {
			threadID = profile.Threads[0].ID
		}
		vp := viewport.State{Start: 0, End: 1}
		mapper := colormap.New(profile, colormap.ByName)
		cmds := layout.TimeOrder(profile, threadID, vp, 1600, 900, mapper, layout.Selection{}, layout.SearchState{})
		out, err := export.SVG(cmds, 1600, 900, theme.Dark())
		if err != nil {
			return err
		}
		writeErr = os.WriteFile(output, out, 0644)

	case "sqlite":
		writeErr = export.NewSQLiteExporter(sess).Export(output)

	case "mermaid":
		out := export.MermaidFlowGraph(profile, inputPath)
		writeErr = os.WriteFile(output, []byte(out), 0644)

	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	if writeErr != nil {
		return writeErr
	}
	if copyPath {
		if err := clipboard.WriteAll(output); err != nil {
			fmt.Fprintf(os.Stderr, "export: could not copy path to clipboard: %v\n", err)
		}
	}
	return nil
}
