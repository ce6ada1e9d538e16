// Package commands wires spanview's cobra command tree: view, export,
// version.
package commands

import (
	"github.com/spf13/cobra"
)

// Version is the build version compared against GitHub releases by the
// version subcommand and reported by --version.
const Version = "v0.1.0"

var configPath string

// Root returns spanview's top-level cobra command.
func Root() *cobra.Command {
	root := &cobra.Command{
		Use:     "spanview",
		Short:   "Interactive viewer for performance trace files",
		Version: Version,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a spanview config YAML file")
	root.AddCommand(viewCmd())
	root.AddCommand(exportCmd())
	root.AddCommand(versionCmd())
	return root
}
