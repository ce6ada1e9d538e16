package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dicklesworthstone/spanscope/pkg/updater"
)

func versionCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the spanview version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(Version)
			if !check {
				return nil
			}
			tag, url, err := updater.CheckForUpdates(Version)
			if err != nil {
				color.Yellow("update check failed: %v", err)
				return nil
			}
			if tag == "" {
				color.Green("up to date")
				return nil
			}
			color.Cyan("update available: %s (%s)", tag, url)
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")
	return cmd
}
