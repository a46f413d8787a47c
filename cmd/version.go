package cmd

import (
	"fmt"

	"github.com/davebream/timeridle/internal/idle"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "timeridle %s (commit: %s, default busy window: %s)\n", version, commit, idle.DefaultBusyWindow)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
