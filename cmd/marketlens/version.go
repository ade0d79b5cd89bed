package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bobmcallan/marketlens/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		common.LoadVersionFromFile()
		fmt.Fprintf(cmd.OutOrStdout(), "marketlens %s (build %s, commit %s)\n",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
	},
}
