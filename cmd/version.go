package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// MapdateVersion is the current version of mapdate
const MapdateVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mapdate",
	Long:  "Print the version number of mapdate",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "mapdate version %s\n", MapdateVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
