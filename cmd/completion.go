package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/mapdate/internal/db"
)

func init() {
	// Register custom completions after all commands are initialized
	cobra.OnInitialize(registerCompletions)
}

func registerCompletions() {
	// --db flag: complete with .db files
	rootCmd.RegisterFlagCompletionFunc("db", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"db"}, cobra.ShellCompDirectiveFilterFileExt
	})

	rootCmd.RegisterFlagCompletionFunc("config", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	for _, c := range []*cobra.Command{exploreCmd, stepCmd, setCmd} {
		c.RegisterFlagCompletionFunc("resolution", completeResolution)
		c.RegisterFlagCompletionFunc("date", completeDate)
	}
	layersListCmd.RegisterFlagCompletionFunc("on", completeDate)

	replayCmd.ValidArgsFunction = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
		}
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	layersDeleteCmd.ValidArgsFunction = completeLayerID
}

func completeResolution(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		"days\tOne day per step",
		"months\tOne month per step",
		"years\tOne year per step",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeDate offers the configured start date and bounds
func completeDate(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{
		cfg.InitialDate().String() + "\tStart date",
		cfg.MinDate.String() + "\tEarliest date",
		cfg.MaxDate.String() + "\tLatest date",
	}, cobra.ShellCompDirectiveNoFileComp
}

// completeLayerID lists catalog layers as id / name pairs
func completeLayerID(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	database, err := db.New(dbPath)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer database.Close()

	layers, err := database.ListLayers()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	completions := make([]string, 0, len(layers))
	for _, l := range layers {
		completions = append(completions, fmt.Sprintf("%d\t%s", l.ID, l.Name))
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
