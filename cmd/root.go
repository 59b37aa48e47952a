package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chris/mapdate/internal/config"
	appLog "github.com/chris/mapdate/internal/log"
	"github.com/chris/mapdate/internal/timeaxis"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "mapdate",
	Short:   "Time axis navigator for map layers",
	Long:    "Scrub, step and edit the committed date of a map explorer, and see which catalogued layers exist on it",
	Version: MapdateVersion,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Layer catalog path (default: ~/.local/share/mapdate/layers.db)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $XDG_CONFIG_HOME/mapdate/config.yaml)")
	rootCmd.Flags().BoolP("version", "v", false, "Print the version number of mapdate")
	rootCmd.SetVersionTemplate("mapdate version {{.Version}}\n")
}

// loadConfig reads --config (or the default path), creating it on first run
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg, err := config.Load(path)
	if err != nil {
		if cfg == nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		// defaults still work when the config dir is read-only
		appLog.Error("failed to write default config", err, "path", path)
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))
	return cfg, nil
}

// resolveDate parses a --date flag, falling back to the configured start date
func resolveDate(cfg *config.Config, flag string) (timeaxis.Date, error) {
	if flag == "" {
		return cfg.InitialDate(), nil
	}
	return timeaxis.ParseDate(flag)
}

// resolveResolution parses a --resolution flag, falling back to the config
func resolveResolution(cfg *config.Config, flag string) (timeaxis.Resolution, error) {
	if flag == "" {
		return cfg.ParsedResolution()
	}
	return timeaxis.ParseResolution(flag)
}
