package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/chris/mapdate/internal/db"
	"github.com/chris/mapdate/internal/timeaxis"
	"github.com/chris/mapdate/pkg/models"
)

var (
	layerStart  string
	layerEnd    string
	layerSource string
	layersOn    string
)

var layersCmd = &cobra.Command{
	Use:   "layers",
	Short: "Manage the layer catalog",
	Long: `Layers are map datasets with a temporal extent. The explorer lists the
layers whose extent covers the committed date.

Use subcommands to add, list, delete or seed layers.`,
}

var layersAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		start, err := timeaxis.ParseDate(layerStart)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		var end *timeaxis.Date
		if layerEnd != "" {
			d, err := timeaxis.ParseDate(layerEnd)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			end = &d
		}

		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		layer := models.NewLayer(args[0], layerSource, start, end)
		id, err := database.InsertLayer(layer)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added layer %d: %s %s\n", id, layer.Name, layer.Extent())
		return nil
	},
}

var layersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List layers, optionally only those covering --on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		var layers []models.Layer
		if layersOn != "" {
			d, err := timeaxis.ParseDate(layersOn)
			if err != nil {
				return fmt.Errorf("invalid --on: %w", err)
			}
			layers, err = database.LayersOn(d)
			if err != nil {
				return err
			}
		} else {
			layers, err = database.ListLayers()
			if err != nil {
				return err
			}
		}

		if len(layers) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No layers found")
			return nil
		}
		printLayers(cmd, layers)
		return nil
	},
}

var layersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a layer by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid layer ID %q: %w", args[0], err)
		}
		if id <= 0 {
			return fmt.Errorf("invalid layer ID %q: must be a positive integer", args[0])
		}

		database, err := db.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		if err := database.DeleteLayer(id); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Deleted layer %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(layersCmd)
	layersCmd.AddCommand(layersAddCmd)
	layersCmd.AddCommand(layersListCmd)
	layersCmd.AddCommand(layersDeleteCmd)

	layersAddCmd.Flags().StringVar(&layerStart, "start", "", "First date the layer covers, YYYY-MM-DD")
	layersAddCmd.Flags().StringVar(&layerEnd, "end", "", "Last date the layer covers, YYYY-MM-DD (default: ongoing)")
	layersAddCmd.Flags().StringVar(&layerSource, "source", "", "Provider or URL of the layer")
	layersAddCmd.MarkFlagRequired("start")

	layersListCmd.Flags().StringVar(&layersOn, "on", "", "Only layers covering this date, YYYY-MM-DD")
}

// printLayers writes an aligned ID / name / source / extent table
func printLayers(cmd *cobra.Command, layers []models.Layer) {
	w := cmd.OutOrStdout()
	out := newOutput(w)

	nameWidth, sourceWidth := len("NAME"), len("SOURCE")
	for _, l := range layers {
		nameWidth = max(nameWidth, ansi.StringWidth(l.Name))
		sourceWidth = max(sourceWidth, ansi.StringWidth(l.Source))
	}

	fmt.Fprintln(w, dimStyle(out, fmt.Sprintf("%4s  %s  %s  %s", "ID",
		pad("NAME", nameWidth), pad("SOURCE", sourceWidth), "EXTENT")))
	for _, l := range layers {
		fmt.Fprintf(w, "%4d  %s  %s  %s\n", l.ID,
			pad(l.Name, nameWidth), pad(l.Source, sourceWidth), l.Extent())
	}
}

func pad(s string, width int) string {
	if n := width - ansi.StringWidth(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
