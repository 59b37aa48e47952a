package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chris/mapdate/internal/replay"
	"github.com/chris/mapdate/internal/timeaxis"
)

var replayWidth float64

var replayCmd = &cobra.Command{
	Use:   "replay <script.yaml>",
	Short: "Replay a gesture script against a headless time axis",
	Long: `Plays a YAML gesture script on a virtual clock and prints every emission
(commits, dragging changes, hover, zoom and auto-scroll ticks) with its
virtual timestamp. Bounds, date, resolution and geometry default to the
config and may be overridden at the top of the script.

Example:

  date: 2008-06-15
  steps:
    - begin: true
    - move: 12
    - wait: 250ms
    - end: 12`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().Float64Var(&replayWidth, "width", 80, "Axis width when the script sets no viewport")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := cfg.Bounds()
	if err != nil {
		return err
	}
	res, err := cfg.ParsedResolution()
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	script, err := replay.Load(f)
	if err != nil {
		return err
	}

	def := replay.Defaults{
		Bounds:     b,
		Date:       cfg.InitialDate(),
		Resolution: res,
		Viewport:   timeaxis.Viewport{Width: replayWidth, Margin: cfg.Margin},
		Options:    cfg.TimelineOptions(),
	}

	w := cmd.OutOrStdout()
	out := newOutput(w)
	return replay.Run(script, def, func(e replay.Event) {
		line := e.String()
		if e.Kind == "commit" {
			line = fmt.Sprintf("%8s %-9s %s", e.At, e.Kind, dateStyle(out, e.Text))
		}
		fmt.Fprintln(w, line)
	})
}
