package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/chris/mapdate/internal/config"
	"github.com/chris/mapdate/internal/db"
	appLog "github.com/chris/mapdate/internal/log"
	"github.com/chris/mapdate/internal/tui"
)

var (
	exploreDate       string
	exploreResolution string
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Open the interactive time axis",
	Long: `Opens a full-screen time axis. Drag the ▲ scrubber with the mouse, click
the axis to jump, use ←/→ for days, [ ] for months and { } for years, r to
change resolution and e to edit a date component. Layers from the catalog
that cover the committed date are listed under the axis.`,
	Args: cobra.NoArgs,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)

	exploreCmd.Flags().StringVar(&exploreDate, "date", "", "Initial date, YYYY-MM-DD (default: configured start date)")
	exploreCmd.Flags().StringVar(&exploreResolution, "resolution", "", "Initial resolution: days, months or years (default: configured resolution)")
}

// openLogOutput routes log lines away from the screen while the UI runs
func openLogOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.LogFile == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := cfg.Bounds()
	if err != nil {
		return err
	}
	date, err := resolveDate(cfg, exploreDate)
	if err != nil {
		return err
	}
	res, err := resolveResolution(cfg, exploreResolution)
	if err != nil {
		return err
	}

	logOut, closeLog, err := openLogOutput(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	appLog.SetOutput(logOut)
	defer appLog.SetOutput(os.Stderr)

	opts := []tui.Option{
		tui.WithMargin(cfg.Margin),
		tui.WithDateFormat(cfg.DateFormat),
		tui.WithTimelineOptions(cfg.TimelineOptions()...),
	}

	database, err := db.New(dbPath)
	switch {
	case errors.Is(err, db.ErrNotInitialized):
		appLog.Info("layer catalog not initialized", "path", dbPath)
	case err != nil:
		appLog.Error("failed to open layer catalog", err, "path", dbPath)
	default:
		defer database.Close()
		opts = append(opts, tui.WithLayers(database))
	}

	model := tui.New(b, date, res, opts...)
	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithReportFocus(),
	)
	_, err = p.Run()
	return err
}
