package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chris/mapdate/internal/config"
	"github.com/chris/mapdate/internal/timeaxis"
)

var (
	stepDate       string
	stepResolution string
	stepBack       bool
	stepFormat     string
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Move a date one unit within the configured bounds",
	Long: `Moves --date one day, month or year forward (or back with --back) and
prints the result. A step that would leave the configured bounds is rejected
and the original date is printed unchanged.

Month and year steps clamp the day to the end of the target month.`,
	Args: cobra.NoArgs,
	RunE: runStep,
}

var (
	setDate       string
	setResolution string
	setValue      string
	setFormat     string
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace one component of a date",
	Long: `Replaces the day, month or year of --date with --value and prints the
result. Months accept 1-12 or names (Jan, January). An invalid or
out-of-range edit reverts to the original date.`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	rootCmd.AddCommand(setCmd)

	stepCmd.Flags().StringVar(&stepDate, "date", "", "Date to step from, YYYY-MM-DD (default: configured start date)")
	stepCmd.Flags().StringVar(&stepResolution, "resolution", "", "Unit to step by: days, months or years (default: configured resolution)")
	stepCmd.Flags().BoolVar(&stepBack, "back", false, "Step backwards")
	stepCmd.Flags().StringVarP(&stepFormat, "time-format", "t", "", "Print the result with a strftime format (default: YYYY-MM-DD)")

	setCmd.Flags().StringVar(&setDate, "date", "", "Date to edit, YYYY-MM-DD (default: configured start date)")
	setCmd.Flags().StringVar(&setResolution, "resolution", "", "Component to replace: days, months or years (default: configured resolution)")
	setCmd.Flags().StringVar(&setValue, "value", "", "New component value")
	setCmd.Flags().StringVarP(&setFormat, "time-format", "t", "", "Print the result with a strftime format (default: YYYY-MM-DD)")
	setCmd.MarkFlagRequired("value")
}

// stepperInput resolves the shared flags and rejects a start date outside the bounds
func stepperInput(cfg *config.Config, dateFlag, resFlag string) (timeaxis.Bounds, timeaxis.Date, timeaxis.Resolution, error) {
	b, err := cfg.Bounds()
	if err != nil {
		return b, timeaxis.Date{}, 0, err
	}
	date, err := resolveDate(cfg, dateFlag)
	if err != nil {
		return b, date, 0, err
	}
	if !b.Contains(date) {
		return b, date, 0, fmt.Errorf("date %s is outside %s..%s", date, b.Min, b.Max)
	}
	res, err := resolveResolution(cfg, resFlag)
	if err != nil {
		return b, date, 0, err
	}
	return b, date, res, nil
}

func runStep(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, date, res, err := stepperInput(cfg, stepDate, stepResolution)
	if err != nil {
		return err
	}

	dir := 1
	if stepBack {
		dir = -1
	}

	committed := false
	stepper := timeaxis.NewStepper(b, func(timeaxis.Date) { committed = true })
	result := stepper.Step(date, res, dir)

	out := newOutput(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), dateStyle(out, formatDate(result, stepFormat)))
	if !committed {
		errOut := newOutput(cmd.ErrOrStderr())
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle(errOut,
			fmt.Sprintf("step rejected: %s is outside %s..%s", date.Add(res, dir), b.Min, b.Max)))
	}
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, date, res, err := stepperInput(cfg, setDate, setResolution)
	if err != nil {
		return err
	}

	stepper := timeaxis.NewStepper(b, nil)
	result := stepper.SetComponent(date, res, setValue)

	out := newOutput(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), dateStyle(out, formatDate(result, setFormat)))
	if result.Equal(date) {
		errOut := newOutput(cmd.ErrOrStderr())
		fmt.Fprintln(cmd.ErrOrStderr(), dimStyle(errOut,
			fmt.Sprintf("date unchanged by %s=%q", res, setValue)))
	}
	return nil
}
