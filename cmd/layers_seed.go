package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/teambition/rrule-go"

	"github.com/chris/mapdate/internal/db"
	"github.com/chris/mapdate/internal/timeaxis"
	"github.com/chris/mapdate/pkg/models"
)

var seedMosaics bool

// sampleLayers are well-known global imagery products
var sampleLayers = []struct {
	name   string
	source string
	start  string
	end    string
}{
	{"Landsat 5 TM", "USGS", "1984-03-01", "2013-06-05"},
	{"Landsat 7 ETM+", "USGS", "1999-04-15", ""},
	{"MODIS Terra True Color", "NASA GIBS", "2000-02-24", ""},
	{"MODIS Aqua True Color", "NASA GIBS", "2002-07-03", ""},
	{"Landsat 8 OLI", "USGS", "2013-04-11", ""},
	{"VIIRS SNPP True Color", "NASA GIBS", "2015-11-24", ""},
}

var layersSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add sample imagery layers to the catalog",
	Long: `Add a handful of well-known imagery layers to the catalog. With --mosaics,
also add one annual mosaic per calendar year inside the configured bounds.

Layers whose name already exists are skipped, so seeding twice is harmless.`,
	Args: cobra.NoArgs,
	RunE: runLayersSeed,
}

func init() {
	layersCmd.AddCommand(layersSeedCmd)
	layersSeedCmd.Flags().BoolVar(&seedMosaics, "mosaics", false, "Also add yearly mosaics within the configured bounds")
}

func runLayersSeed(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	layers := make([]*models.Layer, 0, len(sampleLayers))
	for _, s := range sampleLayers {
		start := timeaxis.MustParseDate(s.start)
		var end *timeaxis.Date
		if s.end != "" {
			d := timeaxis.MustParseDate(s.end)
			end = &d
		}
		layers = append(layers, models.NewLayer(s.name, s.source, start, end))
	}

	if seedMosaics {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		bounds, err := cfg.Bounds()
		if err != nil {
			return err
		}
		mosaics, err := yearlyMosaics(bounds)
		if err != nil {
			return err
		}
		layers = append(layers, mosaics...)
	}

	database, err := db.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	existing, err := database.ListLayers()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(existing))
	for _, l := range existing {
		seen[l.Name] = true
	}

	added := 0
	for _, l := range layers {
		if seen[l.Name] {
			continue
		}
		if _, err := database.InsertLayer(l); err != nil {
			return err
		}
		added++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added %d layers (%d already present)\n", added, len(layers)-added)
	return nil
}

// yearlyMosaics returns one layer per calendar year touching b, each
// covering its whole year
func yearlyMosaics(b timeaxis.Bounds) ([]*models.Layer, error) {
	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: time.Date(b.Min.Year(), time.January, 1, 0, 0, 0, 0, time.UTC),
		Until:   b.Max.Time(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build mosaic rule: %w", err)
	}

	var layers []*models.Layer
	for _, t := range rule.All() {
		start := timeaxis.DateOf(t)
		end := timeaxis.NewDate(start.Year(), time.December, 31)
		name := fmt.Sprintf("Annual Mosaic %d", start.Year())
		layers = append(layers, models.NewLayer(name, "mapdate", start, &end))
	}
	return layers, nil
}
