package main

import (
	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/safety"
)

var safetyCmd = &cobra.Command{
	Use:   "safety",
	Short: "Crime records and neighbourhood watch schemes",
}

var safetyCrimeCmd = &cobra.Command{
	Use:   "crime <geography-code>...",
	Short: "Fetch raw crime records for areas",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		periods, _ := f.GetStringSlice("periods")
		start, _ := f.GetString("start")
		end, _ := f.GetString("end")
		categories, _ := f.GetStringSlice("categories")
		country, _ := f.GetString("country")

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Safety.CrimeData(cmd.Context(), safety.CrimeDataParams{
			GeographicCodes: args,
			Period:          safety.Period{Periods: periods, StartDate: start, EndDate: end},
			Categories:      categories,
			CountryCode:     country,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

var safetyWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Find neighbourhood watch schemes near a point",
	RunE: func(cmd *cobra.Command, _ []string) error {
		f := cmd.Flags()
		lng, _ := f.GetFloat64("lng")
		lat, _ := f.GetFloat64("lat")
		radius, _ := f.GetInt("radius")

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Safety.NeighborhoodWatchByLocation(cmd.Context(), safety.WatchByLocationParams{
			Lng:    &lng,
			Lat:    &lat,
			Radius: &radius,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	f := safetyCrimeCmd.Flags()
	f.StringSlice("periods", nil, "periods as YYYY-MM (comma-separated)")
	f.String("start", "", "range start, YYYY-MM")
	f.String("end", "", "range end, YYYY-MM")
	f.StringSlice("categories", nil, "crime categories to include")
	f.String("country", "", "country code")

	w := safetyWatchCmd.Flags()
	w.Float64("lng", 0, "longitude")
	w.Float64("lat", 0, "latitude")
	w.Int("radius", 1000, "search radius in metres (max 5000)")
	_ = safetyWatchCmd.MarkFlagRequired("lng")
	_ = safetyWatchCmd.MarkFlagRequired("lat")

	safetyCmd.AddCommand(safetyCrimeCmd, safetyWatchCmd)
	rootCmd.AddCommand(safetyCmd)
}
