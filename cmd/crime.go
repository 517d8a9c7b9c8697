package main

import (
	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/crime"
)

var crimeCmd = &cobra.Command{
	Use:   "crime",
	Short: "Crime statistics by geography",
}

var crimeMetricsCmd = &cobra.Command{
	Use:   "metrics <geography-code>...",
	Short: "Crime counts, rates and scores for areas",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		periods, _ := f.GetStringSlice("periods")
		start, _ := f.GetString("start")
		end, _ := f.GetString("end")
		merge, _ := f.GetBool("merge")
		months, _ := f.GetInt("months")
		series, _ := f.GetBool("time-series")

		p := crime.GeographyMetricsParams{
			GeographicCodes:   args,
			Periods:           periods,
			StartDate:         start,
			EndDate:           end,
			MergeAreas:        merge,
			IncludeTimeSeries: &series,
			Months:            &months,
		}
		if err := p.Validate(); err != nil {
			return err
		}

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Crime.GeographyMetrics(cmd.Context(), p)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	f := crimeMetricsCmd.Flags()
	f.StringSlice("periods", nil, "periods as YYYY-MM (comma-separated)")
	f.String("start", "", "range start, YYYY-MM")
	f.String("end", "", "range end, YYYY-MM")
	f.Bool("merge", false, "merge areas into one result")
	f.Int("months", 12, "months of time series (1-24)")
	f.Bool("time-series", true, "include time series")
	crimeCmd.AddCommand(crimeMetricsCmd)
	rootCmd.AddCommand(crimeCmd)
}
