package main

import (
	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/areareference"
)

var areasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Query administrative and statistical areas",
}

var areasWithinCmd = &cobra.Command{
	Use:   "within",
	Short: "List areas of the given types around a point",
	RunE: func(cmd *cobra.Command, _ []string) error {
		lat, _ := cmd.Flags().GetFloat64("lat")
		lng, _ := cmd.Flags().GetFloat64("lng")
		types, _ := cmd.Flags().GetStringSlice("type")
		radius, _ := cmd.Flags().GetFloat64("radius")
		geometry, _ := cmd.Flags().GetBool("geometry")

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.AreaReference.Within(cmd.Context(), areareference.WithinParams{
			Lat:             lat,
			Lng:             lng,
			Type:            types,
			Radius:          &radius,
			IncludeGeometry: geometry,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	f := areasWithinCmd.Flags()
	f.Float64("lat", 0, "latitude (WGS84)")
	f.Float64("lng", 0, "longitude (WGS84)")
	f.StringSlice("type", nil, "area types, e.g. lsoa21,ward")
	f.Float64("radius", 1, "search radius in kilometres")
	f.Bool("geometry", false, "include area geometry")
	_ = areasWithinCmd.MarkFlagRequired("lat")
	_ = areasWithinCmd.MarkFlagRequired("lng")
	_ = areasWithinCmd.MarkFlagRequired("type")
	areasCmd.AddCommand(areasWithinCmd)
	rootCmd.AddCommand(areasCmd)
}
