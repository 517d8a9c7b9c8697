package main

import (
	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/predictor"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict price and attributes of a property",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req := predictRequest(cmd)

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Predictor.PredictMultiTarget(cmd.Context(), req)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	addPredictFlags(predictCmd)
	rootCmd.AddCommand(predictCmd)
}

func addPredictFlags(c *cobra.Command) {
	f := c.Flags()
	f.String("target", "price", "attributes to predict, e.g. price,beds")
	f.String("postcode", "", "property postcode")
	f.Float64("lng", 0, "longitude, used with --lat instead of --postcode")
	f.Float64("lat", 0, "latitude")
	f.String("type", "", "property type")
	f.Int("beds", 0, "bedrooms")
	f.Int("baths", 0, "bathrooms")
	f.Float64("floor-area", 0, "floor area in square metres")
	f.String("epc", "", "EPC rating")
	f.String("transaction", predictor.TransactionSale, "sale or rental")
	f.Bool("detailed", false, "include feature contributions")
	c.MarkFlagsRequiredTogether("lng", "lat")
}

// predictRequest builds a request from flags. Numeric flags are sent only
// when set explicitly.
func predictRequest(cmd *cobra.Command) predictor.Request {
	f := cmd.Flags()
	req := predictor.Request{}
	req.Target, _ = f.GetString("target")
	req.Postcode, _ = f.GetString("postcode")
	req.PropertyType, _ = f.GetString("type")
	req.EPC, _ = f.GetString("epc")
	req.TransactionType, _ = f.GetString("transaction")
	req.Detailed, _ = f.GetBool("detailed")

	if f.Changed("lng") {
		lng, _ := f.GetFloat64("lng")
		lat, _ := f.GetFloat64("lat")
		req.Longitude, req.Latitude = params.Ptr(lng), params.Ptr(lat)
	}
	if f.Changed("beds") {
		n, _ := f.GetInt("beds")
		req.Beds = params.Ptr(n)
	}
	if f.Changed("baths") {
		n, _ := f.GetInt("baths")
		req.Baths = params.Ptr(n)
	}
	if f.Changed("floor-area") {
		v, _ := f.GetFloat64("floor-area")
		req.FloorArea = params.Ptr(v)
	}
	return req
}
