package main

import (
	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/property"
)

var propertyCmd = &cobra.Command{
	Use:   "property",
	Short: "Look up property records",
}

var propertyGetCmd = &cobra.Command{
	Use:   "get <property-id>...",
	Short: "Fetch properties by property ID or location ID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		attrs, _ := cmd.Flags().GetStringSlice("attributes")
		byLocation, _ := cmd.Flags().GetBool("location")
		var limit *int
		if cmd.Flags().Changed("limit") {
			n, _ := cmd.Flags().GetInt("limit")
			limit = params.Ptr(n)
		}

		var out *property.Response
		if byLocation {
			out, err = sdk.Property.ByLocationID(cmd.Context(), property.ByLocationParams{
				LocationIDs: args, Attributes: attrs, Limit: limit,
			})
		} else {
			out, err = sdk.Property.Get(cmd.Context(), property.GetParams{
				PropertyIDs: args, Attributes: attrs, Limit: limit,
			})
		}
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	propertyGetCmd.Flags().StringSlice("attributes", nil, "attributes to return (comma-separated)")
	propertyGetCmd.Flags().Bool("location", false, "treat arguments as location IDs")
	propertyGetCmd.Flags().Int("limit", 0, "maximum records to return")
	propertyCmd.AddCommand(propertyGetCmd)
	rootCmd.AddCommand(propertyCmd)
}
