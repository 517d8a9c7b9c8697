package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a unified search across data sources",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		source, _ := cmd.Flags().GetString("source")

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Search.Search(cmd.Context(), search.Params{
			Query:  strings.Join(args, " "),
			Limit:  params.Ptr(limit),
			Offset: offset,
			Source: source,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	searchCmd.Flags().Int("limit", 10, "maximum results")
	searchCmd.Flags().Int("offset", 0, "results to skip")
	searchCmd.Flags().String("source", "", "restrict to one data source")
	rootCmd.AddCommand(searchCmd)
}
