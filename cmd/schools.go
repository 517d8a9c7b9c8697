package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Vepler/http-sdk/pkg/params"
	"github.com/Vepler/http-sdk/pkg/schools"
)

var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "Search schools and their performance metrics",
}

var schoolsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search schools by name or place",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		page, _ := cmd.Flags().GetInt("page")
		status, _ := cmd.Flags().GetString("status")

		sdk, err := newSDK()
		if err != nil {
			return err
		}
		defer sdk.Close()

		out, err := sdk.Schools.Search(cmd.Context(), schools.SearchParams{
			Query:  strings.Join(args, " "),
			Limit:  params.Ptr(limit),
			Page:   params.Ptr(page),
			Status: status,
		})
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), cfg.Output, out)
	},
}

func init() {
	schoolsSearchCmd.Flags().Int("limit", 20, "results per page")
	schoolsSearchCmd.Flags().Int("page", 1, "page number")
	schoolsSearchCmd.Flags().String("status", "open", "school status filter")
	schoolsCmd.AddCommand(schoolsSearchCmd)
	rootCmd.AddCommand(schoolsCmd)
}
