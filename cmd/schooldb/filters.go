package main

import (
	"schooldb/internal/services/filters"

	"github.com/spf13/cobra"
)

var filtersFormat string

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "Print the region filter values",
	RunE: func(cmd *cobra.Command, args []string) error {
		regions, err := filters.NewService(newClient()).Regions(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), filtersFormat, regions)
	},
}

var districtsCmd = &cobra.Command{
	Use:   "districts",
	Short: "Print the federal district filter values",
	RunE: func(cmd *cobra.Command, args []string) error {
		districts, err := filters.NewService(newClient()).FederalDistricts(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd.OutOrStdout(), filtersFormat, districts)
	},
}

func init() {
	for _, c := range []*cobra.Command{regionsCmd, districtsCmd} {
		c.Flags().StringVarP(&filtersFormat, "format", "o", formatJSON, "output format: json or yaml")
	}
}
