package main

import (
	"errors"

	"schooldb/internal/services/listing"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	schoolsPage        int
	schoolsCount       int
	schoolsRegion      int
	schoolsStatus      string
	schoolsAppendPages int
	schoolsFormat      string
)

// schoolsCmd loads pages through a list session and prints its final state
var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "Print one or more pages of schools",
	RunE:  runSchools,
}

func init() {
	schoolsCmd.Flags().IntVar(&schoolsPage, "page", 1, "page to load (clamped to 1..100)")
	schoolsCmd.Flags().IntVar(&schoolsCount, "count", 0, "page size (default from LIST_PAGE_SIZE)")
	schoolsCmd.Flags().IntVar(&schoolsRegion, "region", 0, "region id filter")
	schoolsCmd.Flags().StringVar(&schoolsStatus, "status", "", "status filter (all, active, inactive)")
	schoolsCmd.Flags().IntVar(&schoolsAppendPages, "append-pages", 0, "number of following pages to append")
	schoolsCmd.Flags().StringVarP(&schoolsFormat, "format", "o", formatJSON, "output format: json or yaml")
}

func runSchools(cmd *cobra.Command, args []string) error {
	svc := listing.NewService(newClient(), cfg.List.PageSize)
	ctx := cmd.Context()

	req := listing.LoadRequest{
		Page:     schoolsPage,
		PageSize: schoolsCount,
		RegionID: schoolsRegion,
		Status:   schoolsStatus,
	}
	st := svc.LoadPage(ctx, req)

	for i := 0; i < schoolsAppendPages && st.Error == ""; i++ {
		if st.CurrentPage >= st.TotalPages {
			break
		}
		req.Page = st.CurrentPage + 1
		req.Append = true
		st = svc.LoadPage(ctx, req)
	}

	if st.Error != "" {
		log.Warn().Str("error", st.Error).Msg("load finished with error")
	}
	if err := printValue(cmd.OutOrStdout(), schoolsFormat, st); err != nil {
		return err
	}
	if st.Error != "" {
		return errors.New(st.Error)
	}
	return nil
}
