package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"venueadmin/internal/application/orchestrators"
)

func newSeedCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo venues, clients, bookings and users into an empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := openRuntime(cmd.Context(), st.cfg)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := orchestrators.ExecuteSeedDemoData(cmd.Context(), rt.seedDeps())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if res.Skipped {
				fmt.Fprintln(out, "database already has data; nothing seeded")
				return nil
			}
			fmt.Fprintf(out, "seeded %d groups, %d users, %d venues, %d clients, %d bookings, %d receivables\n",
				res.Groups, res.Users, res.Venues, res.Clients, res.Bookings, res.Receivables)
			return nil
		},
	}
}
