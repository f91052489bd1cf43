package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spektr-org/hrquery/schema"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the database holds the Employees and Departments tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore(cmd)
			if err != nil {
				return err
			}

			report, err := st.Check(cmd.Context(), schema.Default())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !report.OK() {
				fmt.Fprintln(out, report.String())
				return errExit
			}
			fmt.Fprintf(out, "Database '%s' OK: %d tables verified\n", st.Path(), len(schema.Default().Tables))
			return nil
		},
	}
}
