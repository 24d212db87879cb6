package main

import (
	"github.com/petasbytes/genie-annotate/internal/updater"
	"github.com/spf13/cobra"
)

// Fixed target of the sample run, matching the Databricks bakehouse sample dataset.
const (
	sampleTable       = "samples.bakehouse.sales_customers"
	sampleColumn      = "customerID"
	sampleDescription = "Date of Review"
)

func newSampleCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Annotate the bakehouse sample column in the first listed space",
		Long: `Non-interactive run: resolves the first space from the list endpoint and
appends "` + sampleDescription + `" to ` + sampleTable + `.` + sampleColumn + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := updater.Request{
				Table:       sampleTable,
				Column:      sampleColumn,
				Description: sampleDescription,
				FirstSpace:  true,
			}
			return execute(cmd, a, req, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when the update request fails")
	return cmd
}
