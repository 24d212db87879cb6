package main

import (
	"encoding/json"
	"fmt"

	"github.com/petasbytes/genie-annotate/internal/telemetry"
	"github.com/petasbytes/genie-annotate/internal/updater"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newColumnsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "columns <space-id>",
		Short: "Show the tables and column descriptions of a space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(a.cfg)
			if err != nil {
				return err
			}
			runID := telemetry.NewRunID()
			ctx := telemetry.WithRunID(cmd.Context(), runID)
			logger := a.logger.With(zap.String("run_id", runID))
			_, doc, err := updater.New(client, logger).Fetch(ctx, args[0])
			if err != nil {
				return fmt.Errorf("could not find or access Space ID '%s'. Details: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			tables := doc.Tables()
			if asJSON {
				b, err := json.MarshalIndent(tables, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
				return nil
			}
			for _, t := range tables {
				fmt.Fprintln(out, titleStyle.Render(t.Identifier))
				for _, c := range t.ColumnConfigs {
					if len(c.Description) == 0 {
						fmt.Fprintf(out, "  %s %s\n", c.ColumnName, dimStyle.Render("(no description)"))
						continue
					}
					fmt.Fprintf(out, "  %s: %s\n", c.ColumnName, formatList(c.Description))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
