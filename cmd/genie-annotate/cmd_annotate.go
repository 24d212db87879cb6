package main

import (
	"fmt"

	"github.com/petasbytes/genie-annotate/internal/telemetry"
	"github.com/petasbytes/genie-annotate/internal/updater"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type annotateFlags struct {
	spaceID     string
	table       string
	column      string
	description string
	firstSpace  bool
	strict      bool
}

func newAnnotateCmd(a *app) *cobra.Command {
	var f annotateFlags
	cmd := &cobra.Command{
		Use:   "annotate",
		Short: "Append a description to a table column in a Genie space",
		Long: `Prompts for the space ID, table, column and description unless they are
given as flags. Blank answers abort before any API call.

Every column entry whose table identifier and column name match exactly gets
the description appended to its description list. When nothing matches, a
warning is printed and the space is written back unchanged.`,
		Example: `  genie-annotate annotate
  genie-annotate annotate --space-id 01ef... --table samples.bakehouse.sales_customers \
      --column customerID --description "Date of Review"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, a, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.spaceID, "space-id", "", "Genie space ID")
	fl.StringVar(&f.table, "table", "", "table identifier, e.g. samples.bakehouse.sales_customers")
	fl.StringVar(&f.column, "column", "", "column name, e.g. customerID")
	fl.StringVar(&f.description, "description", "", "description text to append")
	fl.BoolVar(&f.firstSpace, "first-space", false, "use the first space returned by the list endpoint")
	fl.BoolVar(&f.strict, "strict", false, "exit non-zero when the update request fails")
	cmd.MarkFlagsMutuallyExclusive("space-id", "first-space")
	return cmd
}

func runAnnotate(cmd *cobra.Command, a *app, f annotateFlags) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("--- Databricks Genie Space Updater ---"))

	p := newPrompter(cmd.InOrStdin(), out)
	req := updater.Request{FirstSpace: f.firstSpace}
	var err error
	if !f.firstSpace {
		if req.SpaceID, err = p.ask("Enter the Space ID", f.spaceID); err != nil {
			return err
		}
	}
	if req.Table, err = p.ask("Enter the target Table Name (e.g., samples.bakehouse.sales_customers)", f.table); err != nil {
		return err
	}
	if req.Column, err = p.ask("Enter the target Column Name (e.g., customerID)", f.column); err != nil {
		return err
	}
	if req.Description, err = p.ask("Enter the description to append", f.description); err != nil {
		return err
	}

	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w. Exiting", err)
	}
	return execute(cmd, a, req, f.strict)
}

// execute builds the client and runs one update, reporting each step.
func execute(cmd *cobra.Command, a *app, req updater.Request, strict bool) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	fmt.Fprintln(out, dimStyle.Render("\nConnecting to Databricks..."))
	client, err := a.newClient(a.cfg)
	if err != nil {
		return err
	}

	runID := telemetry.NewRunID()
	ctx := telemetry.WithRunID(cmd.Context(), runID)
	logger := a.logger.With(zap.String("run_id", runID))

	if req.FirstSpace {
		fmt.Fprintln(out, "Resolving the first available space...")
	} else {
		fmt.Fprintf(out, "Fetching data for Space ID: %s...\n", req.SpaceID)
	}

	res, err := updater.New(client, logger).Run(ctx, req)
	switch updater.StepOf(err) {
	case "":
	case updater.StepResolve:
		return fmt.Errorf("could not resolve a space to update: %w", err)
	case updater.StepFetch, updater.StepDecode:
		target := req.SpaceID
		if target == "" {
			target = "(first listed)"
		}
		return fmt.Errorf("could not find or access Space ID '%s'. Details: %w", target, err)
	case updater.StepPersist:
		printMatches(out, req, res)
		fmt.Fprintf(errOut, "\n%s Failed to patch Genie space %s. API returned: %v\n",
			errorStyle.Render("Error:"), res.SpaceID, err)
		if strict {
			return err
		}
		return nil
	default:
		return err
	}

	if req.FirstSpace {
		fmt.Fprintf(out, "Target Space ID: %s\n", res.SpaceID)
	}
	printMatches(out, req, res)
	fmt.Fprintln(out, successStyle.Render("Space updated successfully in Databricks!"))
	return nil
}
