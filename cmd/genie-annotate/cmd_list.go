package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List Genie spaces visible to the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.newClient(a.cfg)
			if err != nil {
				return err
			}
			spaces, err := client.ListSpaces(cmd.Context())
			if err != nil {
				return fmt.Errorf("list spaces: %w", err)
			}
			if len(spaces) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No spaces found.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("SPACE ID", "TITLE")
			for _, s := range spaces {
				t.Row(s.ID, s.Title)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
