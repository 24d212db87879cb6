package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/petasbytes/genie-annotate/internal/updater"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// printMatches reports the outcome of the lookup-and-append step.
func printMatches(w io.Writer, req updater.Request, res *updater.Result) {
	if !res.Found() {
		fmt.Fprintf(w, "\n%s Could not find table '%s' or column '%s'. No changes made.\n",
			warnStyle.Render("Warning:"), req.Table, req.Column)
		return
	}
	for _, m := range res.Matches {
		fmt.Fprintf(w, "\n%s Updated description for '%s' in %s: %s\n",
			successStyle.Render("Success!"), m.Column, m.Table, formatList(m.Description))
	}
}

// formatList renders a description list the way it reads in the document.
func formatList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
