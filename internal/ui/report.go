package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/wahlandcase/attuned.contextfinder/internal/models"
)

const ruleWidth = 60

// RenderReport writes the console report for a ticket search
func RenderReport(w io.Writer, result *models.SearchResult) error {
	return RenderReportWith(w, NewStyles(NewRenderer(w)), result)
}

// RenderReportWith writes the report using the given styles
func RenderReportWith(w io.Writer, s Styles, result *models.SearchResult) error {
	var b strings.Builder
	rule := s.Rule.Render(strings.Repeat("=", ruleWidth))

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Jira Ticket:"), s.Value.Render(result.Ticket))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Repository:"), s.Value.Render(result.Repository))
	fmt.Fprintf(&b, "%s %s\n", s.Label.Render("Total Commits:"), s.Value.Render(fmt.Sprint(result.CommitCount)))
	fmt.Fprintf(&b, "%s\n\n", rule)

	if len(result.Commits) == 0 {
		fmt.Fprintf(&b, "%s\n", s.Notice.Render("No commits found for this ticket."))
		_, err := io.WriteString(w, b.String())
		return err
	}

	for i, commit := range result.Commits {
		fmt.Fprintf(&b, "%s [%s] %s\n",
			s.Index.Render(fmt.Sprintf("%d.", i+1)),
			s.Date.Render(commit.Date),
			s.Hash.Render(commit.ShortHash()),
		)
		fmt.Fprintf(&b, "   %s %s\n", s.Label.Render("Message:"), commit.Message)
		fmt.Fprintf(&b, "   %s %s\n", s.Label.Render("Author:"), commit.Author)

		if commit.HasFiles() {
			fmt.Fprintf(&b, "   %s\n", s.Label.Render(fmt.Sprintf("Files (%d total):", *commit.FileCount)))
			for _, f := range commit.FilesChanged {
				fmt.Fprintf(&b, "      - %s\n", s.Path.Render(f))
			}
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
