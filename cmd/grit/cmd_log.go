package main

import (
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
	"github.com/gritscm/grit/pkg/repo"
)

func newLogCmd() *cobra.Command {
	var (
		limit   int
		oneline bool
	)

	cmd := &cobra.Command{
		Use:   "log [identifier]",
		Short: "List commit history, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			identifier := ""
			if len(args) == 1 {
				identifier = args[0]
			}

			entries, err := r.Log(identifier, limit)
			if err != nil {
				return err
			}
			if oneline {
				printLogTable(entries)
				return nil
			}

			for _, entry := range entries {
				printCommit(entry)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit the number of commits shown")
	cmd.Flags().BoolVar(&oneline, "oneline", false, "One row per commit")
	return cmd
}

func printCommit(entry repo.LogEntry) {
	c := entry.Commit

	summary := ui.CommitSummary{
		Hash:    entry.Hash.Short(),
		Message: c.Message,
	}
	if c.Author != nil {
		summary.Author = c.Author.String()
		summary.Date = c.Author.When.Format(time.RFC1123)
	}
	os.Stdout.WriteString(ui.FormatCommit(summary) + "\n")
}

func printLogTable(entries []repo.LogEntry) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Commit", "Author", "Date", "Message")

	for _, entry := range entries {
		author, date := "", ""
		if entry.Commit.Author != nil {
			author = entry.Commit.Author.Name
			date = entry.Commit.Author.When.Format("2006-01-02 15:04")
		}
		table.Append(entry.Hash.Short(), author, date, entry.Commit.Message)
	}
	table.Render()
}
