package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show working directory divergence from the current tip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			report, err := r.Status()
			if err != nil {
				return err
			}

			if report.Branch != "" {
				fmt.Println(ui.BranchLine(report.Branch))
				fmt.Println()
			}

			if report.Clean() {
				fmt.Println(ui.SuccessMessage("Working directory clean"))
				return nil
			}

			if len(report.Staged) > 0 {
				fmt.Println(ui.Section("Staged for commit:"))
				for _, entry := range report.Staged {
					fmt.Println(ui.FormatStaged(entry.Path.String()))
				}
				fmt.Println()
			}
			if len(report.Modified) > 0 {
				fmt.Println(ui.Section("Modified:"))
				for _, path := range report.Modified {
					fmt.Println(ui.FormatModified(path.String()))
				}
				fmt.Println()
			}
			if len(report.Deleted) > 0 {
				fmt.Println(ui.Section("Deleted:"))
				for _, path := range report.Deleted {
					fmt.Println(ui.FormatDeleted(path.String()))
				}
				fmt.Println()
			}
			if len(report.New) > 0 {
				fmt.Println(ui.Section("Untracked:"))
				for _, path := range report.New {
					fmt.Println(ui.FormatNew(path.String()))
				}
			}
			return nil
		},
	}
}
