package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
	"github.com/gritscm/grit/pkg/diff"
	"github.com/gritscm/grit/pkg/gritpath"
)

func newDiffCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "diff <from> [to]",
		Short: "Show line changes between two snapshots, or against the working directory",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			to := ""
			if len(args) == 2 {
				to = args[1]
			}

			diffs, err := r.Diff(args[0], to, gritpath.RelativePath(path))
			if err != nil {
				return err
			}
			if len(diffs) == 0 {
				fmt.Println(ui.Dim("No changes"))
				return nil
			}

			for _, fileDiff := range diffs {
				fmt.Println(ui.Section(fileDiff.Path.String()))
				for _, line := range strings.Split(strings.TrimSuffix(diff.Render(fileDiff.Ops), "\n"), "\n") {
					fmt.Println(ui.DiffLine(line))
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Restrict the diff to one file")
	return cmd
}
