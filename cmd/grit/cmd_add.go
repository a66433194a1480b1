package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
)

func newAddCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "add [path]",
		Short: "Stage modified files, and new files with --all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			pathspec := ""
			if len(args) == 1 && args[0] != "." {
				pathspec = args[0]
			}

			// Naming a single path implies staging it even when new.
			includeNew := all || pathspec != ""

			staged, err := r.Add(cmd.Context(), pathspec, includeNew)
			if err != nil {
				return err
			}

			if len(staged) == 0 {
				fmt.Println(ui.Dim("Nothing to stage"))
				return nil
			}
			for _, path := range staged {
				fmt.Println(ui.FormatStaged(path.String()))
			}
			fmt.Println(ui.SuccessMessage(fmt.Sprintf("Staged %d file(s)", len(staged))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "A", false, "Also stage untracked files")
	return cmd
}
