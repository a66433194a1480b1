package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
)

func newBranchCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "branch [name]",
		Short: "List branches, or create one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := r.CreateBranch(args[0], at); err != nil {
					return err
				}
				fmt.Println(ui.SuccessMessage("Created branch", args[0]))
				return nil
			}

			branches, err := r.Branches()
			if err != nil {
				return err
			}
			for _, branch := range branches {
				marker := "  "
				name := branch.Name
				if branch.Current {
					marker = "* "
					name = ui.Green(name)
				}
				fmt.Printf("%s%s %s\n", marker, name, ui.Dim(branch.Hash.Short()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Commit the new branch points at (default: current tip)")
	return cmd
}
