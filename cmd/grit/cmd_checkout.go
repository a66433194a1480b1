package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <branch|tag|commit>",
		Short: "Materialize a snapshot onto the working directory",
		Long: "Writes every file of the named snapshot onto the working directory, " +
			"creating directories as needed and overwriting existing files. " +
			"Files not present in the snapshot are left in place.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			if err := r.Checkout(args[0]); err != nil {
				return err
			}
			fmt.Println(ui.SuccessMessage("Checked out", args[0]))
			return nil
		},
	}
}
