package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
)

func newTagCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "tag [name]",
		Short: "List tags, or create one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				if err := r.CreateTag(args[0], at); err != nil {
					return err
				}
				fmt.Println(ui.SuccessMessage("Created tag", args[0]))
				return nil
			}

			tags, err := r.Tags()
			if err != nil {
				return err
			}
			for _, tag := range tags {
				fmt.Printf("  %s %s\n", tag.Name, ui.Dim(tag.Hash.Short()))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "Commit the new tag points at (default: current tip)")
	return cmd
}
