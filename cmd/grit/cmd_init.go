package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
	"github.com/gritscm/grit/pkg/repo"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Create an empty grit repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			if path == "." {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				path = cwd
			}

			r, err := repo.Init(path)
			if err != nil {
				return err
			}

			fmt.Println(ui.SuccessMessage("Initialized empty grit repository in", r.Root().String()))
			return nil
		},
	}
}
