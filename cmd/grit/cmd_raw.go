package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRawCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "raw <tool> [args...]",
		Short: "Forward arguments verbatim to an external tool run at the repository root",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := findRepository()
			if err != nil {
				return err
			}

			out, err := r.Passthrough(cmd.Context(), args[0], args[1:]...)
			if out != "" {
				fmt.Print(out)
			}
			return err
		},
	}

	// Flags after the tool name belong to the tool, not to grit.
	cmd.Flags().SetInterspersed(false)
	return cmd
}
