package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gritscm/grit/cmd/ui"
	"github.com/gritscm/grit/pkg/commitmgr"
	"github.com/gritscm/grit/pkg/objects/commit"
)

func newCommitCmd() *cobra.Command {
	var (
		message    string
		authorSpec string
		allowEmpty bool
	)

	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Record the staged snapshot as a new commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("a commit message is required (-m)")
			}

			r, err := findRepository()
			if err != nil {
				return err
			}

			attrs := commitmgr.Attributes{
				Message:    message,
				AllowEmpty: allowEmpty,
			}
			if authorSpec != "" {
				person, err := commit.ParsePerson(authorSpec)
				if err != nil {
					return fmt.Errorf("invalid --author, expected \"Name <email> timestamp zone\": %w", err)
				}
				attrs.Author = person
			}

			hash, c, err := r.Commit(attrs)
			if err != nil {
				if errors.Is(err, commitmgr.ErrNothingToCommit) {
					fmt.Println(ui.Dim("Nothing to commit"))
					return nil
				}
				return err
			}

			fmt.Println(ui.SuccessMessage("Created commit", hash.Short()))
			fmt.Println(ui.Dim(c.Message))
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	cmd.Flags().StringVar(&authorSpec, "author", "", "Override the configured author")
	cmd.Flags().BoolVar(&allowEmpty, "allow-empty", false, "Permit a commit with an unchanged tree")
	return cmd
}
