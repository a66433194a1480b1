package main

import (
	"fmt"
	"os"

	"github.com/gritscm/grit/pkg/repo"
)

// findRepository locates the repository from the current directory,
// walking upwards like the porcelain commands of other tools do.
func findRepository() (*repo.Repository, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	r, err := repo.Find(cwd)
	if err != nil {
		return nil, fmt.Errorf("not a grit repository (or any parent up to mount point)")
	}
	return r, nil
}
