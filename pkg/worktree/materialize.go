package worktree

import (
	"fmt"
	"os"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
)

// Materialize writes every blob reachable from the object onto the
// filesystem under basePath, creating intermediate directories and
// overwriting existing files. Files on disk that the tree does not
// mention are left alone; this is an additive write, not a sync.
// Anything other than a tree is rejected with ErrNotATree, both at the
// entry point and on every recursion step, since a stored hash carries
// no kind guarantee.
func Materialize(objStore store.ObjectStore, obj objects.Object, basePath gritpath.AbsolutePath) error {
	t, ok := obj.(*tree.Tree)
	if !ok {
		return errs.WrapWithCode(objects.ErrNotATree, pkgName, objects.CodeNotATree, "materialize")
	}

	if err := fileops.EnsureDir(basePath); err != nil {
		return errs.Wrap(err, pkgName, "materialize")
	}

	for _, entry := range t.Entries() {
		target := basePath.Join(entry.Name())

		if entry.IsDirectory() {
			sub, err := store.ReadTree(objStore, entry.SHA())
			if err != nil {
				return err
			}
			if err := Materialize(objStore, sub, target); err != nil {
				return err
			}
			continue
		}

		// Symlink entries are valid in the object model but this core
		// never stages them, so a hand-built tree carrying one is
		// rejected rather than written out as a regular file.
		if entry.Mode() == tree.ModeSymlink {
			return errs.New(pkgName, errs.CodeValidation, "materialize",
				fmt.Sprintf("entry %q is a symlink, which cannot be materialized", entry.Name()), nil)
		}

		b, err := store.ReadBlob(objStore, entry.SHA())
		if err != nil {
			return err
		}
		content, err := b.Content()
		if err != nil {
			return err
		}

		mode := os.FileMode(0644)
		if entry.IsExecutable() {
			mode = 0755
		}
		if err := writeWorkFile(target, content.Bytes(), mode); err != nil {
			return err
		}
	}

	return nil
}

// writeWorkFile replaces the file at target, lifting a read-only mode
// left behind by an earlier materialization first.
func writeWorkFile(target gritpath.AbsolutePath, data []byte, mode os.FileMode) error {
	if err := os.WriteFile(target.String(), data, mode); err != nil {
		if !os.IsPermission(err) {
			return errs.Wrap(err, pkgName, "materialize")
		}
		if chErr := os.Chmod(target.String(), 0644); chErr != nil {
			return errs.Wrap(err, pkgName, "materialize")
		}
		if err := os.WriteFile(target.String(), data, mode); err != nil {
			return errs.Wrap(err, pkgName, "materialize")
		}
	}
	return os.Chmod(target.String(), mode)
}
