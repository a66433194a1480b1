package worktree

import (
	iofs "io/fs"
	"path/filepath"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
)

// FileRef is one file inside a commit tree, flattened to its full
// path from the root.
type FileRef struct {
	Mode tree.EntryMode
	SHA  objects.ObjectHash
}

// CollectFiles flattens a tree into a map of slash-separated paths to
// file references, recursing through sub-trees. A nil tree yields an
// empty map.
func CollectFiles(objStore store.ObjectStore, root *tree.Tree) (map[gritpath.RelativePath]FileRef, error) {
	files := make(map[gritpath.RelativePath]FileRef)
	if root == nil {
		return files, nil
	}
	if err := collectInto(objStore, root, "", files); err != nil {
		return nil, err
	}
	return files, nil
}

func collectInto(objStore store.ObjectStore, t *tree.Tree, prefix gritpath.RelativePath, files map[gritpath.RelativePath]FileRef) error {
	for _, entry := range t.Entries() {
		path := prefix.Join(entry.Name())

		if entry.IsDirectory() {
			sub, err := store.ReadTree(objStore, entry.SHA())
			if err != nil {
				return err
			}
			if err := collectInto(objStore, sub, path, files); err != nil {
				return err
			}
			continue
		}

		files[path] = FileRef{Mode: entry.Mode(), SHA: entry.SHA()}
	}
	return nil
}

// ListWorkFiles walks the working directory below start and returns
// every regular file as a path relative to the root, skipping the
// repository's metadata directory. An empty start walks from the root.
func ListWorkFiles(root gritpath.RepositoryPath, start gritpath.RelativePath) ([]gritpath.RelativePath, error) {
	base := root.String()
	if start.String() != "" {
		abs, err := root.JoinRelative(start)
		if err != nil {
			return nil, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "list")
		}
		base = abs.String()
	}

	var paths []gritpath.RelativePath
	err := filepath.WalkDir(base, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == gritpath.GritDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root.String(), path)
		if err != nil {
			return err
		}
		paths = append(paths, gritpath.RelativePath(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, pkgName, "list")
	}
	return paths, nil
}
