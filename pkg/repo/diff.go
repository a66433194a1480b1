package repo

import (
	"os"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/diff"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
	"github.com/gritscm/grit/pkg/worktree"
)

// FileDiff is the line-level change of one path between two snapshots.
type FileDiff struct {
	Path gritpath.RelativePath
	Ops  []diff.Op
}

// Diff compares the snapshot named by from against the snapshot named
// by to, or against the working directory when to is empty. With a
// non-empty path only that file is compared. Unchanged files are
// omitted from the result.
func (r *Repository) Diff(from, to string, path gritpath.RelativePath) ([]FileDiff, error) {
	fromTree, err := r.snapshotTree(from)
	if err != nil {
		return nil, err
	}

	if to == "" {
		return r.diffWorktree(fromTree, path)
	}

	toTree, err := r.snapshotTree(to)
	if err != nil {
		return nil, err
	}
	return r.diffTrees(fromTree, toTree, path)
}

func (r *Repository) snapshotTree(identifier string) (*tree.Tree, error) {
	hash, err := r.Resolve(identifier)
	if err != nil {
		return nil, err
	}
	c, err := store.ReadCommit(r.objects, hash)
	if err != nil {
		return nil, err
	}
	return store.ReadTree(r.objects, c.TreeSHA)
}

func (r *Repository) diffTrees(from, to *tree.Tree, only gritpath.RelativePath) ([]FileDiff, error) {
	fromFiles, err := worktree.CollectFiles(r.objects, from)
	if err != nil {
		return nil, err
	}
	toFiles, err := worktree.CollectFiles(r.objects, to)
	if err != nil {
		return nil, err
	}

	paths := unionPaths(fromFiles, toFiles)
	var diffs []FileDiff
	for _, path := range paths {
		if only != "" && path != only.Normalize() {
			continue
		}

		fromRef, inFrom := fromFiles[path]
		toRef, inTo := toFiles[path]
		if inFrom && inTo && fromRef.SHA == toRef.SHA {
			continue
		}

		left, err := r.blobText(fromRef, inFrom)
		if err != nil {
			return nil, err
		}
		right, err := r.blobText(toRef, inTo)
		if err != nil {
			return nil, err
		}

		ops := diff.Lines(left, right)
		if diff.Changed(ops) {
			diffs = append(diffs, FileDiff{Path: path, Ops: ops})
		}
	}
	return diffs, nil
}

func (r *Repository) diffWorktree(from *tree.Tree, only gritpath.RelativePath) ([]FileDiff, error) {
	fromFiles, err := worktree.CollectFiles(r.objects, from)
	if err != nil {
		return nil, err
	}
	onDisk, err := worktree.ListWorkFiles(r.root, "")
	if err != nil {
		return nil, err
	}

	diskSet := make(map[gritpath.RelativePath]struct{}, len(onDisk))
	for _, path := range onDisk {
		diskSet[path] = struct{}{}
	}

	var paths []gritpath.RelativePath
	for path := range fromFiles {
		paths = append(paths, path)
	}
	for _, path := range onDisk {
		if _, tracked := fromFiles[path]; !tracked {
			paths = append(paths, path)
		}
	}
	sortPaths(paths)

	var diffs []FileDiff
	for _, path := range paths {
		if only != "" && path != only.Normalize() {
			continue
		}

		fromRef, inFrom := fromFiles[path]
		left, err := r.blobText(fromRef, inFrom)
		if err != nil {
			return nil, err
		}

		var right string
		if _, present := diskSet[path]; present {
			abs, err := r.root.JoinRelative(path)
			if err != nil {
				return nil, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "diff")
			}
			data, err := os.ReadFile(abs.String())
			if err != nil {
				return nil, errs.Wrap(err, pkgName, "diff")
			}
			right = string(data)
		}

		ops := diff.Lines(left, right)
		if diff.Changed(ops) {
			diffs = append(diffs, FileDiff{Path: path, Ops: ops})
		}
	}
	return diffs, nil
}

func (r *Repository) blobText(ref worktree.FileRef, present bool) (string, error) {
	if !present {
		return "", nil
	}
	b, err := store.ReadBlob(r.objects, ref.SHA)
	if err != nil {
		return "", err
	}
	content, err := b.Content()
	if err != nil {
		return "", err
	}
	return content.String(), nil
}

func unionPaths(a, b map[gritpath.RelativePath]worktree.FileRef) []gritpath.RelativePath {
	var paths []gritpath.RelativePath
	for path := range a {
		paths = append(paths, path)
	}
	for path := range b {
		if _, ok := a[path]; !ok {
			paths = append(paths, path)
		}
	}
	sortPaths(paths)
	return paths
}
