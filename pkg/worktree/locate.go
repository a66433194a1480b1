package worktree

import (
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/blob"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
)

// Locate walks a slash-separated path through nested trees and returns
// the object it names. Intermediate components must name sub-trees; a
// component that is missing, or that names a blob mid-path, yields
// found=false without error. An empty path names the root tree itself.
func Locate(objStore store.ObjectStore, root *tree.Tree, path gritpath.RelativePath) (objects.Object, bool, error) {
	if root == nil {
		return nil, false, nil
	}

	components := path.Normalize().Components()
	if len(components) == 0 {
		return root, true, nil
	}

	current := root
	for i, name := range components {
		entry := current.Find(name)
		if entry == nil {
			return nil, false, nil
		}

		last := i == len(components)-1
		if !entry.IsDirectory() {
			if !last {
				return nil, false, nil
			}
			b, err := store.ReadBlob(objStore, entry.SHA())
			if err != nil {
				return nil, false, err
			}
			return b, true, nil
		}

		sub, err := store.ReadTree(objStore, entry.SHA())
		if err != nil {
			return nil, false, err
		}
		if last {
			return sub, true, nil
		}
		current = sub
	}

	return nil, false, nil
}

// LocateBlob locates a path and requires it to name a file.
// A directory at the path yields found=false.
func LocateBlob(objStore store.ObjectStore, root *tree.Tree, path gritpath.RelativePath) (*blob.Blob, bool, error) {
	obj, found, err := Locate(objStore, root, path)
	if err != nil || !found {
		return nil, false, err
	}

	b, ok := obj.(*blob.Blob)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}
