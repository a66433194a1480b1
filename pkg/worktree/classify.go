package worktree

import (
	"fmt"
	"os"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
)

// Detector classifies working directory paths against a commit tree
// by content hash. Timestamps and file metadata play no part; a file
// rewritten with identical bytes stays unchanged.
type Detector struct {
	objects store.ObjectStore
	root    gritpath.RepositoryPath
}

// NewDetector creates a detector over the given store and working
// directory root.
func NewDetector(objStore store.ObjectStore, root gritpath.RepositoryPath) *Detector {
	return &Detector{objects: objStore, root: root}
}

// Classify determines the status of one path relative to the tree of
// the commit being compared against. A nil tip means no commit exists
// yet, so every file on disk is new. A path known to neither side
// yields ErrPathNotTracked.
func (d *Detector) Classify(tip *tree.Tree, path gritpath.RelativePath) (Status, error) {
	diskHash, onDisk, err := d.hashWorkFile(path)
	if err != nil {
		return 0, err
	}

	tracked, inTree, err := LocateBlob(d.objects, tip, path)
	if err != nil {
		return 0, err
	}

	switch {
	case !onDisk && !inTree:
		return 0, errs.New(pkgName, CodePathNotTracked, "classify",
			fmt.Sprintf("path %s is neither on disk nor in the commit tree", path), nil)
	case !inTree:
		return StatusNew, nil
	case !onDisk:
		return StatusDeleted, nil
	}

	trackedHash, err := tracked.Hash()
	if err != nil {
		return 0, err
	}
	if diskHash.Equal(trackedHash) {
		return StatusUnchanged, nil
	}
	return StatusModified, nil
}

// hashWorkFile hashes the on-disk file the way the store would,
// so equality against stored blobs is exact.
func (d *Detector) hashWorkFile(path gritpath.RelativePath) (objects.ObjectHash, bool, error) {
	abs, err := d.root.JoinRelative(path)
	if err != nil {
		return "", false, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "classify")
	}

	content, err := os.ReadFile(abs.String())
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errs.Wrap(err, pkgName, "classify")
	}

	return objects.ComputeObjectHash(objects.BlobType, content), true, nil
}
