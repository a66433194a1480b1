package commitmgr

import "github.com/gritscm/grit/pkg/common/errs"

const pkgName = "commitmgr"

const (
	// CodeReferenceChanged is raised when the target ref moved between
	// reading its tip and the compare-and-swap. The caller retries with
	// fresh state; no retry happens internally, since an automatic one
	// could silently reparent the commit.
	CodeReferenceChanged = "REFERENCE_CHANGED"

	// CodeNothingToCommit is raised when the composed tree is identical
	// to the current tip's tree.
	CodeNothingToCommit = "NOTHING_TO_COMMIT"
)

var (
	// ErrReferenceChanged matches any optimistic concurrency conflict.
	ErrReferenceChanged = errs.New(pkgName, CodeReferenceChanged, "", "reference changed concurrently", nil)

	// ErrNothingToCommit matches any empty-commit rejection.
	ErrNothingToCommit = errs.New(pkgName, CodeNothingToCommit, "", "nothing to commit", nil)
)
