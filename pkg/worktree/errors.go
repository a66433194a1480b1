package worktree

import "github.com/gritscm/grit/pkg/common/errs"

const pkgName = "worktree"

// CodePathNotTracked is raised when a path neither exists on disk nor
// appears in the commit tree it is compared against.
const CodePathNotTracked = "PATH_NOT_TRACKED"

// ErrPathNotTracked matches any classification failure for an unknown path.
var ErrPathNotTracked = errs.New(pkgName, CodePathNotTracked, "", "path not tracked", nil)
