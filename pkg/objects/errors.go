package objects

import "github.com/gritscm/grit/pkg/common/errs"

const pkgName = "objects"

// Codes for object kind mismatches. Raised wherever an operation
// expects one kind of object and finds another.
const (
	CodeNotATree   = "NOT_A_TREE"
	CodeNotABlob   = "NOT_A_BLOB"
	CodeNotACommit = "NOT_A_COMMIT"
)

var (
	// ErrNotATree matches any error raised because an object is not a tree.
	ErrNotATree = errs.New(pkgName, CodeNotATree, "", "object is not a tree", nil)

	// ErrNotABlob matches any error raised because an object is not a blob.
	ErrNotABlob = errs.New(pkgName, CodeNotABlob, "", "object is not a blob", nil)

	// ErrNotACommit matches any error raised because an object is not a commit.
	ErrNotACommit = errs.New(pkgName, CodeNotACommit, "", "object is not a commit", nil)
)
