package refs

import "github.com/gritscm/grit/pkg/common/errs"

const pkgName = "refs"

// CodeUnresolvedReference is raised when an identifier matches no
// branch, no tag, and no stored commit id.
const CodeUnresolvedReference = "UNRESOLVED_REFERENCE"

// ErrUnresolvedReference matches any resolution failure.
var ErrUnresolvedReference = errs.New(pkgName, CodeUnresolvedReference, "", "unresolved reference", nil)
