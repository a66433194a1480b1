package commitmgr

import (
	"time"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/refs"
)

// Attributes is the caller-facing description of a commit. Only the
// message and one identity are required; everything else has a
// documented default, resolved once before composition:
//
//   - When defaults to the current time in UTC
//   - Encoding defaults to the fixed UTF-8 tag
//   - Ref defaults to the primary branch
//   - Tree defaults to the tree built from the staging area
//   - Committer defaults to the Author and vice versa
//   - identity timestamps default to When
type Attributes struct {
	Message   string
	Author    *commit.Person
	Committer *commit.Person

	When     time.Time
	Encoding string
	Ref      refs.RefPath

	// Tree pins the snapshot explicitly instead of building it from
	// the staging area.
	Tree objects.ObjectHash

	// AllowEmpty permits a commit whose tree matches the tip's.
	AllowEmpty bool
}

// resolved is an Attributes value with every default applied.
type resolved struct {
	Message    string
	Author     commit.Person
	Committer  commit.Person
	Encoding   string
	Ref        refs.RefPath
	Tree       objects.ObjectHash
	AllowEmpty bool
}

// resolve applies the default-computation rules and validates the
// required fields.
func (a Attributes) resolve() (resolved, error) {
	if a.Message == "" {
		return resolved{}, errs.New(pkgName, errs.CodeInvalidInput, "resolve",
			"commit message is required", nil)
	}
	if a.Author == nil && a.Committer == nil {
		return resolved{}, errs.New(pkgName, errs.CodeInvalidInput, "resolve",
			"an author or committer identity is required", nil)
	}

	when := a.When
	if when.IsZero() {
		when = time.Now().UTC()
	}

	author := a.Author
	if author == nil {
		author = a.Committer
	}
	committer := a.Committer
	if committer == nil {
		committer = a.Author
	}

	r := resolved{
		Message:    a.Message,
		Author:     withWhen(*author, when),
		Committer:  withWhen(*committer, when),
		Encoding:   a.Encoding,
		Ref:        a.Ref,
		Tree:       a.Tree,
		AllowEmpty: a.AllowEmpty,
	}
	if r.Encoding == "" {
		r.Encoding = commit.DefaultEncoding
	}
	if r.Ref == "" {
		r.Ref = refs.ExpandBranch(refs.DefaultBranch)
	}
	return r, nil
}

func withWhen(p commit.Person, when time.Time) commit.Person {
	if p.When.IsZero() {
		p.When = when
	}
	return p
}
