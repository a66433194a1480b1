package repo

import (
	"context"
	"sort"

	"github.com/gritscm/grit/pkg/commitmgr"
	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/refs"
	"github.com/gritscm/grit/pkg/stage"
	"github.com/gritscm/grit/pkg/store"
	"github.com/gritscm/grit/pkg/worktree"
)

// Resolve maps an identifier (branch, tag or full commit hash) to a
// commit hash, branch winning on name collision.
func (r *Repository) Resolve(identifier string) (objects.ObjectHash, error) {
	return r.resolver.Resolve(identifier)
}

// Tip returns the commit the current branch points at. found is false
// before the first commit.
func (r *Repository) Tip() (objects.ObjectHash, *commit.Commit, bool, error) {
	hash, found, err := r.refs.Get(refs.Head)
	if err != nil || !found {
		return "", nil, false, err
	}

	c, err := store.ReadCommit(r.objects, hash)
	if err != nil {
		return "", nil, false, err
	}
	return hash, c, true, nil
}

// TipTree returns the current tip's tree, or nil before the first
// commit.
func (r *Repository) TipTree() (*tree.Tree, error) {
	_, c, found, err := r.Tip()
	if err != nil || !found {
		return nil, err
	}
	return store.ReadTree(r.objects, c.TreeSHA)
}

// Classify determines how one path diverges from the current tip.
func (r *Repository) Classify(path gritpath.RelativePath) (worktree.Status, error) {
	tip, err := r.TipTree()
	if err != nil {
		return 0, err
	}
	return r.detector.Classify(tip, path)
}

// StatusReport summarizes working directory divergence from the tip.
type StatusReport struct {
	Branch   string
	New      []gritpath.RelativePath
	Modified []gritpath.RelativePath
	Deleted  []gritpath.RelativePath
	Staged   []stage.Entry
}

// Clean reports whether nothing diverges and nothing is staged.
func (s *StatusReport) Clean() bool {
	return len(s.New) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0 && len(s.Staged) == 0
}

// Status classifies every path known to either the tip tree or the
// working directory. Ignored paths are excluded from the new list.
func (r *Repository) Status() (*StatusReport, error) {
	tip, err := r.TipTree()
	if err != nil {
		return nil, err
	}
	tracked, err := worktree.CollectFiles(r.objects, tip)
	if err != nil {
		return nil, err
	}
	onDisk, err := worktree.ListWorkFiles(r.root, "")
	if err != nil {
		return nil, err
	}
	patterns, err := r.ignorePatterns()
	if err != nil {
		return nil, err
	}

	report := &StatusReport{Staged: r.area.Entries()}
	if branch, ok, err := r.refs.CurrentBranch(); err != nil {
		return nil, err
	} else if ok {
		report.Branch = branch.ShortName()
	}

	seen := make(map[gritpath.RelativePath]struct{}, len(onDisk))
	for _, path := range onDisk {
		seen[path] = struct{}{}

		status, err := r.detector.Classify(tip, path)
		if err != nil {
			return nil, err
		}
		switch status {
		case worktree.StatusNew:
			if !patterns.IsIgnored(path.String()) {
				report.New = append(report.New, path)
			}
		case worktree.StatusModified:
			report.Modified = append(report.Modified, path)
		}
	}

	for path := range tracked {
		if _, ok := seen[path]; !ok {
			report.Deleted = append(report.Deleted, path)
		}
	}
	sortPaths(report.New)
	sortPaths(report.Modified)
	sortPaths(report.Deleted)

	return report, nil
}

// Add stages the paths under pathspec that diverge from the tip:
// modified files always, new files only when includeNew is set. An
// empty pathspec covers the whole working directory. The staged paths
// are returned sorted.
func (r *Repository) Add(ctx context.Context, pathspec string, includeNew bool) ([]gritpath.RelativePath, error) {
	patterns, err := r.ignorePatterns()
	if err != nil {
		return nil, err
	}
	tip, err := r.TipTree()
	if err != nil {
		return nil, err
	}

	selector := stage.NewSelector(r.objects, r.root, r.area, patterns)
	candidates, err := selector.Candidates(gritpath.RelativePath(pathspec))
	if err != nil {
		return nil, err
	}
	return selector.Select(ctx, tip, candidates, includeNew)
}

// Commit composes a commit from the staging area. A missing identity
// falls back to the configured user; a missing target ref falls back
// to the current branch.
func (r *Repository) Commit(attrs commitmgr.Attributes) (objects.ObjectHash, *commit.Commit, error) {
	if attrs.Author == nil && attrs.Committer == nil {
		person, err := r.configuredIdentity()
		if err != nil {
			return "", nil, err
		}
		attrs.Author = person
	}
	if attrs.Ref == "" {
		if branch, ok, err := r.refs.CurrentBranch(); err != nil {
			return "", nil, err
		} else if ok {
			attrs.Ref = branch
		}
	}

	composer := commitmgr.NewComposer(r.objects, r.refs, r.area)
	return composer.Compose(attrs)
}

// Checkout materializes the snapshot named by identifier onto the
// working directory. Files absent from the snapshot are not deleted.
// When the identifier names a branch, HEAD moves to it.
func (r *Repository) Checkout(identifier string) error {
	hash, err := r.Resolve(identifier)
	if err != nil {
		return err
	}
	c, err := store.ReadCommit(r.objects, hash)
	if err != nil {
		return err
	}
	snapshot, err := store.ReadTree(r.objects, c.TreeSHA)
	if err != nil {
		return err
	}

	if err := worktree.Materialize(r.objects, snapshot, gritpath.AbsolutePath(r.root)); err != nil {
		return err
	}

	branch := refs.ExpandBranch(identifier)
	if _, isBranch, err := r.refs.Get(branch); err != nil {
		return err
	} else if isBranch && branch.IsBranch() {
		return r.refs.SetHead(branch)
	}
	return nil
}

// LogEntry is one commit in a history listing.
type LogEntry struct {
	Hash   objects.ObjectHash
	Commit *commit.Commit
}

// Log lists history starting at identifier (default HEAD), following
// first parents, newest first. A non-positive limit lists everything.
func (r *Repository) Log(identifier string, limit int) ([]LogEntry, error) {
	if identifier == "" {
		identifier = string(refs.Head)
	}

	hash, err := r.Resolve(identifier)
	if err != nil {
		return nil, err
	}

	var entries []LogEntry
	for hash != "" {
		if limit > 0 && len(entries) >= limit {
			break
		}

		c, err := store.ReadCommit(r.objects, hash)
		if err != nil {
			return nil, err
		}
		entries = append(entries, LogEntry{Hash: hash, Commit: c})

		if c.IsRoot() {
			break
		}
		hash = c.ParentSHAs[0]
	}
	return entries, nil
}

// configuredIdentity builds a person from user.name and user.email.
func (r *Repository) configuredIdentity() (*commit.Person, error) {
	name := r.config.UserName()
	email := r.config.UserEmail()
	if name == "" || email == "" {
		return nil, errs.New(pkgName, errs.CodeInvalidInput, "identity",
			"user.name and user.email are not configured", nil)
	}
	return &commit.Person{Name: name, Email: email}, nil
}

func sortPaths(paths []gritpath.RelativePath) {
	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
}
