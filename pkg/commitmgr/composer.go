package commitmgr

import (
	"fmt"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/logger"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/refs"
	"github.com/gritscm/grit/pkg/stage"
	"github.com/gritscm/grit/pkg/store"
	"github.com/gritscm/grit/pkg/worktree"
)

// Composer builds commits from attributes and advances the target
// reference atomically. Optimistic concurrency via the ref store's
// compare-and-swap is the only guard; there are no locks, so two
// composers racing on one ref see exactly one winner.
type Composer struct {
	objects store.ObjectStore
	refs    refs.Store
	area    *stage.Area
	builder *stage.TreeBuilder
}

// NewComposer creates a composer over the given stores and staging area.
func NewComposer(objStore store.ObjectStore, refStore refs.Store, area *stage.Area) *Composer {
	return &Composer{
		objects: objStore,
		refs:    refStore,
		area:    area,
		builder: stage.NewTreeBuilder(objStore),
	}
}

// Compose resolves the attributes, builds the snapshot tree, writes
// the commit and advances the reference:
//
//  1. read the current tip of the target ref
//  2. an existing tip becomes the sole parent
//  3. write the commit object
//  4. compare-and-swap the ref from the tip read in step 1; a lost
//     race fails with ErrReferenceChanged and the caller retries
//  5. with no tip the commit has no parents and the ref is created
//     only if still unset, bootstrapping the primary branch as well
//
// A tree identical to the tip's is rejected with ErrNothingToCommit
// unless AllowEmpty is set. On success the staging area is emptied.
func (c *Composer) Compose(attrs Attributes) (objects.ObjectHash, *commit.Commit, error) {
	r, err := attrs.resolve()
	if err != nil {
		return "", nil, err
	}

	tipHash, hasTip, err := c.refs.Get(r.Ref)
	if err != nil {
		return "", nil, err
	}

	var tip *commit.Commit
	if hasTip {
		tip, err = store.ReadCommit(c.objects, tipHash)
		if err != nil {
			return "", nil, err
		}
	}

	treeHash := r.Tree
	if treeHash == "" {
		treeHash, err = c.buildTree(tip)
		if err != nil {
			return "", nil, err
		}
	}

	if !r.AllowEmpty {
		if hasTip && treeHash == tip.TreeSHA {
			return "", nil, errs.New(pkgName, CodeNothingToCommit, "compose",
				"tree is identical to the current tip", nil)
		}
		if !hasTip && r.Tree == "" && c.area.IsEmpty() {
			return "", nil, errs.New(pkgName, CodeNothingToCommit, "compose",
				"nothing staged for the first commit", nil)
		}
	}

	builder := commit.NewBuilder().
		Tree(treeHash).
		Author(&r.Author).
		Committer(&r.Committer).
		Encoding(r.Encoding).
		Message(r.Message)
	if hasTip {
		builder.Parent(tipHash)
	}
	newCommit, err := builder.Build()
	if err != nil {
		return "", nil, err
	}

	newHash, err := c.objects.WriteObject(newCommit)
	if err != nil {
		return "", nil, err
	}

	if err := c.advance(r.Ref, tipHash, newHash, hasTip); err != nil {
		return "", nil, err
	}

	c.area.Clear()
	if err := c.area.Save(); err != nil {
		return "", nil, err
	}

	logger.Info("created commit", "hash", newHash.Short(), "ref", r.Ref)
	return newHash, newCommit, nil
}

// buildTree assembles the snapshot from the tip's files overlaid with
// the staged entries.
func (c *Composer) buildTree(tip *commit.Commit) (objects.ObjectHash, error) {
	var base map[gritpath.RelativePath]worktree.FileRef
	if tip != nil {
		tipTree, err := store.ReadTree(c.objects, tip.TreeSHA)
		if err != nil {
			return "", err
		}
		base, err = worktree.CollectFiles(c.objects, tipTree)
		if err != nil {
			return "", err
		}
	}
	return c.builder.Build(base, c.area.Entries())
}

// advance moves the ref to the new commit with the appropriate
// atomic primitive.
func (c *Composer) advance(ref refs.RefPath, oldTip, newHash objects.ObjectHash, hasTip bool) error {
	if hasTip {
		ok, err := c.refs.CompareAndSwap(ref, oldTip, newHash)
		if err != nil {
			return err
		}
		if !ok {
			return errs.New(pkgName, CodeReferenceChanged, "advance",
				fmt.Sprintf("ref %s moved since its tip was read", ref), nil)
		}
		return nil
	}

	ok, err := c.refs.CreateIfUnset(ref, newHash)
	if err != nil {
		return err
	}
	if !ok {
		return errs.New(pkgName, CodeReferenceChanged, "advance",
			fmt.Sprintf("ref %s was created concurrently", ref), nil)
	}

	// First commit on a non-default ref still bootstraps the primary
	// branch so the repository always has one.
	primary := refs.ExpandBranch(refs.DefaultBranch)
	if ref != primary {
		if _, err := c.refs.CreateIfUnset(primary, newHash); err != nil {
			return err
		}
	}
	return nil
}
