package repo

import (
	"fmt"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/refs"
)

// RefInfo is one branch or tag in a listing.
type RefInfo struct {
	Name    string
	Hash    objects.ObjectHash
	Current bool
}

// CurrentBranch returns the short name of the branch HEAD points at,
// or false when HEAD is detached or unset.
func (r *Repository) CurrentBranch() (string, bool, error) {
	branch, ok, err := r.refs.CurrentBranch()
	if err != nil || !ok {
		return "", false, err
	}
	return branch.ShortName(), true, nil
}

// CreateBranch creates a branch pointing at the commit named by at
// (default: the current tip). An existing branch is rejected.
func (r *Repository) CreateBranch(name, at string) error {
	return r.createRef(refs.ExpandBranch(name), name, at)
}

// CreateTag creates a tag pointing at the commit named by at
// (default: the current tip). An existing tag is rejected.
func (r *Repository) CreateTag(name, at string) error {
	return r.createRef(refs.ExpandTag(name), name, at)
}

func (r *Repository) createRef(ref refs.RefPath, name, at string) error {
	if !ref.IsValid() {
		return errs.New(pkgName, errs.CodeInvalidInput, "create_ref",
			fmt.Sprintf("invalid ref name %q", name), nil)
	}

	if at == "" {
		at = string(refs.Head)
	}
	target, err := r.Resolve(at)
	if err != nil {
		return err
	}

	created, err := r.refs.CreateIfUnset(ref, target)
	if err != nil {
		return err
	}
	if !created {
		return errs.New(pkgName, errs.CodeAlreadyExists, "create_ref",
			fmt.Sprintf("%s already exists", ref), nil)
	}
	return nil
}

// Branches lists all branches sorted by name, marking the current one.
func (r *Repository) Branches() ([]RefInfo, error) {
	return r.listRefs(refs.RefPath.IsBranch)
}

// Tags lists all tags sorted by name.
func (r *Repository) Tags() ([]RefInfo, error) {
	return r.listRefs(refs.RefPath.IsTag)
}

func (r *Repository) listRefs(keep func(refs.RefPath) bool) ([]RefInfo, error) {
	all, err := r.refs.List()
	if err != nil {
		return nil, err
	}

	current, _, err := r.refs.CurrentBranch()
	if err != nil {
		return nil, err
	}

	var infos []RefInfo
	for _, ref := range all {
		if !keep(ref) {
			continue
		}
		hash, found, err := r.refs.Get(ref)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		infos = append(infos, RefInfo{
			Name:    ref.ShortName(),
			Hash:    hash,
			Current: ref == current,
		})
	}
	return infos, nil
}
