package refs

import (
	"fmt"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/store"
)

// Resolver turns a user-supplied identifier into a commit hash.
// Candidates are tried in a fixed order so a branch always shadows a
// tag of the same name, and both shadow a literal commit id:
//
//  1. branch ref (refs/heads/<id>)
//  2. tag ref (refs/tags/<id>)
//  3. full commit hash stored in the object database
type Resolver struct {
	refs    Store
	objects store.ObjectStore
}

// NewResolver creates a resolver over the given ref and object stores.
func NewResolver(refs Store, objects store.ObjectStore) *Resolver {
	return &Resolver{refs: refs, objects: objects}
}

// Resolve maps an identifier to the commit hash it names. The HEAD
// identifier resolves through the symbolic HEAD ref. Unknown
// identifiers yield ErrUnresolvedReference.
func (r *Resolver) Resolve(identifier string) (objects.ObjectHash, error) {
	if identifier == "" {
		return "", errs.New(pkgName, errs.CodeInvalidInput, "resolve",
			"empty identifier", nil)
	}

	candidates := []RefPath{
		ExpandBranch(identifier),
		ExpandTag(identifier),
	}
	if identifier == string(Head) {
		candidates = []RefPath{Head}
	}

	for _, ref := range candidates {
		hash, found, err := r.refs.Get(ref)
		if err != nil {
			return "", err
		}
		if found {
			return hash, nil
		}
	}

	if hash, ok := r.resolveLiteral(identifier); ok {
		return hash, nil
	}

	return "", errs.New(pkgName, CodeUnresolvedReference, "resolve",
		fmt.Sprintf("cannot resolve %q to a commit", identifier), nil)
}

// ResolveToCommit resolves an identifier and loads the commit it
// names. A hash that points at a non-commit object is rejected.
func (r *Resolver) ResolveToCommit(identifier string) (objects.ObjectHash, *commit.Commit, error) {
	hash, err := r.Resolve(identifier)
	if err != nil {
		return "", nil, err
	}

	c, err := store.ReadCommit(r.objects, hash)
	if err != nil {
		return "", nil, err
	}
	return hash, c, nil
}

// resolveLiteral accepts a full hash only when the store holds it and
// the stored object is a commit. Blob and tree hashes do not resolve.
func (r *Resolver) resolveLiteral(identifier string) (objects.ObjectHash, bool) {
	hash, err := objects.ParseObjectHash(identifier)
	if err != nil {
		return "", false
	}

	obj, err := r.objects.ReadObject(hash)
	if err != nil || obj.Type() != objects.CommitType {
		return "", false
	}
	return hash, true
}
