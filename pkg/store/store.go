package store

import (
	"fmt"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/blob"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/objects/tree"
)

const pkgName = "store"

// CodeObjectNotFound is raised when an object id has no stored object.
const CodeObjectNotFound = "OBJECT_NOT_FOUND"

// ErrObjectNotFound matches any read of a missing object.
var ErrObjectNotFound = errs.New(pkgName, CodeObjectNotFound, "", "object not found", nil)

// ObjectStore is the content-addressed storage boundary. Writes are
// idempotent: storing the same bytes twice yields the same hash and a
// single stored object.
type ObjectStore interface {
	// WriteObject stores an object and returns its hash. Writing an
	// object that already exists is a no-op returning the same hash.
	WriteObject(obj objects.Object) (objects.ObjectHash, error)

	// ReadObject retrieves an object by hash. Returns an error matching
	// ErrObjectNotFound when no such object is stored.
	ReadObject(hash objects.ObjectHash) (objects.Object, error)

	// HasObject reports whether an object exists in the store.
	HasObject(hash objects.ObjectHash) (bool, error)
}

// ReadTree reads an object and requires it to be a tree.
func ReadTree(s ObjectStore, hash objects.ObjectHash) (*tree.Tree, error) {
	obj, err := s.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	t, ok := obj.(*tree.Tree)
	if !ok {
		return nil, errs.New(pkgName, objects.CodeNotATree, "read_tree",
			fmt.Sprintf("object %s is a %s, not a tree", hash.Short(), obj.Type()), nil)
	}
	return t, nil
}

// ReadBlob reads an object and requires it to be a blob.
func ReadBlob(s ObjectStore, hash objects.ObjectHash) (*blob.Blob, error) {
	obj, err := s.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	b, ok := obj.(*blob.Blob)
	if !ok {
		return nil, errs.New(pkgName, objects.CodeNotABlob, "read_blob",
			fmt.Sprintf("object %s is a %s, not a blob", hash.Short(), obj.Type()), nil)
	}
	return b, nil
}

// ReadCommit reads an object and requires it to be a commit.
func ReadCommit(s ObjectStore, hash objects.ObjectHash) (*commit.Commit, error) {
	obj, err := s.ReadObject(hash)
	if err != nil {
		return nil, err
	}
	c, ok := obj.(*commit.Commit)
	if !ok {
		return nil, errs.New(pkgName, objects.CodeNotACommit, "read_commit",
			fmt.Sprintf("object %s is a %s, not a commit", hash.Short(), obj.Type()), nil)
	}
	return c, nil
}
