package stage

import (
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
	"github.com/gritscm/grit/pkg/worktree"
)

// TreeBuilder turns the staged entries, overlaid on the files of the
// previous commit, into a stored tree hierarchy.
type TreeBuilder struct {
	objects store.ObjectStore
}

// NewTreeBuilder creates a builder over the given store.
func NewTreeBuilder(objStore store.ObjectStore) *TreeBuilder {
	return &TreeBuilder{objects: objStore}
}

// Build overlays the staged entries on the base snapshot and writes
// the resulting trees bottom-up, returning the root tree hash. Paths
// staged with new content replace their base counterparts; base files
// not restaged carry over unchanged. An empty result still writes the
// empty root tree, so the first commit of an empty repository has a
// valid tree to point at.
func (tb *TreeBuilder) Build(base map[gritpath.RelativePath]worktree.FileRef, staged []Entry) (objects.ObjectHash, error) {
	merged := make(map[gritpath.RelativePath]worktree.FileRef, len(base)+len(staged))
	for path, ref := range base {
		merged[path] = ref
	}
	for _, entry := range staged {
		merged[entry.Path] = worktree.FileRef{Mode: entry.Mode, SHA: entry.SHA}
	}

	root := newDirNode()
	for path, ref := range merged {
		root.insert(path.Components(), ref)
	}

	return tb.write(root)
}

// dirNode is one directory level of the tree being assembled.
type dirNode struct {
	files map[string]worktree.FileRef
	dirs  map[string]*dirNode
}

func newDirNode() *dirNode {
	return &dirNode{
		files: make(map[string]worktree.FileRef),
		dirs:  make(map[string]*dirNode),
	}
}

func (n *dirNode) insert(components []string, ref worktree.FileRef) {
	if len(components) == 0 {
		return
	}
	if len(components) == 1 {
		n.files[components[0]] = ref
		return
	}

	child, ok := n.dirs[components[0]]
	if !ok {
		child = newDirNode()
		n.dirs[components[0]] = child
	}
	child.insert(components[1:], ref)
}

// write stores the node's subtree depth-first and returns its hash.
func (tb *TreeBuilder) write(n *dirNode) (objects.ObjectHash, error) {
	entries := make([]*tree.Entry, 0, len(n.files)+len(n.dirs))

	for name, child := range n.dirs {
		childHash, err := tb.write(child)
		if err != nil {
			return "", err
		}
		entry, err := tree.NewEntry(tree.ModeDirectory, name, childHash)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry)
	}

	for name, ref := range n.files {
		entry, err := tree.NewEntry(ref.Mode, name, ref.SHA)
		if err != nil {
			return "", err
		}
		entries = append(entries, entry)
	}

	return tb.objects.WriteObject(tree.NewTree(entries))
}
