package tree

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/gritscm/grit/pkg/objects"
)

// Tree is a directory snapshot: a sorted list of entries pointing at
// blobs and subtrees. Entries are sorted by name with directories first
// on ties, so identical directory states always hash identically.
type Tree struct {
	entries []*Entry
	hash    *objects.ObjectHash
}

// NewTree creates a tree from the given entries. Entries are sorted;
// the caller is responsible for not passing duplicate names.
func NewTree(entries []*Entry) *Tree {
	t := &Tree{entries: entries}
	t.sortEntries()
	return t
}

// ParseTree parses a tree from serialized data, header included.
func ParseTree(data []byte) (*Tree, error) {
	content, err := objects.ParseSerializedObject(data, objects.TreeType)
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	offset := 0
	for offset < len(content) {
		entry, next, err := deserializeEntry(content, offset)
		if err != nil {
			return nil, fmt.Errorf("parse tree entry at offset %d: %w", offset, err)
		}
		entries = append(entries, entry)
		offset = next
	}

	t := &Tree{entries: entries}
	t.sortEntries()

	hash := objects.NewObjectHash(data)
	t.hash = &hash

	return t, nil
}

// Type returns the object type.
func (t *Tree) Type() objects.ObjectType {
	return objects.TreeType
}

// Content returns the serialized entries without the storage header.
func (t *Tree) Content() (objects.ObjectContent, error) {
	if len(t.entries) == 0 {
		return objects.ObjectContent{}, nil
	}

	var buf bytes.Buffer
	for _, entry := range t.entries {
		serialized, err := entry.serialize()
		if err != nil {
			return nil, fmt.Errorf("serialize tree entry %s: %w", entry.Name(), err)
		}
		buf.Write(serialized)
	}

	return objects.ObjectContent(buf.Bytes()), nil
}

// Hash returns the content-address of the tree.
func (t *Tree) Hash() (objects.ObjectHash, error) {
	if t.hash != nil {
		return *t.hash, nil
	}

	content, err := t.Content()
	if err != nil {
		return "", err
	}

	hash := objects.ComputeObjectHash(objects.TreeType, content)
	t.hash = &hash
	return hash, nil
}

// Size returns the content size in bytes.
func (t *Tree) Size() (int64, error) {
	content, err := t.Content()
	if err != nil {
		return 0, err
	}
	return content.Size(), nil
}

// Serialize writes the tree in storage format.
func (t *Tree) Serialize(w io.Writer) error {
	content, err := t.Content()
	if err != nil {
		return err
	}

	if _, err := w.Write(objects.CreateHeader(objects.TreeType, content.Size())); err != nil {
		return fmt.Errorf("write tree header: %w", err)
	}
	if _, err := w.Write(content.Bytes()); err != nil {
		return fmt.Errorf("write tree content: %w", err)
	}

	return nil
}

// Entries returns a copy of the entries in sorted order.
func (t *Tree) Entries() []*Entry {
	entries := make([]*Entry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Find returns the entry with the exact given name, or nil.
func (t *Tree) Find(name string) *Entry {
	for _, entry := range t.entries {
		if entry.Name() == name {
			return entry
		}
	}
	return nil
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree) IsEmpty() bool {
	return len(t.entries) == 0
}

// String returns a human-readable representation.
func (t *Tree) String() string {
	hash, err := t.Hash()
	if err != nil {
		return fmt.Sprintf("Tree{entries: %d, error: %v}", len(t.entries), err)
	}
	return fmt.Sprintf("Tree{entries: %d, hash: %s}", len(t.entries), hash.Short())
}

func (t *Tree) sortEntries() {
	sort.Slice(t.entries, func(i, j int) bool {
		return t.entries[i].compareTo(t.entries[j]) < 0
	})
}
