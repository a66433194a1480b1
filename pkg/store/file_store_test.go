package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/blob"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/objects/tree"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	gd := gritpath.GritDirPath(filepath.Join(t.TempDir(), ".grit"))
	fs := NewFileStore(gd)
	if err := fs.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return fs
}

func TestWriteReadBlob(t *testing.T) {
	fs := newTestStore(t)

	b := blob.NewBlob([]byte("hello world\n"))
	hash, err := fs.WriteObject(b)
	if err != nil {
		t.Fatalf("WriteObject: %v", err)
	}
	if hash != "3b18e512dba79e4c8300dd08aeb37f8e728b8dad" {
		t.Errorf("hash = %s", hash)
	}

	got, err := ReadBlob(fs, hash)
	if err != nil {
		t.Fatalf("ReadBlob: %v", err)
	}
	content, _ := got.Content()
	if content.String() != "hello world\n" {
		t.Errorf("content = %q", content)
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	fs := newTestStore(t)

	b := blob.NewBlob([]byte("same"))
	h1, err := fs.WriteObject(b)
	if err != nil {
		t.Fatal(err)
	}
	h2, err := fs.WriteObject(blob.NewBlob([]byte("same")))
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("hashes differ: %s vs %s", h1, h2)
	}
}

func TestObjectFanoutLayout(t *testing.T) {
	dir := t.TempDir()
	gd := gritpath.GritDirPath(filepath.Join(dir, ".grit"))
	fs := NewFileStore(gd)
	if err := fs.Init(); err != nil {
		t.Fatal(err)
	}

	hash, err := fs.WriteObject(blob.NewBlob([]byte("layout")))
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dir, ".grit", "objects", hash.String()[:2], hash.String()[2:])
	if _, err := os.Stat(want); err != nil {
		t.Errorf("object file not at fanout path %s: %v", want, err)
	}
}

func TestReadMissingObject(t *testing.T) {
	fs := newTestStore(t)

	missing := objects.ObjectHash("0123456789abcdef0123456789abcdef01234567")
	_, err := fs.ReadObject(missing)
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("want ErrObjectNotFound, got %v", err)
	}

	ok, err := fs.HasObject(missing)
	if err != nil || ok {
		t.Errorf("HasObject = %v, %v", ok, err)
	}
}

func TestReadRejectsInvalidHash(t *testing.T) {
	fs := newTestStore(t)
	if _, err := fs.ReadObject("nothex"); err == nil {
		t.Error("invalid hash should be rejected")
	}
}

func TestTypedReaders(t *testing.T) {
	fs := newTestStore(t)

	blobHash, err := fs.WriteObject(blob.NewBlob([]byte("file")))
	if err != nil {
		t.Fatal(err)
	}

	entry, err := tree.NewEntry(tree.ModeRegular, "file.txt", blobHash)
	if err != nil {
		t.Fatal(err)
	}
	treeHash, err := fs.WriteObject(tree.NewTree([]*tree.Entry{entry}))
	if err != nil {
		t.Fatal(err)
	}

	person, err := commit.NewPerson("Test", "test@example.com", time.Unix(1700000000, 0).UTC())
	if err != nil {
		t.Fatal(err)
	}
	c, err := commit.NewBuilder().
		Tree(treeHash).
		Author(person).
		Committer(person).
		Message("msg").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	commitHash, err := fs.WriteObject(c)
	if err != nil {
		t.Fatal(err)
	}

	// Correct kinds round-trip.
	if _, err := ReadTree(fs, treeHash); err != nil {
		t.Errorf("ReadTree: %v", err)
	}
	gotCommit, err := ReadCommit(fs, commitHash)
	if err != nil {
		t.Fatalf("ReadCommit: %v", err)
	}
	if gotCommit.TreeSHA != treeHash {
		t.Errorf("commit tree = %s", gotCommit.TreeSHA)
	}

	// Kind mismatches surface typed errors.
	if _, err := ReadTree(fs, blobHash); !errors.Is(err, objects.ErrNotATree) {
		t.Errorf("ReadTree on blob: %v", err)
	}
	if _, err := ReadBlob(fs, treeHash); !errors.Is(err, objects.ErrNotABlob) {
		t.Errorf("ReadBlob on tree: %v", err)
	}
	if _, err := ReadCommit(fs, blobHash); !errors.Is(err, objects.ErrNotACommit) {
		t.Errorf("ReadCommit on blob: %v", err)
	}
}

func TestStoredFileIsReadOnly(t *testing.T) {
	dir := t.TempDir()
	gd := gritpath.GritDirPath(filepath.Join(dir, ".grit"))
	fs := NewFileStore(gd)
	if err := fs.Init(); err != nil {
		t.Fatal(err)
	}

	hash, err := fs.WriteObject(blob.NewBlob([]byte("immutable")))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(dir, ".grit", "objects", hash.String()[:2], hash.String()[2:])
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0444 {
		t.Errorf("perm = %o, want 0444", info.Mode().Perm())
	}
}
