package fileops

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gritscm/grit/pkg/gritpath"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	target := gritpath.AbsolutePath(filepath.Join(dir, "ref"))

	if err := AtomicWrite(target, []byte("abc123\n"), 0644); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	data, err := os.ReadFile(target.String())
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "abc123\n" {
		t.Errorf("content = %q", data)
	}

	// Overwrite replaces the previous content wholesale.
	if err := AtomicWrite(target, []byte("def456\n"), 0644); err != nil {
		t.Fatalf("AtomicWrite overwrite: %v", err)
	}
	data, _ = os.ReadFile(target.String())
	if string(data) != "def456\n" {
		t.Errorf("after overwrite = %q", data)
	}

	// No temp files left behind.
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected a single file in dir, got %d", len(entries))
	}
}

func TestExistsAndEnsureDir(t *testing.T) {
	dir := t.TempDir()
	nested := gritpath.AbsolutePath(filepath.Join(dir, "a", "b", "c"))

	ok, err := Exists(nested)
	if err != nil || ok {
		t.Fatalf("Exists before create = %v, %v", ok, err)
	}

	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}
	// Idempotent.
	if err := EnsureDir(nested); err != nil {
		t.Fatalf("EnsureDir twice: %v", err)
	}

	ok, err = Exists(nested)
	if err != nil || !ok {
		t.Fatalf("Exists after create = %v, %v", ok, err)
	}
}

func TestReadStringMissingIsEmpty(t *testing.T) {
	p := gritpath.AbsolutePath(filepath.Join(t.TempDir(), "missing"))

	s, err := ReadString(p)
	if err != nil || s != "" {
		t.Errorf("ReadString on missing file = %q, %v", s, err)
	}

	if _, err := ReadStringStrict(p); err == nil {
		t.Error("ReadStringStrict should fail on missing file")
	}
}

func TestReadStringTrims(t *testing.T) {
	p := gritpath.AbsolutePath(filepath.Join(t.TempDir(), "head"))
	if err := WriteConfigString(p, "ref: refs/heads/master\n"); err != nil {
		t.Fatal(err)
	}

	s, err := ReadStringStrict(p)
	if err != nil {
		t.Fatal(err)
	}
	if s != "ref: refs/heads/master" {
		t.Errorf("content = %q", s)
	}
}

func TestWriteReadOnly(t *testing.T) {
	p := gritpath.AbsolutePath(filepath.Join(t.TempDir(), "objects", "ab", "cdef"))

	if err := WriteReadOnly(p, []byte("compressed")); err != nil {
		t.Fatalf("WriteReadOnly: %v", err)
	}

	info, err := os.Stat(p.String())
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0444 {
		t.Errorf("perm = %o, want 0444", info.Mode().Perm())
	}
}

func TestSafeRemove(t *testing.T) {
	p := gritpath.AbsolutePath(filepath.Join(t.TempDir(), "gone"))
	if err := SafeRemove(p); err != nil {
		t.Errorf("SafeRemove on missing file: %v", err)
	}

	if err := WriteConfigString(p, "x"); err != nil {
		t.Fatal(err)
	}
	if err := SafeRemove(p); err != nil {
		t.Errorf("SafeRemove: %v", err)
	}
	if ok, _ := Exists(p); ok {
		t.Error("file should be gone")
	}
}

func TestIsFileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := gritpath.AbsolutePath(filepath.Join(dir, "f"))
	if err := WriteConfigString(file, "x"); err != nil {
		t.Fatal(err)
	}

	if ok, _ := IsFile(file); !ok {
		t.Error("IsFile should be true for a regular file")
	}
	if ok, _ := IsDirectory(file); ok {
		t.Error("IsDirectory should be false for a regular file")
	}
	if ok, _ := IsDirectory(gritpath.AbsolutePath(dir)); !ok {
		t.Error("IsDirectory should be true for a directory")
	}
	if ok, _ := IsFile(gritpath.AbsolutePath(filepath.Join(dir, "nope"))); ok {
		t.Error("IsFile should be false for a missing path")
	}
}
