package tree

import (
	"bytes"
	"testing"

	"github.com/gritscm/grit/pkg/objects"
)

const (
	blobSHA    = objects.ObjectHash("3b18e512dba79e4c8300dd08aeb37f8e728b8dad")
	subtreeSHA = objects.ObjectHash("4b825dc642cb6eb9a060e54bf8d69288fbee4904")
)

func mustEntry(t *testing.T, mode EntryMode, name string, sha objects.ObjectHash) *Entry {
	t.Helper()
	e, err := NewEntry(mode, name, sha)
	if err != nil {
		t.Fatalf("NewEntry(%s): %v", name, err)
	}
	return e
}

func TestNewEntryValidation(t *testing.T) {
	tests := []struct {
		name    string
		mode    EntryMode
		entry   string
		sha     objects.ObjectHash
		wantErr bool
	}{
		{"regular file", ModeRegular, "main.go", blobSHA, false},
		{"directory", ModeDirectory, "src", subtreeSHA, false},
		{"bad mode", EntryMode("999999"), "x", blobSHA, true},
		{"empty name", ModeRegular, "", blobSHA, true},
		{"slash in name", ModeRegular, "a/b", blobSHA, true},
		{"bad hash", ModeRegular, "x", "nothex", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEntry(tt.mode, tt.entry, tt.sha)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestTreeSortDeterminism(t *testing.T) {
	a := NewTree([]*Entry{
		mustEntry(t, ModeRegular, "zebra.txt", blobSHA),
		mustEntry(t, ModeDirectory, "src", subtreeSHA),
		mustEntry(t, ModeRegular, "alpha.txt", blobSHA),
	})
	b := NewTree([]*Entry{
		mustEntry(t, ModeRegular, "alpha.txt", blobSHA),
		mustEntry(t, ModeRegular, "zebra.txt", blobSHA),
		mustEntry(t, ModeDirectory, "src", subtreeSHA),
	})

	ha, err := a.Hash()
	if err != nil {
		t.Fatal(err)
	}
	hb, err := b.Hash()
	if err != nil {
		t.Fatal(err)
	}
	if ha != hb {
		t.Error("entry insertion order must not change the tree hash")
	}

	entries := a.Entries()
	if entries[0].Name() != "alpha.txt" || entries[2].Name() != "zebra.txt" {
		t.Errorf("entries not sorted: %v", []string{entries[0].Name(), entries[1].Name(), entries[2].Name()})
	}
}

func TestTreeSerializeParseRoundTrip(t *testing.T) {
	original := NewTree([]*Entry{
		mustEntry(t, ModeRegular, "README.md", blobSHA),
		mustEntry(t, ModeExecutable, "build.sh", blobSHA),
		mustEntry(t, ModeDirectory, "docs", subtreeSHA),
	})

	var buf bytes.Buffer
	if err := original.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	parsed, err := ParseTree(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseTree: %v", err)
	}

	if len(parsed.Entries()) != 3 {
		t.Fatalf("entry count = %d", len(parsed.Entries()))
	}

	docs := parsed.Find("docs")
	if docs == nil || !docs.IsDirectory() || docs.SHA() != subtreeSHA {
		t.Errorf("docs entry corrupted: %+v", docs)
	}
	script := parsed.Find("build.sh")
	if script == nil || !script.IsExecutable() {
		t.Error("executable bit lost")
	}

	origHash, _ := original.Hash()
	parsedHash, _ := parsed.Hash()
	if origHash != parsedHash {
		t.Errorf("hash mismatch: %s vs %s", origHash, parsedHash)
	}
}

func TestEmptyTree(t *testing.T) {
	empty := NewTree(nil)
	if !empty.IsEmpty() {
		t.Error("tree should be empty")
	}

	var buf bytes.Buffer
	if err := empty.Serialize(&buf); err != nil {
		t.Fatal(err)
	}
	parsed, err := ParseTree(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseTree of empty tree: %v", err)
	}
	if !parsed.IsEmpty() {
		t.Error("parsed tree should be empty")
	}
}

func TestFindIsExact(t *testing.T) {
	tr := NewTree([]*Entry{mustEntry(t, ModeRegular, "main.go", blobSHA)})

	if tr.Find("main.go") == nil {
		t.Error("exact name should be found")
	}
	if tr.Find("main") != nil || tr.Find("MAIN.GO") != nil {
		t.Error("lookup must be exact, no prefix or case folding")
	}
}
