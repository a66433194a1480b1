package objects

import (
	"strings"
	"testing"
)

func TestComputeObjectHashMatchesGit(t *testing.T) {
	// git hash-object of an empty file.
	got := ComputeObjectHash(BlobType, ObjectContent(""))
	want := ObjectHash("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391")
	if got != want {
		t.Errorf("empty blob hash = %s, want %s", got, want)
	}

	// echo 'hello world' | git hash-object --stdin
	got = ComputeObjectHash(BlobType, ObjectContent("hello world\n"))
	want = ObjectHash("3b18e512dba79e4c8300dd08aeb37f8e728b8dad")
	if got != want {
		t.Errorf("hello blob hash = %s, want %s", got, want)
	}
}

func TestHashDeterminism(t *testing.T) {
	a := ComputeObjectHash(BlobType, ObjectContent("same bytes"))
	b := ComputeObjectHash(BlobType, ObjectContent("same bytes"))
	if a != b {
		t.Error("identical content must produce identical hashes")
	}

	c := ComputeObjectHash(BlobType, ObjectContent("other bytes"))
	if a == c {
		t.Error("different content should produce different hashes")
	}

	// The type participates in the address.
	d := ComputeObjectHash(CommitType, ObjectContent("same bytes"))
	if a == d {
		t.Error("object type must participate in the hash")
	}
}

func TestParseObjectHash(t *testing.T) {
	upper := strings.ToUpper("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391")
	h, err := ParseObjectHash(upper)
	if err != nil {
		t.Fatalf("ParseObjectHash: %v", err)
	}
	if h != "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391" {
		t.Errorf("hash should be normalized to lowercase, got %s", h)
	}

	for _, bad := range []string{"", "abc", strings.Repeat("g", 40)} {
		if _, err := ParseObjectHash(bad); err == nil {
			t.Errorf("ParseObjectHash(%q) should fail", bad)
		}
	}
}

func TestHashRawRoundTrip(t *testing.T) {
	h := ComputeObjectHash(BlobType, ObjectContent("x"))
	raw, err := h.Raw()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != RawHashLength {
		t.Errorf("raw length = %d", len(raw))
	}
	if NewObjectHash([]byte(NewSerializedObject(BlobType, ObjectContent("x")))) != h {
		t.Error("round trip mismatch")
	}
}

func TestShort(t *testing.T) {
	h := ObjectHash("e69de29bb2d1d6434b8b29ae775ad8c2e48c5391")
	if h.Short() != "e69de29" {
		t.Errorf("Short = %s", h.Short())
	}
}
