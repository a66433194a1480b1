package refs

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/blob"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
)

var _ Store = (*FileStore)(nil)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	gd := gritpath.GritDirPath(filepath.Join(t.TempDir(), ".grit"))
	fs := NewFileStore(gd)
	if err := fs.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	return fs
}

const (
	hashA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	hashB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	hashC = "cccccccccccccccccccccccccccccccccccccccc"
)

func TestExpansionIsIdempotent(t *testing.T) {
	tests := []struct {
		name   string
		expand func(string) RefPath
		in     string
		want   RefPath
	}{
		{"bare branch", ExpandBranch, "master", "refs/heads/master"},
		{"heads prefixed", ExpandBranch, "heads/master", "refs/heads/master"},
		{"full branch", ExpandBranch, "refs/heads/master", "refs/heads/master"},
		{"bare tag", ExpandTag, "v1.0.0", "refs/tags/v1.0.0"},
		{"tags prefixed", ExpandTag, "tags/v1.0.0", "refs/tags/v1.0.0"},
		{"full tag", ExpandTag, "refs/tags/v1.0.0", "refs/tags/v1.0.0"},
		{"branch keeps tags prefix", ExpandBranch, "tags/v1", "refs/tags/v1"},
		{"slashed branch", ExpandBranch, "feature/login", "refs/heads/feature/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.expand(tt.in)
			if got != tt.want {
				t.Errorf("expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
			again := tt.expand(got.String())
			if again != got {
				t.Errorf("expansion not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestShortName(t *testing.T) {
	if got := RefPath("refs/heads/feature/x").ShortName(); got != "feature/x" {
		t.Errorf("ShortName = %q", got)
	}
	if got := RefPath("refs/tags/v1").ShortName(); got != "v1" {
		t.Errorf("ShortName = %q", got)
	}
	if got := Head.ShortName(); got != "HEAD" {
		t.Errorf("ShortName = %q", got)
	}
}

func TestGetUnsetRef(t *testing.T) {
	fs := newTestStore(t)

	_, found, err := fs.Get(ExpandBranch("missing"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found {
		t.Error("unset ref reported as found")
	}
}

func TestSetAndGet(t *testing.T) {
	fs := newTestStore(t)
	ref := ExpandBranch("master")

	if err := fs.Set(ref, hashA); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, found, err := fs.Get(ref)
	if err != nil || !found {
		t.Fatalf("Get = %v, %v", found, err)
	}
	if got != hashA {
		t.Errorf("Get = %s, want %s", got, hashA)
	}
}

func TestHeadFollowsSymbolicRef(t *testing.T) {
	fs := newTestStore(t)

	// Init points HEAD at the default branch before it exists.
	_, found, err := fs.Get(Head)
	if err != nil {
		t.Fatalf("Get HEAD: %v", err)
	}
	if found {
		t.Error("HEAD resolved before any commit")
	}

	if err := fs.Set(ExpandBranch(DefaultBranch), hashA); err != nil {
		t.Fatal(err)
	}

	got, found, err := fs.Get(Head)
	if err != nil || !found {
		t.Fatalf("Get HEAD = %v, %v", found, err)
	}
	if got != hashA {
		t.Errorf("HEAD = %s, want %s", got, hashA)
	}

	branch, ok, err := fs.CurrentBranch()
	if err != nil || !ok {
		t.Fatalf("CurrentBranch = %v, %v", ok, err)
	}
	if branch != ExpandBranch(DefaultBranch) {
		t.Errorf("CurrentBranch = %s", branch)
	}
}

func TestSetHead(t *testing.T) {
	fs := newTestStore(t)
	dev := ExpandBranch("dev")

	if err := fs.Set(dev, hashB); err != nil {
		t.Fatal(err)
	}
	if err := fs.SetHead(dev); err != nil {
		t.Fatalf("SetHead: %v", err)
	}

	got, found, err := fs.Get(Head)
	if err != nil || !found {
		t.Fatalf("Get HEAD = %v, %v", found, err)
	}
	if got != hashB {
		t.Errorf("HEAD = %s, want %s", got, hashB)
	}
}

func TestCompareAndSwap(t *testing.T) {
	fs := newTestStore(t)
	ref := ExpandBranch("master")

	if err := fs.Set(ref, hashA); err != nil {
		t.Fatal(err)
	}

	ok, err := fs.CompareAndSwap(ref, hashA, hashB)
	if err != nil {
		t.Fatalf("CompareAndSwap: %v", err)
	}
	if !ok {
		t.Fatal("swap with matching old value failed")
	}

	// Stale old value loses cleanly.
	ok, err = fs.CompareAndSwap(ref, hashA, hashC)
	if err != nil {
		t.Fatalf("CompareAndSwap: %v", err)
	}
	if ok {
		t.Error("swap with stale old value succeeded")
	}

	got, _, _ := fs.Get(ref)
	if got != hashB {
		t.Errorf("ref = %s, want %s", got, hashB)
	}
}

func TestCompareAndSwapConcurrent(t *testing.T) {
	fs := newTestStore(t)
	ref := ExpandBranch("master")

	if err := fs.Set(ref, hashA); err != nil {
		t.Fatal(err)
	}

	const workers = 8
	var wg sync.WaitGroup
	wins := make(chan int, workers)

	for i := range workers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ok, err := fs.CompareAndSwap(ref, hashA, hashB)
			if err != nil {
				t.Errorf("worker %d: %v", n, err)
				return
			}
			if ok {
				wins <- n
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners int
	for range wins {
		winners++
	}
	if winners != 1 {
		t.Errorf("winners = %d, want exactly 1", winners)
	}

	got, _, _ := fs.Get(ref)
	if got != hashB {
		t.Errorf("ref = %s, want %s", got, hashB)
	}
}

func TestCreateIfUnset(t *testing.T) {
	fs := newTestStore(t)
	ref := ExpandBranch("master")

	ok, err := fs.CreateIfUnset(ref, hashA)
	if err != nil {
		t.Fatalf("CreateIfUnset: %v", err)
	}
	if !ok {
		t.Fatal("first create failed")
	}

	ok, err = fs.CreateIfUnset(ref, hashB)
	if err != nil {
		t.Fatalf("CreateIfUnset: %v", err)
	}
	if ok {
		t.Error("second create succeeded")
	}

	got, _, _ := fs.Get(ref)
	if got != hashA {
		t.Errorf("ref = %s, want %s", got, hashA)
	}
}

func TestListRefs(t *testing.T) {
	fs := newTestStore(t)

	for _, ref := range []RefPath{
		ExpandBranch("master"),
		ExpandBranch("dev"),
		ExpandTag("v1.0.0"),
	} {
		if err := fs.Set(ref, hashA); err != nil {
			t.Fatal(err)
		}
	}

	refs, err := fs.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []RefPath{"refs/heads/dev", "refs/heads/master", "refs/tags/v1.0.0"}
	if len(refs) != len(want) {
		t.Fatalf("List = %v", refs)
	}
	for i, ref := range want {
		if refs[i] != ref {
			t.Errorf("refs[%d] = %s, want %s", i, refs[i], ref)
		}
	}
}

func newTestResolver(t *testing.T) (*Resolver, *FileStore, *store.FileStore) {
	t.Helper()
	gd := gritpath.GritDirPath(filepath.Join(t.TempDir(), ".grit"))

	rs := NewFileStore(gd)
	if err := rs.Init(); err != nil {
		t.Fatal(err)
	}
	os := store.NewFileStore(gd)
	if err := os.Init(); err != nil {
		t.Fatal(err)
	}
	return NewResolver(rs, os), rs, os
}

func TestResolveBranchShadowsTag(t *testing.T) {
	resolver, rs, _ := newTestResolver(t)

	// The same short name points at different commits as a branch and
	// as a tag. The branch must win.
	if err := rs.Set(ExpandBranch("release"), hashA); err != nil {
		t.Fatal(err)
	}
	if err := rs.Set(ExpandTag("release"), hashB); err != nil {
		t.Fatal(err)
	}

	got, err := resolver.Resolve("release")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != hashA {
		t.Errorf("Resolve = %s, want branch target %s", got, hashA)
	}
}

func TestResolveTag(t *testing.T) {
	resolver, rs, _ := newTestResolver(t)

	if err := rs.Set(ExpandTag("v1.0.0"), hashC); err != nil {
		t.Fatal(err)
	}

	got, err := resolver.Resolve("v1.0.0")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != hashC {
		t.Errorf("Resolve = %s, want %s", got, hashC)
	}
}

func TestResolveLiteralCommitHash(t *testing.T) {
	resolver, _, os := newTestResolver(t)

	hash := writeTestCommit(t, os)

	got, err := resolver.Resolve(hash.String())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != hash {
		t.Errorf("Resolve = %s, want %s", got, hash)
	}
}

func TestResolveLiteralNonCommitHash(t *testing.T) {
	resolver, _, os := newTestResolver(t)

	// A stored blob or tree hash must not resolve; only commits do.
	blobHash, err := os.WriteObject(blob.NewBlob([]byte("content")))
	if err != nil {
		t.Fatal(err)
	}
	treeHash, err := os.WriteObject(tree.NewTree(nil))
	if err != nil {
		t.Fatal(err)
	}

	for _, hash := range []objects.ObjectHash{blobHash, treeHash} {
		_, err := resolver.Resolve(hash.String())
		if !errors.Is(err, ErrUnresolvedReference) {
			t.Errorf("Resolve(%s) = %v, want ErrUnresolvedReference", hash.Short(), err)
		}
	}
}

func writeTestCommit(t *testing.T, os *store.FileStore) objects.ObjectHash {
	t.Helper()

	treeHash, err := os.WriteObject(tree.NewTree(nil))
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
	hash, err := os.WriteObject(c)
	if err != nil {
		t.Fatal(err)
	}
	return hash
}

func TestResolveUnknownIdentifier(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	tests := []string{
		"nosuchbranch",
		"0123456789abcdef0123456789abcdef01234567", // well formed, not stored
		"refs/heads/ghost",
	}
	for _, id := range tests {
		_, err := resolver.Resolve(id)
		if !errors.Is(err, ErrUnresolvedReference) {
			t.Errorf("Resolve(%q) = %v, want ErrUnresolvedReference", id, err)
		}
	}
}

func TestResolveHeadBeforeFirstCommit(t *testing.T) {
	resolver, _, _ := newTestResolver(t)

	_, err := resolver.Resolve("HEAD")
	if !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("Resolve(HEAD) = %v, want ErrUnresolvedReference", err)
	}
}
