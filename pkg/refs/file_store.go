package refs

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
)

const (
	// symbolicPrefix marks a ref file that points at another ref.
	symbolicPrefix = "ref: "

	// maxRefDepth bounds symbolic ref chains.
	maxRefDepth = 10

	// lockSuffix is appended to a ref path to form its lock file.
	lockSuffix = ".lock"
)

// Store is the reference storage boundary. CompareAndSwap and
// CreateIfUnset are the only primitives that may advance a ref under
// concurrency; both report a clean false when they lose the race.
type Store interface {
	// Get resolves a ref to a hash, following symbolic refs.
	// An unset ref yields ("", false, nil).
	Get(ref RefPath) (objects.ObjectHash, bool, error)

	// Set unconditionally points a ref at a hash.
	Set(ref RefPath, hash objects.ObjectHash) error

	// CompareAndSwap atomically advances ref from old to new. Returns
	// false without error when the stored value is no longer old.
	CompareAndSwap(ref RefPath, old, new objects.ObjectHash) (bool, error)

	// CreateIfUnset atomically creates a ref that must not yet exist.
	// Returns false without error when the ref already exists.
	CreateIfUnset(ref RefPath, hash objects.ObjectHash) (bool, error)

	// List returns all refs under refs/, sorted.
	List() ([]RefPath, error)
}

// FileStore keeps refs as files under .grit/refs with a symbolic HEAD
// file at .grit/HEAD. Lock files (<ref>.lock, O_CREATE|O_EXCL) guard
// the compare step of CAS across processes.
type FileStore struct {
	refsPath gritpath.GritDirPath
	headPath gritpath.GritDirPath
}

// NewFileStore creates a ref store rooted at the given .grit directory.
func NewFileStore(gritDir gritpath.GritDirPath) *FileStore {
	return &FileStore{
		refsPath: gritDir.RefsPath(),
		headPath: gritDir.HeadPath(),
	}
}

// Init creates the refs layout and a HEAD pointing at the default
// branch. Existing files are left alone.
func (fs *FileStore) Init() error {
	for _, dir := range []string{gritpath.HeadsDir, gritpath.TagsDir} {
		if err := fileops.EnsureDir(fs.refsPath.Join(dir).ToAbsolutePath()); err != nil {
			return errs.Wrap(err, pkgName, "init")
		}
	}

	exists, err := fileops.Exists(fs.headPath.ToAbsolutePath())
	if err != nil {
		return errs.Wrap(err, pkgName, "init")
	}
	if !exists {
		head := symbolicPrefix + ExpandBranch(DefaultBranch).String() + "\n"
		if err := fileops.WriteConfigString(fs.headPath.ToAbsolutePath(), head); err != nil {
			return errs.Wrap(err, pkgName, "init")
		}
	}

	return nil
}

// Get resolves a ref to a hash, following symbolic refs up to a fixed
// depth. An unset ref is not an error.
func (fs *FileStore) Get(ref RefPath) (objects.ObjectHash, bool, error) {
	current := ref

	for range maxRefDepth {
		content, exists, err := fs.readRaw(current)
		if err != nil {
			return "", false, err
		}
		if !exists {
			return "", false, nil
		}

		if target, ok := strings.CutPrefix(content, symbolicPrefix); ok {
			current = RefPath(strings.TrimSpace(target))
			continue
		}

		hash, err := objects.ParseObjectHash(content)
		if err != nil {
			return "", false, errs.New(pkgName, errs.CodeInvalidFormat, "get",
				fmt.Sprintf("ref %s holds invalid content", current), err)
		}
		return hash, true, nil
	}

	return "", false, errs.New(pkgName, errs.CodeInternal, "get",
		fmt.Sprintf("symbolic ref depth exceeded for %s", ref), nil)
}

// Set unconditionally points a ref at a hash.
func (fs *FileStore) Set(ref RefPath, hash objects.ObjectHash) error {
	if err := hash.Validate(); err != nil {
		return errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "set")
	}

	path := fs.resolvePath(ref).ToAbsolutePath()
	if err := fileops.EnsureParentDir(path); err != nil {
		return errs.Wrap(err, pkgName, "set")
	}
	if err := fileops.AtomicWrite(path, []byte(hash.String()+"\n"), 0644); err != nil {
		return errs.Wrap(err, pkgName, "set")
	}
	return nil
}

// CompareAndSwap advances ref from old to new under a lock file.
// A busy lock or a changed value both yield false without error.
func (fs *FileStore) CompareAndSwap(ref RefPath, old, new objects.ObjectHash) (bool, error) {
	if err := new.Validate(); err != nil {
		return false, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "compare_and_swap")
	}

	unlock, ok, err := fs.lock(ref)
	if err != nil || !ok {
		return false, err
	}
	defer unlock()

	content, exists, err := fs.readRaw(ref)
	if err != nil {
		return false, err
	}
	if !exists || content != old.String() {
		return false, nil
	}

	path := fs.resolvePath(ref).ToAbsolutePath()
	if err := fileops.AtomicWrite(path, []byte(new.String()+"\n"), 0644); err != nil {
		return false, errs.Wrap(err, pkgName, "compare_and_swap")
	}
	return true, nil
}

// CreateIfUnset creates a ref that must not yet exist.
func (fs *FileStore) CreateIfUnset(ref RefPath, hash objects.ObjectHash) (bool, error) {
	if err := hash.Validate(); err != nil {
		return false, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "create_if_unset")
	}

	unlock, ok, err := fs.lock(ref)
	if err != nil || !ok {
		return false, err
	}
	defer unlock()

	_, exists, err := fs.readRaw(ref)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	path := fs.resolvePath(ref).ToAbsolutePath()
	if err := fileops.AtomicWrite(path, []byte(hash.String()+"\n"), 0644); err != nil {
		return false, errs.Wrap(err, pkgName, "create_if_unset")
	}
	return true, nil
}

// List returns every ref under refs/, sorted by path.
func (fs *FileStore) List() ([]RefPath, error) {
	var refs []RefPath

	root := fs.refsPath.String()
	err := filepath.WalkDir(root, func(path string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, lockSuffix) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		refs = append(refs, RefPath(gritpath.RefsDir+"/"+filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, errs.Wrap(err, pkgName, "list")
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })
	return refs, nil
}

// SymbolicTarget returns the ref a symbolic ref points at.
// A direct (hash) ref yields ("", false, nil).
func (fs *FileStore) SymbolicTarget(ref RefPath) (RefPath, bool, error) {
	content, exists, err := fs.readRaw(ref)
	if err != nil || !exists {
		return "", false, err
	}
	if target, ok := strings.CutPrefix(content, symbolicPrefix); ok {
		return RefPath(strings.TrimSpace(target)), true, nil
	}
	return "", false, nil
}

// CurrentBranch returns the branch HEAD points at, or false when HEAD
// is unset or detached.
func (fs *FileStore) CurrentBranch() (RefPath, bool, error) {
	target, ok, err := fs.SymbolicTarget(Head)
	if err != nil || !ok {
		return "", false, err
	}
	if !target.IsBranch() {
		return "", false, nil
	}
	return target, true, nil
}

// SetHead points HEAD at the given ref symbolically.
func (fs *FileStore) SetHead(target RefPath) error {
	content := symbolicPrefix + target.String() + "\n"
	if err := fileops.AtomicWrite(fs.headPath.ToAbsolutePath(), []byte(content), 0644); err != nil {
		return errs.Wrap(err, pkgName, "set_head")
	}
	return nil
}

// readRaw reads one ref file without following symbolic refs.
func (fs *FileStore) readRaw(ref RefPath) (string, bool, error) {
	path := fs.resolvePath(ref).ToAbsolutePath()

	content, err := os.ReadFile(path.String())
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, errs.Wrap(err, pkgName, "read")
	}
	return strings.TrimSpace(string(content)), true, nil
}

// lock takes the <ref>.lock file. Returns ok=false when another holder
// has it; err covers genuine filesystem failures.
func (fs *FileStore) lock(ref RefPath) (func(), bool, error) {
	path := fs.resolvePath(ref).ToAbsolutePath()
	if err := fileops.EnsureParentDir(path); err != nil {
		return nil, false, errs.Wrap(err, pkgName, "lock")
	}

	lockPath := path.String() + lockSuffix
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, false, nil
		}
		return nil, false, errs.WrapWithCode(err, pkgName, errs.CodeLockFailed, "lock")
	}

	unlock := func() {
		f.Close()
		os.Remove(lockPath)
	}
	return unlock, true, nil
}

// resolvePath maps a ref to its file location inside .grit.
func (fs *FileStore) resolvePath(ref RefPath) gritpath.GritDirPath {
	s := strings.TrimSpace(ref.String())

	if s == string(Head) {
		return fs.headPath
	}
	if rest, ok := strings.CutPrefix(s, gritpath.RefsDir+"/"); ok {
		return fs.refsPath.Join(rest)
	}
	return fs.refsPath.Join(s)
}
