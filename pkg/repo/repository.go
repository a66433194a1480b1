package repo

import (
	"fmt"
	"os"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/common/logger"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/ignore"
	"github.com/gritscm/grit/pkg/refs"
	"github.com/gritscm/grit/pkg/stage"
	"github.com/gritscm/grit/pkg/store"
	"github.com/gritscm/grit/pkg/worktree"
)

const pkgName = "repo"

// Repository is the top-level handle tying the object store, ref
// store, staging area and working directory together. One handle
// assumes serialized callers; cross-process safety rests entirely on
// the ref store's compare-and-swap.
type Repository struct {
	root     gritpath.RepositoryPath
	objects  *store.FileStore
	refs     *refs.FileStore
	resolver *refs.Resolver
	area     *stage.Area
	detector *worktree.Detector
	config   *Config
}

// Init creates a new repository at path: the metadata directory, the
// object and ref layouts, an empty stage and a default config.
// Initializing an existing repository is rejected.
func Init(path string) (*Repository, error) {
	root, err := gritpath.NewRepositoryPath(path)
	if err != nil {
		return nil, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "init")
	}

	if exists, err := Exists(path); err != nil {
		return nil, err
	} else if exists {
		return nil, errs.New(pkgName, errs.CodeAlreadyExists, "init",
			fmt.Sprintf("repository already exists at %s", root), nil)
	}

	if err := fileops.EnsureDir(root.GritPath().ToAbsolutePath()); err != nil {
		return nil, errs.Wrap(err, pkgName, "init")
	}

	r, err := open(root)
	if err != nil {
		return nil, err
	}
	if err := r.objects.Init(); err != nil {
		return nil, err
	}
	if err := r.refs.Init(); err != nil {
		return nil, err
	}
	if err := writeDefaultConfig(root.GritPath()); err != nil {
		return nil, err
	}
	if err := r.reloadConfig(); err != nil {
		return nil, err
	}

	logger.Info("initialized repository", "path", root.String())
	return r, nil
}

// Open loads an existing repository at path.
func Open(path string) (*Repository, error) {
	root, err := gritpath.NewRepositoryPath(path)
	if err != nil {
		return nil, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "open")
	}

	if exists, err := Exists(path); err != nil {
		return nil, err
	} else if !exists {
		return nil, errs.New(pkgName, errs.CodeNotFound, "open",
			fmt.Sprintf("no repository at %s", root), nil)
	}

	return open(root)
}

// Find walks from start upwards to the filesystem root looking for a
// repository, like command-line tools invoked from a subdirectory.
func Find(start string) (*Repository, error) {
	root, err := gritpath.NewRepositoryPath(start)
	if err != nil {
		return nil, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "find")
	}

	for {
		if exists, err := Exists(root.String()); err != nil {
			return nil, err
		} else if exists {
			return open(root)
		}

		parent := gritpath.RepositoryPath(gritpath.AbsolutePath(root).Dir())
		if parent == root {
			return nil, errs.New(pkgName, errs.CodeNotFound, "find",
				fmt.Sprintf("no repository found from %s upwards", start), nil)
		}
		root = parent
	}
}

// Exists reports whether a repository's metadata directory is present
// at path.
func Exists(path string) (bool, error) {
	root, err := gritpath.NewRepositoryPath(path)
	if err != nil {
		return false, errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "exists")
	}

	info, err := os.Stat(root.GritPath().String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errs.Wrap(err, pkgName, "exists")
	}
	return info.IsDir(), nil
}

func open(root gritpath.RepositoryPath) (*Repository, error) {
	objStore := store.NewFileStore(root.GritPath())
	refStore := refs.NewFileStore(root.GritPath())

	area := stage.NewArea(root.GritPath())
	if err := area.Load(); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(root.GritPath())
	if err != nil {
		return nil, err
	}

	return &Repository{
		root:     root,
		objects:  objStore,
		refs:     refStore,
		resolver: refs.NewResolver(refStore, objStore),
		area:     area,
		detector: worktree.NewDetector(objStore, root),
		config:   cfg,
	}, nil
}

// Root returns the working directory root.
func (r *Repository) Root() gritpath.RepositoryPath {
	return r.root
}

// Objects returns the object store.
func (r *Repository) Objects() store.ObjectStore {
	return r.objects
}

// Refs returns the reference store.
func (r *Repository) Refs() refs.Store {
	return r.refs
}

// Config returns the repository configuration.
func (r *Repository) Config() *Config {
	return r.config
}

func (r *Repository) reloadConfig() error {
	cfg, err := loadConfig(r.root.GritPath())
	if err != nil {
		return err
	}
	r.config = cfg
	return nil
}

// ignorePatterns loads the active ignore rules from the working
// directory's ignore file. Rules are re-read per call so edits take
// effect without reopening the repository.
func (r *Repository) ignorePatterns() (*ignore.PatternSet, error) {
	return ignore.Load(r.root.IgnorePath())
}
