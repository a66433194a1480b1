package stage

import (
	"context"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/logger"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/ignore"
	"github.com/gritscm/grit/pkg/objects/blob"
	"github.com/gritscm/grit/pkg/objects/tree"
	"github.com/gritscm/grit/pkg/store"
	"github.com/gritscm/grit/pkg/worktree"
)

// classifyWorkers bounds the parallelism of candidate classification.
const classifyWorkers = 8

// Selector decides which candidate paths actually enter the staging
// area. Modified files are always taken, new files only on request,
// and a path matching an ignore rule is dropped even when it was
// named explicitly.
type Selector struct {
	objects  store.ObjectStore
	root     gritpath.RepositoryPath
	detector *worktree.Detector
	area     *Area
	ignored  *ignore.PatternSet
}

// NewSelector creates a selector. A nil pattern set ignores nothing.
func NewSelector(objStore store.ObjectStore, root gritpath.RepositoryPath, area *Area, patterns *ignore.PatternSet) *Selector {
	if patterns == nil {
		patterns = ignore.NewPatternSet()
	}
	return &Selector{
		objects:  objStore,
		root:     root,
		detector: worktree.NewDetector(objStore, root),
		area:     area,
		ignored:  patterns,
	}
}

// Candidates expands a user-named path into the candidate set: a file
// yields itself, a directory yields every regular file beneath it, and
// an empty path walks the whole working directory. The metadata
// directory is always excluded.
func (s *Selector) Candidates(from gritpath.RelativePath) ([]gritpath.RelativePath, error) {
	return worktree.ListWorkFiles(s.root, from.Normalize())
}

// Select classifies the candidates against the given tip tree and
// stages the selected ones: modified paths always, new paths only when
// includeNew is set, unchanged and deleted paths never. Selected blobs
// are written to the object store and recorded durably in the staging
// area; an empty selection performs no writes at all. The returned
// paths are deduplicated and sorted.
func (s *Selector) Select(ctx context.Context, tip *tree.Tree, candidates []gritpath.RelativePath, includeNew bool) ([]gritpath.RelativePath, error) {
	paths := s.filter(candidates)
	if len(paths) == 0 {
		return nil, nil
	}

	statuses := make([]worktree.Status, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(classifyWorkers)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			status, err := s.detector.Classify(tip, path)
			if err != nil {
				return err
			}
			statuses[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var selected []gritpath.RelativePath
	for i, path := range paths {
		switch statuses[i] {
		case worktree.StatusModified:
			selected = append(selected, path)
		case worktree.StatusNew:
			if includeNew {
				selected = append(selected, path)
			}
		}
	}
	if len(selected) == 0 {
		return nil, nil
	}

	if err := s.stage(selected); err != nil {
		return nil, err
	}

	logger.Debug("staged paths", "count", len(selected), "include_new", includeNew)
	return selected, nil
}

// filter deduplicates, normalizes and drops ignored candidates.
func (s *Selector) filter(candidates []gritpath.RelativePath) []gritpath.RelativePath {
	seen := make(map[gritpath.RelativePath]struct{}, len(candidates))
	var paths []gritpath.RelativePath

	for _, candidate := range candidates {
		path := candidate.Normalize()
		if path == "" || !path.IsValid() {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		if s.ignored.IsIgnored(path.String()) {
			continue
		}
		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool { return paths[i] < paths[j] })
	return paths
}

// stage writes blobs for the selected paths and persists the area.
func (s *Selector) stage(selected []gritpath.RelativePath) error {
	for _, path := range selected {
		abs, err := s.root.JoinRelative(path)
		if err != nil {
			return errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "stage")
		}

		info, err := os.Stat(abs.String())
		if err != nil {
			return errs.Wrap(err, pkgName, "stage")
		}
		content, err := os.ReadFile(abs.String())
		if err != nil {
			return errs.Wrap(err, pkgName, "stage")
		}

		sha, err := s.objects.WriteObject(blob.NewBlob(content))
		if err != nil {
			return err
		}

		mode := tree.ModeRegular
		if info.Mode()&0111 != 0 {
			mode = tree.ModeExecutable
		}
		s.area.Set(Entry{Mode: mode, SHA: sha, Path: path})
	}

	return s.area.Save()
}
