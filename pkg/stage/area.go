package stage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/tree"
)

const pkgName = "stage"

// Entry is one staged file: the blob it was hashed to and the mode it
// will carry in the next commit's tree.
type Entry struct {
	Mode tree.EntryMode
	SHA  objects.ObjectHash
	Path gritpath.RelativePath
}

// Area is the durable staging area. Entries live in a line-oriented
// file under the metadata directory, one "mode sha path" per line,
// sorted by path:
//
//	100644 3b18e512dba79e4c8300dd08aeb37f8e728b8dad docs/readme.txt
type Area struct {
	path    gritpath.AbsolutePath
	entries map[gritpath.RelativePath]Entry
}

// NewArea creates an empty in-memory staging area backed by the stage
// file inside the given metadata directory.
func NewArea(gritDir gritpath.GritDirPath) *Area {
	return &Area{
		path:    gritDir.StagePath().ToAbsolutePath(),
		entries: make(map[gritpath.RelativePath]Entry),
	}
}

// Load reads the stage file, replacing the in-memory state. A missing
// file loads as empty.
func (a *Area) Load() error {
	text, err := fileops.ReadString(a.path)
	if err != nil {
		return errs.Wrap(err, pkgName, "load")
	}

	entries := make(map[gritpath.RelativePath]Entry)
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			continue
		}
		entry, err := parseLine(line)
		if err != nil {
			return errs.WrapWithCode(err, pkgName, errs.CodeInvalidFormat, "load")
		}
		entries[entry.Path] = entry
	}

	a.entries = entries
	return nil
}

// Save writes the in-memory state back atomically.
func (a *Area) Save() error {
	var sb strings.Builder
	for _, entry := range a.Entries() {
		fmt.Fprintf(&sb, "%s %s %s\n", entry.Mode, entry.SHA, entry.Path)
	}

	if err := fileops.AtomicWrite(a.path, []byte(sb.String()), 0644); err != nil {
		return errs.Wrap(err, pkgName, "save")
	}
	return nil
}

// Set stages or restages one entry.
func (a *Area) Set(entry Entry) {
	a.entries[entry.Path] = entry
}

// Get returns the staged entry for a path.
func (a *Area) Get(path gritpath.RelativePath) (Entry, bool) {
	entry, ok := a.entries[path]
	return entry, ok
}

// Remove drops a path from the area.
func (a *Area) Remove(path gritpath.RelativePath) {
	delete(a.entries, path)
}

// Entries returns all staged entries sorted by path.
func (a *Area) Entries() []Entry {
	entries := make([]Entry, 0, len(a.entries))
	for _, entry := range a.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries
}

// Len returns the number of staged entries.
func (a *Area) Len() int {
	return len(a.entries)
}

// IsEmpty reports whether nothing is staged.
func (a *Area) IsEmpty() bool {
	return len(a.entries) == 0
}

// Clear empties the in-memory area. Save persists the emptiness.
func (a *Area) Clear() {
	a.entries = make(map[gritpath.RelativePath]Entry)
}

func parseLine(line string) (Entry, error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 {
		return Entry{}, fmt.Errorf("malformed stage line %q", line)
	}

	mode, err := tree.ParseEntryMode(parts[0])
	if err != nil {
		return Entry{}, err
	}
	sha, err := objects.ParseObjectHash(parts[1])
	if err != nil {
		return Entry{}, err
	}
	path := gritpath.RelativePath(parts[2])
	if !path.IsValid() {
		return Entry{}, fmt.Errorf("invalid staged path %q", parts[2])
	}

	return Entry{Mode: mode, SHA: sha, Path: path}, nil
}
