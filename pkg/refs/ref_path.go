package refs

import "strings"

// RefPath is a reference path such as "refs/heads/master",
// "refs/tags/v1.0.0", or "HEAD".
type RefPath string

const (
	// Head is the symbolic HEAD reference.
	Head RefPath = "HEAD"

	// DefaultBranch is the branch created by the first commit.
	DefaultBranch = "master"

	headsPrefix = "refs/heads/"
	tagsPrefix  = "refs/tags/"
)

// ExpandBranch expands a branch name to its full ref path. Already
// expanded names pass through unchanged, so expansion is idempotent:
//
//	"master"             -> "refs/heads/master"
//	"heads/master"       -> "refs/heads/master"
//	"refs/heads/master"  -> "refs/heads/master"
func ExpandBranch(name string) RefPath {
	return expand("heads", name)
}

// ExpandTag expands a tag name to its full ref path with the same
// idempotence rules as ExpandBranch.
func ExpandTag(name string) RefPath {
	return expand("tags", name)
}

func expand(category, name string) RefPath {
	switch {
	case strings.HasPrefix(name, "refs/"):
		return RefPath(name)
	case strings.HasPrefix(name, "heads/") || strings.HasPrefix(name, "tags/"):
		return RefPath("refs/" + name)
	default:
		return RefPath("refs/" + category + "/" + name)
	}
}

// String returns the reference path as a string.
func (rp RefPath) String() string {
	return string(rp)
}

// IsValid checks basic well-formedness of the reference path.
func (rp RefPath) IsValid() bool {
	s := string(rp)
	if len(s) == 0 {
		return false
	}

	invalid := []string{" ", "~", "^", ":", "?", "*", "[", "\\", "..", "//"}
	for _, seq := range invalid {
		if strings.Contains(s, seq) {
			return false
		}
	}

	if strings.HasSuffix(s, ".lock") || strings.HasSuffix(s, ".") || strings.HasPrefix(s, ".") {
		return false
	}
	return true
}

// IsBranch reports whether this is a branch reference.
func (rp RefPath) IsBranch() bool {
	return strings.HasPrefix(string(rp), headsPrefix)
}

// IsTag reports whether this is a tag reference.
func (rp RefPath) IsTag() bool {
	return strings.HasPrefix(string(rp), tagsPrefix)
}

// IsHead reports whether this is the HEAD reference.
func (rp RefPath) IsHead() bool {
	return rp == Head
}

// ShortName strips the category prefix:
// "refs/heads/master" -> "master", "refs/tags/v1" -> "v1".
func (rp RefPath) ShortName() string {
	s := string(rp)
	if rp.IsBranch() {
		return strings.TrimPrefix(s, headsPrefix)
	}
	if rp.IsTag() {
		return strings.TrimPrefix(s, tagsPrefix)
	}
	return s
}
