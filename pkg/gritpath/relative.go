package gritpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RelativePath is a slash-separated path relative to the repository
// root, e.g. "src/main.go".
type RelativePath string

// NewRelativePath normalizes and validates a relative path.
func NewRelativePath(path string) (RelativePath, error) {
	rp := RelativePath(path).Normalize()
	if !rp.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", path)
	}
	return rp, nil
}

// String returns the path as a string.
func (rp RelativePath) String() string {
	return string(rp)
}

// IsValid reports whether the path is relative and free of traversal.
func (rp RelativePath) IsValid() bool {
	s := string(rp)
	if len(s) == 0 {
		return false
	}
	if filepath.IsAbs(s) || strings.HasPrefix(s, "/") {
		return false
	}
	if s == ".." || strings.HasPrefix(s, "../") || strings.Contains(s, "/../") || strings.HasSuffix(s, "/..") {
		return false
	}
	return true
}

// Normalize converts to forward slashes, cleans, and strips leading
// "./" and trailing slashes.
func (rp RelativePath) Normalize() RelativePath {
	normalized := filepath.ToSlash(filepath.Clean(string(rp)))
	normalized = strings.TrimPrefix(normalized, "./")
	if len(normalized) > 1 {
		normalized = strings.TrimSuffix(normalized, "/")
	}
	return RelativePath(normalized)
}

// Components returns the slash-separated path components.
func (rp RelativePath) Components() []string {
	normalized := rp.Normalize()
	if normalized == "" || normalized == "." {
		return []string{}
	}
	return strings.Split(string(normalized), "/")
}

// Join joins path elements to this path.
func (rp RelativePath) Join(elem ...string) RelativePath {
	parts := append([]string{string(rp)}, elem...)
	return RelativePath(filepath.Join(parts...)).Normalize()
}

// Base returns the last path component.
func (rp RelativePath) Base() string {
	components := rp.Components()
	if len(components) == 0 {
		return ""
	}
	return components[len(components)-1]
}

// Dir returns all but the last path component, or "" at the root.
func (rp RelativePath) Dir() RelativePath {
	components := rp.Components()
	if len(components) <= 1 {
		return ""
	}
	return RelativePath(strings.Join(components[:len(components)-1], "/"))
}

// HasPrefix reports whether the path equals prefix or lies under it.
func (rp RelativePath) HasPrefix(prefix RelativePath) bool {
	if prefix == "" || prefix == "." {
		return true
	}
	s := string(rp.Normalize())
	p := string(prefix.Normalize())
	return s == p || strings.HasPrefix(s, p+"/")
}
