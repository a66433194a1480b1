package gritpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath is an absolute path to a repository root directory,
// the directory that contains the .grit metadata directory.
type RepositoryPath string

// AbsolutePath is an absolute filesystem path anywhere on disk.
type AbsolutePath string

// NewRepositoryPath creates a RepositoryPath from a possibly relative path.
func NewRepositoryPath(path string) (RepositoryPath, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return RepositoryPath(abs), nil
}

// String returns the path as a string.
func (rp RepositoryPath) String() string {
	return string(rp)
}

// IsValid reports whether this is an absolute path.
func (rp RepositoryPath) IsValid() bool {
	return filepath.IsAbs(string(rp))
}

// Join joins path elements to the repository root.
func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(rp)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// JoinRelative joins a validated relative path to the repository root.
// The result is guaranteed to stay inside the repository.
func (rp RepositoryPath) JoinRelative(rel RelativePath) (AbsolutePath, error) {
	normalized := rel.Normalize()
	if normalized == "" || normalized == "." {
		return AbsolutePath(rp), nil
	}
	if !normalized.IsValid() {
		return "", fmt.Errorf("invalid relative path: %s", rel)
	}

	result := AbsolutePath(filepath.Join(string(rp), string(normalized)))

	check, err := filepath.Rel(string(rp), string(result))
	if err != nil {
		return "", fmt.Errorf("validate path: %w", err)
	}
	if check == ".." || strings.HasPrefix(check, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes repository: %s", rel)
	}

	return result, nil
}

// GritPath returns the path to the repository's .grit directory.
func (rp RepositoryPath) GritPath() GritDirPath {
	return GritDirPath(filepath.Join(string(rp), GritDir))
}

// IgnorePath returns the path to the repository's ignore file.
func (rp RepositoryPath) IgnorePath() AbsolutePath {
	return rp.Join(IgnoreFile)
}

// String returns the path as a string.
func (ap AbsolutePath) String() string {
	return string(ap)
}

// IsValid reports whether the path is non-empty.
func (ap AbsolutePath) IsValid() bool {
	return len(ap) > 0
}

// Join joins path elements to this path.
func (ap AbsolutePath) Join(elem ...string) AbsolutePath {
	parts := append([]string{string(ap)}, elem...)
	return AbsolutePath(filepath.Join(parts...))
}

// Dir returns all but the last element of the path.
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// Base returns the last element of the path.
func (ap AbsolutePath) Base() string {
	return filepath.Base(string(ap))
}
