package gritpath

import "path/filepath"

// GritDirPath is a path to a .grit metadata directory or a location
// inside one.
type GritDirPath string

// String returns the path as a string.
func (gp GritDirPath) String() string {
	return string(gp)
}

// IsValid reports whether the path is non-empty.
func (gp GritDirPath) IsValid() bool {
	return len(gp) > 0
}

// Join joins path elements to this path.
func (gp GritDirPath) Join(elem ...string) GritDirPath {
	parts := append([]string{string(gp)}, elem...)
	return GritDirPath(filepath.Join(parts...))
}

// ToAbsolutePath converts to an AbsolutePath.
func (gp GritDirPath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(gp)
}

// Dir returns all but the last element of the path.
func (gp GritDirPath) Dir() GritDirPath {
	return GritDirPath(filepath.Dir(string(gp)))
}

// ObjectsPath returns the path to the objects directory.
func (gp GritDirPath) ObjectsPath() GritDirPath {
	return gp.Join(ObjectsDir)
}

// RefsPath returns the path to the refs directory.
func (gp GritDirPath) RefsPath() GritDirPath {
	return gp.Join(RefsDir)
}

// HeadPath returns the path to the HEAD file.
func (gp GritDirPath) HeadPath() GritDirPath {
	return gp.Join(HeadFile)
}

// StagePath returns the path to the staging area file.
func (gp GritDirPath) StagePath() GritDirPath {
	return gp.Join(StageFile)
}

// ConfigPath returns the path to the config file.
func (gp GritDirPath) ConfigPath() GritDirPath {
	return gp.Join(ConfigFile)
}

// ObjectFilePath returns the fanout path for an object file.
// Hash "abcdef..." maps to "objects/ab/cdef...".
func (gp GritDirPath) ObjectFilePath(hash string) GritDirPath {
	if len(hash) != 40 {
		return ""
	}
	return gp.Join(hash[:2], hash[2:])
}
