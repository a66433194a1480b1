package gritpath

import (
	"path/filepath"
	"testing"
)

func TestRepositoryPathLayout(t *testing.T) {
	rp := RepositoryPath(filepath.Join(string(filepath.Separator), "home", "user", "project"))

	gd := rp.GritPath()
	if gd.Dir().String() != rp.String() {
		t.Errorf("GritPath should live under the repo root, got %s", gd)
	}
	if filepath.Base(gd.String()) != GritDir {
		t.Errorf("GritPath base = %s, want %s", filepath.Base(gd.String()), GritDir)
	}

	if got := filepath.Base(gd.ObjectsPath().String()); got != ObjectsDir {
		t.Errorf("ObjectsPath base = %s", got)
	}
	if got := filepath.Base(gd.HeadPath().String()); got != HeadFile {
		t.Errorf("HeadPath base = %s", got)
	}
	if got := filepath.Base(gd.StagePath().String()); got != StageFile {
		t.Errorf("StagePath base = %s", got)
	}
}

func TestObjectFilePathFanout(t *testing.T) {
	gd := GritDirPath("/repo/.grit").ObjectsPath()

	hash := "abcdef1234567890abcdef1234567890abcdef12"
	got := gd.ObjectFilePath(hash).String()
	want := filepath.Join("/repo/.grit", "objects", "ab", "cdef1234567890abcdef1234567890abcdef12")
	if got != want {
		t.Errorf("ObjectFilePath = %s, want %s", got, want)
	}

	if gd.ObjectFilePath("short") != "" {
		t.Error("malformed hash should yield empty path")
	}
}

func TestRelativePathNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"./src/main.go", "src/main.go"},
		{"src//main.go", "src/main.go"},
		{"docs/", "docs"},
		{"a/b/../c", "a/c"},
	}

	for _, tt := range tests {
		if got := RelativePath(tt.in).Normalize(); string(got) != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRelativePathValidity(t *testing.T) {
	valid := []string{"a", "a/b/c", "weird name.txt"}
	for _, p := range valid {
		if !RelativePath(p).IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}

	invalid := []string{"", "/abs/path", "../escape"}
	for _, p := range invalid {
		if RelativePath(p).IsValid() {
			t.Errorf("%q should be invalid", p)
		}
	}
}

func TestJoinRelativeRejectsEscape(t *testing.T) {
	rp := RepositoryPath("/repo")

	if _, err := rp.JoinRelative("sub/file.txt"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := rp.JoinRelative("../outside"); err == nil {
		t.Error("traversal outside the repository should be rejected")
	}
}

func TestRelativePathComponents(t *testing.T) {
	rp := RelativePath("a/b/c.txt")

	components := rp.Components()
	if len(components) != 3 || components[0] != "a" || components[2] != "c.txt" {
		t.Errorf("Components = %v", components)
	}
	if rp.Base() != "c.txt" {
		t.Errorf("Base = %s", rp.Base())
	}
	if rp.Dir() != "a/b" {
		t.Errorf("Dir = %s", rp.Dir())
	}
	if !rp.HasPrefix("a/b") || !rp.HasPrefix("") {
		t.Error("HasPrefix misbehaves")
	}
	if rp.HasPrefix("a/bc") {
		t.Error("HasPrefix must match whole components")
	}
}
