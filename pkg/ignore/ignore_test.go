package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gritscm/grit/pkg/gritpath"
)

func TestFromLineSkipsNonRules(t *testing.T) {
	tests := []string{"", "   ", "# comment", "#"}
	for _, line := range tests {
		if p := FromLine(line, "", 1); p != nil {
			t.Errorf("FromLine(%q) = %+v, want nil", line, p)
		}
	}
}

func TestFromLineParsesModifiers(t *testing.T) {
	p := FromLine("!build/", "custom", 3)
	if p == nil {
		t.Fatal("FromLine returned nil")
	}
	if !p.IsNegation || !p.IsDirOnly {
		t.Errorf("modifiers = negation:%v dironly:%v", p.IsNegation, p.IsDirOnly)
	}
	if p.Glob != "build" {
		t.Errorf("Glob = %q", p.Glob)
	}
	if p.Source != "custom" || p.LineNumber != 3 {
		t.Errorf("source = %q line = %d", p.Source, p.LineNumber)
	}
}

func TestPatternMatching(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.log", "debug.log", true},
		{"*.log", "logs/debug.log", true},
		{"*.log", "debug.txt", false},
		{"build/", "build", true},
		{"build/", "build/out.bin", true},
		{"build/", "builder", false},
		{"docs/*.pdf", "docs/a.pdf", true},
		{"docs/*.pdf", "docs/sub/a.pdf", true},
		{"temp?", "temp1", true},
		{"temp?", "temp12", false},
		{"[ab].txt", "a.txt", true},
		{"[ab].txt", "c.txt", false},
		{"README", "src/README", true},
		{"README", "src/README.md", false},
	}

	for _, tt := range tests {
		p := FromLine(tt.pattern, "", 1)
		if p == nil {
			t.Fatalf("FromLine(%q) = nil", tt.pattern)
		}
		if got := p.Matches(tt.path); got != tt.want {
			t.Errorf("pattern %q path %q = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestPatternSetNegation(t *testing.T) {
	ps := NewPatternSet()
	ps.AddText("*.log\n!keep.log\n", "")

	if !ps.IsIgnored("debug.log") {
		t.Error("debug.log should be ignored")
	}
	if ps.IsIgnored("keep.log") {
		t.Error("keep.log should be re-included")
	}
	if ps.IsIgnored("main.go") {
		t.Error("main.go should not be ignored")
	}
}

func TestEmptySetIgnoresNothing(t *testing.T) {
	ps := NewPatternSet()
	if ps.IsIgnored("anything") {
		t.Error("empty set ignored a path")
	}
	if ps.Len() != 0 {
		t.Errorf("Len = %d", ps.Len())
	}
}

func TestLoadMissingFileYieldsEmptySet(t *testing.T) {
	path := gritpath.AbsolutePath(filepath.Join(t.TempDir(), ".gritignore"))
	ps, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ps.Len() != 0 {
		t.Errorf("Len = %d, want 0", ps.Len())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".gritignore")
	content := "# generated files\n*.o\nbuild/\n\n!build/keep.txt\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	ps, err := Load(gritpath.AbsolutePath(file))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ps.Len() != 3 {
		t.Errorf("Len = %d, want 3", ps.Len())
	}

	if !ps.IsIgnored("src/main.o") {
		t.Error("src/main.o should be ignored")
	}
	if !ps.IsIgnored("build/out") {
		t.Error("build/out should be ignored")
	}
	if ps.IsIgnored("build/keep.txt") {
		t.Error("build/keep.txt should be re-included")
	}
}
