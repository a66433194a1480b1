package ignore

import (
	"strings"

	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/gritpath"
)

// PatternSet holds the active ignore rules. A path matching any rule
// is ignored unconditionally, even when it was requested explicitly;
// negation rules re-include paths afterwards.
type PatternSet struct {
	patterns  []*Pattern
	negations []*Pattern
}

// NewPatternSet creates an empty set, which ignores nothing.
func NewPatternSet() *PatternSet {
	return &PatternSet{}
}

// Load reads rules from the repository's ignore file. A missing file
// yields an empty set.
func Load(path gritpath.AbsolutePath) (*PatternSet, error) {
	text, err := fileops.ReadString(path)
	if err != nil {
		return nil, err
	}

	ps := NewPatternSet()
	ps.AddText(text, path.Base())
	return ps, nil
}

// Add inserts a single rule.
func (ps *PatternSet) Add(p *Pattern) {
	if p == nil {
		return
	}
	if p.IsNegation {
		ps.negations = append(ps.negations, p)
	} else {
		ps.patterns = append(ps.patterns, p)
	}
}

// AddText parses ignore-file text and adds every rule it carries.
func (ps *PatternSet) AddText(text, source string) {
	for i, line := range strings.Split(text, "\n") {
		ps.Add(FromLine(line, source, i+1))
	}
}

// IsIgnored reports whether the path is covered by the active rules.
// The path must be slash separated and relative to the repository root.
func (ps *PatternSet) IsIgnored(path string) bool {
	ignored := false
	for _, p := range ps.patterns {
		if p.Matches(path) {
			ignored = true
			break
		}
	}
	if !ignored {
		return false
	}

	for _, p := range ps.negations {
		if p.Matches(path) {
			return false
		}
	}
	return true
}

// Len returns the number of active rules.
func (ps *PatternSet) Len() int {
	return len(ps.patterns) + len(ps.negations)
}
