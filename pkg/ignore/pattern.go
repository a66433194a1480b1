package ignore

import (
	"regexp"
	"strings"
)

const (
	negationPrefix  = '!'
	directorySuffix = '/'
	commentPrefix   = '#'

	// DefaultSource names the ignore file patterns usually come from.
	DefaultSource = ".gritignore"
)

// Pattern is a single ignore rule. Matching is shell-glob style with
// the whole pattern anchored against the slash-separated path:
//
//   - * matches any run of characters, including /
//   - ? matches a single character
//   - [...] matches a character class
//   - trailing / restricts the rule to a directory and its contents
//   - leading ! negates the rule (re-includes matching paths)
//   - blank lines and lines starting with # carry no rule
type Pattern struct {
	Glob       string
	Original   string
	IsNegation bool
	IsDirOnly  bool
	Source     string
	LineNumber int

	re *regexp.Regexp
}

// FromLine parses one ignore-file line. Returns nil for lines that
// carry no rule.
func FromLine(line, source string, lineNumber int) *Pattern {
	line = strings.TrimRight(line, " \t")
	if line == "" || line[0] == commentPrefix {
		return nil
	}
	if source == "" {
		source = DefaultSource
	}

	p := &Pattern{Original: line, Source: source, LineNumber: lineNumber}

	if after, found := strings.CutPrefix(line, string(negationPrefix)); found {
		p.IsNegation = true
		line = after
	}
	if before, found := strings.CutSuffix(line, string(directorySuffix)); found {
		p.IsDirOnly = true
		line = before
	}

	p.Glob = strings.TrimSpace(line)
	if p.Glob == "" {
		return nil
	}
	p.re = compileGlob(p.Glob)
	return p
}

// Matches reports whether the rule covers the given path, which must
// be slash separated and relative to the repository root.
func (p *Pattern) Matches(path string) bool {
	if p.re == nil {
		return false
	}

	if p.re.MatchString(path) {
		return true
	}

	// A directory rule also covers everything beneath the directory.
	if p.IsDirOnly && strings.HasPrefix(path, p.Glob+"/") {
		return true
	}

	// A bare name matches at any depth, like "*.log" does.
	if !strings.Contains(p.Glob, "/") {
		for _, segment := range strings.Split(path, "/") {
			if p.re.MatchString(segment) {
				return true
			}
		}
	}
	return false
}

// compileGlob translates a glob into an anchored regexp. The wildcard
// crosses path separators on purpose, matching fnmatch without
// FNM_PATHNAME.
func compileGlob(glob string) *regexp.Regexp {
	var sb strings.Builder
	sb.WriteString("^")

	inClass := false
	for _, ch := range glob {
		switch {
		case inClass:
			sb.WriteRune(ch)
			if ch == ']' {
				inClass = false
			}
		case ch == '[':
			sb.WriteRune(ch)
			inClass = true
		case ch == '*':
			sb.WriteString(".*")
		case ch == '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		// Malformed classes fall back to a literal match.
		return regexp.MustCompile("^" + regexp.QuoteMeta(glob) + "$")
	}
	return re
}
