package ui

import (
	"fmt"
	"strings"
)

// FormatModified renders a modified path for status output.
func FormatModified(path string) string {
	return fmt.Sprintf("  %s  %s", modifiedStyle.Render(IconModified), modifiedStyle.Render(path))
}

// FormatDeleted renders a deleted path.
func FormatDeleted(path string) string {
	return fmt.Sprintf("  %s  %s", deletedStyle.Render(IconDeleted), deletedStyle.Render(path))
}

// FormatStaged renders a staged path.
func FormatStaged(path string) string {
	return fmt.Sprintf("  %s  %s", stagedStyle.Render(IconStaged), stagedStyle.Render(path))
}

// FormatNew renders an untracked path.
func FormatNew(path string) string {
	return fmt.Sprintf("  %s  %s", newStyle.Render(IconNew), newStyle.Render(path))
}

// SuccessMessage renders a confirmation line with optional details.
func SuccessMessage(message string, details ...string) string {
	parts := []string{Green(IconStaged), Green(message)}
	for _, detail := range details {
		parts = append(parts, Blue(detail))
	}
	return strings.Join(parts, " ")
}

// BranchLine renders the current branch banner.
func BranchLine(name string) string {
	return fmt.Sprintf("%s On branch %s", Cyan(IconBranch), Blue(name))
}

// CommitSummary is the displayable form of one commit.
type CommitSummary struct {
	Hash    string
	Author  string
	Date    string
	Message string
}

// FormatCommit renders a commit inside the rounded box.
func FormatCommit(c CommitSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", Yellow(IconCommit), Yellow(c.Hash))
	fmt.Fprintf(&sb, "%s\n", Cyan(c.Author))
	fmt.Fprintf(&sb, "%s\n", Dim(c.Date))
	sb.WriteString(c.Message)
	return CommitBox(sb.String())
}

// DiffLine colors one rendered diff line by its prefix.
func DiffLine(line string) string {
	switch {
	case strings.HasPrefix(line, "+ "):
		return Green(line)
	case strings.HasPrefix(line, "- "):
		return Red(line)
	default:
		return Dim(line)
	}
}
