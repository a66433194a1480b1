package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	greenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D75F")).Bold(true)
	redStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	yellowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	blueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AFFF")).Bold(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	// Status-specific styles
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4444")).Bold(true)
	stagedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00D75F")).Bold(true)
	newStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Underline(true)

	commitBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5FFF")).
			PaddingLeft(2).
			PaddingRight(2).
			MarginBottom(1)
)

// Icons
const (
	IconStaged   = "✓"
	IconModified = "◉"
	IconDeleted  = "✗"
	IconNew      = "?"
	IconBranch   = "⎇"
	IconCommit   = "⊚"
)

func Green(s string) string  { return greenStyle.Render(s) }
func Red(s string) string    { return redStyle.Render(s) }
func Yellow(s string) string { return yellowStyle.Render(s) }
func Blue(s string) string   { return blueStyle.Render(s) }
func Cyan(s string) string   { return cyanStyle.Render(s) }
func Dim(s string) string    { return dimStyle.Render(s) }

// Section renders a bold underlined section heading.
func Section(text string) string {
	return sectionStyle.Render(text)
}

// CommitBox wraps text in the rounded commit border.
func CommitBox(text string) string {
	return commitBoxStyle.Render(text)
}
