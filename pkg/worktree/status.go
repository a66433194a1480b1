package worktree

// Status classifies a working directory path against a commit tree.
type Status int

const (
	// StatusUnchanged means the path exists in both with identical content.
	StatusUnchanged Status = iota

	// StatusNew means the path exists on disk but not in the tree.
	StatusNew

	// StatusModified means the path exists in both with different content.
	StatusModified

	// StatusDeleted means the path exists in the tree but not on disk.
	StatusDeleted
)

func (s Status) String() string {
	switch s {
	case StatusUnchanged:
		return "unchanged"
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
