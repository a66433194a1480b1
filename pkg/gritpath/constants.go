package gritpath

const (
	// GritDir is the name of the repository metadata directory.
	GritDir = ".grit"

	// ObjectsDir is the name of the objects directory inside GritDir.
	ObjectsDir = "objects"

	// RefsDir is the name of the refs directory inside GritDir.
	RefsDir = "refs"

	// HeadsDir is the name of the branch refs directory.
	HeadsDir = "heads"

	// TagsDir is the name of the tag refs directory.
	TagsDir = "tags"

	// HeadFile is the name of the HEAD file.
	HeadFile = "HEAD"

	// StageFile is the name of the staging area file.
	StageFile = "stage"

	// ConfigFile is the name of the config file.
	ConfigFile = "config"

	// IgnoreFile is the name of the ignore file at the repository root.
	IgnoreFile = ".gritignore"
)
