package commit

import (
	"fmt"

	"github.com/gritscm/grit/pkg/objects"
)

// Builder assembles a Commit field by field, collecting validation
// errors and reporting them all at Build time.
type Builder struct {
	commit *Commit
	errs   []error
}

// NewBuilder creates a Builder with the default encoding preset.
func NewBuilder() *Builder {
	return &Builder{
		commit: &Commit{Encoding: DefaultEncoding},
	}
}

// Tree sets the root tree SHA.
func (b *Builder) Tree(sha objects.ObjectHash) *Builder {
	if err := sha.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid tree SHA: %w", err))
	} else {
		b.commit.TreeSHA = sha
	}
	return b
}

// Parent appends a parent SHA.
func (b *Builder) Parent(sha objects.ObjectHash) *Builder {
	if err := sha.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid parent SHA: %w", err))
	} else {
		b.commit.ParentSHAs = append(b.commit.ParentSHAs, sha)
	}
	return b
}

// Parents appends multiple parent SHAs.
func (b *Builder) Parents(shas ...objects.ObjectHash) *Builder {
	for _, sha := range shas {
		b.Parent(sha)
	}
	return b
}

// Author sets the author identity.
func (b *Builder) Author(author *Person) *Builder {
	if author == nil {
		b.errs = append(b.errs, fmt.Errorf("author cannot be nil"))
	} else {
		b.commit.Author = author
	}
	return b
}

// Committer sets the committer identity.
func (b *Builder) Committer(committer *Person) *Builder {
	if committer == nil {
		b.errs = append(b.errs, fmt.Errorf("committer cannot be nil"))
	} else {
		b.commit.Committer = committer
	}
	return b
}

// Encoding sets the message encoding header.
func (b *Builder) Encoding(encoding string) *Builder {
	if encoding != "" {
		b.commit.Encoding = encoding
	}
	return b
}

// Message sets the commit message.
func (b *Builder) Message(message string) *Builder {
	b.commit.Message = message
	return b
}

// Build validates and returns the commit.
func (b *Builder) Build() (*Commit, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("commit builder errors: %v", b.errs)
	}
	if err := b.commit.Validate(); err != nil {
		return nil, err
	}
	return b.commit, nil
}
