package commit

import (
	"fmt"
	"io"
	"strings"

	"github.com/gritscm/grit/pkg/objects"
)

// DefaultEncoding is the message encoding recorded when none is given.
const DefaultEncoding = "UTF-8"

// Commit is a node in the history graph. It points at a root tree,
// zero or more parents, carries author and committer identities, an
// encoding header, and a message.
//
// Content layout:
//
//	tree <sha>
//	parent <sha>        (zero or more)
//	author <person>
//	committer <person>
//	encoding <name>     (optional)
//	<blank line>
//	<message>
type Commit struct {
	TreeSHA    objects.ObjectHash
	ParentSHAs []objects.ObjectHash
	Author     *Person
	Committer  *Person
	Encoding   string
	Message    string

	hash *objects.ObjectHash
}

// Validate checks that required fields are present.
func (c *Commit) Validate() error {
	if c.TreeSHA == "" {
		return fmt.Errorf("tree SHA is required")
	}
	if c.Author == nil {
		return fmt.Errorf("author is required")
	}
	if c.Committer == nil {
		return fmt.Errorf("committer is required")
	}
	return nil
}

// Type returns the object type.
func (c *Commit) Type() objects.ObjectType {
	return objects.CommitType
}

// Content returns the commit body without the storage header.
func (c *Commit) Content() (objects.ObjectContent, error) {
	var buf strings.Builder

	buf.WriteString("tree ")
	buf.WriteString(c.TreeSHA.String())
	buf.WriteString("\n")

	for _, parent := range c.ParentSHAs {
		buf.WriteString("parent ")
		buf.WriteString(parent.String())
		buf.WriteString("\n")
	}

	buf.WriteString("author ")
	buf.WriteString(c.Author.FormatGit())
	buf.WriteString("\n")

	buf.WriteString("committer ")
	buf.WriteString(c.Committer.FormatGit())
	buf.WriteString("\n")

	if c.Encoding != "" {
		buf.WriteString("encoding ")
		buf.WriteString(c.Encoding)
		buf.WriteString("\n")
	}

	buf.WriteString("\n")
	buf.WriteString(c.Message)

	return objects.ObjectContent(buf.String()), nil
}

// Hash returns the content-address of the commit.
func (c *Commit) Hash() (objects.ObjectHash, error) {
	if c.hash != nil {
		return *c.hash, nil
	}

	content, err := c.Content()
	if err != nil {
		return "", err
	}

	hash := objects.ComputeObjectHash(objects.CommitType, content)
	c.hash = &hash
	return hash, nil
}

// Size returns the content size in bytes.
func (c *Commit) Size() (int64, error) {
	content, err := c.Content()
	if err != nil {
		return 0, err
	}
	return content.Size(), nil
}

// Serialize writes the commit in storage format.
func (c *Commit) Serialize(w io.Writer) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid commit: %w", err)
	}

	content, err := c.Content()
	if err != nil {
		return err
	}

	if _, err := w.Write(objects.CreateHeader(objects.CommitType, content.Size())); err != nil {
		return fmt.Errorf("write commit header: %w", err)
	}
	if _, err := w.Write(content.Bytes()); err != nil {
		return fmt.Errorf("write commit content: %w", err)
	}

	return nil
}

// IsRoot reports whether this commit has no parents.
func (c *Commit) IsRoot() bool {
	return len(c.ParentSHAs) == 0
}

// String returns a human-readable representation.
func (c *Commit) String() string {
	hash, err := c.Hash()
	if err != nil {
		return fmt.Sprintf("Commit{tree: %s, parents: %d, error: %v}", c.TreeSHA.Short(), len(c.ParentSHAs), err)
	}
	return fmt.Sprintf("Commit{hash: %s, tree: %s, parents: %d, message: %.40s}",
		hash.Short(), c.TreeSHA.Short(), len(c.ParentSHAs), c.Message)
}

// ParseCommit parses a commit from serialized data, header included.
func ParseCommit(data []byte) (*Commit, error) {
	content, err := objects.ParseSerializedObject(data, objects.CommitType)
	if err != nil {
		return nil, err
	}

	c, err := parseCommitContent(content.String())
	if err != nil {
		return nil, err
	}

	hash := objects.NewObjectHash(data)
	c.hash = &hash

	return c, nil
}

func parseCommitContent(content string) (*Commit, error) {
	lines := strings.Split(content, "\n")
	c := &Commit{}

	messageStart := -1
	for i, line := range lines {
		if line == "" {
			messageStart = i + 1
			break
		}
		if err := parseHeaderLine(c, line); err != nil {
			return nil, err
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid commit: %w", err)
	}

	if messageStart != -1 && messageStart < len(lines) {
		c.Message = strings.Join(lines[messageStart:], "\n")
	}

	return c, nil
}

func parseHeaderLine(c *Commit, line string) error {
	switch {
	case strings.HasPrefix(line, "tree "):
		if c.TreeSHA != "" {
			return fmt.Errorf("multiple tree entries found")
		}
		sha, err := objects.ParseObjectHash(strings.TrimPrefix(line, "tree "))
		if err != nil {
			return fmt.Errorf("invalid tree SHA: %w", err)
		}
		c.TreeSHA = sha

	case strings.HasPrefix(line, "parent "):
		sha, err := objects.ParseObjectHash(strings.TrimPrefix(line, "parent "))
		if err != nil {
			return fmt.Errorf("invalid parent SHA: %w", err)
		}
		c.ParentSHAs = append(c.ParentSHAs, sha)

	case strings.HasPrefix(line, "author "):
		if c.Author != nil {
			return fmt.Errorf("multiple author entries found")
		}
		author, err := ParsePerson(strings.TrimPrefix(line, "author "))
		if err != nil {
			return fmt.Errorf("invalid author: %w", err)
		}
		c.Author = author

	case strings.HasPrefix(line, "committer "):
		if c.Committer != nil {
			return fmt.Errorf("multiple committer entries found")
		}
		committer, err := ParsePerson(strings.TrimPrefix(line, "committer "))
		if err != nil {
			return fmt.Errorf("invalid committer: %w", err)
		}
		c.Committer = committer

	case strings.HasPrefix(line, "encoding "):
		c.Encoding = strings.TrimPrefix(line, "encoding ")

	default:
		return fmt.Errorf("unknown header line: %s", line)
	}

	return nil
}
