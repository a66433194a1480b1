package tree

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gritscm/grit/pkg/objects"
)

// EntryMode is the octal mode string of a tree entry.
type EntryMode string

const (
	ModeDirectory  EntryMode = "040000"
	ModeRegular    EntryMode = "100644"
	ModeExecutable EntryMode = "100755"
	ModeSymlink    EntryMode = "120000"
)

// ParseEntryMode validates a mode string.
func ParseEntryMode(mode string) (EntryMode, error) {
	switch EntryMode(mode) {
	case ModeDirectory, ModeRegular, ModeExecutable, ModeSymlink:
		return EntryMode(mode), nil
	default:
		return "", fmt.Errorf("unknown entry mode: %s", mode)
	}
}

// String returns the mode as a string.
func (m EntryMode) String() string {
	return string(m)
}

// IsDirectory reports whether the mode marks a subtree.
func (m EntryMode) IsDirectory() bool {
	return m == ModeDirectory
}

// Entry is a single named slot in a tree: a mode, a name, and the
// hash of the blob or subtree it points to.
//
// Serialized format: [mode] [space] [name] [null byte] [20 raw hash bytes].
type Entry struct {
	mode EntryMode
	name string
	sha  objects.ObjectHash
}

// NewEntry creates a tree entry with validation.
func NewEntry(mode EntryMode, name string, sha objects.ObjectHash) (*Entry, error) {
	if _, err := ParseEntryMode(string(mode)); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := sha.Validate(); err != nil {
		return nil, fmt.Errorf("invalid entry hash: %w", err)
	}

	return &Entry{
		mode: mode,
		name: name,
		sha:  objects.ObjectHash(strings.ToLower(string(sha))),
	}, nil
}

// Mode returns the entry mode.
func (e *Entry) Mode() EntryMode {
	return e.mode
}

// Name returns the entry name.
func (e *Entry) Name() string {
	return e.name
}

// SHA returns the hash of the referenced object.
func (e *Entry) SHA() objects.ObjectHash {
	return e.sha
}

// IsDirectory reports whether the entry points to a subtree.
func (e *Entry) IsDirectory() bool {
	return e.mode.IsDirectory()
}

// IsExecutable reports whether the entry is an executable file.
func (e *Entry) IsExecutable() bool {
	return e.mode == ModeExecutable
}

// serialize encodes the entry for inclusion in a tree object.
func (e *Entry) serialize() ([]byte, error) {
	raw, err := e.sha.Raw()
	if err != nil {
		return nil, fmt.Errorf("decode entry hash: %w", err)
	}

	out := fmt.Appendf(nil, "%s %s%c", e.mode, e.name, objects.NullByte)
	return append(out, raw...), nil
}

// compareTo orders entries by name, directories before files on ties,
// so that serialization is deterministic.
func (e *Entry) compareTo(other *Entry) int {
	if e.name == other.name {
		switch {
		case e.IsDirectory() && !other.IsDirectory():
			return -1
		case !e.IsDirectory() && other.IsDirectory():
			return 1
		default:
			return 0
		}
	}
	if e.name < other.name {
		return -1
	}
	return 1
}

// deserializeEntry decodes one entry starting at offset and returns the
// entry and the offset of the next one.
func deserializeEntry(data []byte, offset int) (*Entry, int, error) {
	spaceIndex := bytes.IndexByte(data[offset:], objects.SpaceByte)
	if spaceIndex == -1 {
		return nil, 0, fmt.Errorf("invalid tree entry: missing space")
	}
	spaceIndex += offset

	mode, err := ParseEntryMode(string(data[offset:spaceIndex]))
	if err != nil {
		return nil, 0, err
	}

	nullIndex := bytes.IndexByte(data[spaceIndex+1:], objects.NullByte)
	if nullIndex == -1 {
		return nil, 0, fmt.Errorf("invalid tree entry: missing null byte")
	}
	nullIndex += spaceIndex + 1

	name := string(data[spaceIndex+1 : nullIndex])

	start := nullIndex + 1
	end := start + objects.RawHashLength
	if end > len(data) {
		return nil, 0, fmt.Errorf("invalid tree entry: incomplete hash")
	}

	sha := objects.ObjectHash(fmt.Sprintf("%x", data[start:end]))

	entry, err := NewEntry(mode, name, sha)
	if err != nil {
		return nil, 0, err
	}

	return entry, end, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("entry name cannot be empty")
	}
	if strings.ContainsAny(name, "/\x00") {
		return fmt.Errorf("invalid characters in entry name: %s", name)
	}
	return nil
}
