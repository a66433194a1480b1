package objects

import (
	"bytes"
	"fmt"
	"io"
)

// ObjectType identifies the kind of repository object.
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	TreeType   ObjectType = "tree"
	CommitType ObjectType = "commit"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

// String implements the Stringer interface.
func (o ObjectType) String() string {
	return string(o)
}

// Object is the interface implemented by blobs, trees, and commits.
type Object interface {
	// Type returns the object type.
	Type() ObjectType

	// Content returns the raw content without the storage header.
	Content() (ObjectContent, error)

	// Hash returns the content-address of the object.
	Hash() (ObjectHash, error)

	// Size returns the content size in bytes.
	Size() (int64, error)

	// Serialize writes the object in storage format: "<type> <size>\0<content>".
	Serialize(w io.Writer) error
}

// ParseObjectType converts a string to an ObjectType.
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case BlobType, TreeType, CommitType:
		return ObjectType(s), nil
	default:
		return "", fmt.Errorf("unknown object type: %s", s)
	}
}

// CreateHeader builds the storage header for an object.
func CreateHeader(objType ObjectType, size int64) []byte {
	return fmt.Appendf(nil, "%s %d%c", objType, size, NullByte)
}

// ParseHeader parses a storage header, checking the expected type.
// Returns the declared content size and the offset where content starts.
func ParseHeader(data []byte, ot ObjectType) (size int64, contentStart int, err error) {
	nullIndex := bytes.IndexByte(data, NullByte)
	if nullIndex == -1 {
		return -1, -1, fmt.Errorf("invalid object header: missing null byte")
	}

	spaceIndex := bytes.IndexByte(data[:nullIndex], SpaceByte)
	if spaceIndex == -1 {
		return -1, -1, fmt.Errorf("invalid object header: missing space")
	}

	if got := string(data[:spaceIndex]); got != ot.String() {
		return -1, -1, fmt.Errorf("object type mismatch: expected %s, got %s", ot, got)
	}

	if _, err = fmt.Sscanf(string(data[spaceIndex+1:nullIndex]), "%d", &size); err != nil {
		return -1, -1, fmt.Errorf("invalid size in header: %w", err)
	}

	return size, nullIndex + 1, nil
}

// ParseSerializedObject extracts the content of a serialized object of
// the expected type, verifying the declared size.
func ParseSerializedObject(data []byte, ot ObjectType) (ObjectContent, error) {
	size, contentStart, err := ParseHeader(data, ot)
	if err != nil {
		return nil, err
	}

	content := data[contentStart:]
	if int64(len(content)) != size {
		return nil, fmt.Errorf("%s size mismatch: expected %d, got %d", ot, size, len(content))
	}

	return ObjectContent(content), nil
}
