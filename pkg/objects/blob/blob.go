package blob

import (
	"fmt"
	"io"

	"github.com/gritscm/grit/pkg/objects"
)

// Blob is a leaf object holding raw file content.
type Blob struct {
	content objects.ObjectContent
	hash    *objects.ObjectHash
}

// NewBlob creates a blob from raw file data. The hash is computed lazily.
func NewBlob(data []byte) *Blob {
	return &Blob{
		content: objects.ObjectContent(data),
	}
}

// ParseBlob parses a blob from serialized data, header included.
func ParseBlob(data []byte) (*Blob, error) {
	content, err := objects.ParseSerializedObject(data, objects.BlobType)
	if err != nil {
		return nil, err
	}

	hash := objects.NewObjectHash(data)
	return &Blob{
		content: content,
		hash:    &hash,
	}, nil
}

// Type returns the object type.
func (b *Blob) Type() objects.ObjectType {
	return objects.BlobType
}

// Content returns the raw content of the blob.
func (b *Blob) Content() (objects.ObjectContent, error) {
	return b.content, nil
}

// Hash returns the content-address of the blob.
func (b *Blob) Hash() (objects.ObjectHash, error) {
	if b.hash != nil {
		return *b.hash, nil
	}

	hash := objects.ComputeObjectHash(objects.BlobType, b.content)
	b.hash = &hash
	return hash, nil
}

// Size returns the content size in bytes.
func (b *Blob) Size() (int64, error) {
	return b.content.Size(), nil
}

// Serialize writes the blob in storage format.
func (b *Blob) Serialize(w io.Writer) error {
	serialized := objects.NewSerializedObject(objects.BlobType, b.content)
	if _, err := w.Write(serialized.Bytes()); err != nil {
		return fmt.Errorf("write blob: %w", err)
	}
	return nil
}

// String returns a human-readable representation.
func (b *Blob) String() string {
	hash, err := b.Hash()
	if err != nil {
		return fmt.Sprintf("Blob{size: %d, error: %v}", b.content.Size(), err)
	}
	return fmt.Sprintf("Blob{size: %d, hash: %s}", b.content.Size(), hash.Short())
}
