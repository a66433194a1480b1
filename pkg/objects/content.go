package objects

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
)

// ObjectContent is raw object data: file bytes for a blob, serialized
// entries for a tree, header lines plus message for a commit.
type ObjectContent []byte

// CompressedData is DEFLATE-compressed data as stored on disk.
type CompressedData []byte

// SerializedObject is an object in storage format, header included.
// Format: "<type> <size>\0<content>".
type SerializedObject []byte

// Bytes returns the underlying byte slice.
func (oc ObjectContent) Bytes() []byte {
	return []byte(oc)
}

// String returns the content as a string.
func (oc ObjectContent) String() string {
	return string(oc)
}

// Size returns the content size in bytes.
func (oc ObjectContent) Size() int64 {
	return int64(len(oc))
}

// IsEmpty reports whether the content is empty.
func (oc ObjectContent) IsEmpty() bool {
	return len(oc) == 0
}

// Compress compresses the content with DEFLATE.
func (oc ObjectContent) Compress() (CompressedData, error) {
	if oc.IsEmpty() {
		return CompressedData{}, nil
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("create compressor: %w", err)
	}

	if _, err := w.Write(oc); err != nil {
		w.Close()
		return nil, fmt.Errorf("compress data: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalize compression: %w", err)
	}

	return CompressedData(buf.Bytes()), nil
}

// Bytes returns the underlying byte slice.
func (cd CompressedData) Bytes() []byte {
	return []byte(cd)
}

// Decompress inflates the DEFLATE-compressed data.
func (cd CompressedData) Decompress() (ObjectContent, error) {
	if len(cd) == 0 {
		return ObjectContent{}, nil
	}

	r := flate.NewReader(bytes.NewReader(cd))
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompress data: %w", err)
	}

	return ObjectContent(data), nil
}

// Bytes returns the underlying byte slice.
func (so SerializedObject) Bytes() []byte {
	return []byte(so)
}

// ParseHeader parses the header of a serialized object without
// requiring a particular type.
func (so SerializedObject) ParseHeader() (ObjectType, int64, int, error) {
	data := []byte(so)
	nullIndex := bytes.IndexByte(data, NullByte)
	if nullIndex == -1 {
		return "", 0, 0, fmt.Errorf("invalid object header: missing null byte")
	}

	spaceIndex := bytes.IndexByte(data[:nullIndex], SpaceByte)
	if spaceIndex == -1 {
		return "", 0, 0, fmt.Errorf("invalid object header: missing space")
	}

	objType, err := ParseObjectType(string(data[:spaceIndex]))
	if err != nil {
		return "", 0, 0, err
	}

	var size int64
	if _, err := fmt.Sscanf(string(data[spaceIndex+1:nullIndex]), "%d", &size); err != nil {
		return "", 0, 0, fmt.Errorf("invalid size in header: %w", err)
	}

	return objType, size, nullIndex + 1, nil
}

// Compress compresses the whole serialized object.
func (so SerializedObject) Compress() (CompressedData, error) {
	return ObjectContent(so).Compress()
}

// NewSerializedObject builds a serialized object from type and content.
func NewSerializedObject(objType ObjectType, content ObjectContent) SerializedObject {
	header := CreateHeader(objType, content.Size())
	return SerializedObject(append(header, content.Bytes()...))
}
