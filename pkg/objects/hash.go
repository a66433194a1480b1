package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
)

// ObjectHash is the SHA-1 content-address of an object as a
// 40-character lowercase hex string.
type ObjectHash string

const (
	// HashLength is the length of a full hash in hex characters.
	HashLength = 40

	// ShortHashLength is the default abbreviation length.
	ShortHashLength = 7

	// RawHashLength is the length of a hash in bytes.
	RawHashLength = 20
)

// NewObjectHash hashes the given serialized bytes.
func NewObjectHash(data []byte) ObjectHash {
	sum := sha1.Sum(data)
	return ObjectHash(hex.EncodeToString(sum[:]))
}

// ComputeObjectHash hashes an object from its type and content,
// addressing "<type> <size>\0<content>".
func ComputeObjectHash(objType ObjectType, content ObjectContent) ObjectHash {
	return NewObjectHash(NewSerializedObject(objType, content).Bytes())
}

// ParseObjectHash validates and normalizes a hex string into an ObjectHash.
func ParseObjectHash(s string) (ObjectHash, error) {
	h := ObjectHash(strings.ToLower(s))
	if err := h.Validate(); err != nil {
		return "", err
	}
	return h, nil
}

// String returns the hash as a string.
func (h ObjectHash) String() string {
	return string(h)
}

// Validate checks length and hex characters.
func (h ObjectHash) Validate() error {
	if len(h) != HashLength {
		return fmt.Errorf("hash must be %d characters long, got %d", HashLength, len(h))
	}
	for _, c := range h {
		if !isHexChar(c) {
			return fmt.Errorf("hash must contain only hex characters, found %q", c)
		}
	}
	return nil
}

// IsValid reports whether this is a well-formed hash.
func (h ObjectHash) IsValid() bool {
	return h.Validate() == nil
}

// Short returns the abbreviated hash.
func (h ObjectHash) Short() string {
	if len(h) >= ShortHashLength {
		return string(h[:ShortHashLength])
	}
	return string(h)
}

// Raw returns the hash decoded to its 20 raw bytes.
func (h ObjectHash) Raw() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}
	return hex.DecodeString(string(h))
}

// Equal compares two hashes case-insensitively.
func (h ObjectHash) Equal(other ObjectHash) bool {
	return strings.EqualFold(string(h), string(other))
}

func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
