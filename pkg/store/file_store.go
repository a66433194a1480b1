package store

import (
	"bytes"
	"fmt"
	"os"

	"github.com/gritscm/grit/pkg/common/errs"
	"github.com/gritscm/grit/pkg/common/fileops"
	"github.com/gritscm/grit/pkg/gritpath"
	"github.com/gritscm/grit/pkg/objects"
	"github.com/gritscm/grit/pkg/objects/blob"
	"github.com/gritscm/grit/pkg/objects/commit"
	"github.com/gritscm/grit/pkg/objects/tree"
)

// FileStore stores objects as DEFLATE-compressed files under a
// two-level fanout:
//
//	.grit/objects/ab/cdef1234...   for hash "abcdef1234..."
//
// Object files are immutable and written read-only; an existing file
// short-circuits the write.
type FileStore struct {
	objectsPath gritpath.GritDirPath
}

// NewFileStore creates a store rooted at the given .grit directory.
func NewFileStore(gritDir gritpath.GritDirPath) *FileStore {
	return &FileStore{objectsPath: gritDir.ObjectsPath()}
}

// Init creates the objects directory if it does not exist.
func (fs *FileStore) Init() error {
	if err := fileops.EnsureDir(fs.objectsPath.ToAbsolutePath()); err != nil {
		return errs.Wrap(err, pkgName, "init")
	}
	return nil
}

// WriteObject serializes, hashes, compresses and stores the object.
// Returns the hash without writing when the object already exists.
func (fs *FileStore) WriteObject(obj objects.Object) (objects.ObjectHash, error) {
	var buf bytes.Buffer
	if err := obj.Serialize(&buf); err != nil {
		return "", errs.Wrap(err, pkgName, "serialize")
	}
	serialized := objects.SerializedObject(buf.Bytes())

	hash := objects.NewObjectHash(serialized.Bytes())

	filePath, err := fs.objectPath(hash)
	if err != nil {
		return "", err
	}

	if exists, err := fileops.Exists(filePath.ToAbsolutePath()); err != nil {
		return "", errs.Wrap(err, pkgName, "write")
	} else if exists {
		return hash, nil
	}

	compressed, err := serialized.Compress()
	if err != nil {
		return "", errs.Wrap(err, pkgName, "compress")
	}

	if err := fileops.WriteReadOnly(filePath.ToAbsolutePath(), compressed.Bytes()); err != nil {
		return "", errs.Wrap(err, pkgName, "write")
	}

	return hash, nil
}

// ReadObject reads, decompresses and parses a stored object.
func (fs *FileStore) ReadObject(hash objects.ObjectHash) (objects.Object, error) {
	filePath, err := fs.objectPath(hash)
	if err != nil {
		return nil, err
	}

	compressed, err := os.ReadFile(filePath.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(pkgName, CodeObjectNotFound, "read",
				fmt.Sprintf("object %s not found", hash.Short()), nil)
		}
		return nil, errs.Wrap(err, pkgName, "read")
	}

	decompressed, err := objects.CompressedData(compressed).Decompress()
	if err != nil {
		return nil, errs.Wrap(err, pkgName, "decompress")
	}

	return parseObject(decompressed)
}

// HasObject reports whether the object exists on disk.
func (fs *FileStore) HasObject(hash objects.ObjectHash) (bool, error) {
	filePath, err := fs.objectPath(hash)
	if err != nil {
		return false, err
	}

	exists, err := fileops.Exists(filePath.ToAbsolutePath())
	if err != nil {
		return false, errs.Wrap(err, pkgName, "has")
	}
	return exists, nil
}

func (fs *FileStore) objectPath(hash objects.ObjectHash) (gritpath.GritDirPath, error) {
	if err := hash.Validate(); err != nil {
		return "", errs.WrapWithCode(err, pkgName, errs.CodeInvalidInput, "resolve_path")
	}

	p := fs.objectsPath.ObjectFilePath(hash.String())
	if p == "" {
		return "", errs.New(pkgName, errs.CodeInternal, "resolve_path",
			fmt.Sprintf("cannot build object path for %s", hash), nil)
	}
	return p, nil
}

// parseObject dispatches on the header type and parses the full object.
func parseObject(data objects.ObjectContent) (objects.Object, error) {
	serialized := objects.SerializedObject(data)
	objType, _, _, err := serialized.ParseHeader()
	if err != nil {
		return nil, errs.WrapWithCode(err, pkgName, errs.CodeInvalidFormat, "parse")
	}

	full := serialized.Bytes()
	switch objType {
	case objects.BlobType:
		return blob.ParseBlob(full)
	case objects.TreeType:
		return tree.ParseTree(full)
	case objects.CommitType:
		return commit.ParseCommit(full)
	default:
		return nil, errs.New(pkgName, errs.CodeInvalidFormat, "parse",
			fmt.Sprintf("unknown object type: %s", objType), nil)
	}
}
