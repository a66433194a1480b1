package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gritscm/grit/pkg/gritpath"
)

// Exists reports whether a file or directory exists at the given path.
// Returns an error only on filesystem failures other than non-existence.
func Exists(p gritpath.AbsolutePath) (bool, error) {
	_, err := os.Stat(p.String())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("check existence: %w", err)
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(p gritpath.AbsolutePath) error {
	if err := os.MkdirAll(p.String(), 0755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", p, err)
	}
	return nil
}

// EnsureDirString is EnsureDir for a raw string path.
func EnsureDirString(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", path, err)
	}
	return nil
}

// EnsureParentDir creates the parent directory of a file if missing.
func EnsureParentDir(p gritpath.AbsolutePath) error {
	if err := os.MkdirAll(filepath.Dir(p.String()), 0755); err != nil {
		return fmt.Errorf("ensure parent directory: %w", err)
	}
	return nil
}

// ReadString reads a file as a trimmed string. A missing file yields
// "" and no error, which suits optional files like config.
func ReadString(p gritpath.AbsolutePath) (string, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadStringStrict reads a file as a trimmed string and fails if the
// file does not exist.
func ReadStringStrict(p gritpath.AbsolutePath) (string, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// ReadBytes reads a file's raw bytes. A missing file yields nil, nil.
func ReadBytes(p gritpath.AbsolutePath) ([]byte, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// WriteConfig writes data with 0644 permissions, creating the parent
// directory if needed.
func WriteConfig(p gritpath.AbsolutePath, data []byte) error {
	if err := EnsureParentDir(p); err != nil {
		return err
	}
	if err := os.WriteFile(p.String(), data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// WriteConfigString is WriteConfig for string content.
func WriteConfigString(p gritpath.AbsolutePath, content string) error {
	return WriteConfig(p, []byte(content))
}

// WriteReadOnly writes data with 0444 permissions. Used for immutable
// object files.
func WriteReadOnly(p gritpath.AbsolutePath, data []byte) error {
	if err := EnsureParentDir(p); err != nil {
		return err
	}
	if err := os.WriteFile(p.String(), data, 0444); err != nil {
		return fmt.Errorf("write read-only file: %w", err)
	}
	return nil
}

// SafeRemove removes a file, treating non-existence as success.
func SafeRemove(p gritpath.AbsolutePath) error {
	if err := os.Remove(p.String()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}

// IsDirectory reports whether the path exists and is a directory.
func IsDirectory(p gritpath.AbsolutePath) (bool, error) {
	info, err := os.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return info.IsDir(), nil
}

// IsFile reports whether the path exists and is a regular file.
func IsFile(p gritpath.AbsolutePath) (bool, error) {
	info, err := os.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat path: %w", err)
	}
	return !info.IsDir(), nil
}
