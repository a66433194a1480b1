package fileops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gritscm/grit/pkg/gritpath"
)

// AtomicWrite writes data to a file via a temp file, fsync, and rename,
// so the target is never observed in a partial state.
func AtomicWrite(target gritpath.AbsolutePath, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(target.String())
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := writeAndSync(tmp, data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), target.String()); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	return nil
}

func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write data: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}
	return nil
}
