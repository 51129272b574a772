package selfupdate

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
)

// replaceExecutable writes data next to target and renames it over target,
// keeping target's permission bits. The staged copy is re-read and compared
// with data before the rename.
func replaceExecutable(target string, data []byte) error {
	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("stat target: %w", err)
	}

	staged, err := os.CreateTemp(filepath.Dir(target), ".quizgen-update-*")
	if err != nil {
		return fmt.Errorf("create staging file: %w", err)
	}
	stagedPath := staged.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(stagedPath)
		}
	}()

	if _, err := staged.Write(data); err != nil {
		_ = staged.Close()
		return fmt.Errorf("write staging file: %w", err)
	}
	if err := staged.Sync(); err != nil {
		_ = staged.Close()
		return fmt.Errorf("sync staging file: %w", err)
	}
	if err := staged.Close(); err != nil {
		return fmt.Errorf("close staging file: %w", err)
	}

	onDisk, err := os.ReadFile(stagedPath)
	if err != nil {
		return fmt.Errorf("re-read staging file: %w", err)
	}
	want, got := sha256.Sum256(data), sha256.Sum256(onDisk)
	if !bytes.Equal(want[:], got[:]) {
		return fmt.Errorf("%w: staged binary changed after write", ErrChecksum)
	}

	if err := os.Chmod(stagedPath, info.Mode().Perm()); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(stagedPath, target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	committed = true
	return nil
}
