package inbox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// dirPerm is the permission for watcher-managed directories.
const dirPerm = 0750

// DirConfig holds the watch directory layout.
type DirConfig struct {
	Inbox  string // incoming response .txt files
	Outbox string // written .report.json files
}

// FailedDir returns the path for files that could not be processed.
func (d DirConfig) FailedDir() string {
	return filepath.Join(d.Outbox, "failed")
}

// EnsureDirs creates all required directories. Idempotent.
func EnsureDirs(cfg DirConfig) error {
	dirs := []string{
		cfg.Inbox,
		cfg.Outbox,
		cfg.FailedDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// moveFile moves src to dst using os.Rename. If rename fails with EXDEV
// (cross-device link, common with systemd ReadWritePaths bind mounts),
// it falls back to copy + remove.
func moveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if !errors.As(err, &errno) || errno != syscall.EXDEV {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}
