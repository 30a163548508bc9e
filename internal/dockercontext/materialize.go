package dockercontext

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Materialize copies root's surviving files (per NewWalker's nested ignore
// filtering) into a fresh temp directory and returns its path, so a
// builder backend that wants a real directory on disk (BuildKit's
// LocalDirs, as opposed to Classic's tar upload in Pack) sees the exact
// same filtered file set instead of the unfiltered project directory.
// The caller is responsible for removing the returned directory.
func Materialize(root string, ignoreFilenames ...string) (string, error) {
	entries, err := NewWalker(root, ignoreFilenames...).Files()
	if err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp("", "swiftide-buildcontext-*")
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if err := copyEntry(dir, entry); err != nil {
			os.RemoveAll(dir)
			return "", fmt.Errorf("materializing %s: %w", entry.RelPath, err)
		}
	}

	return dir, nil
}

func copyEntry(dstRoot string, entry Entry) error {
	dst := filepath.Join(dstRoot, filepath.FromSlash(entry.RelPath))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	if entry.Info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(entry.AbsPath)
		if err != nil {
			return err
		}
		return os.Symlink(target, dst)
	}

	if !entry.Info.Mode().IsRegular() {
		return nil
	}

	src, err := os.Open(entry.AbsPath)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, entry.Info.Mode().Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
