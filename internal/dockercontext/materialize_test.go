package dockercontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaterializeHonorsIgnoreFilesAndPreservesSymlinks(t *testing.T) {
	root := writeTree(t, map[string]string{
		"keep.py":       "ok",
		"secrets.env":   "SECRET=1",
		".dockerignore": "secrets.env\n",
	})
	require.NoError(t, os.Symlink("keep.py", filepath.Join(root, "link.py")))

	dir, err := Materialize(root, ".dockerignore")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	content, err := os.ReadFile(filepath.Join(dir, "keep.py"))
	require.NoError(t, err)
	require.Equal(t, "ok", string(content))

	require.NoFileExists(t, filepath.Join(dir, "secrets.env"))

	info, err := os.Lstat(filepath.Join(dir, "link.py"))
	require.NoError(t, err)
	require.True(t, info.Mode()&os.ModeSymlink != 0)
}

func TestMaterializeNestedDirectoriesPreserveStructure(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a/b/c.txt": "nested",
	})

	dir, err := Materialize(root)
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	content, err := os.ReadFile(filepath.Join(dir, "a", "b", "c.txt"))
	require.NoError(t, err)
	require.Equal(t, "nested", string(content))
}
