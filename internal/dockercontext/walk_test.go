package dockercontext

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func relPaths(t *testing.T, entries []Entry) []string {
	t.Helper()
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.RelPath
	}
	sort.Strings(out)
	return out
}

func TestWalkerFilesHonorsRootIgnoreFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"main.go":       "package main",
		"build/out.bin": "binary",
		".gitignore":    "build/\n",
	})

	entries, err := NewWalker(root).Files()
	require.NoError(t, err)

	// the governing ignore file's own entry is never packed, matching the
	// teacher's dockerignore.Walk skipping its own DockerIgnoreFilename.
	require.Equal(t, []string{"main.go"}, relPaths(t, entries))
}

func TestWalkerFilesNestedIgnoreComposesWithParent(t *testing.T) {
	root := writeTree(t, map[string]string{
		"debug.log":            "root log, excluded by root .gitignore",
		"vendor/a/debug.log":   "still excluded: root's *.log applies at any depth",
		"vendor/a/scratch.tmp": "excluded by vendor/a's own .gitignore instead",
		"vendor/a/keep.txt":    "not matched by either ignore file, survives",
		"vendor/a/.gitignore":  "*.tmp\n",
		".gitignore":           "*.log\n",
	})

	entries, err := NewWalker(root).Files()
	require.NoError(t, err)

	paths := relPaths(t, entries)
	require.NotContains(t, paths, "debug.log")
	require.NotContains(t, paths, filepath.ToSlash("vendor/a/debug.log"),
		"a nested ignore file must add to its ancestors' exclusions, not replace them")
	require.NotContains(t, paths, filepath.ToSlash("vendor/a/scratch.tmp"))
	require.Contains(t, paths, filepath.ToSlash("vendor/a/keep.txt"))
}

func TestWalkerFilesKeepsGitMetadataAlongsideUnrelatedIgnorePatterns(t *testing.T) {
	root := writeTree(t, map[string]string{
		".git/HEAD":        "ref: refs/heads/main",
		"node_modules/x.js": "excluded",
		".gitignore":        "node_modules/\n",
	})

	entries, err := NewWalker(root).Files()
	require.NoError(t, err)

	paths := relPaths(t, entries)
	require.Contains(t, paths, filepath.ToSlash(".git/HEAD"))
	require.NotContains(t, paths, filepath.ToSlash("node_modules/x.js"))
}

func TestWalkerFilesKeepsGitMetadataEvenAgainstABareWildcardIgnorePattern(t *testing.T) {
	root := writeTree(t, map[string]string{
		".git/HEAD":   "ref: refs/heads/main",
		"main.go":     "package main",
		".gitignore":  "*\n",
	})

	entries, err := NewWalker(root).Files()
	require.NoError(t, err)

	paths := relPaths(t, entries)
	require.NotContains(t, paths, "main.go", "the root pattern still excludes everything else")
	require.Contains(t, paths, filepath.ToSlash(".git/HEAD"),
		"the force-include negation is appended after user patterns, so it wins under last-match-wins semantics")
}

func TestWalkerFilesCustomIgnoreFilenames(t *testing.T) {
	root := writeTree(t, map[string]string{
		"skip.txt":      "x",
		"keep.txt":      "y",
		".dockerignore": "skip.txt\n",
		".gitignore":    "keep.txt\n",
	})

	entries, err := NewWalker(root, ".dockerignore").Files()
	require.NoError(t, err)

	paths := relPaths(t, entries)
	require.Contains(t, paths, "keep.txt")
	require.NotContains(t, paths, "skip.txt")
}

func TestWalkerFilesSkipsBrokenSymlink(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

	entries, err := NewWalker(root).Files()
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestWalkerFilesSkipsSymlinkEscapingRoot(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	target := filepath.Join(outside, "secret.txt")
	require.NoError(t, os.WriteFile(target, []byte("s"), 0o644))
	require.NoError(t, os.Symlink(target, filepath.Join(root, "escape")))

	entries, err := NewWalker(root).Files()
	require.NoError(t, err)
	require.Empty(t, entries)
}
