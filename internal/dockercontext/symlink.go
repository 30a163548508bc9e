package dockercontext

import (
	"path/filepath"
	"strings"

	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// resolveSymlink follows a symlink entry and reports whether it should be
// packed as-is. A broken link, a link cycle, or a target outside root is
// logged and skipped rather than failing the whole pack — one stray
// symlink shouldn't block a build.
func resolveSymlink(root, path string) (skip bool) {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		console.Warn("dockercontext: skipping broken symlink %s: %v", path, err)
		return true
	}

	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		console.Warn("dockercontext: skipping symlink %s: target %s escapes context root", path, target)
		return true
	}

	return false
}
