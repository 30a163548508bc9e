package dockercontext

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/bosun-ai/swiftide-docker-executor/pkg/console"
)

// Entry is one file surviving the ignore filters, ready to be tarred.
type Entry struct {
	// AbsPath is the entry's path on disk.
	AbsPath string
	// RelPath is AbsPath relative to the context root, using forward
	// slashes regardless of host OS.
	RelPath string
	Info    os.FileInfo
}

// Walker enumerates the files under Root that survive nested ignore-file
// filtering. Every ancestor directory that defines one of IgnoreFilenames
// contributes its own matcher, and a file is excluded if any of them —
// checked against the path relative to that matcher's own directory —
// matches it; a nested ignore file adds exclusions on top of its
// ancestors' rather than replacing them.
type Walker struct {
	Root            string
	IgnoreFilenames []string
}

// NewWalker builds a Walker using names (or DefaultIgnoreFilenames if
// names is empty) to locate per-directory ignore files.
func NewWalker(root string, names ...string) *Walker {
	if len(names) == 0 {
		names = DefaultIgnoreFilenames
	}
	return &Walker{Root: root, IgnoreFilenames: names}
}

// scope is one ancestor directory's own ignore matcher, relative to that
// directory.
type scope struct {
	dir     string
	matcher *ignore.GitIgnore
}

// Files walks Root and returns every surviving regular file and symlink.
// Directories are not returned as entries; a directory matched by an
// ignore pattern is skipped along with its whole subtree.
func (w *Walker) Files() ([]Entry, error) {
	root, err := rootMatcher(w.Root, w.IgnoreFilenames)
	if err != nil {
		return nil, err
	}

	// stack holds every ancestor directory (from Root down) that defines
	// its own matcher. A path is excluded if ANY of them matches it
	// relative to their own directory: a nested ignore file adds
	// exclusions on top of its ancestors' instead of replacing them.
	stack := []scope{{dir: w.Root, matcher: root}}

	var entries []Entry

	err = filepath.Walk(w.Root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			console.Warn("dockercontext: skipping %s: %v", path, walkErr)
			return nil
		}

		for len(stack) > 1 && !isWithin(stack[len(stack)-1].dir, path) {
			stack = stack[:len(stack)-1]
		}

		if info.IsDir() {
			if path != w.Root {
				m, err := compileDirMatcher(path, w.IgnoreFilenames)
				if err != nil {
					return err
				}
				if matchesAny(stack, path) {
					return filepath.SkipDir
				}
				if m != nil {
					stack = append(stack, scope{dir: path, matcher: m})
				}
			}
			return nil
		}

		if matchesAny(stack, path) {
			return nil
		}
		for _, name := range w.IgnoreFilenames {
			if info.Name() == name {
				return nil
			}
		}

		if info.Mode()&os.ModeSymlink != 0 && resolveSymlink(w.Root, path) {
			return nil
		}

		rel, err := filepath.Rel(w.Root, path)
		if err != nil {
			return err
		}

		entries = append(entries, Entry{
			AbsPath: path,
			RelPath: filepath.ToSlash(rel),
			Info:    info,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func matches(m *ignore.GitIgnore, scopeDir, path string) bool {
	rel, err := filepath.Rel(scopeDir, path)
	if err != nil {
		return false
	}
	return m.MatchesPath(filepath.ToSlash(rel))
}

func matchesAny(stack []scope, path string) bool {
	for _, s := range stack {
		if s.matcher != nil && matches(s.matcher, s.dir, path) {
			return true
		}
	}
	return false
}
