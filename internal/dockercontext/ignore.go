// Package dockercontext packs a build context directory into a gzip'd tar
// stream for the Docker Engine build endpoint, honoring nested ignore
// files the way a checkout of several vendored subprojects might each
// carry their own.
package dockercontext

import (
	"bufio"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// DefaultIgnoreFilenames is the set of filenames, in precedence order,
// that a directory may use to exclude its own contents. The first one
// present in a directory governs that directory's subtree.
var DefaultIgnoreFilenames = []string{".dockerignore", ".gitignore", ".ignore"}

// compileDirMatcher looks for the first ignore filename present in dir and
// compiles it into a matcher. Returns a nil matcher (not an error) if dir
// defines no ignore file of its own.
func compileDirMatcher(dir string, ignoreFilenames []string) (*ignore.GitIgnore, error) {
	for _, name := range ignoreFilenames {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		if info.IsDir() {
			continue
		}

		patterns, err := readIgnoreFile(path)
		if err != nil {
			return nil, err
		}
		return ignore.CompileIgnoreLines(patterns...), nil
	}
	return nil, nil
}

func readIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		patterns = append(patterns, scanner.Text())
	}
	return patterns, scanner.Err()
}

// rootMatcher compiles the context root's ignore file (if any) with a
// force-include of .git appended last, so a bare "*" or "**" pattern
// earlier in the root ignore file doesn't silently strip version control
// metadata callers might expect to survive in the packed context. Pattern
// matching is last-match-wins, the same as git itself, so the negation has
// to come after anything it's meant to override, not before.
func rootMatcher(root string, ignoreFilenames []string) (*ignore.GitIgnore, error) {
	var patterns []string

	for _, name := range ignoreFilenames {
		path := filepath.Join(root, name)
		lines, err := readIgnoreFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		patterns = append(patterns, lines...)
		break
	}

	patterns = append(patterns, "!.git", "!.git/**")

	return ignore.CompileIgnoreLines(patterns...), nil
}
