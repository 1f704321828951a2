// Package corewalk implements a depth-first walk of an input tree that
// honors hidden/ignore/git-ignore/git-exclude visibility rules. The
// per-directory ignore-file loading is grounded in pelican-dev-wings'
// use of github.com/sabhiram/go-gitignore to filter a server's file
// tree before archiving it.
package corewalk

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/archio-dev/archio/internal/corerr"
)

// Policy holds four independent toggles controlling which entries the
// walk yields.
type Policy struct {
	ReadHidden     bool
	ReadIgnore     bool
	ReadGitIgnore  bool
	ReadGitExclude bool
}

// Entry is one yielded filesystem entry, relative to the walk's root.
type Entry struct {
	Path    string // relative to root, forward-slash separated
	AbsPath string
	Info    fs.DirEntry
}

// matcher holds the patterns of the ignore files read at the walk's
// root, compiled together; go-gitignore's CompileIgnoreLines implements
// the "later, more specific pattern wins" rule the same way git itself
// does for a single file's accumulated patterns.
type matcher struct {
	*gitignore.GitIgnore
}

func (m *matcher) matches(relPath string, isDir bool) bool {
	if m == nil || m.GitIgnore == nil {
		return false
	}
	if isDir {
		return m.MatchesPath(relPath + "/")
	}
	return m.MatchesPath(relPath)
}

// Walk enumerates root depth-first, yielding an Entry for every path the
// policy allows, and calling onErr (if non-nil) for individual entry
// errors instead of aborting the whole walk; the walk continues past
// them.
func Walk(root string, policy Policy, onErr func(error), yield func(Entry) error) error {
	ignoreFiles := []string{}
	if policy.ReadIgnore {
		ignoreFiles = append(ignoreFiles, ".archioignore")
	}
	if policy.ReadGitIgnore {
		ignoreFiles = append(ignoreFiles, ".gitignore")
	}

	var excludeMatcher *matcher
	if policy.ReadGitExclude {
		excludeMatcher = loadIgnoreFile(filepath.Join(root, ".git", "info", "exclude"))
	}

	rootMatcher := loadLayeredIgnores(root, ignoreFiles)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if onErr != nil {
				onErr(corerr.WalkError(err))
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if path == root {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		name := d.Name()

		if policy.ReadGitIgnore && d.IsDir() && name == ".git" {
			return filepath.SkipDir
		}

		if !policy.ReadHidden && isHidden(name) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if rootMatcher.matches(rel, d.IsDir()) || excludeMatcher.matches(rel, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		return yield(Entry{Path: rel, AbsPath: path, Info: d})
	})
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// loadLayeredIgnores compiles the candidate ignore files found directly
// in root into a single matcher. Ignore files in subdirectories are not
// read.
func loadLayeredIgnores(root string, basenames []string) *matcher {
	if len(basenames) == 0 {
		return nil
	}

	var lines []string
	for _, base := range basenames {
		path := filepath.Join(root, base)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	if len(lines) == 0 {
		return nil
	}
	return &matcher{GitIgnore: gitignore.CompileIgnoreLines(lines...)}
}

func loadIgnoreFile(path string) *matcher {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	lines := strings.Split(string(data), "\n")
	return &matcher{GitIgnore: gitignore.CompileIgnoreLines(lines...)}
}
