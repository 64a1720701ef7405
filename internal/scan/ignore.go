package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ruleset decides which workspace entries are excluded from the run.
// It combines three mechanisms:
//   - exact directory and file name sets from configuration
//   - gitignore-style patterns loaded from ignore files at the root
//   - a skip-extension set for files listed in the tree but never read
type Ruleset struct {
	folders  map[string]bool
	files    map[string]bool
	skipExts map[string]bool
	matcher  gitignore.Matcher
}

// NewRuleset builds a ruleset from configured name sets. Gitignore
// patterns are added separately via LoadIgnoreFiles.
func NewRuleset(ignoreFolders, ignoreFiles, skipExts []string) *Ruleset {
	r := &Ruleset{
		folders:  make(map[string]bool, len(ignoreFolders)),
		files:    make(map[string]bool, len(ignoreFiles)),
		skipExts: make(map[string]bool, len(skipExts)),
		matcher:  gitignore.NewMatcher(nil),
	}
	for _, d := range ignoreFolders {
		r.folders[d] = true
	}
	for _, f := range ignoreFiles {
		r.files[f] = true
	}
	for _, e := range skipExts {
		r.skipExts[strings.ToLower(e)] = true
	}
	return r
}

// LoadIgnoreFiles reads gitignore-style files from the workspace root,
// in the given order. Missing files are skipped; unreadable ones are an
// error. Blank lines and comments are dropped, everything else is parsed
// as a gitignore pattern (negations included).
func (r *Ruleset) LoadIgnoreFiles(root string, names []string) error {
	var patterns []gitignore.Pattern

	for _, name := range names {
		path := filepath.Join(root, name)
		f, err := os.Open(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimRight(scanner.Text(), " \t")
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, gitignore.ParsePattern(line, nil))
		}
		err = scanner.Err()
		f.Close()
		if err != nil {
			return err
		}
	}

	if len(patterns) > 0 {
		r.matcher = gitignore.NewMatcher(patterns)
	}
	return nil
}

// IgnoredDir reports whether a directory should be skipped entirely.
// rel is the directory's workspace-relative path with forward slashes.
func (r *Ruleset) IgnoredDir(name, rel string) bool {
	if r.folders[name] {
		return true
	}
	return r.matcher.Match(splitPath(rel), true)
}

// IgnoredFile reports whether a file should be excluded from the run.
func (r *Ruleset) IgnoredFile(name, rel string) bool {
	if r.files[name] {
		return true
	}
	return r.matcher.Match(splitPath(rel), false)
}

// SkipContent reports whether a file's content should never be read,
// based on its extension. Such files still appear in the tree and get a
// size-only placeholder section.
func (r *Ruleset) SkipContent(ext string) bool {
	return r.skipExts[strings.ToLower(ext)]
}

// splitPath converts a slash-separated relative path into the component
// form the gitignore matcher expects.
func splitPath(rel string) []string {
	return strings.Split(rel, "/")
}
