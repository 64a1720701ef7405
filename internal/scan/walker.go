package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Walker produces the ordered file list and tree map for a workspace.
type Walker struct {
	rules *Ruleset
}

// NewWalker creates a walker using the given exclusion rules.
func NewWalker(rules *Ruleset) *Walker {
	return &Walker{rules: rules}
}

// Walk traverses root in directory-then-name lexical order and returns
// the discovered files plus the rendered tree map.
//
// Ignored directories are pruned from both the file list and the tree.
// Ignored files are excluded from both but counted in Workspace.Ignored.
// A subdirectory that cannot be listed is counted in
// Workspace.Unreadable and skipped; only an unreadable root is fatal.
// Files whose extension is in the skip-content set ARE returned; the
// pipeline gives them a size-only placeholder instead of reading them.
func (w *Walker) Walk(root string) (*Workspace, error) {
	cleanRoot, err := validateRoot(root)
	if err != nil {
		return nil, err
	}

	ws := &Workspace{Root: cleanRoot}
	var tree strings.Builder
	tree.WriteString(filepath.Base(cleanRoot) + "/\n")

	err = filepath.WalkDir(cleanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Only the root is fatal. An unreadable subdirectory is
			// counted and its subtree skipped; the run goes on.
			if path == cleanRoot {
				return err
			}
			ws.Unreadable++
			return filepath.SkipDir
		}
		if path == cleanRoot {
			return nil
		}

		rel, err := filepath.Rel(cleanRoot, path)
		if err != nil {
			return fmt.Errorf("computing relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/") + 1
		indent := strings.Repeat("    ", depth)

		if d.IsDir() {
			if w.rules.IgnoredDir(d.Name(), rel) {
				return filepath.SkipDir
			}
			tree.WriteString(indent + d.Name() + "/\n")
			return nil
		}

		// Non-regular entries (sockets, devices, dangling symlinks)
		// are left out of the run entirely.
		info, err := d.Info()
		if err != nil || !info.Mode().IsRegular() {
			return nil
		}

		if w.rules.IgnoredFile(d.Name(), rel) {
			ws.Ignored++
			return nil
		}

		tree.WriteString(indent + d.Name() + "\n")
		ws.Files = append(ws.Files, SourceFile{
			Path: path,
			Rel:  rel,
			Size: info.Size(),
			Ext:  strings.ToLower(filepath.Ext(d.Name())),
			Kind: KindUnknown,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", cleanRoot, err)
	}

	if len(ws.Files) == 0 {
		return nil, ErrNoFiles
	}

	ws.Tree = tree.String()
	return ws, nil
}

// validateRoot cleans the root path and checks it is an existing
// directory.
func validateRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("%w: path is empty", ErrInvalidRoot)
	}

	clean, err := filepath.Abs(filepath.Clean(root))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}

	info, err := os.Stat(clean)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s does not exist", ErrInvalidRoot, clean)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidRoot, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, clean)
	}

	return clean, nil
}
