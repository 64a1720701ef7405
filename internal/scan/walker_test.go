package scan

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "README.md", []byte("# proj\n"))
	writeFile(t, dir, "analysis.ipynb", []byte("{}"))
	writeFile(t, dir, filepath.Join("data", "sales.csv"), []byte("a,b\n1,2\n"))
	writeFile(t, dir, filepath.Join("data", "model.pkl"), []byte{0x80, 0x04})
	writeFile(t, dir, filepath.Join("src", "train.py"), []byte("print('hi')\n"))
	writeFile(t, dir, filepath.Join(".git", "HEAD"), []byte("ref: refs/heads/main\n"))
	return dir
}

func TestWalkOrderAndTree(t *testing.T) {
	dir := testWorkspace(t)
	rules := NewRuleset([]string{".git"}, nil, nil)

	ws, err := NewWalker(rules).Walk(dir)
	require.NoError(t, err)

	var rels []string
	for _, f := range ws.Files {
		rels = append(rels, f.Rel)
	}
	// Lexical directory-then-name order, .git pruned.
	assert.Equal(t, []string{
		"README.md",
		"analysis.ipynb",
		"data/model.pkl",
		"data/sales.csv",
		"src/train.py",
	}, rels)

	assert.Contains(t, ws.Tree, "data/\n")
	assert.Contains(t, ws.Tree, "sales.csv")
	assert.NotContains(t, ws.Tree, ".git")
}

func TestWalkDeterministic(t *testing.T) {
	dir := testWorkspace(t)
	rules := NewRuleset([]string{".git"}, nil, nil)
	walker := NewWalker(rules)

	first, err := walker.Walk(dir)
	require.NoError(t, err)
	second, err := walker.Walk(dir)
	require.NoError(t, err)

	assert.Equal(t, first.Files, second.Files)
	assert.Equal(t, first.Tree, second.Tree)
}

func TestWalkFileMetadata(t *testing.T) {
	dir := testWorkspace(t)
	rules := NewRuleset([]string{".git"}, nil, nil)

	ws, err := NewWalker(rules).Walk(dir)
	require.NoError(t, err)

	byRel := make(map[string]SourceFile)
	for _, f := range ws.Files {
		byRel[f.Rel] = f
	}

	csv := byRel["data/sales.csv"]
	assert.Equal(t, ".csv", csv.Ext)
	assert.Equal(t, int64(8), csv.Size)
	assert.Equal(t, KindUnknown, csv.Kind)
	assert.True(t, filepath.IsAbs(csv.Path))
}

func TestWalkIgnoredFilesCounted(t *testing.T) {
	dir := testWorkspace(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("*.ipynb\n"), 0o644))

	rules := NewRuleset([]string{".git"}, []string{".gitignore"}, nil)
	require.NoError(t, rules.LoadIgnoreFiles(dir, []string{".gitignore"}))

	ws, err := NewWalker(rules).Walk(dir)
	require.NoError(t, err)

	// analysis.ipynb by pattern, .gitignore itself by name.
	assert.Equal(t, 2, ws.Ignored)
	for _, f := range ws.Files {
		assert.NotEqual(t, "analysis.ipynb", f.Rel)
	}
}

func TestWalkUnreadableSubdirSkipped(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}

	dir := t.TempDir()
	writeFile(t, dir, "main.py", []byte("print('hi')\n"))
	writeFile(t, dir, filepath.Join("locked", "hidden.txt"), []byte("secret"))
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	ws, err := NewWalker(NewRuleset(nil, nil, nil)).Walk(dir)
	require.NoError(t, err)

	var rels []string
	for _, f := range ws.Files {
		rels = append(rels, f.Rel)
	}
	assert.Equal(t, []string{"main.py"}, rels)
	assert.Equal(t, 1, ws.Unreadable)
}

func TestWalkInvalidRoot(t *testing.T) {
	_, err := NewWalker(NewRuleset(nil, nil, nil)).Walk(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRoot))
}

func TestWalkRootIsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", []byte("x"))

	_, err := NewWalker(NewRuleset(nil, nil, nil)).Walk(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRoot))
}

func TestWalkEmptyWorkspace(t *testing.T) {
	_, err := NewWalker(NewRuleset(nil, nil, nil)).Walk(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFiles))
}
