package scan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestSnifferText(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", []byte("just a normal text file\nwith two lines\n"))

	kind, err := NewSniffer(1024).Classify(path)
	require.NoError(t, err)
	assert.Equal(t, KindText, kind)
}

func TestSnifferNullByteFlipsToBinary(t *testing.T) {
	dir := t.TempDir()
	sniffer := NewSniffer(512)

	// A null byte anywhere inside the window flips the result.
	for _, pos := range []int{0, 1, 255, 511} {
		content := bytes.Repeat([]byte{'a'}, 512)
		content[pos] = 0
		path := writeFile(t, dir, "f.bin", content)

		kind, err := sniffer.Classify(path)
		require.NoError(t, err)
		assert.Equal(t, KindBinary, kind, "null byte at offset %d", pos)
	}
}

func TestSnifferNullByteOutsideWindow(t *testing.T) {
	dir := t.TempDir()
	content := append(bytes.Repeat([]byte{'a'}, 512), 0)
	path := writeFile(t, dir, "late-null.dat", content)

	kind, err := NewSniffer(512).Classify(path)
	require.NoError(t, err)
	assert.Equal(t, KindText, kind)
}

func TestSnifferShortFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "tiny.txt", []byte("hi"))

	kind, err := NewSniffer(1024).Classify(path)
	require.NoError(t, err)
	assert.Equal(t, KindText, kind)
}

func TestSnifferUnreadable(t *testing.T) {
	_, err := NewSniffer(1024).Classify(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnreadable))
}
