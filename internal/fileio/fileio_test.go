package fileio

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seiflotfy/huffman"
)

func TestWriteReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, WriteText(path, "café\n"))

	got, err := ReadText(path)
	require.NoError(t, err)
	require.Equal(t, "café\n", got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0644), info.Mode().Perm())
}

func TestWriteBytesReplaces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")
	require.NoError(t, WriteBytes(path, []byte("first version")))
	require.NoError(t, WriteBytes(path, []byte{0x00, 0xff}))

	got, err := ReadBytes(path)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0xff}, got)

	// no temporary files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestWriteBytesKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0600))
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, WriteText(path, "new"))
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, fs.FileMode(0600), info.Mode().Perm())
	require.Equal(t, "new", string(mustReadFile(t, path)))
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func TestWriteBytesMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "out.bin")
	err := WriteBytes(path, []byte("x"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadMissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	require.ErrorIs(t, err, fs.ErrNotExist)
	require.ErrorContains(t, err, "missing.txt")
}

func TestReadTextRejects(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	_, err := ReadText(empty)
	require.ErrorIs(t, err, huffman.ErrEmptyInput)

	binary := filepath.Join(dir, "binary.bin")
	require.NoError(t, os.WriteFile(binary, []byte{'a', 0xff, 0xfe}, 0644))
	_, err = ReadText(binary)
	require.ErrorIs(t, err, ErrNotDecodable)

	// raw bytes are still readable
	b, err := ReadBytes(binary)
	require.NoError(t, err)
	require.Len(t, b, 3)
}

func TestStdio(t *testing.T) {
	oldIn, oldOut := stdin, stdout
	t.Cleanup(func() { stdin, stdout = oldIn, oldOut })

	var out bytes.Buffer
	stdin = strings.NewReader("from stdin")
	stdout = &out

	got, err := ReadText(Stdio)
	require.NoError(t, err)
	require.Equal(t, "from stdin", got)

	require.NoError(t, WriteText(Stdio, "to stdout"))
	require.Equal(t, "to stdout", out.String())
}
