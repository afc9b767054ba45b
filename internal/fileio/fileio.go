// Package fileio reads codec input and writes codec output.
//
// The name "-" selects standard input or standard output. Files are
// written through a temporary file in the same directory and renamed
// into place, so a failed write never leaves partial output behind.
package fileio

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/seiflotfy/huffman"
)

// Stdio is the file name that selects stdin or stdout.
const Stdio = "-"

// ErrNotDecodable indicates a text file that is not valid UTF-8.
var ErrNotDecodable = errors.New("not decodable as UTF-8 text")

var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// ReadBytes returns the contents of path.
func ReadBytes(path string) ([]byte, error) {
	if path == Stdio {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return b, nil
}

// ReadText returns the contents of path as text. The file must be
// non-empty UTF-8.
func ReadText(path string) (string, error) {
	b, err := ReadBytes(path)
	if err != nil {
		return "", err
	}
	if len(b) == 0 {
		return "", fmt.Errorf("%s: %w", path, huffman.ErrEmptyInput)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%s: %w", path, ErrNotDecodable)
	}
	return string(b), nil
}

// WriteText writes text to path.
func WriteText(path, text string) error {
	return WriteBytes(path, []byte(text))
}

// WriteBytes writes b to path, replacing any existing file but keeping
// its permissions. New files are created with mode 0644.
func WriteBytes(path string, b []byte) error {
	if path == Stdio {
		if _, err := stdout.Write(b); err != nil {
			return fmt.Errorf("writing stdout: %w", err)
		}
		return nil
	}
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := tmp.Write(b); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
