// Package filex contains the filesystem primitives behind the note appender.
package filex

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" with the current user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// EnsureDir creates dir and any missing parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// AppendFile appends data to path with a single write, creating the file if
// needed. prefix is called with the last byte currently in the file (0 for an
// empty file) and its result is written in front of data, so callers can add
// separators without reopening the file. The file is synced and closed on
// every path; a close error is reported when nothing else failed.
func AppendFile(path string, data []byte, prefix func(last byte) []byte) (n int, err error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	last, err := lastByte(f)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	buf := data
	if prefix != nil {
		if p := prefix(last); len(p) > 0 {
			buf = make([]byte, 0, len(p)+len(data))
			buf = append(buf, p...)
			buf = append(buf, data...)
		}
	}

	n, err = f.Write(buf)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Sync(); err != nil {
		return n, fmt.Errorf("sync %s: %w", path, err)
	}
	return n, nil
}

func lastByte(f *os.File) (byte, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if fi.Size() == 0 {
		return 0, nil
	}
	b := make([]byte, 1)
	if _, err := f.ReadAt(b, fi.Size()-1); err != nil && !errors.Is(err, io.EOF) {
		return 0, err
	}
	return b[0], nil
}
