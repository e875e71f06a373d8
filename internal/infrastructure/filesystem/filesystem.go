// Package filesystem implements ports.Filesystem on top of go-billy.
package filesystem

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/alexisbeaulieu97/failover-remedy/internal/ports"
)

// Eraser tests for and removes files and directory trees.
type Eraser struct {
	fs billy.Basic
}

// New returns an Eraser over the host filesystem. Paths are used as given,
// so callers pass absolute paths.
func New() *Eraser {
	return NewWithFS(osfs.New(""))
}

// NewWithFS returns an Eraser over an arbitrary billy filesystem.
func NewWithFS(fsys billy.Basic) *Eraser {
	return &Eraser{fs: fsys}
}

// Exists reports whether path names an existing file or directory.
func (e *Eraser) Exists(path string) (bool, error) {
	_, err := e.fs.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// DeleteFile removes a single file. Directories are rejected.
func (e *Eraser) DeleteFile(path string) error {
	info, err := e.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return &fs.PathError{Op: "delete", Path: path, Err: errors.New("is a directory")}
	}
	if err := e.fs.Remove(path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

// DeleteDirectoryRecursive removes path and everything beneath it.
func (e *Eraser) DeleteDirectoryRecursive(path string) error {
	if _, err := e.fs.Stat(path); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := util.RemoveAll(e.fs, path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	return nil
}

var _ ports.Filesystem = (*Eraser)(nil)
