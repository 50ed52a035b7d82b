package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// DirectoryExistsError is returned when the project directory is already present.
type DirectoryExistsError struct {
	Name string
	Path string
}

func (e *DirectoryExistsError) Error() string {
	return fmt.Sprintf("A directory called '%s' already exists. Please create your function in a new directory.", e.Name)
}

// PermissionError is returned when the parent path does not allow creating
// the project directory.
type PermissionError struct {
	Path string
	Err  error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("You do not have permission to create files or directories in the path '%s'.", e.Path)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// IOError wraps any other directory creation failure. Its message is the
// underlying error's message.
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return e.Err.Error() }

func (e *IOError) Unwrap() error { return e.Err }

// CreateDirectory creates the single directory <path>/<name>. Parents are
// not created and an existing target is never reused.
func CreateDirectory(fsys afero.Fs, path, name string) error {
	dir := filepath.Join(path, name)
	err := fsys.Mkdir(dir, 0755)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist):
		return &DirectoryExistsError{Name: name, Path: path}
	case errors.Is(err, fs.ErrPermission):
		return &PermissionError{Path: path, Err: err}
	default:
		return &IOError{Err: err}
	}
}
