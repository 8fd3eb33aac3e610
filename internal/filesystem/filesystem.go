// Package filesystem is the file access used to discover coverage reports.
// Production code runs on the host filesystem; tests run on an in-memory one.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.FileInfo, error)
	Getwd() (string, error)
	Abs(path string) (string, error)
}

// AferoFS implements Filesystem on top of an afero.Fs.
type AferoFS struct {
	fs  afero.Fs
	cwd string
}

// NewOS returns the real filesystem of the host. Relative paths resolve against os.Getwd.
func NewOS() *AferoFS {
	return &AferoFS{fs: afero.NewOsFs()}
}

// NewMemory returns an empty in-memory filesystem whose working directory is cwd.
func NewMemory(cwd string) *AferoFS {
	return &AferoFS{fs: afero.NewMemMapFs(), cwd: cwd}
}

// Fs exposes the underlying afero.Fs, e.g. to populate an in-memory filesystem.
func (a *AferoFS) Fs() afero.Fs {
	return a.fs
}

func (a *AferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

// ReadDir lists a directory sorted by file name.
func (a *AferoFS) ReadDir(name string) ([]fs.FileInfo, error) {
	return afero.ReadDir(a.fs, name)
}

func (a *AferoFS) Getwd() (string, error) {
	if a.cwd != "" {
		return a.cwd, nil
	}
	return os.Getwd()
}

func (a *AferoFS) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	cwd, err := a.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, path), nil
}
