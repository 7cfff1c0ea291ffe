package probe

import (
	"io/fs"
	"time"

	"github.com/spf13/afero"
)

// aferoFS implements FS on top of an afero filesystem
type aferoFS struct {
	fs afero.Fs
}

// NewAfero creates an FS backed by fsys, typically an afero.MemMapFs in tests.
func NewAfero(fsys afero.Fs) FS {
	return &aferoFS{fs: fsys}
}

func (a *aferoFS) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = fs.FileInfoToDirEntry(info)
	}
	return entries, nil
}

func (a *aferoFS) Stat(name string) (fs.FileInfo, error) {
	return a.fs.Stat(name)
}

func (a *aferoFS) Readable(name string) bool {
	f, err := a.fs.Open(name)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// Times reports the modify time for all three values; afero does not track
// access or change times.
func (a *aferoFS) Times(_ string, info fs.FileInfo) (time.Time, time.Time, time.Time) {
	m := info.ModTime()
	return m, m, m
}
