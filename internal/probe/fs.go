package probe

import (
	"io/fs"
	"os"
	"time"
)

// FS is the slice of filesystem behaviour the probe depends on.
type FS interface {
	// ReadDir lists the entries directly under name.
	ReadDir(name string) ([]fs.DirEntry, error)
	// Stat returns info for name, following symlinks.
	Stat(name string) (fs.FileInfo, error)
	// Readable reports whether the current process can read name.
	Readable(name string) bool
	// Times returns the access, modify and change times of name. Implementations
	// that cannot observe a time report the modify time in its place.
	Times(name string, info fs.FileInfo) (atime, mtime, ctime time.Time)
}

// osFS implements FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() FS {
	return &osFS{}
}

func (o *osFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (o *osFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (o *osFS) Readable(name string) bool {
	return osReadable(name)
}

func (o *osFS) Times(name string, info fs.FileInfo) (time.Time, time.Time, time.Time) {
	return osTimes(name, info)
}
