package provider

import (
	"github.com/spf13/afero"

	"github.com/thlorenz/files-provider/internal/probe"
)

// FS is the filesystem a Provider lists. Implement it to serve files from
// somewhere other than the OS, or use NewAferoFS.
type FS = probe.FS

// TimestampWidth is the length of every File.Timestamp when timestamps are
// enabled.
const TimestampWidth = probe.TimestampWidth

// NewOSFS returns the OS filesystem, the default when WithFS is not given.
func NewOSFS() FS {
	return probe.NewOS()
}

// NewAferoFS adapts an afero filesystem, e.g. afero.NewMemMapFs() in tests.
func NewAferoFS(fsys afero.Fs) FS {
	return probe.NewAfero(fsys)
}
