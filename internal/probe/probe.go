// Package probe lists the candidate files of a single directory.
//
// Only entries directly under the root are considered. An entry becomes a
// candidate when its name matches the pattern, the process can read it and it
// resolves to a regular file. A failure to list the root is a ProbeError;
// failures on individual entries drop that entry and the scan goes on.
package probe

import (
	"io/fs"
	"path/filepath"
	"time"

	"github.com/thlorenz/files-provider/internal/errors"
	"github.com/thlorenz/files-provider/internal/log"
	"github.com/thlorenz/files-provider/pkg/pattern"
	"github.com/thlorenz/files-provider/pkg/types"
)

// TimestampWidth is the fixed length of a freshness label.
const TimestampWidth = len("2006-01-02T15:04:05")

// Probe resolves candidate files in a directory.
type Probe struct {
	fs         FS
	timestamps bool
}

// Option configures a Probe.
type Option func(*Probe)

// WithFS replaces the OS filesystem.
func WithFS(fsys FS) Option {
	return func(p *Probe) { p.fs = fsys }
}

// WithTimestamps enables the freshness label on every candidate.
func WithTimestamps(enabled bool) Option {
	return func(p *Probe) { p.timestamps = enabled }
}

// New creates a Probe over the OS filesystem unless WithFS is given.
func New(opts ...Option) *Probe {
	p := &Probe{fs: NewOS()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Resolve returns the candidates under root in listing order.
func (p *Probe) Resolve(root string, m pattern.Matcher) ([]types.File, error) {
	entries, err := p.fs.ReadDir(root)
	if err != nil {
		return nil, classify(root, err)
	}

	files := make([]types.File, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !m.Match(name) {
			continue
		}

		fullPath := filepath.Join(root, name)
		if !p.fs.Readable(fullPath) {
			log.LogWithFields(log.F("path", fullPath)).Debug("Skipping unreadable entry")
			continue
		}

		info, err := p.fs.Stat(fullPath)
		if err != nil {
			log.LogWithFields(log.F("path", fullPath), log.F("error", err.Error())).Debug("Skipping entry that failed stat")
			continue
		}
		if !info.Mode().IsRegular() {
			log.LogWithFields(log.F("path", fullPath), log.F("mode", info.Mode().String())).Debug("Skipping non-regular entry")
			continue
		}

		file := types.File{FullPath: fullPath, Entry: name}
		if p.timestamps {
			file.Timestamp = FormatTimestamp(Freshness(p.fs.Times(fullPath, info)))
		}
		files = append(files, file)
	}

	log.LogWithFields(
		log.F("root", root),
		log.F("pattern", m.String()),
		log.F("entries", len(entries)),
		log.F("candidates", len(files)),
	).Debug("Resolved directory")
	return files, nil
}

// Freshness returns the latest of the three times. Comparison is pairwise and
// a tie resolves to the operand compared later.
func Freshness(atime, mtime, ctime time.Time) time.Time {
	return latest(latest(atime, mtime), ctime)
}

func latest(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// FormatTimestamp renders t in local time as RFC3339 cut to TimestampWidth,
// so every label has the same length.
func FormatTimestamp(t time.Time) string {
	s := t.Local().Format(time.RFC3339)
	if len(s) > TimestampWidth {
		s = s[:TimestampWidth]
	}
	return s
}

func classify(root string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.NewProbeError("directory not found", root, errors.DirectoryNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return errors.NewProbeError("directory access denied", root, errors.DirectoryAccessDenied, err)
	default:
		return errors.NewProbeError("cannot list directory", root, errors.DirectoryReadFailed, err)
	}
}
