//go:build linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris || aix

package probe

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func osReadable(name string) bool {
	return unix.Access(name, unix.R_OK) == nil
}

func osTimes(name string, info fs.FileInfo) (time.Time, time.Time, time.Time) {
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		m := info.ModTime()
		return m, m, m
	}
	return time.Unix(st.Atim.Unix()), time.Unix(st.Mtim.Unix()), time.Unix(st.Ctim.Unix())
}
