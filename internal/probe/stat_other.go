//go:build !(linux || darwin || freebsd || openbsd || netbsd || dragonfly || solaris || aix)

package probe

import (
	"io/fs"
	"os"
	"time"
)

func osReadable(name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func osTimes(_ string, info fs.FileInfo) (time.Time, time.Time, time.Time) {
	m := info.ModTime()
	return m, m, m
}
