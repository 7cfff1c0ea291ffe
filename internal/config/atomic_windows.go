//go:build windows

package config

import "os"

func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return os.WriteFile(filename, data, perm)
}
