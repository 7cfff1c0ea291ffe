//go:build !windows

package config

import (
	"os"

	"github.com/google/renameio/v2"
)

// writeFileAtomic replaces filename via temp file and rename so readers
// never see a truncated config.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return renameio.WriteFile(filename, data, perm)
}
