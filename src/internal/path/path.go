// Package path registers the rtvm bin directory on the user's PATH
package path

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rtvm/rtvm/src/internal/constants"
)

// IsInPath reports whether dir is already on the current process PATH.
func IsInPath(dir string) bool {
	pathEnv := os.Getenv("PATH")

	separator := ":"
	if runtime.GOOS == constants.OSWindows {
		separator = ";"
	}

	dir = filepath.Clean(dir)
	for _, p := range strings.Split(pathEnv, separator) {
		if filepath.Clean(p) == dir {
			return true
		}
	}

	return false
}
