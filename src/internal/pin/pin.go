// Package pin reads and writes per-project version files such as
// .node-version. A pin declares which version a project expects,
// independent of the globally active version.
package pin

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
)

// Set writes the pin file for a runtime in the current working
// directory. The version must already be installed.
func Set(st *store.Store, profile runtime.Profile, version string) error {
	if !st.IsInstalled(profile.Name(), version) {
		return &store.NotInstalledError{Runtime: profile.Name(), Version: version}
	}

	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, profile.PinFileName()), []byte(version), 0644)
}

// Get reads the pin file for a runtime from the current working
// directory. The second return value reports whether a pin exists.
func Get(profile runtime.Profile) (string, bool, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(filepath.Join(dir, profile.PinFileName()))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return strings.TrimSpace(string(data)), true, nil
}
