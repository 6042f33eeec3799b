package store

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rtvm/rtvm/src/internal/config"
)

// ActiveSet tracks the active version of every runtime type. Each type
// persists its selection in its own marker file under the store root, and
// every marker is loaded when the store opens, so switching one runtime
// never forgets another runtime's selection.
type ActiveSet struct {
	versions map[string]string
}

// LoadActiveSet reads all per-type marker files under the store root.
// A missing root yields an empty set.
func LoadActiveSet() (*ActiveSet, error) {
	set := &ActiveSet{versions: make(map[string]string)}

	root := config.DefaultPaths().Root
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return set, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, config.MarkerPrefix) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			return nil, err
		}

		version := strings.TrimSpace(string(data))
		if version == "" {
			continue
		}
		set.versions[strings.TrimPrefix(name, config.MarkerPrefix)] = version
	}

	return set, nil
}

// Get returns the active version for a runtime
func (a *ActiveSet) Get(runtimeName string) (string, bool) {
	version, ok := a.versions[runtimeName]
	return version, ok
}

// Set persists the active version for a runtime and updates the in-memory map
func (a *ActiveSet) Set(runtimeName, version string) error {
	if err := os.MkdirAll(config.DefaultPaths().Root, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(config.MarkerPath(runtimeName), []byte(version), 0644); err != nil {
		return err
	}

	a.versions[runtimeName] = version
	return nil
}

// All returns a copy of the runtime-to-active-version map
func (a *ActiveSet) All() map[string]string {
	out := make(map[string]string, len(a.versions))
	for name, version := range a.versions {
		out[name] = version
	}
	return out
}
