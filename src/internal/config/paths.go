// Package config manages rtvm configuration including directory paths
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Paths holds all important rtvm directory paths
type Paths struct {
	Root     string // Root rtvm directory (~/.rtvm)
	Bin      string // Shared executable farm (~/.rtvm/bin)
	Versions string // Versions directory (~/.rtvm/versions)
	Cache    string // Download cache directory (~/.rtvm/cache)
}

var (
	defaultPaths *Paths
	pathsOnce    sync.Once
)

// DefaultPaths returns the default rtvm paths.
// This function is thread-safe and guarantees single initialization.
func DefaultPaths() *Paths {
	pathsOnce.Do(func() {
		defaultPaths = initPaths()
	})
	return defaultPaths
}

// initPaths initializes the default paths
func initPaths() *Paths {
	root := getRootDir()
	return &Paths{
		Root:     root,
		Bin:      filepath.Join(root, "bin"),
		Versions: filepath.Join(root, "versions"),
		Cache:    filepath.Join(root, "cache"),
	}
}

// getRootDir returns the root rtvm directory
func getRootDir() string {
	// Check for RTVM_ROOT environment variable first
	if root := os.Getenv("RTVM_ROOT"); root != "" {
		return root
	}

	// Use home directory
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home is not available
		return ".rtvm"
	}

	return filepath.Join(home, ".rtvm")
}

// RuntimeVersionsDir returns the directory holding every installed version
// of a runtime. Each runtime gets its own namespace so identical version
// strings across runtimes cannot collide.
func RuntimeVersionsDir(runtimeName string) string {
	paths := DefaultPaths()
	return filepath.Join(paths.Versions, runtimeName)
}

// RuntimeVersionPath returns the path to a specific runtime version
func RuntimeVersionPath(runtimeName, version string) string {
	return filepath.Join(RuntimeVersionsDir(runtimeName), version)
}

// MarkerPrefix is the file-name prefix of active-version marker files
const MarkerPrefix = ".current-"

// MarkerPath returns the path to the active-version marker file for a runtime
func MarkerPath(runtimeName string) string {
	paths := DefaultPaths()
	return filepath.Join(paths.Root, MarkerPrefix+runtimeName)
}

// AliasFilePath returns the path to the alias document for a runtime
func AliasFilePath(runtimeName string) string {
	paths := DefaultPaths()
	return filepath.Join(paths.Root, fmt.Sprintf("aliases-%s.json", runtimeName))
}

// LockPath returns the path to the store-wide lock file
func LockPath() string {
	paths := DefaultPaths()
	return filepath.Join(paths.Root, ".lock")
}

// EnsureDirectories creates all necessary rtvm directories
func EnsureDirectories() error {
	paths := DefaultPaths()
	dirs := []string{
		paths.Root,
		paths.Bin,
		paths.Versions,
		paths.Cache,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// ResetPathsCache resets the cached paths, forcing reinitialization on next access.
// This is primarily useful for testing.
func ResetPathsCache() {
	pathsOnce = sync.Once{}
	defaultPaths = nil
}
