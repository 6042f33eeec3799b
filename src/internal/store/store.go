// Package store is the on-disk registry of installed runtime versions.
//
// A version is installed exactly when its directory exists under
// versions/<runtime>/<version>; there is no separate manifest. To keep
// that equivalence honest, installs populate a hidden staging directory
// next to the final name and publish it with a single rename, so an
// interrupted install never leaves a visible version directory behind.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/runtime"
)

// Store manages the versions root and the per-runtime active markers
type Store struct {
	paths  *config.Paths
	active *ActiveSet
}

// Open prepares the store directories and loads every runtime's
// active-version marker.
func Open() (*Store, error) {
	if err := config.EnsureDirectories(); err != nil {
		return nil, err
	}

	active, err := LoadActiveSet()
	if err != nil {
		return nil, err
	}

	return &Store{
		paths:  config.DefaultPaths(),
		active: active,
	}, nil
}

// Active returns the loaded active-version set
func (s *Store) Active() *ActiveSet {
	return s.active
}

// InstallPath returns where a version lives (or would live) on disk
func (s *Store) InstallPath(runtimeName, version string) string {
	return config.RuntimeVersionPath(runtimeName, version)
}

// IsInstalled reports whether a version directory exists
func (s *Store) IsInstalled(runtimeName, version string) bool {
	return dirExists(s.InstallPath(runtimeName, version))
}

// Install materializes a version through populate. It is idempotent: when
// the version directory already exists, populate never runs and Install
// reports false. populate receives a staging directory that is renamed to
// the final name only after it returns successfully; on failure the
// staging tree is removed.
func (s *Store) Install(runtimeName, version string, populate func(stageDir string) error) (bool, error) {
	finalDir := s.InstallPath(runtimeName, version)
	if dirExists(finalDir) {
		return false, nil
	}

	lock, err := AcquireLock(config.LockPath())
	if err != nil {
		return false, fmt.Errorf("locking store: %w", err)
	}
	defer func() { _ = lock.Release() }()

	// Another process may have won the race while we waited for the lock
	if dirExists(finalDir) {
		return false, nil
	}

	stageDir := stagingPath(finalDir)
	_ = os.RemoveAll(stageDir) // Leftover from an interrupted install
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return false, err
	}

	if err := populate(stageDir); err != nil {
		_ = os.RemoveAll(stageDir)
		return false, err
	}

	if err := os.Rename(stageDir, finalDir); err != nil {
		_ = os.RemoveAll(stageDir)
		return false, err
	}

	return true, nil
}

// Remove deletes a version tree. The active version of a runtime cannot
// be removed; switch away from it first.
func (s *Store) Remove(runtimeName, version string) error {
	dir := s.InstallPath(runtimeName, version)
	if !dirExists(dir) {
		return &NotFoundError{Runtime: runtimeName, Version: version}
	}

	if active, ok := s.active.Get(runtimeName); ok && active == version {
		return &CurrentlyActiveError{Runtime: runtimeName, Version: version}
	}

	lock, err := AcquireLock(config.LockPath())
	if err != nil {
		return fmt.Errorf("locking store: %w", err)
	}
	defer func() { _ = lock.Release() }()

	return os.RemoveAll(dir)
}

// List returns the installed versions of a runtime in directory order,
// annotating the runtime's active version. Semantic ordering is left to
// the presentation layer.
func (s *Store) List(runtimeName string) ([]runtime.InstalledVersion, error) {
	versionsDir := config.RuntimeVersionsDir(runtimeName)

	entries, err := os.ReadDir(versionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []runtime.InstalledVersion{}, nil
		}
		return nil, err
	}

	active, _ := s.active.Get(runtimeName)

	installed := make([]runtime.InstalledVersion, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		// Dotted names are staging directories, never versions
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		installed = append(installed, runtime.InstalledVersion{
			Version:     runtime.NewVersion(name),
			InstallPath: filepath.Join(versionsDir, name),
			Active:      name == active,
		})
	}

	return installed, nil
}

// CleanStaging removes staging directories left behind by interrupted
// installs and returns how many were removed. Finished installs never
// leave one; anything matching the staging pattern is safe to drop.
func (s *Store) CleanStaging() (int, error) {
	runtimes, err := os.ReadDir(s.paths.Versions)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	removed := 0
	for _, rt := range runtimes {
		if !rt.IsDir() {
			continue
		}
		dir := filepath.Join(s.paths.Versions, rt.Name())
		entries, err := os.ReadDir(dir)
		if err != nil {
			return removed, err
		}
		for _, entry := range entries {
			name := entry.Name()
			if !entry.IsDir() || !strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".partial") {
				continue
			}
			if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
				return removed, err
			}
			removed++
		}
	}

	return removed, nil
}

// NormalizeExecutables marks every regular file in a binary directory
// executable (0755). Archives and foreign stores do not reliably carry
// the executable bit. No-op on Windows, which has no such bit.
func NormalizeExecutables(binDir string) error {
	if goruntime.GOOS == constants.OSWindows {
		return nil
	}

	entries, err := os.ReadDir(binDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Chmod(filepath.Join(binDir, entry.Name()), 0755); err != nil {
			return err
		}
	}

	return nil
}

// stagingPath is the hidden sibling a version is built in before the
// publishing rename. Staying inside the runtime's versions directory keeps
// the rename on one filesystem.
func stagingPath(finalDir string) string {
	return filepath.Join(filepath.Dir(finalDir), "."+filepath.Base(finalDir)+".partial")
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
