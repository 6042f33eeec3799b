// Package farm maintains the rtvm bin directory: one launcher per
// executable of every active runtime version. The directory is rebuilt
// as a whole into a staging sibling and published with a rename, so an
// interrupted switch never leaves a half-updated set of launchers.
package farm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	goruntime "runtime"
	"sort"
	"strings"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
)

// Use switches the given runtime to version. The bin directory is
// rebuilt with launchers for the new version alongside the launchers of
// every other runtime's active version, and the version marker is
// persisted last.
func Use(st *store.Store, profile runtime.Profile, version string) error {
	name := profile.Name()

	if !st.IsInstalled(name, version) {
		return &store.NotInstalledError{Runtime: name, Version: version}
	}

	suffix, err := profile.PlatformSuffix(goruntime.GOOS, goruntime.GOARCH)
	if err != nil {
		return err
	}

	installDir := st.InstallPath(name, version)
	if _, ok := runtime.BinaryDirFor(profile, installDir, version, suffix); !ok {
		return &runtime.LayoutMismatchError{
			Runtime: name,
			Version: version,
			Binary:  profile.Executables()[0],
			Dir:     profile.BinaryDir(installDir, version, suffix),
		}
	}

	lock, err := store.AcquireLock(config.LockPath())
	if err != nil {
		return fmt.Errorf("locking store: %w", err)
	}
	defer func() { _ = lock.Release() }()

	desired := st.Active().All()
	desired[name] = version

	if err := rebuild(st, desired); err != nil {
		return err
	}

	return st.Active().Set(name, version)
}

// Rehash rebuilds the bin directory from the persisted version markers.
// Used after global package installs add new executables to an active
// version's bin directory, or to recover a damaged farm.
func Rehash(st *store.Store) error {
	lock, err := store.AcquireLock(config.LockPath())
	if err != nil {
		return fmt.Errorf("locking store: %w", err)
	}
	defer func() { _ = lock.Release() }()

	return rebuild(st, st.Active().All())
}

// ResolveLauncher finds the bin entry for an executable name and the
// real executable it launches. The error is os.ErrNotExist when the
// farm has no such entry.
func ResolveLauncher(name string) (entry, target string, err error) {
	entry, err = findEntry(config.DefaultPaths().Bin, name)
	if err != nil {
		return "", "", err
	}

	target, err = launcherTarget(entry)
	if err != nil {
		return entry, "", err
	}

	return entry, target, nil
}

// CleanStaging removes bin directories parked by an interrupted rebuild
// and returns how many were removed. A completed rebuild cleans up after
// itself; whatever is left is from a crash mid-switch.
func CleanStaging() (int, error) {
	paths := config.DefaultPaths()

	removed := 0
	for _, name := range []string{".bin.stage", ".bin.old"} {
		dir := filepath.Join(paths.Root, name)
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, err
		}
		removed++
	}

	return removed, nil
}

func rebuild(st *store.Store, desired map[string]string) error {
	paths := config.DefaultPaths()
	stage := filepath.Join(paths.Root, ".bin.stage")

	if err := os.RemoveAll(stage); err != nil {
		return fmt.Errorf("failed to clear staging directory: %w", err)
	}
	if err := os.MkdirAll(stage, 0755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}

	if err := carryOverUnmanaged(paths.Bin, stage); err != nil {
		return err
	}

	// Runtimes are linked in name order so launcher-name collisions
	// resolve the same way on every rebuild.
	names := make([]string, 0, len(desired))
	for name := range desired {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := linkVersion(st, name, desired[name], stage); err != nil {
			return err
		}
	}

	return publish(stage, paths.Bin, filepath.Join(paths.Root, ".bin.old"))
}

// linkVersion stages launchers for one runtime version. Stale markers
// (unknown runtime, missing install, damaged tree) are skipped with a
// warning rather than failing the whole rebuild.
func linkVersion(st *store.Store, name, version, stage string) error {
	profile, err := runtime.Get(name)
	if err != nil {
		ui.Warning("Skipping %s %s: %v", name, version, err)
		return nil
	}

	if !st.IsInstalled(name, version) {
		ui.Warning("Skipping %s %s: not installed", profile.DisplayName(), version)
		return nil
	}

	suffix, err := profile.PlatformSuffix(goruntime.GOOS, goruntime.GOARCH)
	if err != nil {
		ui.Warning("Skipping %s %s: %v", profile.DisplayName(), version, err)
		return nil
	}

	installDir := st.InstallPath(name, version)
	binDir, ok := runtime.BinaryDirFor(profile, installDir, version, suffix)
	if !ok {
		ui.Warning("Skipping %s %s: binary directory missing", profile.DisplayName(), version)
		return nil
	}

	launchers, err := collectLaunchers(binDir)
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", binDir, err)
	}

	for _, l := range launchers {
		if err := createLauncher(stage, l.name, l.target); err != nil {
			return fmt.Errorf("failed to create launcher for %s: %w", l.name, err)
		}
	}

	return nil
}

type launcher struct {
	name   string // farm entry name, extension stripped on Windows
	target string // absolute path of the real executable
}

// collectLaunchers scans a version's bin directory for executables.
// Everything executable is linked, not just the runtime's own commands,
// so globally installed packages (npm -g, pip install, go install) reach
// the PATH too.
func collectLaunchers(binDir string) ([]launcher, error) {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		return nil, err
	}

	launchers := make([]launcher, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		target := filepath.Join(binDir, name)

		if goruntime.GOOS == constants.OSWindows {
			ext := strings.ToLower(filepath.Ext(name))
			if ext != constants.ExtExe && ext != constants.ExtCmd && ext != ".bat" {
				continue
			}
			launchers = append(launchers, launcher{name: name[:len(name)-len(ext)], target: target})
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Mode()&0111 == 0 {
			continue
		}
		launchers = append(launchers, launcher{name: name, target: target})
	}

	return launchers, nil
}

// carryOverUnmanaged copies files the farm does not own (the rtvm binary
// itself, user scripts) from the live bin directory into the stage.
func carryOverUnmanaged(binDir, stage string) error {
	entries, err := os.ReadDir(binDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || isManagedEntry(entry) {
			continue
		}
		src := filepath.Join(binDir, entry.Name())
		if err := copyFile(src, filepath.Join(stage, entry.Name())); err != nil {
			return fmt.Errorf("failed to carry over %s: %w", entry.Name(), err)
		}
	}

	return nil
}

// publish swaps the staged farm in for the live one. The previous farm
// is parked under old until the swap lands, then discarded.
func publish(stage, bin, old string) error {
	_ = os.RemoveAll(old)

	if _, err := os.Stat(bin); err == nil {
		if err := os.Rename(bin, old); err != nil {
			return fmt.Errorf("failed to retire previous bin directory: %w", err)
		}
	}

	if err := os.Rename(stage, bin); err != nil {
		_ = os.Rename(old, bin)
		return fmt.Errorf("failed to publish bin directory: %w", err)
	}

	_ = os.RemoveAll(old)
	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}
