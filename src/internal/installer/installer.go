// Package installer turns a (profile, version) pair into a populated
// version directory.
//
// The pipeline is: resolve the platform suffix, build the download URL,
// fetch the archive into the cache (verifying a published checksum when
// the profile offers one), extract by the archive's real suffix, run the
// profile's repair step, and finally prove the primary binary exists
// before the store publishes the tree.
package installer

import (
	"os"
	"path/filepath"
	goruntime "runtime"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/download"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
)

// Install materializes a runtime version in the store. It reports false
// without any network activity when the version is already installed.
func Install(st *store.Store, profile runtime.Profile, version string) (bool, error) {
	// Platform support is checked before anything touches the network
	suffix, err := profile.PlatformSuffix(goruntime.GOOS, goruntime.GOARCH)
	if err != nil {
		return false, err
	}

	if st.IsInstalled(profile.Name(), version) {
		return false, nil
	}

	ext := profile.ArchiveExt(goruntime.GOOS)
	url := profile.DownloadURL(version, suffix, ext)

	return st.Install(profile.Name(), version, func(stageDir string) error {
		return populate(profile, version, suffix, ext, url, stageDir)
	})
}

func populate(profile runtime.Profile, version, suffix, ext, url, stageDir string) error {
	archivePath := filepath.Join(config.DefaultPaths().Cache, filepath.Base(url))

	expectedSum := ""
	if cp, ok := profile.(runtime.ChecksumProvider); ok {
		sum, err := cp.Checksum(version, suffix, ext)
		if err != nil {
			ui.Debug("No published checksum for %s %s: %v", profile.Name(), version, err)
		} else {
			expectedSum = sum
		}
	}

	// Reuse a cached archive unless it fails verification
	if fileExists(archivePath) && expectedSum != "" {
		if err := download.VerifyFile(archivePath, expectedSum); err != nil {
			ui.Debug("Cached archive failed verification, redownloading: %v", err)
			_ = os.Remove(archivePath)
		}
	}

	if !fileExists(archivePath) {
		var err error
		if expectedSum != "" {
			err = download.FileVerified(url, archivePath, expectedSum)
		} else {
			err = download.File(url, archivePath)
		}
		if err != nil {
			return err
		}
	} else {
		ui.Debug("Using cached archive: %s", archivePath)
	}

	if err := download.ExtractArchive(archivePath, stageDir); err != nil {
		return err
	}

	if err := profile.Repair(stageDir, version, suffix); err != nil {
		return err
	}

	// The tree is only publishable if its primary binary actually exists
	binDir, found := runtime.BinaryDirFor(profile, stageDir, version, suffix)
	primary := executableName(profile.Executables()[0])
	if !found || !fileExists(filepath.Join(binDir, primary)) {
		return &runtime.LayoutMismatchError{
			Runtime: profile.Name(),
			Version: version,
			Binary:  primary,
			Dir:     binDir,
		}
	}

	return store.NormalizeExecutables(binDir)
}

func executableName(name string) string {
	if goruntime.GOOS == constants.OSWindows {
		return name + constants.ExtExe
	}
	return name
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
