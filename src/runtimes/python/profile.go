// Package python implements the Python runtime profile.
//
// python.org publishes no plain sha256 files for its archives, so this
// profile does not provide checksums and installs skip verification.
package python

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	goruntime "runtime"

	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/runtime"
)

const ftpBaseURL = "https://www.python.org/ftp/python"

// Profile implements the runtime.Profile interface for Python.
type Profile struct{}

// NewProfile creates a new Python runtime profile.
func NewProfile() *Profile {
	return &Profile{}
}

// Name returns the runtime identifier.
func (p *Profile) Name() string {
	return "python"
}

// DisplayName returns the human-readable name.
func (p *Profile) DisplayName() string {
	return "Python"
}

// Executables returns the binaries exposed through the executable farm.
func (p *Profile) Executables() []string {
	return []string{"python", "pip"}
}

// HasLTS reports that Python has no long-term-support release lines.
func (p *Profile) HasLTS() bool {
	return false
}

// PinFileName returns the per-directory pin file name.
func (p *Profile) PinFileName() string {
	return ".python-version"
}

// suffixes maps GOOS/GOARCH pairs to Python archive platform names.
var suffixes = map[string]string{
	"linux/amd64":   "x86_64",
	"linux/arm64":   "aarch64",
	"linux/arm":     "armv7l",
	"darwin/amd64":  "macosx10.9.x86_64",
	"darwin/arm64":  "macos11.0.arm64",
	"windows/amd64": "amd64",
	"windows/386":   "win32",
}

// PlatformSuffix resolves the archive's platform component.
func (p *Profile) PlatformSuffix(goos, goarch string) (string, error) {
	suffix, ok := suffixes[goos+"/"+goarch]
	if !ok {
		return "", &runtime.UnsupportedPlatformError{Runtime: "python", OS: goos, Arch: goarch}
	}
	return suffix, nil
}

// ArchiveExt returns the archive extension. Python archives are xz
// tarballs on every platform.
func (p *Profile) ArchiveExt(goos string) string {
	return constants.ExtTarXz
}

// DownloadURL builds the archive URL. Archives live under a directory
// named after the bare version.
func (p *Profile) DownloadURL(version, suffix, ext string) string {
	return fmt.Sprintf("%s/%s/Python-%s-%s%s", ftpBaseURL, version, version, suffix, ext)
}

// BinaryDir returns the directory holding executables. Windows trees
// keep python.exe at the root; Unix trees use bin/.
func (p *Profile) BinaryDir(installDir, version, suffix string) string {
	if suffix == "amd64" || suffix == "win32" {
		return installDir
	}
	return filepath.Join(installDir, "bin")
}

// RequiresInstallScript reports that Python archives need no install
// script.
func (p *Profile) RequiresInstallScript() bool {
	return false
}

// Repair hoists the archive folder to the tree root and links the plain
// executable names CPython omits.
func (p *Profile) Repair(stageDir, version, suffix string) error {
	if err := runtime.HoistDir(stageDir, fmt.Sprintf("Python-%s-%s", version, suffix)); err != nil {
		return err
	}
	return ensureUnversionedAliases(stageDir)
}

// ensureUnversionedAliases links python to python3 and pip to pip3 when
// only the versioned names exist. Unix trees ship versioned binaries;
// the executable farm expects the plain names.
func ensureUnversionedAliases(installDir string) error {
	if goruntime.GOOS == constants.OSWindows {
		return nil
	}

	binDir := filepath.Join(installDir, "bin")
	for plain, versioned := range map[string]string{"python": "python3", "pip": "pip3"} {
		plainPath := filepath.Join(binDir, plain)
		if _, err := os.Lstat(plainPath); err == nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(binDir, versioned)); err != nil {
			continue
		}
		if err := os.Symlink(versioned, plainPath); err != nil {
			return err
		}
	}

	return nil
}

// versionDirPattern matches version directory links in the FTP index
// page.
var versionDirPattern = regexp.MustCompile(`href="(\d+\.\d+(?:\.\d+)?)/"`)

// Releases builds the version catalog from the FTP index page. The
// listing is oldest-first and carries no prerelease marker, so every
// entry is reported stable and the catalog is sorted before it is
// returned.
func (p *Profile) Releases() ([]runtime.Release, error) {
	page, err := fetch(ftpBaseURL + "/")
	if err != nil {
		return nil, err
	}

	releases := parseListing(page)
	if len(releases) == 0 {
		return nil, fmt.Errorf("no versions found in the release listing")
	}

	runtime.SortReleasesDesc(releases)
	return releases, nil
}

// parseListing extracts version directory names from the FTP index page.
func parseListing(page []byte) []runtime.Release {
	seen := make(map[string]bool)
	var releases []runtime.Release
	for _, match := range versionDirPattern.FindAllSubmatch(page, -1) {
		version := string(match[1])
		if seen[version] {
			continue
		}
		seen[version] = true
		releases = append(releases, runtime.Release{Version: version, Stable: true})
	}
	return releases
}

func fetch(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: HTTP %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// init registers the Python profile on package load.
func init() {
	if err := runtime.Register(NewProfile()); err != nil {
		panic(fmt.Sprintf("failed to register Python profile: %v", err))
	}
}
