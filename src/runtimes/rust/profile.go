// Package rust implements the Rust runtime profile.
//
// Rust distribution archives bundle an install script that assembles the
// final layout, so this profile's repair step does real work. Windows is
// not supported: install.sh needs a POSIX shell, and the MSVC installers
// cannot be unpacked into a relocatable tree.
package rust

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/runtime"
	"github.com/rtvm/rtvm/src/internal/ui"
)

const distBaseURL = "https://static.rust-lang.org/dist"

// Profile implements the runtime.Profile interface for Rust.
type Profile struct{}

// NewProfile creates a new Rust runtime profile.
func NewProfile() *Profile {
	return &Profile{}
}

// Name returns the runtime identifier.
func (p *Profile) Name() string {
	return "rust"
}

// DisplayName returns the human-readable name.
func (p *Profile) DisplayName() string {
	return "Rust"
}

// Executables returns the binaries exposed through the executable farm.
func (p *Profile) Executables() []string {
	return []string{"cargo", "rustc", "rustdoc"}
}

// HasLTS reports that Rust has no long-term-support release lines.
func (p *Profile) HasLTS() bool {
	return false
}

// PinFileName returns the per-directory pin file name.
func (p *Profile) PinFileName() string {
	return ".rust-version"
}

// suffixes maps GOOS/GOARCH pairs to Rust target triples.
var suffixes = map[string]string{
	"linux/amd64":  "x86_64-unknown-linux-gnu",
	"linux/arm64":  "aarch64-unknown-linux-gnu",
	"linux/arm":    "armv7-unknown-linux-gnueabihf",
	"darwin/amd64": "x86_64-apple-darwin",
	"darwin/arm64": "aarch64-apple-darwin",
}

// PlatformSuffix resolves the distribution archive's target triple.
func (p *Profile) PlatformSuffix(goos, goarch string) (string, error) {
	suffix, ok := suffixes[goos+"/"+goarch]
	if !ok {
		return "", &runtime.UnsupportedPlatformError{Runtime: "rust", OS: goos, Arch: goarch}
	}
	return suffix, nil
}

// ArchiveExt returns the archive extension. Rust publishes gzip tarballs
// for every supported target.
func (p *Profile) ArchiveExt(goos string) string {
	return constants.ExtTarGz
}

// DownloadURL builds the distribution archive URL.
func (p *Profile) DownloadURL(version, suffix, ext string) string {
	return fmt.Sprintf("%s/rust-%s-%s%s", distBaseURL, version, suffix, ext)
}

// BinaryDir returns the directory holding executables. The repair step
// installs into bin/ at the tree root.
func (p *Profile) BinaryDir(installDir, version, suffix string) string {
	return filepath.Join(installDir, "bin")
}

// RequiresInstallScript reports that Rust archives carry an install
// script.
func (p *Profile) RequiresInstallScript() bool {
	return true
}

// Repair turns the unpacked archive into a usable toolchain. It runs the
// bundled install.sh against the install tree, or falls back to copying
// the component binaries when the script is missing, then drops the
// archive folder.
func (p *Profile) Repair(stageDir, version, suffix string) error {
	archiveDir := filepath.Join(stageDir, fmt.Sprintf("rust-%s-%s", version, suffix))
	script := filepath.Join(archiveDir, "install.sh")

	if _, err := os.Stat(script); err == nil {
		if err := runInstallScript(script, stageDir, version); err != nil {
			return err
		}
	} else if err := copyComponentBinaries(archiveDir, stageDir); err != nil {
		return err
	}

	return os.RemoveAll(archiveDir)
}

func runInstallScript(script, stageDir, version string) error {
	cmd := exec.Command("sh", script,
		"--prefix="+stageDir,
		"--without=rust-docs",
		"--disable-ldconfig")
	output, err := cmd.CombinedOutput()
	if err != nil {
		ui.Debug("install.sh output:\n%s", output)
		return &runtime.InstallScriptFailedError{
			Runtime: "rust",
			Version: version,
			Script:  script,
			Err:     err,
		}
	}
	return nil
}

// copyComponentBinaries assembles a minimal toolchain without the install
// script by collecting each component's bin directory into bin/ at the
// tree root. Components absent from the archive are skipped.
func copyComponentBinaries(archiveDir, stageDir string) error {
	binDir := filepath.Join(stageDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return err
	}

	for _, component := range []string{"rustc", "cargo"} {
		componentBin := filepath.Join(archiveDir, component, "bin")
		entries, err := os.ReadDir(componentBin)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			src := filepath.Join(componentBin, entry.Name())
			if err := copyFile(src, filepath.Join(binDir, entry.Name())); err != nil {
				return err
			}
		}
	}

	return nil
}

// copyFile copies src to dst, preserving the file mode.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// distArchivePattern matches source archive names in the dist listing.
// Channel archives (stable, beta, nightly) and per-target archives carry
// non-numeric or suffixed names and never match.
var distArchivePattern = regexp.MustCompile(`rust-(\d+\.\d+\.\d+)\.tar\.gz`)

// Releases builds the version catalog from the dist directory listing,
// then stamps the current stable release with its date from the channel
// manifest. The listing is unordered, so the catalog is sorted before it
// is returned.
func (p *Profile) Releases() ([]runtime.Release, error) {
	page, err := fetch(distBaseURL + "/")
	if err != nil {
		return nil, err
	}

	releases := parseDistListing(page)
	if len(releases) == 0 {
		return nil, fmt.Errorf("no versions found in the dist listing")
	}

	if manifest, err := fetch(distBaseURL + "/channel-rust-stable.toml"); err == nil {
		if version, date, err := stableChannel(manifest); err == nil {
			annotateStable(releases, version, date)
		}
	}

	runtime.SortReleasesDesc(releases)
	return releases, nil
}

// parseDistListing extracts the released versions from the dist listing.
// Sidecar files (.asc, .sha256) repeat each archive name, so versions are
// deduplicated. Every numbered release is a stable one.
func parseDistListing(page []byte) []runtime.Release {
	seen := make(map[string]bool)
	var releases []runtime.Release
	for _, match := range distArchivePattern.FindAllSubmatch(page, -1) {
		version := string(match[1])
		if seen[version] {
			continue
		}
		seen[version] = true
		releases = append(releases, runtime.Release{Version: version, Stable: true})
	}
	return releases
}

// channelManifest is the subset of the channel-rust-stable manifest we
// read.
type channelManifest struct {
	Date string `toml:"date"`
	Pkg  struct {
		Rust struct {
			Version string `toml:"version"`
		} `toml:"rust"`
	} `toml:"pkg"`
}

// stableChannel decodes the stable channel manifest. The version field
// reads like "1.78.0 (9b00956e5 2024-04-29)".
func stableChannel(data []byte) (version, date string, err error) {
	var manifest channelManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return "", "", fmt.Errorf("failed to parse channel manifest: %w", err)
	}

	version, _, _ = strings.Cut(manifest.Pkg.Rust.Version, " ")
	if version == "" {
		return "", "", fmt.Errorf("channel manifest has no rust version")
	}
	return version, manifest.Date, nil
}

// annotateStable stamps the release matching the stable channel with the
// channel date.
func annotateStable(releases []runtime.Release, version, date string) {
	for i := range releases {
		if releases[i].Version == version {
			releases[i].Date = date
			return
		}
	}
}

// Checksum fetches the published sha256 sidecar for an archive.
func (p *Profile) Checksum(version, suffix, ext string) (string, error) {
	data, err := fetch(p.DownloadURL(version, suffix, ext) + ".sha256")
	if err != nil {
		return "", err
	}

	fields := strings.Fields(string(data))
	if len(fields) == 0 || len(fields[0]) != 64 {
		return "", fmt.Errorf("malformed checksum file for rust %s", version)
	}
	return fields[0], nil
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

// init registers the Rust profile on package load.
func init() {
	if err := runtime.Register(NewProfile()); err != nil {
		panic(fmt.Sprintf("failed to register Rust profile: %v", err))
	}
}
