// Package golang implements the Go runtime profile.
package golang

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/rtvm/rtvm/src/internal/constants"
	"github.com/rtvm/rtvm/src/internal/runtime"
)

const dlBaseURL = "https://go.dev/dl"

// Profile implements the runtime.Profile interface for Go.
type Profile struct{}

// NewProfile creates a new Go runtime profile.
func NewProfile() *Profile {
	return &Profile{}
}

// Name returns the runtime identifier.
func (p *Profile) Name() string {
	return "go"
}

// DisplayName returns the human-readable name.
func (p *Profile) DisplayName() string {
	return "Go"
}

// Executables returns the binaries exposed through the executable farm.
func (p *Profile) Executables() []string {
	return []string{"go", "gofmt"}
}

// HasLTS reports that Go has no long-term-support release lines.
func (p *Profile) HasLTS() bool {
	return false
}

// PinFileName returns the per-directory pin file name.
func (p *Profile) PinFileName() string {
	return ".go-version"
}

// suffixes maps GOOS/GOARCH pairs to Go distribution platform names.
var suffixes = map[string]string{
	"linux/amd64":   "linux-amd64",
	"linux/arm64":   "linux-arm64",
	"linux/arm":     "linux-armv6l",
	"darwin/amd64":  "darwin-amd64",
	"darwin/arm64":  "darwin-arm64",
	"windows/amd64": "windows-amd64",
	"windows/386":   "windows-386",
}

// PlatformSuffix resolves the distribution archive's platform component.
func (p *Profile) PlatformSuffix(goos, goarch string) (string, error) {
	suffix, ok := suffixes[goos+"/"+goarch]
	if !ok {
		return "", &runtime.UnsupportedPlatformError{Runtime: "go", OS: goos, Arch: goarch}
	}
	return suffix, nil
}

// ArchiveExt returns the archive extension per operating system.
func (p *Profile) ArchiveExt(goos string) string {
	if goos == constants.OSWindows {
		return constants.ExtZip
	}
	return constants.ExtTarGz
}

// DownloadURL builds the distribution archive URL.
func (p *Profile) DownloadURL(version, suffix, ext string) string {
	return fmt.Sprintf("%s/go%s.%s%s", dlBaseURL, version, suffix, ext)
}

// BinaryDir returns the directory holding executables. Repair flattens
// the archive's go/ folder, leaving bin/ at the tree root.
func (p *Profile) BinaryDir(installDir, version, suffix string) string {
	return filepath.Join(installDir, "bin")
}

// RequiresInstallScript reports that Go archives need no install script.
func (p *Profile) RequiresInstallScript() bool {
	return false
}

// Repair hoists the archive's top-level go directory so binaries land in
// bin/ at the tree root.
func (p *Profile) Repair(stageDir, version, suffix string) error {
	return runtime.HoistDir(stageDir, "go")
}

// dlRelease is one entry of the go.dev download index.
type dlRelease struct {
	Version string   `json:"version"`
	Stable  bool     `json:"stable"`
	Files   []dlFile `json:"files"`
}

type dlFile struct {
	Filename string `json:"filename"`
	SHA256   string `json:"sha256"`
}

// Releases fetches the version catalog from the go.dev download index.
func (p *Profile) Releases() ([]runtime.Release, error) {
	index, err := fetchIndex()
	if err != nil {
		return nil, err
	}

	releases := make([]runtime.Release, 0, len(index))
	for _, entry := range index {
		releases = append(releases, runtime.Release{
			Version: strings.TrimPrefix(entry.Version, "go"),
			Stable:  entry.Stable,
		})
	}
	return releases, nil
}

// Checksum returns the published SHA256 for an archive from the download
// index.
func (p *Profile) Checksum(version, suffix, ext string) (string, error) {
	index, err := fetchIndex()
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("go%s.%s%s", version, suffix, ext)
	sum, ok := findChecksum(index, "go"+version, filename)
	if !ok {
		return "", fmt.Errorf("no checksum published for %s", filename)
	}
	return sum, nil
}

func fetchIndex() ([]dlRelease, error) {
	url := dlBaseURL + "/?mode=json&include=all"
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch version list: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch version list: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return parseIndex(data)
}

// parseIndex decodes the download index, which lists newest versions
// first.
func parseIndex(data []byte) ([]dlRelease, error) {
	var index []dlRelease
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse version list: %w", err)
	}
	return index, nil
}

// findChecksum looks up the SHA256 of one archive file in the index.
func findChecksum(index []dlRelease, version, filename string) (string, bool) {
	for _, entry := range index {
		if entry.Version != version {
			continue
		}
		for _, file := range entry.Files {
			if file.Filename == filename {
				return file.SHA256, true
			}
		}
	}
	return "", false
}

// init registers the Go profile on package load.
func init() {
	if err := runtime.Register(NewProfile()); err != nil {
		panic(fmt.Sprintf("failed to register Go profile: %v", err))
	}
}
