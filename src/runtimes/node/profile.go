// Package node implements the Node.js runtime profile.
package node

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

const distBaseURL = "https://nodejs.org/dist"

// Profile implements the runtime.Profile interface for Node.js.
type Profile struct{}

// NewProfile creates a new Node.js runtime profile.
func NewProfile() *Profile {
	return &Profile{}
}

// Name returns the runtime identifier.
func (p *Profile) Name() string {
	return "node"
}

// DisplayName returns the human-readable name.
func (p *Profile) DisplayName() string {
	return "Node.js"
}

// Executables returns the binaries exposed through the executable farm.
func (p *Profile) Executables() []string {
	return []string{"node", "npm", "npx"}
}

// HasLTS reports that Node.js publishes long-term-support releases.
func (p *Profile) HasLTS() bool {
	return true
}

// PinFileName returns the per-directory pin file name.
func (p *Profile) PinFileName() string {
	return ".node-version"
}

// suffixes maps GOOS/GOARCH pairs to Node.js distribution platform names.
var suffixes = map[string]string{
	"linux/amd64":   "linux-x64",
	"linux/arm64":   "linux-arm64",
	"linux/arm":     "linux-armv7l",
	"darwin/amd64":  "darwin-x64",
	"darwin/arm64":  "darwin-arm64",
	"windows/amd64": "win-x64",
	"windows/386":   "win-x86",
}

// PlatformSuffix resolves the distribution archive's platform component.
func (p *Profile) PlatformSuffix(goos, goarch string) (string, error) {
	suffix, ok := suffixes[goos+"/"+goarch]
	if !ok {
		return "", &runtime.UnsupportedPlatformError{Runtime: "node", OS: goos, Arch: goarch}
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
	return fmt.Sprintf("%s/v%s/node-v%s-%s%s", distBaseURL, version, version, suffix, ext)
}

// BinaryDir returns the directory holding executables. Node archives keep
// them under an archive-named folder; the Windows zip has node.exe at that
// folder's root instead of bin/.
func (p *Profile) BinaryDir(installDir, version, suffix string) string {
	archiveDir := filepath.Join(installDir, fmt.Sprintf("node-v%s-%s", version, suffix))
	if strings.HasPrefix(suffix, "win-") {
		return archiveDir
	}
	return filepath.Join(archiveDir, "bin")
}

// RequiresInstallScript reports that Node.js archives need no install script.
func (p *Profile) RequiresInstallScript() bool {
	return false
}

// Repair is a no-op: node archives already have the expected layout.
func (p *Profile) Repair(stageDir, version, suffix string) error {
	return nil
}

// Releases fetches the version catalog from the nodejs.org index.
func (p *Profile) Releases() ([]runtime.Release, error) {
	data, err := fetch(distBaseURL + "/index.json")
	if err != nil {
		return nil, err
	}
	return parseIndex(data)
}

// Checksum returns the published SHA256 for an archive, looked up in the
// per-version SHASUMS256.txt.
func (p *Profile) Checksum(version, suffix, ext string) (string, error) {
	data, err := fetch(fmt.Sprintf("%s/v%s/SHASUMS256.txt", distBaseURL, version))
	if err != nil {
		return "", err
	}

	archive := fmt.Sprintf("node-v%s-%s%s", version, suffix, ext)
	sum, ok := findChecksum(data, archive)
	if !ok {
		return "", fmt.Errorf("no checksum published for %s", archive)
	}
	return sum, nil
}

// parseIndex converts the nodejs.org index into catalog entries. The
// index lists newest versions first; its lts field is false for non-LTS
// releases and a codename string otherwise.
func parseIndex(data []byte) ([]runtime.Release, error) {
	var index []struct {
		Version string      `json:"version"`
		Date    string      `json:"date"`
		LTS     interface{} `json:"lts"`
	}
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse version list: %w", err)
	}

	releases := make([]runtime.Release, 0, len(index))
	for _, entry := range index {
		codename, _ := entry.LTS.(string)
		releases = append(releases, runtime.Release{
			Version: strings.TrimPrefix(entry.Version, "v"),
			Stable:  true,
			LTS:     codename != "",
			Date:    entry.Date,
		})
	}
	return releases, nil
}

// findChecksum scans SHASUMS256-format lines ("<sha256>  <filename>").
func findChecksum(data []byte, filename string) (string, bool) {
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 2 && fields[1] == filename {
			return fields[0], true
		}
	}
	return "", false
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

// init registers the Node.js profile on package load.
func init() {
	if err := runtime.Register(NewProfile()); err != nil {
		panic(fmt.Sprintf("failed to register Node.js profile: %v", err))
	}
}
