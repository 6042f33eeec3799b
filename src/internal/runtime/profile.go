// Package runtime defines the profile interface and registry for managed runtimes.
//
// A profile carries everything the engine needs to know about one runtime
// type: how its distribution archives are named per platform, where the
// binaries live inside an installed tree, and how a freshly extracted
// archive is repaired into the unified layout. The store, installer, and
// switcher consume profiles uniformly and never branch on runtime names.
package runtime

import "sort"

// Profile describes one managed runtime type
type Profile interface {
	// Name returns the runtime identifier (e.g., "node", "rust")
	Name() string

	// DisplayName returns a human-readable name (e.g., "Node.js", "Rust")
	DisplayName() string

	// Executables returns the binary names this runtime exposes through the
	// executable farm. The first entry is the primary binary and must exist
	// in the binary directory after installation.
	Executables() []string

	// HasLTS reports whether this runtime publishes long-term-support
	// releases, making the "lts" version selector valid.
	HasLTS() bool

	// PinFileName returns the name of the per-directory pin file
	// (e.g., ".node-version")
	PinFileName() string

	// PlatformSuffix returns the distribution archive's platform component
	// for an OS/architecture pair. It fails with an UnsupportedPlatformError
	// when no mapping exists; callers must consult it before any network
	// activity.
	PlatformSuffix(goos, goarch string) (string, error)

	// ArchiveExt returns the default archive extension for an OS
	// (".zip" on Windows, ".tar.gz" elsewhere)
	ArchiveExt(goos string) string

	// DownloadURL builds the distribution archive URL. Profiles whose
	// distribution server ignores the default extension rule (python ships
	// .tar.xz) may disregard ext; the installer dispatches extraction on
	// the URL's real suffix.
	DownloadURL(version, suffix, ext string) string

	// BinaryDir returns the directory holding executables inside an
	// installed version tree. Conventions differ per runtime: node nests
	// them under an archive-named subfolder, the rest use a flat bin/.
	BinaryDir(installDir, version, suffix string) string

	// RequiresInstallScript reports whether the distribution ships an
	// installer script that must run after extraction.
	RequiresInstallScript() bool

	// Repair reshapes a freshly extracted tree at stageDir into the layout
	// BinaryDir expects. It runs before the tree becomes visible in the
	// store. Profiles without a repair step return nil.
	Repair(stageDir, version, suffix string) error

	// Releases fetches the remote version catalog for this runtime
	Releases() ([]Release, error)
}

// ChecksumProvider is implemented by profiles whose distribution server
// publishes archive checksums. The installer verifies downloads against
// them; profiles without published checksums simply do not implement it.
type ChecksumProvider interface {
	// Checksum returns the lowercase hex SHA256 of the archive for a
	// version/platform pair, or an empty string when none is published.
	Checksum(version, suffix, ext string) (string, error)
}

// Release is one entry of a runtime's remote version catalog
type Release struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
	LTS     bool   `json:"lts,omitempty"`
	Date    string `json:"date,omitempty"`
}

// LatestStable returns the newest release marked stable. Catalogs list
// newest versions first.
func LatestStable(releases []Release) (Release, bool) {
	for _, r := range releases {
		if r.Stable {
			return r, true
		}
	}
	return Release{}, false
}

// LatestLTS returns the newest release on a long-term-support line
func LatestLTS(releases []Release) (Release, bool) {
	for _, r := range releases {
		if r.LTS {
			return r, true
		}
	}
	return Release{}, false
}

// SortReleasesDesc orders a catalog newest-first. Profiles whose source
// feed is not already ordered call this before returning it.
func SortReleasesDesc(releases []Release) {
	sort.SliceStable(releases, func(i, j int) bool {
		return NewVersion(releases[i].Version).Compare(NewVersion(releases[j].Version)) > 0
	})
}
