// Package migration imports installations from other version managers
// (nvm, rustup, pyenv, etc.) into the rtvm store.
package migration

// Policy controls how a migration run treats a missing source root.
type Policy int

const (
	// FailWhenMissing makes the run error when the source manager's
	// root directory does not exist.
	FailWhenMissing Policy = iota

	// ZeroWhenMissing treats a missing root as zero migratable
	// versions.
	ZeroWhenMissing
)

// Provider describes one foreign version manager rtvm can import from.
// Each provider knows where its manager keeps versions and how to
// normalize the manager's naming conventions.
type Provider interface {
	// Name returns the identifier for this version manager (e.g. "nvm", "pyenv")
	Name() string

	// DisplayName returns the human-readable name (e.g. "Node Version Manager (nvm)")
	DisplayName() string

	// Runtime returns the runtime this provider manages (e.g. "node", "go")
	Runtime() string

	// SourceRoot returns the directory holding the manager's installed
	// versions, honoring the manager's own environment overrides
	// (NVM_DIR, RUSTUP_HOME, ...).
	SourceRoot() (string, error)

	// DetectVersions enumerates installed versions under root.
	// Manager-specific naming (leading "v", platform-triple suffixes)
	// is already stripped from the returned versions.
	DetectVersions(root string) ([]DetectedVersion, error)

	// MissingRootPolicy returns the default behavior when SourceRoot
	// does not exist. Callers may override it per run.
	MissingRootPolicy() Policy
}

// DetectedVersion is one foreign installation found by a provider.
type DetectedVersion struct {
	Version string // normalized version string (e.g. "22.0.0")
	Path    string // foreign version directory to copy from
	Source  string // manager name
}

// String returns a formatted string representation
func (dv DetectedVersion) String() string {
	return "v" + dv.Version + " (" + dv.Source + ") " + dv.Path
}

// IsPresent reports whether a provider's source manager looks installed.
func IsPresent(p Provider) bool {
	root, err := p.SourceRoot()
	if err != nil {
		return false
	}
	return dirExists(root)
}
