// Package n provides a migration provider for the n Node.js version manager.
package n

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rtvm/rtvm/src/internal/migration"
)

// Provider implements the migration.Provider interface for n.
type Provider struct{}

// NewProvider creates a new n migration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "n"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "n (Node.js version manager)"
}

// Runtime returns the runtime this provider manages.
func (p *Provider) Runtime() string {
	return "node"
}

// SourceRoot returns the n versions directory, honoring N_PREFIX.
func (p *Provider) SourceRoot() (string, error) {
	prefix := os.Getenv("N_PREFIX")
	if prefix == "" {
		prefix = "/usr/local"
	}
	return filepath.Join(prefix, "n", "versions", "node"), nil
}

// MissingRootPolicy reports that a missing n installation is not an error.
// The default prefix is a system location most machines lack, and a "node"
// migration should not fail just because n was never installed.
func (p *Provider) MissingRootPolicy() migration.Policy {
	return migration.ZeroWhenMissing
}

// n names version directories without a prefix, e.g. "22.0.0".
var versionDirPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// DetectVersions finds all versions installed by n under root.
func (p *Provider) DetectVersions(root string) ([]migration.DetectedVersion, error) {
	detected := make([]migration.DetectedVersion, 0)

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return detected, nil
		}
		return nil, err
	}

	for _, entry := range entries {
		if !entry.IsDir() || !versionDirPattern.MatchString(entry.Name()) {
			continue
		}

		versionDir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(versionDir, "bin", "node")); err != nil {
			continue
		}

		detected = append(detected, migration.DetectedVersion{
			Version: entry.Name(),
			Path:    versionDir,
			Source:  "n",
		})
	}

	return detected, nil
}

// init registers the n provider on package load.
func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register n migration provider: %v", err))
	}
}
