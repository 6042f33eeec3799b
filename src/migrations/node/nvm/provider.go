// Package nvm provides a migration provider for Node Version Manager (nvm).
package nvm

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rtvm/rtvm/src/internal/migration"
)

// Provider implements the migration.Provider interface for nvm.
type Provider struct{}

// NewProvider creates a new nvm migration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "nvm"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "Node Version Manager (nvm)"
}

// Runtime returns the runtime this provider manages.
func (p *Provider) Runtime() string {
	return "node"
}

// SourceRoot returns the nvm versions directory, honoring NVM_DIR.
func (p *Provider) SourceRoot() (string, error) {
	dir := os.Getenv("NVM_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".nvm")
	}
	return filepath.Join(dir, "versions", "node"), nil
}

// MissingRootPolicy reports that a missing nvm installation is an error.
func (p *Provider) MissingRootPolicy() migration.Policy {
	return migration.FailWhenMissing
}

// nvm names version directories with a leading v, e.g. "v22.0.0".
var versionDirPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// DetectVersions finds all versions installed by nvm under root.
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
		if !hasNodeBinary(versionDir) {
			continue
		}

		detected = append(detected, migration.DetectedVersion{
			Version: strings.TrimPrefix(entry.Name(), "v"),
			Path:    versionDir,
			Source:  "nvm",
		})
	}

	return detected, nil
}

// hasNodeBinary reports whether the version directory holds a node
// executable in either the Unix or the Windows layout.
func hasNodeBinary(versionDir string) bool {
	candidates := []string{
		filepath.Join(versionDir, "bin", "node"),
		filepath.Join(versionDir, "node.exe"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

// init registers the nvm provider on package load.
func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register nvm migration provider: %v", err))
	}
}
