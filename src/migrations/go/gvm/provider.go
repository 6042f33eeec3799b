// Package gvm provides a migration provider for the Go Version Manager (gvm).
package gvm

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rtvm/rtvm/src/internal/migration"
)

// Provider implements the migration.Provider interface for gvm.
type Provider struct{}

// NewProvider creates a new gvm migration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "gvm"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "Go Version Manager (gvm)"
}

// Runtime returns the runtime this provider manages.
func (p *Provider) Runtime() string {
	return "go"
}

// SourceRoot returns the gvm gos directory, honoring GVM_ROOT.
func (p *Provider) SourceRoot() (string, error) {
	root := os.Getenv("GVM_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, ".gvm")
	}
	return filepath.Join(root, "gos"), nil
}

// MissingRootPolicy reports that a missing gvm installation is not an
// error.
func (p *Provider) MissingRootPolicy() migration.Policy {
	return migration.ZeroWhenMissing
}

// gvm names version directories like "go1.21.5"; early minor releases
// have no patch component.
var versionDirPattern = regexp.MustCompile(`^go\d+\.\d+(\.\d+)?$`)

// DetectVersions finds all versions installed by gvm under root.
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
		if !hasGoBinary(versionDir) {
			continue
		}

		detected = append(detected, migration.DetectedVersion{
			Version: strings.TrimPrefix(entry.Name(), "go"),
			Path:    versionDir,
			Source:  "gvm",
		})
	}

	return detected, nil
}

// hasGoBinary reports whether the version directory holds a go
// executable in either the Unix or the Windows layout.
func hasGoBinary(versionDir string) bool {
	candidates := []string{
		filepath.Join(versionDir, "bin", "go"),
		filepath.Join(versionDir, "bin", "go.exe"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

// init registers the gvm provider on package load.
func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register gvm migration provider: %v", err))
	}
}
