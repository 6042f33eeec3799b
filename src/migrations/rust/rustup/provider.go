// Package rustup provides a migration provider for rustup toolchains.
package rustup

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rtvm/rtvm/src/internal/migration"
)

// Provider implements the migration.Provider interface for rustup.
type Provider struct{}

// NewProvider creates a new rustup migration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "rustup"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "rustup"
}

// Runtime returns the runtime this provider manages.
func (p *Provider) Runtime() string {
	return "rust"
}

// SourceRoot returns the rustup toolchains directory, honoring RUSTUP_HOME.
func (p *Provider) SourceRoot() (string, error) {
	home := os.Getenv("RUSTUP_HOME")
	if home == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		home = filepath.Join(userHome, ".rustup")
	}
	return filepath.Join(home, "toolchains"), nil
}

// MissingRootPolicy reports that a missing rustup installation is an error.
func (p *Provider) MissingRootPolicy() migration.Policy {
	return migration.FailWhenMissing
}

var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// DetectVersions finds all pinned toolchains under root. Toolchain
// directories look like "1.70.0-x86_64-unknown-linux-gnu"; the platform
// triple is dropped from the migrated version. Channel toolchains
// (stable, beta, nightly) have no pinned version and are skipped.
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
		if !entry.IsDir() {
			continue
		}

		version, _, _ := strings.Cut(entry.Name(), "-")
		if !versionPattern.MatchString(version) {
			continue
		}

		toolchainDir := filepath.Join(root, entry.Name())
		if !hasCargoBinary(toolchainDir) {
			continue
		}

		detected = append(detected, migration.DetectedVersion{
			Version: version,
			Path:    toolchainDir,
			Source:  "rustup",
		})
	}

	return detected, nil
}

// hasCargoBinary reports whether the toolchain holds a cargo executable
// in either the Unix or the Windows layout.
func hasCargoBinary(toolchainDir string) bool {
	candidates := []string{
		filepath.Join(toolchainDir, "bin", "cargo"),
		filepath.Join(toolchainDir, "bin", "cargo.exe"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

// init registers the rustup provider on package load.
func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register rustup migration provider: %v", err))
	}
}
