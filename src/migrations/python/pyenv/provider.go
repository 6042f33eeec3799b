// Package pyenv provides a migration provider for pyenv.
package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/rtvm/rtvm/src/internal/migration"
)

// Provider implements the migration.Provider interface for pyenv.
type Provider struct{}

// NewProvider creates a new pyenv migration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "pyenv"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "pyenv"
}

// Runtime returns the runtime this provider manages.
func (p *Provider) Runtime() string {
	return "python"
}

// SourceRoot returns the pyenv versions directory, honoring PYENV_ROOT.
func (p *Provider) SourceRoot() (string, error) {
	root := os.Getenv("PYENV_ROOT")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, ".pyenv")
	}
	return filepath.Join(root, "versions"), nil
}

// MissingRootPolicy reports that a missing pyenv installation is not an
// error.
func (p *Provider) MissingRootPolicy() migration.Policy {
	return migration.ZeroWhenMissing
}

// CPython directories are plain versions like "3.11.0" or "3.13.0rc2".
// Alternative interpreters (pypy, miniconda) do not match and are left
// alone.
var versionDirPattern = regexp.MustCompile(`^\d+\.\d+\.\d+`)

// DetectVersions finds all CPython versions installed by pyenv under root.
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
		if !hasPythonBinary(versionDir) {
			continue
		}

		detected = append(detected, migration.DetectedVersion{
			Version: entry.Name(),
			Path:    versionDir,
			Source:  "pyenv",
		})
	}

	return detected, nil
}

// hasPythonBinary reports whether the version directory holds a python
// executable in either the Unix or the Windows layout.
func hasPythonBinary(versionDir string) bool {
	candidates := []string{
		filepath.Join(versionDir, "bin", "python"),
		filepath.Join(versionDir, "bin", "python3"),
		filepath.Join(versionDir, "python.exe"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

// init registers the pyenv provider on package load.
func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register pyenv migration provider: %v", err))
	}
}
