// Package fnm provides a migration provider for Fast Node Manager (fnm).
package fnm

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rtvm/rtvm/src/internal/migration"
)

// Provider implements the migration.Provider interface for fnm.
type Provider struct{}

// NewProvider creates a new fnm migration provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the identifier for this version manager.
func (p *Provider) Name() string {
	return "fnm"
}

// DisplayName returns the human-readable name.
func (p *Provider) DisplayName() string {
	return "Fast Node Manager (fnm)"
}

// Runtime returns the runtime this provider manages.
func (p *Provider) Runtime() string {
	return "node"
}

// SourceRoot returns the fnm node-versions directory, honoring FNM_DIR.
// Without the override the known fnm locations are probed in order.
func (p *Provider) SourceRoot() (string, error) {
	if dir := os.Getenv("FNM_DIR"); dir != "" {
		return filepath.Join(dir, "node-versions"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	candidates := []string{
		filepath.Join(home, ".local", "share", "fnm"),
		filepath.Join(home, ".fnm"),
		filepath.Join(home, "Library", "Application Support", "fnm"), // macOS
	}
	for _, dir := range candidates {
		root := filepath.Join(dir, "node-versions")
		if dirExists(root) {
			return root, nil
		}
	}
	return filepath.Join(candidates[0], "node-versions"), nil
}

// MissingRootPolicy reports that a missing fnm installation is not an error.
func (p *Provider) MissingRootPolicy() migration.Policy {
	return migration.ZeroWhenMissing
}

// fnm names version directories with a leading v, e.g. "v22.0.0".
var versionDirPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// DetectVersions finds all versions installed by fnm under root.
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

		// Recent fnm keeps the tree under installation/, older releases
		// put bin/ directly in the version directory
		versionDir := filepath.Join(root, entry.Name())
		treeDir := filepath.Join(versionDir, "installation")
		if !dirExists(treeDir) {
			treeDir = versionDir
		}
		if !hasNodeBinary(treeDir) {
			continue
		}

		detected = append(detected, migration.DetectedVersion{
			Version: strings.TrimPrefix(entry.Name(), "v"),
			Path:    treeDir,
			Source:  "fnm",
		})
	}

	return detected, nil
}

// hasNodeBinary reports whether the tree holds a node executable in
// either the Unix or the Windows layout.
func hasNodeBinary(treeDir string) bool {
	candidates := []string{
		filepath.Join(treeDir, "bin", "node"),
		filepath.Join(treeDir, "node.exe"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// init registers the fnm provider on package load.
func init() {
	if err := migration.Register(NewProvider()); err != nil {
		panic(fmt.Sprintf("failed to register fnm migration provider: %v", err))
	}
}
