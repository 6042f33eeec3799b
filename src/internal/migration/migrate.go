package migration

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rtvm/rtvm/src/internal/store"
	"github.com/rtvm/rtvm/src/internal/ui"
)

// Run imports every version the provider detects that is not already in
// the store, and returns the number of newly migrated versions. policy
// decides what a missing source root means; pass the provider's
// MissingRootPolicy unless the caller overrides it.
func Run(st *store.Store, provider Provider, policy Policy) (int, error) {
	root, err := provider.SourceRoot()
	if err != nil {
		return 0, err
	}

	if !dirExists(root) {
		if policy == ZeroWhenMissing {
			ui.Debug("%s has no versions at %s; nothing to migrate", provider.Name(), root)
			return 0, nil
		}
		return 0, fmt.Errorf("%s versions directory not found at %s", provider.DisplayName(), root)
	}

	detected, err := provider.DetectVersions(root)
	if err != nil {
		return 0, err
	}

	migrated := 0
	for _, dv := range detected {
		ui.Debug("Detected %s", dv)
		fresh, err := importVersion(st, provider.Runtime(), dv)
		if err != nil {
			return migrated, err
		}
		if fresh {
			migrated++
		}
	}

	return migrated, nil
}

// importVersion copies one detected version into the store. Versions
// already present are skipped, so re-running a migration is harmless.
func importVersion(st *store.Store, runtimeName string, dv DetectedVersion) (bool, error) {
	if st.IsInstalled(runtimeName, dv.Version) {
		ui.Debug("%s %s already installed; skipping", runtimeName, dv.Version)
		return false, nil
	}

	ui.Info("Migrating %s %s from %s...", runtimeName, dv.Version, dv.Source)

	return st.Install(runtimeName, dv.Version, func(stageDir string) error {
		if err := copyTree(dv.Path, stageDir); err != nil {
			return err
		}
		// Foreign managers do not always keep the executable bit
		return store.NormalizeExecutables(filepath.Join(stageDir, "bin"))
	})
}

// copyTree recursively copies a foreign version directory. Symlinks are
// recreated rather than followed so relative links inside the tree stay
// intact.
func copyTree(src, dst string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			target, err := os.Readlink(srcPath)
			if err != nil {
				return err
			}
			if err := os.Symlink(target, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			if err := copyTree(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = srcFile.Close() }()

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode())
	if err != nil {
		return err
	}
	defer func() { _ = dstFile.Close() }()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	return dstFile.Sync()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
