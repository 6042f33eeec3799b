//go:build !windows

package farm

import (
	"os"
	"path/filepath"
)

// createLauncher drops a symlink named name in dir pointing at target.
func createLauncher(dir, name, target string) error {
	link := filepath.Join(dir, name)
	_ = os.Remove(link)
	return os.Symlink(target, link)
}

// isManagedEntry reports whether a bin directory entry was created by
// the farm. On Unix every managed entry is a symlink.
func isManagedEntry(entry os.DirEntry) bool {
	return entry.Type()&os.ModeSymlink != 0
}

func findEntry(binDir, name string) (string, error) {
	link := filepath.Join(binDir, name)
	if _, err := os.Lstat(link); err != nil {
		return "", err
	}
	return link, nil
}

// launcherTarget follows the launcher symlink to the real executable.
// A carried-over regular file is its own target.
func launcherTarget(entry string) (string, error) {
	info, err := os.Lstat(entry)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return entry, nil
	}

	target, err := os.Readlink(entry)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(entry), target)
	}
	return target, nil
}
