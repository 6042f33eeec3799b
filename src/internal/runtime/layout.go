package runtime

import (
	"os"
	"path/filepath"
)

// BinaryDirFor resolves where an installed tree's executables actually
// live. The profile's own convention is tried first; trees imported from
// foreign managers often use a flat bin directory instead of the
// distribution archive's nesting, so that is checked before giving up.
// The second return value reports whether either directory exists.
func BinaryDirFor(p Profile, installDir, version, suffix string) (string, bool) {
	dir := p.BinaryDir(installDir, version, suffix)
	if dirExists(dir) {
		return dir, true
	}

	flat := filepath.Join(installDir, "bin")
	if flat != dir && dirExists(flat) {
		return flat, true
	}

	return dir, false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// HoistDir moves the entries of dir/name up into dir and removes the
// emptied folder. Profiles whose archives wrap everything in a single
// top-level directory call this from their repair step. A missing folder
// is fine; trees imported from foreign managers are already flat.
func HoistDir(dir, name string) error {
	nested := filepath.Join(dir, name)
	entries, err := os.ReadDir(nested)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := os.Rename(filepath.Join(nested, entry.Name()), filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}

	return os.Remove(nested)
}
