//go:build windows

package farm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rtvm/rtvm/src/internal/constants"
)

// createLauncher writes a cmd shim forwarding all arguments to target.
// Creating symlinks requires elevation on Windows, so the farm uses
// batch files instead.
func createLauncher(dir, name, target string) error {
	shim := fmt.Sprintf("@echo off\r\n\"%s\" %%*\r\n", target)
	return os.WriteFile(filepath.Join(dir, name+constants.ExtCmd), []byte(shim), 0755)
}

// isManagedEntry reports whether a bin directory entry was created by
// the farm. On Windows every managed entry is a .cmd shim.
func isManagedEntry(entry os.DirEntry) bool {
	return strings.EqualFold(filepath.Ext(entry.Name()), constants.ExtCmd)
}

// findEntry locates the launcher for name, trying the shim extension
// first so "node" finds "node.cmd".
func findEntry(binDir, name string) (string, error) {
	for _, candidate := range []string{name + constants.ExtCmd, name + constants.ExtExe, name + ".bat", name} {
		p := filepath.Join(binDir, candidate)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}

// launcherTarget extracts the quoted target path from a generated cmd
// shim. Entries the farm did not generate are their own target.
func launcherTarget(entry string) (string, error) {
	if !strings.EqualFold(filepath.Ext(entry), constants.ExtCmd) {
		return entry, nil
	}

	data, err := os.ReadFile(entry)
	if err != nil {
		return "", err
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "\"") {
			if end := strings.Index(line[1:], "\""); end >= 0 {
				return line[1 : 1+end], nil
			}
		}
	}
	return entry, nil
}
