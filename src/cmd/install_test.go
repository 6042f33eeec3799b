package cmd

import (
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"

	"github.com/rtvm/rtvm/src/internal/config"
	"github.com/rtvm/rtvm/src/internal/runtime"
)

// seedExecutable drops an executable file into a version's bin directory
func seedExecutable(t *testing.T, binDir, name string) {
	t.Helper()
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(binDir, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func TestActivateIfFirst_ActivatesFirstInstall(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("farm launchers are symlinks off Windows")
	}

	st := newTestStore(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SHELL", "/bin/bash")

	p := &mockProfile{name: "mockj"}
	if err := runtime.Register(p); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	t.Cleanup(func() { _ = runtime.Unregister("mockj") })

	seedExecutable(t, filepath.Join(st.InstallPath("mockj", "1.0.0"), "bin"), "mockj")

	activateIfFirst(st, p, "1.0.0")

	if active, ok := st.Active().Get("mockj"); !ok || active != "1.0.0" {
		t.Errorf("active version = %q, %v; want %q, true", active, ok, "1.0.0")
	}

	launcher := filepath.Join(config.DefaultPaths().Bin, "mockj")
	if _, err := os.Lstat(launcher); err != nil {
		t.Errorf("launcher %s missing after activation: %v", launcher, err)
	}
}

func TestActivateIfFirst_KeepsExistingActive(t *testing.T) {
	st := newTestStore(t)
	p := &mockProfile{name: "mockk"}

	seedExecutable(t, filepath.Join(st.InstallPath("mockk", "1.0.0"), "bin"), "mockk")
	seedExecutable(t, filepath.Join(st.InstallPath("mockk", "2.0.0"), "bin"), "mockk")

	if err := st.Active().Set("mockk", "1.0.0"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	activateIfFirst(st, p, "2.0.0")

	if active, _ := st.Active().Get("mockk"); active != "1.0.0" {
		t.Errorf("active version = %q, want %q untouched", active, "1.0.0")
	}
}
