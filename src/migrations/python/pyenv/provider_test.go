package pyenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rtvm/rtvm/src/internal/migration"
)

func TestProvider(t *testing.T) {
	t.Setenv("PYENV_ROOT", t.TempDir())
	harness := &migration.ProviderTestHarness{
		Provider:     NewProvider(),
		ExpectedName: "pyenv",
		Runtime:      "python",
		Policy:       migration.ZeroWhenMissing,
	}
	harness.RunAll(t)
}

func TestSourceRoot_HonorsPyenvRoot(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("PYENV_ROOT", custom)

	root, err := NewProvider().SourceRoot()
	if err != nil {
		t.Fatalf("SourceRoot failed: %v", err)
	}
	if want := filepath.Join(custom, "versions"); root != want {
		t.Errorf("SourceRoot() = %q, want %q", root, want)
	}
}

func seedVersion(t *testing.T, root, name, binary string) {
	t.Helper()
	binDir := filepath.Join(root, name, "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(binDir, binary), []byte("python"), 0755); err != nil {
		t.Fatal(err)
	}
}

func TestDetectVersions(t *testing.T) {
	root := t.TempDir()
	seedVersion(t, root, "3.11.0", "python3")
	seedVersion(t, root, "3.12.1", "python")

	// Alternative interpreters are not CPython versions
	seedVersion(t, root, "pypy3.9-7.3.11", "pypy")

	// A build that never finished has no interpreter
	if err := os.MkdirAll(filepath.Join(root, "2.7.18"), 0755); err != nil {
		t.Fatal(err)
	}

	detected, err := NewProvider().DetectVersions(root)
	if err != nil {
		t.Fatalf("DetectVersions failed: %v", err)
	}
	if len(detected) != 2 {
		t.Fatalf("DetectVersions found %d versions, want 2", len(detected))
	}

	if detected[0].Version != "3.11.0" || detected[1].Version != "3.12.1" {
		t.Errorf("DetectVersions versions = %s, %s; want 3.11.0, 3.12.1",
			detected[0].Version, detected[1].Version)
	}
	if detected[0].Source != "pyenv" {
		t.Errorf("DetectVersions source = %q, want %q", detected[0].Source, "pyenv")
	}
}

func TestDetectVersions_PrereleaseNames(t *testing.T) {
	root := t.TempDir()
	seedVersion(t, root, "3.13.0rc2", "python3")

	detected, err := NewProvider().DetectVersions(root)
	if err != nil {
		t.Fatalf("DetectVersions failed: %v", err)
	}
	if len(detected) != 1 {
		t.Fatalf("DetectVersions found %d versions, want 1", len(detected))
	}
	if detected[0].Version != "3.13.0rc2" {
		t.Errorf("DetectVersions version = %q, want %q", detected[0].Version, "3.13.0rc2")
	}
}
