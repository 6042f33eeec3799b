package fnm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rtvm/rtvm/src/internal/migration"
)

func TestProvider(t *testing.T) {
	t.Setenv("FNM_DIR", t.TempDir())
	harness := &migration.ProviderTestHarness{
		Provider:     NewProvider(),
		ExpectedName: "fnm",
		Runtime:      "node",
		Policy:       migration.ZeroWhenMissing,
	}
	harness.RunAll(t)
}

func TestSourceRoot_HonorsFnmDir(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("FNM_DIR", custom)

	root, err := NewProvider().SourceRoot()
	if err != nil {
		t.Fatalf("SourceRoot failed: %v", err)
	}
	if want := filepath.Join(custom, "node-versions"); root != want {
		t.Errorf("SourceRoot() = %q, want %q", root, want)
	}
}

func TestDetectVersions_NestedAndFlatLayouts(t *testing.T) {
	root := t.TempDir()

	// Current layout keeps the tree under installation/
	nestedBin := filepath.Join(root, "v18.17.0", "installation", "bin")
	if err := os.MkdirAll(nestedBin, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nestedBin, "node"), []byte("node"), 0755); err != nil {
		t.Fatal(err)
	}

	// Old layout put bin/ directly in the version directory
	flatBin := filepath.Join(root, "v16.20.0", "bin")
	if err := os.MkdirAll(flatBin, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(flatBin, "node"), []byte("node"), 0755); err != nil {
		t.Fatal(err)
	}

	// An empty version directory has nothing to migrate
	if err := os.MkdirAll(filepath.Join(root, "v9.9.9"), 0755); err != nil {
		t.Fatal(err)
	}

	detected, err := NewProvider().DetectVersions(root)
	if err != nil {
		t.Fatalf("DetectVersions failed: %v", err)
	}
	if len(detected) != 2 {
		t.Fatalf("DetectVersions found %d versions, want 2", len(detected))
	}

	if detected[0].Version != "16.20.0" || detected[1].Version != "18.17.0" {
		t.Errorf("DetectVersions versions = %s, %s; want 16.20.0, 18.17.0",
			detected[0].Version, detected[1].Version)
	}
	if want := filepath.Join(root, "v16.20.0"); detected[0].Path != want {
		t.Errorf("flat layout path = %q, want %q", detected[0].Path, want)
	}
	if want := filepath.Join(root, "v18.17.0", "installation"); detected[1].Path != want {
		t.Errorf("nested layout path = %q, want %q", detected[1].Path, want)
	}
}
