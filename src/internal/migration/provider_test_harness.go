package migration

import (
	"path/filepath"
	"testing"
)

// ProviderTestHarness provides a standardized way to test migration provider
// implementations. Each provider package should use this harness to ensure
// consistent behavior.
type ProviderTestHarness struct {
	Provider     Provider
	ExpectedName string
	Runtime      string
	Policy       Policy
}

// RunAll runs all standard provider tests.
func (h *ProviderTestHarness) RunAll(t *testing.T) {
	t.Run("Name", h.TestName)
	t.Run("DisplayName", h.TestDisplayName)
	t.Run("Runtime", h.TestRuntime)
	t.Run("SourceRoot", h.TestSourceRoot)
	t.Run("MissingRootPolicy", h.TestMissingRootPolicy)
	t.Run("DetectVersionsEmptyRoot", h.TestDetectVersionsEmptyRoot)
}

// TestName verifies the provider returns a valid name.
func (h *ProviderTestHarness) TestName(t *testing.T) {
	name := h.Provider.Name()
	if name == "" {
		t.Error("Name() returned empty string")
	}
	if name != h.ExpectedName {
		t.Errorf("Name() = %q, want %q", name, h.ExpectedName)
	}
}

// TestDisplayName verifies the provider returns a valid display name.
func (h *ProviderTestHarness) TestDisplayName(t *testing.T) {
	displayName := h.Provider.DisplayName()
	if displayName == "" {
		t.Error("DisplayName() returned empty string")
	}
}

// TestRuntime verifies the provider returns the expected runtime.
func (h *ProviderTestHarness) TestRuntime(t *testing.T) {
	runtime := h.Provider.Runtime()
	if runtime != h.Runtime {
		t.Errorf("Runtime() = %q, want %q", runtime, h.Runtime)
	}
}

// TestSourceRoot verifies the provider resolves an absolute source root.
func (h *ProviderTestHarness) TestSourceRoot(t *testing.T) {
	root, err := h.Provider.SourceRoot()
	if err != nil {
		t.Fatalf("SourceRoot() error = %v, want nil", err)
	}
	if root == "" {
		t.Error("SourceRoot() returned empty string")
	}
	if !filepath.IsAbs(root) {
		t.Errorf("SourceRoot() = %q, want an absolute path", root)
	}
}

// TestMissingRootPolicy verifies the provider declares the expected policy.
func (h *ProviderTestHarness) TestMissingRootPolicy(t *testing.T) {
	if policy := h.Provider.MissingRootPolicy(); policy != h.Policy {
		t.Errorf("MissingRootPolicy() = %v, want %v", policy, h.Policy)
	}
}

// TestDetectVersionsEmptyRoot verifies scanning an empty root finds nothing.
func (h *ProviderTestHarness) TestDetectVersionsEmptyRoot(t *testing.T) {
	versions, err := h.Provider.DetectVersions(t.TempDir())
	if err != nil {
		t.Errorf("DetectVersions() error = %v, want nil", err)
	}
	if versions == nil {
		t.Error("DetectVersions() returned nil, want empty slice")
	}
	if len(versions) != 0 {
		t.Errorf("DetectVersions() on an empty root found %d versions", len(versions))
	}
}
