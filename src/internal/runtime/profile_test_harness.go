package runtime

import (
	"path/filepath"
	"strings"
	"testing"
)

// PlatformPair identifies a GOOS/GOARCH combination for suffix checks
type PlatformPair struct {
	OS   string
	Arch string
}

// ProfileTestHarness runs a suite of contract tests against a Profile implementation
// This ensures all profiles behave consistently and implement the interface correctly
type ProfileTestHarness struct {
	Profile Profile
	T       *testing.T

	// Expected values for validation
	ExpectedName        string
	ExpectedDisplayName string
	SampleVersion       string         // A valid version string for this runtime (e.g., "3.11.0")
	SupportedPlatforms  []PlatformPair // Combinations that must resolve to a download suffix
	UnsupportedPlatform PlatformPair   // A combination that must be rejected
}

// RunAllTests executes the complete test suite
func (h *ProfileTestHarness) RunAllTests() {
	h.T.Run("Name", func(t *testing.T) { h.TestName(t) })
	h.T.Run("DisplayName", func(t *testing.T) { h.TestDisplayName(t) })
	h.T.Run("Executables", func(t *testing.T) { h.TestExecutables(t) })
	h.T.Run("PinFileName", func(t *testing.T) { h.TestPinFileName(t) })
	h.T.Run("PlatformSuffix", func(t *testing.T) { h.TestPlatformSuffix(t) })
	h.T.Run("ArchiveExt", func(t *testing.T) { h.TestArchiveExt(t) })
	h.T.Run("DownloadURL", func(t *testing.T) { h.TestDownloadURL(t) })
	h.T.Run("BinaryDir", func(t *testing.T) { h.TestBinaryDir(t) })
}

// TestName verifies the profile returns the expected name
func (h *ProfileTestHarness) TestName(t *testing.T) {
	name := h.Profile.Name()

	if name == "" {
		t.Error("Name() returned empty string")
	}

	if name != h.ExpectedName {
		t.Errorf("Name() = %q, want %q", name, h.ExpectedName)
	}

	// Name should be lowercase (convention)
	if name != strings.ToLower(name) {
		t.Errorf("Name() = %q should be lowercase", name)
	}
}

// TestDisplayName verifies the profile returns a human-readable name
func (h *ProfileTestHarness) TestDisplayName(t *testing.T) {
	displayName := h.Profile.DisplayName()

	if displayName == "" {
		t.Error("DisplayName() returned empty string")
	}

	if displayName != h.ExpectedDisplayName {
		t.Errorf("DisplayName() = %q, want %q", displayName, h.ExpectedDisplayName)
	}
}

// TestExecutables verifies the executables list is usable for launcher names
func (h *ProfileTestHarness) TestExecutables(t *testing.T) {
	execs := h.Profile.Executables()

	if len(execs) == 0 {
		t.Fatal("Executables() returned empty list")
	}

	seen := make(map[string]bool)
	for i, exe := range execs {
		if exe == "" {
			t.Errorf("Executables()[%d] is empty string", i)
		}
		if strings.ContainsAny(exe, "/\\") {
			t.Errorf("Executables()[%d] = %q contains a path separator", i, exe)
		}
		if seen[exe] {
			t.Errorf("Executables() lists %q twice", exe)
		}
		seen[exe] = true
	}
}

// TestPinFileName verifies the pin file follows the dotfile convention
func (h *ProfileTestHarness) TestPinFileName(t *testing.T) {
	pin := h.Profile.PinFileName()

	if pin == "" {
		t.Fatal("PinFileName() returned empty string")
	}
	if !strings.HasPrefix(pin, ".") {
		t.Errorf("PinFileName() = %q should start with a dot", pin)
	}
	if !strings.HasSuffix(pin, "-version") {
		t.Errorf("PinFileName() = %q should end with -version", pin)
	}
}

// TestPlatformSuffix verifies suffix resolution for supported and rejected platforms
func (h *ProfileTestHarness) TestPlatformSuffix(t *testing.T) {
	for _, p := range h.SupportedPlatforms {
		suffix, err := h.Profile.PlatformSuffix(p.OS, p.Arch)
		if err != nil {
			t.Errorf("PlatformSuffix(%q, %q) unexpected error: %v", p.OS, p.Arch, err)
			continue
		}
		if suffix == "" {
			t.Errorf("PlatformSuffix(%q, %q) returned empty suffix", p.OS, p.Arch)
		}
	}

	if h.UnsupportedPlatform.OS != "" {
		p := h.UnsupportedPlatform
		suffix, err := h.Profile.PlatformSuffix(p.OS, p.Arch)
		if err == nil {
			t.Errorf("PlatformSuffix(%q, %q) = %q, want unsupported platform error", p.OS, p.Arch, suffix)
		} else if !IsUnsupportedPlatform(err) {
			t.Errorf("PlatformSuffix(%q, %q) error = %v, want UnsupportedPlatformError", p.OS, p.Arch, err)
		}
	}
}

// TestArchiveExt verifies the archive extension per operating system
func (h *ProfileTestHarness) TestArchiveExt(t *testing.T) {
	for _, goos := range []string{"linux", "darwin", "windows"} {
		ext := h.Profile.ArchiveExt(goos)
		if ext == "" {
			t.Errorf("ArchiveExt(%q) returned empty string", goos)
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			t.Errorf("ArchiveExt(%q) = %q should start with a dot", goos, ext)
		}
	}
}

// TestDownloadURL verifies the download URL embeds version and platform
func (h *ProfileTestHarness) TestDownloadURL(t *testing.T) {
	if h.SampleVersion == "" || len(h.SupportedPlatforms) == 0 {
		t.Skip("No sample version or supported platform provided")
	}

	p := h.SupportedPlatforms[0]
	suffix, err := h.Profile.PlatformSuffix(p.OS, p.Arch)
	if err != nil {
		t.Fatalf("PlatformSuffix(%q, %q) failed: %v", p.OS, p.Arch, err)
	}

	url := h.Profile.DownloadURL(h.SampleVersion, suffix, h.Profile.ArchiveExt(p.OS))

	if url == "" {
		t.Fatal("DownloadURL() returned empty string")
	}
	if !strings.HasPrefix(url, "https://") {
		t.Errorf("DownloadURL() = %q should use https", url)
	}
	if !strings.Contains(url, h.SampleVersion) {
		t.Errorf("DownloadURL() = %q does not contain version %q", url, h.SampleVersion)
	}
	if !strings.Contains(url, suffix) {
		t.Errorf("DownloadURL() = %q does not contain platform suffix %q", url, suffix)
	}
}

// TestBinaryDir verifies the binary directory stays inside the install directory
func (h *ProfileTestHarness) TestBinaryDir(t *testing.T) {
	if h.SampleVersion == "" || len(h.SupportedPlatforms) == 0 {
		t.Skip("No sample version or supported platform provided")
	}

	p := h.SupportedPlatforms[0]
	suffix, err := h.Profile.PlatformSuffix(p.OS, p.Arch)
	if err != nil {
		t.Fatalf("PlatformSuffix(%q, %q) failed: %v", p.OS, p.Arch, err)
	}

	installDir := filepath.Join("opt", "fake", "install")
	dir := h.Profile.BinaryDir(installDir, h.SampleVersion, suffix)

	if dir == "" {
		t.Fatal("BinaryDir() returned empty string")
	}
	if !strings.HasPrefix(dir, installDir) {
		t.Errorf("BinaryDir() = %q escapes install directory %q", dir, installDir)
	}
}
