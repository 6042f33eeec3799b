package python

import (
	"os"
	"path/filepath"
	goruntime "runtime"
	"testing"

	"github.com/rtvm/rtvm/src/internal/runtime"
)

func TestProfile(t *testing.T) {
	harness := &runtime.ProfileTestHarness{
		Profile:             NewProfile(),
		T:                   t,
		ExpectedName:        "python",
		ExpectedDisplayName: "Python",
		SampleVersion:       "3.12.3",
		SupportedPlatforms: []runtime.PlatformPair{
			{OS: "linux", Arch: "amd64"},
			{OS: "darwin", Arch: "arm64"},
			{OS: "windows", Arch: "amd64"},
		},
		UnsupportedPlatform: runtime.PlatformPair{OS: "plan9", Arch: "amd64"},
	}
	harness.RunAllTests()
}

func TestDownloadURL(t *testing.T) {
	url := NewProfile().DownloadURL("3.12.3", "x86_64", ".tar.xz")
	want := "https://www.python.org/ftp/python/3.12.3/Python-3.12.3-x86_64.tar.xz"
	if url != want {
		t.Errorf("DownloadURL() = %q, want %q", url, want)
	}
}

func TestBinaryDir(t *testing.T) {
	p := NewProfile()

	tests := []struct {
		name     string
		suffix   string
		expected string
	}{
		{
			name:     "unix trees use bin",
			suffix:   "x86_64",
			expected: filepath.Join("install", "bin"),
		},
		{
			name:     "macos trees use bin",
			suffix:   "macos11.0.arm64",
			expected: filepath.Join("install", "bin"),
		},
		{
			name:     "windows trees keep python.exe at the root",
			suffix:   "amd64",
			expected: "install",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := p.BinaryDir("install", "3.12.3", tt.suffix)
			if dir != tt.expected {
				t.Errorf("BinaryDir() = %q, want %q", dir, tt.expected)
			}
		})
	}
}

func TestRepair_HoistsAndAliases(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("alias symlinks are a Unix concern")
	}

	stage := t.TempDir()
	binDir := filepath.Join(stage, "Python-3.12.3-x86_64", "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, binary := range []string{"python3", "pip3"} {
		if err := os.WriteFile(filepath.Join(binDir, binary), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	if err := NewProfile().Repair(stage, "3.12.3", "x86_64"); err != nil {
		t.Fatalf("Repair failed: %v", err)
	}

	for _, binary := range []string{"python3", "pip3"} {
		if _, err := os.Stat(filepath.Join(stage, "bin", binary)); err != nil {
			t.Errorf("bin/%s not hoisted to the tree root: %v", binary, err)
		}
	}

	for plain, versioned := range map[string]string{"python": "python3", "pip": "pip3"} {
		target, err := os.Readlink(filepath.Join(stage, "bin", plain))
		if err != nil {
			t.Errorf("bin/%s alias missing: %v", plain, err)
			continue
		}
		if target != versioned {
			t.Errorf("bin/%s links to %q, want %q", plain, target, versioned)
		}
	}
}

func TestRepair_KeepsExistingPlainNames(t *testing.T) {
	if goruntime.GOOS == "windows" {
		t.Skip("alias symlinks are a Unix concern")
	}

	stage := t.TempDir()
	binDir := filepath.Join(stage, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, binary := range []string{"python", "python3"} {
		if err := os.WriteFile(filepath.Join(binDir, binary), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	if err := NewProfile().Repair(stage, "3.12.3", "x86_64"); err != nil {
		t.Fatalf("Repair failed: %v", err)
	}

	info, err := os.Lstat(filepath.Join(binDir, "python"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		t.Error("existing bin/python was replaced with a symlink")
	}
}

func TestParseListing(t *testing.T) {
	page := []byte(`
		<a href="2.7.18/">2.7.18/</a>
		<a href="3.12.2/">3.12.2/</a>
		<a href="3.12.3/">3.12.3/</a>
		<a href="3.12.3/">3.12.3/</a>
		<a href="doc/">doc/</a>
		<a href="src/">src/</a>
	`)

	releases := parseListing(page)
	if len(releases) != 3 {
		t.Fatalf("parseListing returned %d releases, want 3: %+v", len(releases), releases)
	}
	for _, r := range releases {
		if !r.Stable {
			t.Errorf("release %s not marked stable", r.Version)
		}
	}

	runtime.SortReleasesDesc(releases)
	if releases[0].Version != "3.12.3" {
		t.Errorf("newest release = %q, want 3.12.3", releases[0].Version)
	}
	if releases[2].Version != "2.7.18" {
		t.Errorf("oldest release = %q, want 2.7.18", releases[2].Version)
	}
}

func TestParseListing_MinorOnlyDirectories(t *testing.T) {
	releases := parseListing([]byte(`<a href="2.0/">2.0/</a>`))
	if len(releases) != 1 || releases[0].Version != "2.0" {
		t.Fatalf("parseListing = %+v, want one 2.0 release", releases)
	}
}
