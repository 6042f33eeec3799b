package runtime

import (
	"testing"
)

func TestNewVersion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		raw   string
		major int
		minor int
		patch int
	}{
		{
			name:  "simple version",
			input: "3.11.0",
			raw:   "3.11.0",
			major: 3,
			minor: 11,
			patch: 0,
		},
		{
			name:  "version with spaces",
			input: "  18.16.0  ",
			raw:   "  18.16.0  ",
			major: 18,
			minor: 16,
			patch: 0,
		},
		{
			name:  "version with v prefix",
			input: "v20.5.1",
			raw:   "v20.5.1",
			major: 20,
			minor: 5,
			patch: 1,
		},
		{
			name:  "prerelease suffix ignored for components",
			input: "1.70.0-beta.2",
			raw:   "1.70.0-beta.2",
			major: 1,
			minor: 70,
			patch: 0,
		},
		{
			name:  "two component version",
			input: "1.21",
			raw:   "1.21",
			major: 1,
			minor: 21,
			patch: 0,
		},
		{
			name:  "empty version",
			input: "",
			raw:   "",
			major: 0,
			minor: 0,
			patch: 0,
		},
		{
			name:  "non-numeric version",
			input: "latest",
			raw:   "latest",
			major: 0,
			minor: 0,
			patch: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVersion(tt.input)
			if v.Raw != tt.raw {
				t.Errorf("NewVersion(%q).Raw = %q, want %q", tt.input, v.Raw, tt.raw)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("NewVersion(%q) components = %d.%d.%d, want %d.%d.%d",
					tt.input, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
		})
	}
}

func TestVersion_String(t *testing.T) {
	tests := []struct {
		name     string
		version  Version
		expected string
	}{
		{
			name:     "standard version",
			version:  Version{Raw: "3.11.0"},
			expected: "3.11.0",
		},
		{
			name:     "empty version",
			version:  Version{Raw: ""},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.version.String()
			if result != tt.expected {
				t.Errorf("Version.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		name string
		v1   string
		v2   string
		sign int
	}{
		{
			name: "equal versions",
			v1:   "18.17.0",
			v2:   "18.17.0",
			sign: 0,
		},
		{
			name: "older major",
			v1:   "18.17.0",
			v2:   "20.0.0",
			sign: -1,
		},
		{
			name: "newer minor",
			v1:   "1.71.0",
			v2:   "1.70.3",
			sign: 1,
		},
		{
			name: "patch difference",
			v1:   "3.11.4",
			v2:   "3.11.5",
			sign: -1,
		},
		{
			name: "numeric not lexicographic",
			v1:   "3.9.0",
			v2:   "3.11.0",
			sign: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewVersion(tt.v1).Compare(NewVersion(tt.v2))
			var sign int
			switch {
			case result < 0:
				sign = -1
			case result > 0:
				sign = 1
			}
			if sign != tt.sign {
				t.Errorf("Compare(%q, %q) sign = %d, want %d", tt.v1, tt.v2, sign, tt.sign)
			}
		})
	}
}

func TestInstalledVersion_String(t *testing.T) {
	tests := []struct {
		name     string
		iv       InstalledVersion
		expected string
	}{
		{
			name: "active version",
			iv: InstalledVersion{
				Version:     Version{Raw: "3.11.0"},
				InstallPath: "/path/to/python",
				Active:      true,
			},
			expected: "3.11.0 (current)",
		},
		{
			name: "inactive version",
			iv: InstalledVersion{
				Version:     Version{Raw: "18.16.0"},
				InstallPath: "/path/to/node",
				Active:      false,
			},
			expected: "18.16.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.iv.String()
			if result != tt.expected {
				t.Errorf("InstalledVersion.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}
