package cmd

import (
	"testing"

	"github.com/rtvm/rtvm/src/internal/runtime"
)

func TestReleaseStatus(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		active   string
		pinned   string
		expected string
	}{
		{"no roles", "1.0.0", "2.0.0", "3.0.0", ""},
		{"current only", "2.0.0", "2.0.0", "3.0.0", "current"},
		{"pinned only", "3.0.0", "2.0.0", "3.0.0", "pinned"},
		{"current and pinned", "2.0.0", "2.0.0", "2.0.0", "current, pinned"},
		{"nothing active", "1.0.0", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := releaseStatus(tt.version, tt.active, tt.pinned); got != tt.expected {
				t.Errorf("releaseStatus(%q, %q, %q) = %q, want %q",
					tt.version, tt.active, tt.pinned, got, tt.expected)
			}
		})
	}
}

func TestReleaseNotes(t *testing.T) {
	tests := []struct {
		name     string
		release  runtime.Release
		expected string
	}{
		{"plain stable", runtime.Release{Version: "1.0.0", Stable: true}, ""},
		{"lts", runtime.Release{Version: "1.0.0", Stable: true, LTS: true}, "lts"},
		{"prerelease", runtime.Release{Version: "2.0.0-rc1"}, "prerelease"},
		{"dated", runtime.Release{Version: "1.0.0", Stable: true, Date: "2024-03-01"}, "2024-03-01"},
		{"lts with date", runtime.Release{Version: "1.0.0", Stable: true, LTS: true, Date: "2024-03-01"}, "lts, 2024-03-01"},
		{"prerelease with date", runtime.Release{Version: "2.0.0-rc1", Date: "2024-05-01"}, "prerelease, 2024-05-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := releaseNotes(tt.release); got != tt.expected {
				t.Errorf("releaseNotes(%+v) = %q, want %q", tt.release, got, tt.expected)
			}
		})
	}
}
