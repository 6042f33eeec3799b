package runtime

import (
	"strings"
	"testing"
)

func TestLatestStable(t *testing.T) {
	tests := []struct {
		name     string
		releases []Release
		want     string
		found    bool
	}{
		{
			name: "first entry wins",
			releases: []Release{
				{Version: "21.0.0", Stable: true},
				{Version: "20.5.1", Stable: true},
			},
			want:  "21.0.0",
			found: true,
		},
		{
			name: "skips unstable head",
			releases: []Release{
				{Version: "1.72.0-beta.1", Stable: false},
				{Version: "1.71.1", Stable: true},
				{Version: "1.71.0", Stable: true},
			},
			want:  "1.71.1",
			found: true,
		},
		{
			name: "no stable releases",
			releases: []Release{
				{Version: "0.1.0-rc1", Stable: false},
			},
			want:  "",
			found: false,
		},
		{
			name:     "empty catalog",
			releases: []Release{},
			want:     "",
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := LatestStable(tt.releases)
			if ok != tt.found {
				t.Fatalf("LatestStable() found = %v, want %v", ok, tt.found)
			}
			if ok && r.Version != tt.want {
				t.Errorf("LatestStable() = %q, want %q", r.Version, tt.want)
			}
		})
	}
}

func TestLatestLTS(t *testing.T) {
	tests := []struct {
		name     string
		releases []Release
		want     string
		found    bool
	}{
		{
			name: "newest lts line",
			releases: []Release{
				{Version: "21.0.0", Stable: true, LTS: false},
				{Version: "20.9.0", Stable: true, LTS: true},
				{Version: "18.18.2", Stable: true, LTS: true},
			},
			want:  "20.9.0",
			found: true,
		},
		{
			name: "runtime without lts lines",
			releases: []Release{
				{Version: "1.21.3", Stable: true},
				{Version: "1.21.2", Stable: true},
			},
			want:  "",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, ok := LatestLTS(tt.releases)
			if ok != tt.found {
				t.Fatalf("LatestLTS() found = %v, want %v", ok, tt.found)
			}
			if ok && r.Version != tt.want {
				t.Errorf("LatestLTS() = %q, want %q", r.Version, tt.want)
			}
		})
	}
}

func TestIsUnsupportedPlatform(t *testing.T) {
	err := &UnsupportedPlatformError{Runtime: "node", OS: "plan9", Arch: "386"}

	if !IsUnsupportedPlatform(err) {
		t.Error("IsUnsupportedPlatform() = false for UnsupportedPlatformError")
	}
	if IsUnsupportedPlatform(nil) {
		t.Error("IsUnsupportedPlatform(nil) = true")
	}

	msg := err.Error()
	for _, part := range []string{"node", "plan9", "386"} {
		if !strings.Contains(msg, part) {
			t.Errorf("UnsupportedPlatformError message %q missing %q", msg, part)
		}
	}
}
