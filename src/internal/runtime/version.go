package runtime

import (
	"fmt"
	"strconv"
	"strings"
)

// Version represents a runtime version
type Version struct {
	Raw   string // The raw version string (e.g., "3.11.0", "18.17.0")
	Major int
	Minor int
	Patch int
}

// NewVersion creates a new Version from a version string. Numeric
// major/minor/patch components are parsed when present; anything after a
// prerelease separator is kept only in Raw.
func NewVersion(version string) Version {
	v := Version{Raw: version}

	core := strings.TrimSpace(version)
	core = strings.TrimPrefix(core, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}

	parts := strings.Split(core, ".")
	nums := make([]int, 0, 3)
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			break
		}
		nums = append(nums, n)
	}

	if len(nums) > 0 {
		v.Major = nums[0]
	}
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}
	return v
}

// String returns the string representation of the version
func (v Version) String() string {
	return v.Raw
}

// Compare orders two versions by their numeric components. It returns a
// negative value when v is older than other, zero when the components
// match, and a positive value otherwise.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return v.Major - other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor - other.Minor
	}
	return v.Patch - other.Patch
}

// InstalledVersion represents an installed runtime version
type InstalledVersion struct {
	Version
	InstallPath string
	Active      bool // True when this is the runtime's active version
}

// String returns a formatted string representation
func (iv InstalledVersion) String() string {
	if iv.Active {
		return fmt.Sprintf("%s (current)", iv.Version.Raw)
	}
	return iv.Version.Raw
}
