package runtime

import (
	"errors"
	"fmt"
)

// UnsupportedPlatformError reports that a runtime has no distribution for
// the host OS/architecture pair. It is raised before any network activity.
type UnsupportedPlatformError struct {
	Runtime string
	OS      string
	Arch    string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("%s has no distribution for %s/%s", e.Runtime, e.OS, e.Arch)
}

// IsUnsupportedPlatform checks if an error is an UnsupportedPlatformError
func IsUnsupportedPlatform(err error) bool {
	var target *UnsupportedPlatformError
	return errors.As(err, &target)
}

// LayoutMismatchError reports an installed tree whose binary directory
// does not contain the runtime's primary executable. Raised after
// extraction and repair, and again at switch time if the tree has been
// damaged since.
type LayoutMismatchError struct {
	Runtime string
	Version string
	Binary  string
	Dir     string
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("%s %s installed without its %s binary (looked in %s)",
		e.Runtime, e.Version, e.Binary, e.Dir)
}

// IsLayoutMismatch checks if an error is a LayoutMismatchError
func IsLayoutMismatch(err error) bool {
	var lme *LayoutMismatchError
	return errors.As(err, &lme)
}

// InstallScriptFailedError reports a distribution install script that
// exited non-zero during a profile's repair step.
type InstallScriptFailedError struct {
	Runtime string
	Version string
	Script  string
	Err     error
}

func (e *InstallScriptFailedError) Error() string {
	return fmt.Sprintf("%s %s install script %s failed: %v", e.Runtime, e.Version, e.Script, e.Err)
}

func (e *InstallScriptFailedError) Unwrap() error {
	return e.Err
}

// IsInstallScriptFailed checks if an error is an InstallScriptFailedError
func IsInstallScriptFailed(err error) bool {
	var target *InstallScriptFailedError
	return errors.As(err, &target)
}
