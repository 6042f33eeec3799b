package store

import (
	"errors"
	"fmt"
)

// NotInstalledError reports a version the store does not hold. Operations
// that need an installed version to proceed (switching, alias creation,
// pinning) fail with it.
type NotInstalledError struct {
	Runtime string
	Version string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s %s is not installed", e.Runtime, e.Version)
}

// IsNotInstalled checks if an error is a NotInstalledError
func IsNotInstalled(err error) bool {
	var nie *NotInstalledError
	return errors.As(err, &nie)
}

// NotFoundError reports a removal target that is absent from the store
type NotFoundError struct {
	Runtime string
	Version string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found in the store", e.Runtime, e.Version)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}

// CurrentlyActiveError blocks removal of a version the executable farm
// still points at.
type CurrentlyActiveError struct {
	Runtime string
	Version string
}

func (e *CurrentlyActiveError) Error() string {
	return fmt.Sprintf("%s %s is currently active; switch to another version before removing it",
		e.Runtime, e.Version)
}

// IsCurrentlyActive checks if an error is a CurrentlyActiveError
func IsCurrentlyActive(err error) bool {
	var cae *CurrentlyActiveError
	return errors.As(err, &cae)
}
