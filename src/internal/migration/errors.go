package migration

import (
	"errors"
	"fmt"
)

// UnsupportedSourceManagerError reports a migration request naming a
// version manager no provider handles.
type UnsupportedSourceManagerError struct {
	Manager string
}

func (e *UnsupportedSourceManagerError) Error() string {
	return fmt.Sprintf("unsupported source manager: %s", e.Manager)
}

// IsUnsupportedSourceManager checks if an error is an UnsupportedSourceManagerError
func IsUnsupportedSourceManager(err error) bool {
	var target *UnsupportedSourceManagerError
	return errors.As(err, &target)
}
