package download

import (
	"errors"
	"fmt"
	"path/filepath"
)

// DownloadFailedError reports a distribution download that did not complete,
// either because the transport failed or because the server answered with a
// non-success status.
type DownloadFailedError struct {
	URL    string
	Status string // HTTP status line, empty on transport failures
	Err    error  // underlying transport error, nil on HTTP failures
}

func (e *DownloadFailedError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download failed: %v (URL: %s)", e.Err, e.URL)
	}
	return fmt.Sprintf("download failed (HTTP %s): %s", e.Status, e.URL)
}

func (e *DownloadFailedError) Unwrap() error {
	return e.Err
}

// IsDownloadFailed checks if an error is a DownloadFailedError
func IsDownloadFailed(err error) bool {
	var dfe *DownloadFailedError
	return errors.As(err, &dfe)
}

// UnsupportedArchiveFormatError reports an archive whose file extension has
// no registered extractor.
type UnsupportedArchiveFormatError struct {
	Path string
}

func (e *UnsupportedArchiveFormatError) Error() string {
	return fmt.Sprintf("unsupported archive format: %s", filepath.Base(e.Path))
}

// IsUnsupportedArchiveFormat checks if an error is an UnsupportedArchiveFormatError
func IsUnsupportedArchiveFormat(err error) bool {
	var ufe *UnsupportedArchiveFormatError
	return errors.As(err, &ufe)
}
