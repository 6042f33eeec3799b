// Package download fetches runtime distribution archives and unpacks them
package download

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rtvm/rtvm/src/internal/ui"
	"github.com/schollz/progressbar/v3"
)

// File downloads a file from a URL to a destination path with a progress bar
func File(url, destPath string) error {
	return fetch(url, destPath, "")
}

// FileVerified downloads a file and checks the payload against an expected
// SHA256 checksum. On a mismatch the file is removed and an
// ErrChecksumMismatch is returned.
func FileVerified(url, destPath, expectedSHA256 string) error {
	return fetch(url, destPath, expectedSHA256)
}

func fetch(url, destPath, expectedSHA256 string) error {
	ui.Debug("Starting download: %s", url)
	ui.Debug("Destination: %s", destPath)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return err
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	resp, err := http.Get(url)
	if err != nil {
		ui.Debug("HTTP request failed: %v", err)
		_ = os.Remove(destPath)
		return &DownloadFailedError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	ui.Debug("HTTP response: %s", resp.Status)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = os.Remove(destPath)
		return &DownloadFailedError{URL: url, Status: resp.Status}
	}

	ui.Debug("Content-Length: %d bytes", resp.ContentLength)

	bar := progressbar.DefaultBytes(
		resp.ContentLength,
		"Downloading",
	)

	hasher := sha256.New()
	writers := []io.Writer{out, bar}
	if expectedSHA256 != "" {
		writers = append(writers, hasher)
	}

	// Copy data with progress bar (and hashing when a checksum is expected)
	if _, err := io.Copy(io.MultiWriter(writers...), resp.Body); err != nil {
		ui.Debug("Download failed: %v", err)
		_ = os.Remove(destPath) // Clean up partial download
		return err
	}

	fmt.Println() // New line after progress bar

	if expectedSHA256 != "" {
		actual := hex.EncodeToString(hasher.Sum(nil))
		expected := strings.ToLower(strings.TrimSpace(expectedSHA256))
		if actual != expected {
			ui.Debug("Checksum mismatch! Removing downloaded file.")
			_ = os.Remove(destPath)
			return &ErrChecksumMismatch{
				Expected: expectedSHA256,
				Actual:   actual,
			}
		}
		ui.Debug("Checksum verified: %s", actual)
	}

	ui.Debug("Download complete: %s", destPath)
	return nil
}
