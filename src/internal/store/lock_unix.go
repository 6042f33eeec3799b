//go:build !windows

package store

import (
	"os"

	"golang.org/x/sys/unix"
)

// FileLock is an exclusive advisory lock over the whole store. Mutating
// operations hold it for their full duration; nothing else serializes two
// rtvm processes working on the same root.
type FileLock struct {
	file *os.File
}

// AcquireLock blocks until the lock file at path is held exclusively
func AcquireLock(path string) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &FileLock{file: f}, nil
}

// Release drops the lock
func (l *FileLock) Release() error {
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
