//go:build windows

package store

import (
	"os"

	"golang.org/x/sys/windows"
)

// FileLock is an exclusive lock over the whole store. Mutating operations
// hold it for their full duration; nothing else serializes two rtvm
// processes working on the same root.
type FileLock struct {
	file *os.File
}

// AcquireLock blocks until the lock file at path is held exclusively
func AcquireLock(path string) (*FileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	overlapped := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, overlapped); err != nil {
		_ = f.Close()
		return nil, err
	}

	return &FileLock{file: f}, nil
}

// Release drops the lock
func (l *FileLock) Release() error {
	overlapped := new(windows.Overlapped)
	if err := windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, overlapped); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
