//go:build !windows

package fileid

import (
	"fmt"
	"os"
	"syscall"
)

// Stat returns the FileID and link count for path without following a final
// symlink, so a symlink never reports the identity of its target.
func Stat(path string) (FileID, uint64, error) {
	var stat syscall.Stat_t
	if err := syscall.Lstat(path, &stat); err != nil {
		return FileID{}, 0, fmt.Errorf("lstat file: %w", err)
	}

	return FileID{
		Device: uint64(stat.Dev),
		Inode:  uint64(stat.Ino),
	}, uint64(stat.Nlink), nil
}

// FromFileInfo derives the FileID from an already-obtained FileInfo, avoiding
// a second stat call. ok is false when the platform data is unavailable.
func FromFileInfo(fi os.FileInfo) (FileID, uint64, bool) {
	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return FileID{}, 0, false
	}

	return FileID{
		Device: uint64(stat.Dev),
		Inode:  uint64(stat.Ino),
	}, uint64(stat.Nlink), true
}
