package fileid

import "fmt"

// FileID identifies a physical file: the device holding the filesystem plus
// the inode number within it. Two paths with equal FileIDs are hardlinks of
// one another and therefore byte-identical by construction.
type FileID struct {
	Device uint64
	Inode  uint64
}

// String returns a string representation of the FileID.
func (f FileID) String() string {
	return fmt.Sprintf("%d:%d", f.Device, f.Inode)
}

// Equal checks if two FileIDs are equal.
func (f FileID) Equal(other FileID) bool {
	return f.Device == other.Device && f.Inode == other.Inode
}
