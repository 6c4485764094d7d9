package paths

import (
	"os"

	"github.com/pkg/errors"

	"github.com/fsdedup/hardlinker/pkg/fileid"
)

// Record is a resolved filesystem path with a cached metadata snapshot.
// The snapshot is taken at discovery time; Refresh must be called after the
// underlying file has been replaced by a hardlink, since its inode changes.
type Record struct {
	Path string

	info os.FileInfo
	id   fileid.FileID
}

// NewRecord stats path (without following a final symlink) and returns a
// record carrying the metadata snapshot.
func NewRecord(path string) (*Record, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieve metadata for %q", path)
	}
	return newRecordFromInfo(path, info)
}

func newRecordFromInfo(path string, info os.FileInfo) (*Record, error) {
	id, _, ok := fileid.FromFileInfo(info)
	if !ok {
		var err error
		id, _, err = fileid.Stat(path)
		if err != nil {
			return nil, errors.Wrapf(err, "retrieve file id for %q", path)
		}
	}

	return &Record{Path: path, info: info, id: id}, nil
}

// Refresh re-stats the path and overwrites the cached snapshot.
func (r *Record) Refresh() error {
	fresh, err := NewRecord(r.Path)
	if err != nil {
		return err
	}
	r.info = fresh.info
	r.id = fresh.id
	return nil
}

// ID returns the cached device+inode identity.
func (r *Record) ID() fileid.FileID {
	return r.id
}

// Size returns the cached file size in bytes.
func (r *Record) Size() int64 {
	return r.info.Size()
}

func (r *Record) IsDir() bool {
	return r.info.IsDir()
}

func (r *Record) IsSymlink() bool {
	return r.info.Mode()&os.ModeSymlink != 0
}

func (r *Record) IsRegular() bool {
	return r.info.Mode().IsRegular()
}

// Mode returns the cached file mode.
func (r *Record) Mode() os.FileMode {
	return r.info.Mode()
}
