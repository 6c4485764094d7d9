package paths

import (
	"os"
	"path/filepath"

	"github.com/fsdedup/hardlinker/pkg/logger"
)

var log = logger.GetLogger("paths")

// AcceptFunc decides whether an otherwise eligible file is registered.
type AcceptFunc func(*Record) bool

// Collect recursively enumerates root and returns every eligible regular
// file beneath it. Symlinks are never registered nor followed, files smaller
// than minSize are dropped, and acceptFn (when non-nil) gets the final say.
//
// Traversal is deliberately sequential: a run interleaves filesystem
// mutation with scanning and must observe its own effects in order.
// Per-entry failures are logged and skipped, never fatal to the walk.
func Collect(root *Record, minSize uint64, acceptFn AcceptFunc) []*Record {
	var out []*Record
	collect(root, minSize, acceptFn, &out)
	return out
}

func collect(r *Record, minSize uint64, acceptFn AcceptFunc, out *[]*Record) {
	if r.IsSymlink() {
		return
	}

	if r.IsRegular() {
		if uint64(r.Size()) < minSize {
			log.Tracef("Skipping file below minimum size: %q", r.Path)
			return
		}
		if acceptFn != nil && !acceptFn(r) {
			log.Tracef("Skipping rejected file: %q", r.Path)
			return
		}
		*out = append(*out, r)
		return
	}

	if !r.IsDir() {
		// sockets, fifos, devices
		log.Tracef("Skipping non-regular file: %q", r.Path)
		return
	}

	entries, err := os.ReadDir(r.Path)
	if err != nil {
		log.WithError(err).Debugf("Failed to read directory %q", r.Path)
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(r.Path, entry.Name())

		info, err := entry.Info()
		if err != nil {
			log.WithError(err).Debugf("Failed to inspect %q", entryPath)
			continue
		}

		child, err := newRecordFromInfo(entryPath, info)
		if err != nil {
			log.WithError(err).Debugf("Failed to build record for %q", entryPath)
			continue
		}

		collect(child, minSize, acceptFn, out)
	}
}
