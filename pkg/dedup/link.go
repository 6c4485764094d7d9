package dedup

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/fsdedup/hardlinker/pkg/paths"
)

// Result describes one merge attempt, reported to the output collaborator.
// Formatting of the pair is entirely the receiver's business.
type Result struct {
	Keep    string
	Replace string
	// Linked is true when the replace path now shares keep's inode
	// (or would, in dry-run mode).
	Linked bool
	// Copied is true when hardlinking failed and the content was copied
	// back instead, so the path exists but saves no space.
	Copied bool
	Err    error
}

// ReportFunc receives every merge attempt, successful or not.
type ReportFunc func(Result)

// replaceWithLink merges replace into keep's inode: remove the replace path,
// then hardlink it to keep. If linking fails after the removal, the content
// is copied back so the path is never left missing; if that also fails the
// path is gone, which should be unreachable short of outside interference.
// On success the replace record's metadata snapshot is refreshed.
func replaceWithLink(keep, replace *paths.Record) (copied bool, err error) {
	if err := os.Remove(replace.Path); err != nil {
		return false, errors.Wrapf(err, "remove %q for hardlinking", replace.Path)
	}

	if err := os.Link(keep.Path, replace.Path); err != nil {
		if copyErr := copyFile(keep, replace.Path); copyErr != nil {
			return false, errors.Wrapf(copyErr, "hardlink failed (%s); copy fallback failed, path lost", err)
		}
		copied = true
	}

	if err := replace.Refresh(); err != nil {
		return copied, errors.Wrap(err, "refresh metadata after hardlinking")
	}

	return copied, nil
}

// copyFile recreates dst with keep's content and mode.
func copyFile(keep *paths.Record, dst string) error {
	src, err := os.Open(keep.Path)
	if err != nil {
		return errors.Wrapf(err, "open %q", keep.Path)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, keep.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, "create %q", dst)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return errors.Wrapf(err, "copy to %q", dst)
	}

	return out.Close()
}
