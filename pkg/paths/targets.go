package paths

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// SplitSets splits the flat target list into independent target sets at each
// occurrence of separator. Empty sets (consecutive separators, leading or
// trailing separators) are dropped.
func SplitSets(targets []string, separator string) [][]string {
	var sets [][]string

	start := 0
	for i, t := range targets {
		if t != separator {
			continue
		}
		if i > start {
			sets = append(sets, targets[start:i])
		}
		start = i + 1
	}
	if start < len(targets) {
		sets = append(sets, targets[start:])
	}

	return sets
}

// ValidateTargets rejects targets no filesystem path can represent.
func ValidateTargets(targets []string) error {
	for _, t := range targets {
		if strings.ContainsRune(t, 0) {
			return errors.Errorf("paths can never contain a null byte: %q", t)
		}
	}
	return nil
}

// ReadTargetLines reads one target per line. Used for --target-file.
func ReadTargetLines(r io.Reader) ([]string, error) {
	var targets []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		targets = append(targets, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read target line")
	}

	return targets, nil
}

// ReadTargetFile reads targets from path, one per line.
func ReadTargetFile(path string) ([]string, error) {
	fi, err := os.Stat(path)
	if err != nil || !fi.Mode().IsRegular() {
		return nil, errors.Errorf("file does not exist or is not a normal file: %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	return ReadTargetLines(f)
}

// ResolveSet canonicalizes one target set: each target is made absolute with
// symlinks resolved, then stat'ed. Resolution failure for any target is fatal
// for the whole run; a target that is itself a symlink is silently dropped.
// The returned set may be empty.
func ResolveSet(targets []string) ([]*Record, error) {
	records := make([]*Record, 0, len(targets))

	for _, t := range targets {
		abs, err := filepath.Abs(t)
		if err != nil {
			return nil, errors.Wrapf(err, "retrieve absolute path for %q", t)
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %q", t)
		}

		r, err := NewRecord(resolved)
		if err != nil {
			return nil, err
		}
		if r.IsSymlink() {
			continue
		}
		records = append(records, r)
	}

	return records, nil
}
