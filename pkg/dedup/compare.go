package dedup

import (
	"bytes"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

const compareChunkSize = 64 * 1024

// equalContent reports whether the files at the two paths hold identical
// bytes. Sizes are not consulted; callers only compare within a size bucket.
func equalContent(pathA, pathB string) (bool, error) {
	a, err := os.Open(pathA)
	if err != nil {
		return false, errors.Wrapf(err, "open %q", pathA)
	}
	defer a.Close()

	b, err := os.Open(pathB)
	if err != nil {
		return false, errors.Wrapf(err, "open %q", pathB)
	}
	defer b.Close()

	return equalReaders(a, b)
}

// equalReaders compares two streams chunk by chunk until either differs or
// both are exhausted.
func equalReaders(a, b io.Reader) (bool, error) {
	bufA := make([]byte, compareChunkSize)
	bufB := make([]byte, compareChunkSize)

	for {
		na, err := io.ReadFull(a, bufA)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return false, errors.Wrap(err, "read for comparison")
		}
		nb, err := io.ReadFull(b, bufB)
		if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
			return false, errors.Wrap(err, "read for comparison")
		}

		if na != nb {
			return false, nil
		}
		if na == 0 {
			return true, nil
		}
		if !bytes.Equal(bufA[:na], bufB[:nb]) {
			return false, nil
		}
		if na < compareChunkSize {
			// both streams ended on this chunk
			return true, nil
		}
	}
}

// contentDigest returns the xxhash64 of the file's contents. Digests are a
// cheap reject only; equal digests are always confirmed byte-exact.
func contentDigest(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, errors.Wrapf(err, "digest %q", path)
	}

	return h.Sum64(), nil
}
