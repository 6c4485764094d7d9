// Package format renders pairs of related paths for human consumption.
// It is purely presentational; nothing in the dedup engine depends on it.
package format

import "unicode/utf8"

// Pair renders two paths as one string. With braces enabled, a shared
// prefix/suffix longer than two characters is factored out, so
// /home/user/dir/file and /home/user/backup/file render as
// /home/user/{dir,backup}/file.
func Pair(a, b string, braces bool) string {
	if !braces {
		return a + " <-> " + b
	}

	prefix := commonPrefix(a, b)
	suffix := commonSuffix(a, b)

	// never let prefix and suffix overlap within either path; the cut is
	// advanced to the next rune boundary so no rune gets split
	if n := min(len(a), len(b)); len(prefix)+len(suffix) > n {
		cut := len(prefix) + len(suffix) - n
		for cut < len(suffix) && !utf8.RuneStart(suffix[cut]) {
			cut++
		}
		suffix = suffix[cut:]
	}

	prefixLong := len(prefix) > 2
	suffixLong := len(suffix) > 2

	switch {
	case prefixLong && suffixLong:
		return prefix + "{" + a[len(prefix):len(a)-len(suffix)] + "," + b[len(prefix):len(b)-len(suffix)] + "}" + suffix
	case prefixLong:
		return prefix + "{" + a[len(prefix):] + "," + b[len(prefix):] + "}"
	case suffixLong:
		return "{" + a[:len(a)-len(suffix)] + "," + b[:len(b)-len(suffix)] + "}" + suffix
	default:
		return a + " <-> " + b
	}
}

// commonPrefix compares rune by rune, so multibyte names sharing lead bytes
// never produce a prefix ending inside a rune.
func commonPrefix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) {
		ra, size := utf8.DecodeRuneInString(a[i:])
		rb, _ := utf8.DecodeRuneInString(b[i:])
		if ra != rb {
			break
		}
		i += size
	}
	return a[:i]
}

func commonSuffix(a, b string) string {
	i := 0
	for i < len(a) && i < len(b) {
		ra, size := utf8.DecodeLastRuneInString(a[:len(a)-i])
		rb, _ := utf8.DecodeLastRuneInString(b[:len(b)-i])
		if ra != rb {
			break
		}
		i += size
	}
	return a[len(a)-i:]
}
