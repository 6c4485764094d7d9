package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWrite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func mustRecord(t *testing.T, path string) *Record {
	t.Helper()
	r, err := NewRecord(path)
	require.NoError(t, err)
	return r
}

func collectedPaths(records []*Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Path)
	}
	return out
}

func TestCollect_RecursesAndFindsRegularFiles(t *testing.T) {
	dir := t.TempDir()

	a := mustWrite(t, dir, "a.txt", "aaa")
	b := mustWrite(t, dir, "sub/b.txt", "bbb")
	c := mustWrite(t, dir, "sub/deeper/c.txt", "ccc")

	got := Collect(mustRecord(t, dir), 1, nil)
	assert.ElementsMatch(t, []string{a, b, c}, collectedPaths(got))
}

func TestCollect_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	a := mustWrite(t, dir, "a.txt", "aaa")

	got := Collect(mustRecord(t, a), 1, nil)
	assert.Equal(t, []string{a}, collectedPaths(got))
}

func TestCollect_SkipsSymlinks(t *testing.T) {
	dir := t.TempDir()

	a := mustWrite(t, dir, "a.txt", "aaa")
	sub := filepath.Join(dir, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	b := mustWrite(t, dir, "sub/b.txt", "bbb")

	// symlinks to a file and to a directory; neither may register or recurse
	require.NoError(t, os.Symlink(a, filepath.Join(dir, "file-link")))
	require.NoError(t, os.Symlink(sub, filepath.Join(dir, "dir-link")))

	got := Collect(mustRecord(t, dir), 1, nil)
	assert.ElementsMatch(t, []string{a, b}, collectedPaths(got))
}

func TestCollect_SymlinkRootIsInert(t *testing.T) {
	dir := t.TempDir()

	mustWrite(t, dir, "real/a.txt", "aaa")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(filepath.Join(dir, "real"), link))

	got := Collect(mustRecord(t, link), 1, nil)
	assert.Empty(t, got)
}

func TestCollect_AppliesMinimumSize(t *testing.T) {
	dir := t.TempDir()

	mustWrite(t, dir, "tiny", "12345")
	big := mustWrite(t, dir, "big", "1234567890")
	mustWrite(t, dir, "empty", "")

	got := Collect(mustRecord(t, dir), 10, nil)
	assert.Equal(t, []string{big}, collectedPaths(got))
}

func TestCollect_ZeroSizeFilesExcludedByDefault(t *testing.T) {
	dir := t.TempDir()

	mustWrite(t, dir, "empty1", "")
	mustWrite(t, dir, "empty2", "")
	a := mustWrite(t, dir, "a", "x")

	got := Collect(mustRecord(t, dir), 1, nil)
	assert.Equal(t, []string{a}, collectedPaths(got))
}

func TestCollect_AcceptFuncGetsFinalSay(t *testing.T) {
	dir := t.TempDir()

	keep := mustWrite(t, dir, "keep.txt", "kept")
	mustWrite(t, dir, "drop.log", "dropped")

	got := Collect(mustRecord(t, dir), 1, func(r *Record) bool {
		return filepath.Ext(r.Path) == ".txt"
	})
	assert.Equal(t, []string{keep}, collectedPaths(got))
}
