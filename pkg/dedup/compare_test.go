package dedup

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqualReaders(t *testing.T) {
	big := bytes.Repeat([]byte{0xab}, compareChunkSize+512)
	bigAltered := append(bytes.Repeat([]byte{0xab}, compareChunkSize+511), 0xcd)

	tests := []struct {
		name  string
		a, b  []byte
		equal bool
	}{
		{"both empty", nil, nil, true},
		{"identical short", []byte("hello"), []byte("hello"), true},
		{"different short", []byte("hello"), []byte("world"), false},
		{"different lengths", []byte("hello"), []byte("hello!"), false},
		{"identical across chunk boundary", big, big, true},
		{"difference in final chunk", big, bigAltered, false},
		{"exactly one chunk", bytes.Repeat([]byte{1}, compareChunkSize), bytes.Repeat([]byte{1}, compareChunkSize), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			equal, err := equalReaders(bytes.NewReader(tt.a), bytes.NewReader(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.equal, equal)
		})
	}
}

func TestEqualContent(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("same bytes"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("same bytes"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("same byte!"), 0o644))

	equal, err := equalContent(a, b)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = equalContent(a, c)
	require.NoError(t, err)
	assert.False(t, equal)

	_, err = equalContent(a, filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestContentDigest(t *testing.T) {
	dir := t.TempDir()

	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	require.NoError(t, os.WriteFile(a, []byte("digest me"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("digest me"), 0o644))
	require.NoError(t, os.WriteFile(c, []byte("digest you"), 0o644))

	da, err := contentDigest(a)
	require.NoError(t, err)
	db, err := contentDigest(b)
	require.NoError(t, err)
	dc, err := contentDigest(c)
	require.NoError(t, err)

	assert.Equal(t, da, db)
	assert.NotEqual(t, da, dc)
}
