package dedup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdedup/hardlinker/pkg/paths"
)

func TestClusterize_GroupsByInodeAndSortsDescending(t *testing.T) {
	dir := t.TempDir()

	a := writeFile(t, dir, "a", []byte("cluster me"))
	a2 := filepath.Join(dir, "a2")
	a3 := filepath.Join(dir, "a3")
	require.NoError(t, os.Link(a, a2))
	require.NoError(t, os.Link(a, a3))

	b := writeFile(t, dir, "b", []byte("cluster me"))

	clusters := clusterize([]*paths.Record{
		record(t, b), record(t, a), record(t, a2), record(t, a3),
	})

	require.Len(t, clusters, 2)
	// the three-member cluster sorts first despite arriving second
	assert.Len(t, clusters[0].members, 3)
	assert.Len(t, clusters[1].members, 1)

	for _, m := range clusters[0].members {
		assert.True(t, m.ID().Equal(clusters[0].rep().ID()))
	}
}

func TestCluster_DigestIsCached(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a", []byte("digest once"))

	c := &cluster{members: []*paths.Record{record(t, path)}}

	first, err := c.contentDigest()
	require.NoError(t, err)

	// even if the file vanishes, the cached digest is served
	require.NoError(t, os.Remove(path))
	second, err := c.contentDigest()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
