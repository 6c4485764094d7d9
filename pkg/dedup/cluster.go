package dedup

import (
	"sort"

	"github.com/fsdedup/hardlinker/pkg/fileid"
	"github.com/fsdedup/hardlinker/pkg/paths"
)

// cluster is the set of records in one size bucket that already share an
// inode. Members are hardlinks of one another, so content only ever needs to
// be read from the representative.
type cluster struct {
	members []*paths.Record

	// digest caches the representative's content digest for this run.
	// A merge never changes the representative, so it stays valid.
	digest    uint64
	hasDigest bool
}

// rep returns the cluster's representative.
func (c *cluster) rep() *paths.Record {
	return c.members[0]
}

// contentDigest lazily computes and caches the representative's digest.
func (c *cluster) contentDigest() (uint64, error) {
	if c.hasDigest {
		return c.digest, nil
	}

	d, err := contentDigest(c.rep().Path)
	if err != nil {
		return 0, err
	}

	c.digest = d
	c.hasDigest = true
	return d, nil
}

// absorb reassigns a successfully relinked record into this cluster.
func (c *cluster) absorb(r *paths.Record) {
	c.members = append(c.members, r)
}

// clusterize partitions one size bucket into inode clusters and orders them
// by descending member count. Merging into the largest cluster first tends to
// minimize comparisons, since a hit there recruits the most files at once.
func clusterize(records []*paths.Record) []*cluster {
	index := make(map[fileid.FileID]*cluster, len(records))
	clusters := make([]*cluster, 0, len(records))

	for _, r := range records {
		id := r.ID()
		if c, ok := index[id]; ok {
			c.members = append(c.members, r)
			continue
		}
		c := &cluster{members: []*paths.Record{r}}
		index[id] = c
		clusters = append(clusters, c)
	}

	sort.SliceStable(clusters, func(i, j int) bool {
		return len(clusters[i].members) > len(clusters[j].members)
	})

	return clusters
}
