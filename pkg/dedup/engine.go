package dedup

import (
	"github.com/dustin/go-humanize"

	"github.com/fsdedup/hardlinker/pkg/paths"
)

// Stats summarizes one run over a single target set.
type Stats struct {
	Considered int
	Linked     int
	Copied     int
	Failed     int
	// SavedBytes counts bytes reclaimed by linking (copy fallbacks save
	// nothing). In dry-run mode it reports what would have been saved.
	SavedBytes uint64
}

// Engine deduplicates one target set's eligible records by hardlinking
// byte-identical files onto a shared inode. Runs are single-threaded on
// purpose: mutation and comparison interleave, and the in-memory records are
// refreshed as the filesystem changes beneath them.
type Engine struct {
	dryRun bool
	report ReportFunc

	stats Stats
}

// New returns an engine. report may be nil when no caller cares about
// per-merge outcomes.
func New(dryRun bool, report ReportFunc) *Engine {
	return &Engine{dryRun: dryRun, report: report}
}

// Run buckets the records by size and merges duplicates bucket by bucket.
// The records must all reside on one device (see paths.SameDevice).
func (e *Engine) Run(records []*paths.Record) Stats {
	e.stats = Stats{}

	reg := NewRegistry()
	for _, r := range records {
		reg.Add(r)
	}

	buckets := reg.Buckets()
	e.stats.Considered = reg.Candidates()
	log.Infof("Considering %d of %d files for duplicates", e.stats.Considered, reg.Total())

	for size, bucket := range buckets {
		e.runBucket(size, bucket)
	}

	return e.stats
}

// runBucket merges duplicates within one size bucket. Clusters are held in an
// explicit worklist: the outer cursor fixes the surviving cluster, the inner
// cursor walks the remaining candidates, and an absorbed cluster is removed
// by swapping in the tail. Two clusters are compared at most once.
func (e *Engine) runBucket(size int64, records []*paths.Record) {
	log.Debugf("Considering %d files of size %s for duplicates", len(records), humanize.IBytes(uint64(size)))

	clusters := clusterize(records)

	i := 0
	for i < len(clusters) {
		j := i + 1
		for j < len(clusters) {
			if e.merge(clusters[i], clusters[j], size) {
				clusters[j] = clusters[len(clusters)-1]
				clusters = clusters[:len(clusters)-1]
			} else {
				j++
			}
		}
		i++
	}
}

// merge compares the two clusters' representatives and, when byte-identical,
// relinks every member of absorbed onto keep's inode. Returns whether
// absorbed was consumed and should leave the worklist. Individual members
// that fail to relink stay behind on their old inode and are never counted
// as part of keep.
func (e *Engine) merge(keep, absorbed *cluster, size int64) bool {
	dk, err := keep.contentDigest()
	if err != nil {
		log.WithError(err).Debugf("Failed to digest %q, skipping pair", keep.rep().Path)
		return false
	}
	da, err := absorbed.contentDigest()
	if err != nil {
		log.WithError(err).Debugf("Failed to digest %q, skipping pair", absorbed.rep().Path)
		return false
	}
	if dk != da {
		return false
	}

	equal, err := equalContent(keep.rep().Path, absorbed.rep().Path)
	if err != nil {
		log.WithError(err).Debugf("Failed to compare %q and %q, skipping pair", keep.rep().Path, absorbed.rep().Path)
		return false
	}
	if !equal {
		return false
	}

	for _, member := range absorbed.members {
		res := Result{Keep: keep.rep().Path, Replace: member.Path}

		if e.dryRun {
			res.Linked = true
			e.stats.Linked++
			e.stats.SavedBytes += uint64(size)
			keep.absorb(member)
			e.emit(res)
			continue
		}

		copied, err := replaceWithLink(keep.rep(), member)
		if err != nil {
			res.Err = err
			e.stats.Failed++
			// per-transaction failures are non-fatal diagnostics; -q silences them
			log.WithError(err).Warnf("Failed merging %q into %q", member.Path, keep.rep().Path)
			e.emit(res)
			continue
		}

		if copied {
			res.Copied = true
			e.stats.Copied++
		} else {
			res.Linked = true
			e.stats.Linked++
			e.stats.SavedBytes += uint64(size)
			keep.absorb(member)
		}
		e.emit(res)
	}

	return true
}

func (e *Engine) emit(res Result) {
	if e.report != nil {
		e.report(res)
	}
}
