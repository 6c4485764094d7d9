package dedup

import (
	"github.com/fsdedup/hardlinker/pkg/logger"
	"github.com/fsdedup/hardlinker/pkg/paths"
)

var log = logger.GetLogger("dedup")

// Registry buckets eligible records by exact byte size. Only sizes with two
// or more records can contain duplicates; the rest are discarded unread.
type Registry struct {
	bySize map[int64][]*paths.Record
	total  int
}

func NewRegistry() *Registry {
	return &Registry{bySize: make(map[int64][]*paths.Record)}
}

// Add registers one eligible record.
func (reg *Registry) Add(r *paths.Record) {
	size := r.Size()
	reg.bySize[size] = append(reg.bySize[size], r)
	reg.total++
}

// Buckets returns the size buckets holding at least two records.
func (reg *Registry) Buckets() map[int64][]*paths.Record {
	buckets := make(map[int64][]*paths.Record, len(reg.bySize))
	for size, records := range reg.bySize {
		if len(records) >= 2 {
			buckets[size] = records
		}
	}
	return buckets
}

// Candidates returns how many records sit in retained buckets.
func (reg *Registry) Candidates() int {
	n := 0
	for _, records := range reg.bySize {
		if len(records) >= 2 {
			n += len(records)
		}
	}
	return n
}

// Total returns how many records were registered overall.
func (reg *Registry) Total() int {
	return reg.total
}
