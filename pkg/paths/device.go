package paths

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// SameDevice verifies that every record lives on one filesystem device.
// Hardlinks cannot cross devices, so a mixed set is rejected upfront rather
// than producing a partial, confusing run. The returned error lists every
// offending device id with an example path.
func SameDevice(records []*Record) error {
	if len(records) <= 1 {
		return nil
	}

	byDevice := make(map[uint64][]*Record)
	for _, r := range records {
		byDevice[r.id.Device] = append(byDevice[r.id.Device], r)
	}
	if len(byDevice) <= 1 {
		return nil
	}

	devices := make([]uint64, 0, len(byDevice))
	for dev := range byDevice {
		devices = append(devices, dev)
	}
	sort.Slice(devices, func(i, j int) bool { return devices[i] < devices[j] })

	lines := make([]string, 0, 1+len(devices))
	lines = append(lines, "device ids must all be the same; got paths on multiple devices:")
	for _, dev := range devices {
		group := byDevice[dev]
		lines = append(lines, fmt.Sprintf("  device %d: %d path(s), e.g. %q", dev, len(group), group[0].Path))
	}

	return errors.New(strings.Join(lines, "\n"))
}
