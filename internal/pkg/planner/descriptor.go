package planner

import (
	"fmt"
	"strings"
	"time"
)

// descriptorTimeLayout is the modification time format inside descriptors.
const descriptorTimeLayout = "2006-01-02 15:04:05"

// FormatDescriptor renders one planned deletion as the line format shared by
// the deleter and the notifier:
//
//	<Label>: <name>, Size: <GiB 0.2f> GiB, Modified: <YYYY-MM-DD HH:MM:SS>
//
// ParseDescriptor must be able to recover (label, name) from the result, so
// downstream tooling relying on this shape keeps working.
func FormatDescriptor(label, name string, size int64, modTime time.Time) string {
	return fmt.Sprintf("%s: %s, Size: %.2f GiB, Modified: %s",
		label, name, BytesToGiB(size), modTime.Format(descriptorTimeLayout))
}

// ParseDescriptor recovers the (label, name) pair from a descriptor. The
// fixed Size and Modified fields always trail the name, so both are located
// from the end; a name containing ", Size: " therefore still round-trips.
func ParseDescriptor(descriptor string) (label, name string, err error) {
	modStart := strings.LastIndex(descriptor, ", Modified: ")
	if modStart < 0 {
		return "", "", fmt.Errorf("malformed descriptor %q: no modified field", descriptor)
	}

	head := descriptor[:modStart]
	sizeStart := strings.LastIndex(head, ", Size: ")
	if sizeStart < 0 {
		return "", "", fmt.Errorf("malformed descriptor %q: no size field", descriptor)
	}
	head = head[:sizeStart]

	labelEnd := strings.Index(head, ": ")
	if labelEnd < 0 {
		return "", "", fmt.Errorf("malformed descriptor %q: no label separator", descriptor)
	}

	return head[:labelEnd], head[labelEnd+2:], nil
}

// BytesToGiB converts bytes to gibibytes.
func BytesToGiB(bytes int64) float64 {
	return float64(bytes) / (1024 * 1024 * 1024)
}
