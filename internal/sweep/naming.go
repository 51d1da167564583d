package sweep

import (
	"fmt"
	"path/filepath"
)

// Stream selects which of a task's two log files a path refers to.
type Stream string

const (
	StreamOut Stream = "out"
	StreamErr Stream = "err"
)

// DefaultPadWidth is the zero-padding width used by the reference sweeps.
const DefaultPadWidth = 3

// PadIndex renders a task index as a fixed-width zero-padded decimal. The
// width is a per-sweep constant; an index that needs more digits than the
// width allows is rejected outright instead of being truncated, since a
// truncated identifier would silently point at another task's logs.
func PadIndex(index, width int) (string, error) {
	if index < 1 {
		return "", fmt.Errorf("task index must be positive, got %d", index)
	}
	padded := fmt.Sprintf("%0*d", width, index)
	if len(padded) > width {
		return "", fmt.Errorf("task index %d does not fit in %d digits", index, width)
	}
	return padded, nil
}

// LogPath builds the path of one task log file:
//
//	{dir}/{label}--{jobID}_{paddedIndex}-{stream}.log
//
// This is the single naming function shared with submission tooling; a
// mismatch here shows up as a silently missing log, not an error.
func LogPath(dir, label, jobID string, index, width int, stream Stream) (string, error) {
	padded, err := PadIndex(index, width)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s--%s_%s-%s.log", label, jobID, padded, stream)
	return filepath.Join(dir, name), nil
}
