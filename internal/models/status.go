package models

import "strings"

// TaskState is a raw scheduler accounting token, e.g. COMPLETED or TIMEOUT.
// Tokens outside the known set are carried verbatim and classify as failed.
type TaskState string

const (
	StateCompleted TaskState = "COMPLETED"
	StateRunning   TaskState = "RUNNING"
	StatePending   TaskState = "PENDING"
	StateFailed    TaskState = "FAILED"
	StateCancelled TaskState = "CANCELLED"
	StateTimeout   TaskState = "TIMEOUT"

	// StateUnknown is the sentinel for tasks the accounting database has no
	// record of: purged jobs, never-submitted indices, or query errors.
	StateUnknown TaskState = "UNKNOWN"
)

// StatusClass is the presentation bucket a task lands in.
type StatusClass int

const (
	ClassCompleted StatusClass = iota
	ClassRunning
	ClassFailed
)

// Classify maps a scheduler token to its summary bucket. Anything that is
// neither finished nor in flight counts as failed, including UNKNOWN, so
// tasks the scheduler never heard of surface instead of hiding.
func (s TaskState) Classify() StatusClass {
	switch TaskState(strings.ToUpper(string(s))) {
	case StateCompleted:
		return ClassCompleted
	case StateRunning, StatePending:
		return ClassRunning
	default:
		return ClassFailed
	}
}

func (c StatusClass) String() string {
	switch c {
	case ClassCompleted:
		return "completed"
	case ClassRunning:
		return "running"
	default:
		return "failed"
	}
}
