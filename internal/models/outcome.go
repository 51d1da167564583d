package models

import "time"

// TaskResult holds everything the report shows for one array task.
type TaskResult struct {
	// Index is the 1-based position in the sweep.
	Index int `json:"index"`

	// Fields are the configuration columns selected for display, in the
	// order declared by the report settings. A column missing from the
	// underlying configuration row is an empty string.
	Fields []string `json:"fields"`

	State   TaskState `json:"state"`
	Elapsed string    `json:"elapsed"`
	Excerpt string    `json:"excerpt,omitempty"`
}

// Class returns the summary bucket for this task.
func (t *TaskResult) Class() StatusClass {
	return t.State.Classify()
}

// Digest summarizes a sweep. Completed + len(Running) + len(Failed) always
// equals Total; every index appears in exactly one bucket.
type Digest struct {
	Total          int   `json:"total"`
	Completed      int   `json:"completed"`
	RunningIndices []int `json:"running_indices,omitempty"`
	FailedIndices  []int `json:"failed_indices,omitempty"`
}

// SweepOutcome is the aggregate over all task indices 1..N, assembled in a
// single pass and never mutated afterwards.
type SweepOutcome struct {
	JobID     string       `json:"job_id"`
	Label     string       `json:"label"`
	Timestamp time.Time    `json:"timestamp"`
	Tasks     []TaskResult `json:"tasks"`
	Digest    Digest       `json:"digest"`
}

// BuildDigest walks tasks in order and buckets each index. Tasks must be in
// ascending index order; the running/failed lists inherit that order.
func BuildDigest(tasks []TaskResult) Digest {
	d := Digest{Total: len(tasks)}
	for i := range tasks {
		switch tasks[i].Class() {
		case ClassCompleted:
			d.Completed++
		case ClassRunning:
			d.RunningIndices = append(d.RunningIndices, tasks[i].Index)
		case ClassFailed:
			d.FailedIndices = append(d.FailedIndices, tasks[i].Index)
		}
	}
	return d
}
