// Package slurm queries the cluster scheduler's accounting database for
// array-task state. The report never writes anything here; it is a
// read-only polling surface.
package slurm

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
)

// ElapsedUnknown is the duration sentinel for tasks without accounting data.
const ElapsedUnknown = "-"

// Record is one accounting row for an array task.
type Record struct {
	State   models.TaskState
	Elapsed string
}

// UnknownRecord is what a task resolves to when accounting has nothing:
// purged job, never-submitted index, or a failed query.
func UnknownRecord() Record {
	return Record{State: models.StateUnknown, Elapsed: ElapsedUnknown}
}

// AccountingClient resolves the state and elapsed time of a single array
// task. Implementations must be safe for concurrent use.
type AccountingClient interface {
	Resolve(ctx context.Context, jobID string, index int) (Record, error)
}

// runFunc executes a command and returns its combined output. Tests swap it
// out to feed canned sacct responses.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// SacctClient shells out to sacct for each task. The composite task id is
// {jobID}_{index} with the unpadded integer index; this is the scheduler's
// convention, distinct from the padded log-file naming.
type SacctClient struct {
	run runFunc
}

// NewSacctClient returns a client backed by the sacct binary on PATH.
func NewSacctClient() *SacctClient {
	return &SacctClient{
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return exec.CommandContext(ctx, name, args...).CombinedOutput()
		},
	}
}

// Resolve queries accounting for one task. A task with no accounting rows
// yields UnknownRecord with a nil error; only the query itself failing is
// an error, and callers degrade that to UNKNOWN rather than aborting.
func (c *SacctClient) Resolve(ctx context.Context, jobID string, index int) (Record, error) {
	taskID := fmt.Sprintf("%s_%d", jobID, index)
	out, err := c.run(ctx, "sacct", "-n", "-P", "-X", "-j", taskID, "-o", "State,Elapsed")
	if err != nil {
		return Record{}, fmt.Errorf("sacct -j %s: %v (output: %s)", taskID, err, strings.TrimSpace(string(out)))
	}
	return parseSacctOutput(string(out)), nil
}

// parseSacctOutput picks the first non-empty record from parsable sacct
// output. A task that was retried has multiple rows; the first one is the
// most relevant. States like "CANCELLED+" carry a suffix that is trimmed.
func parseSacctOutput(out string) Record {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		state := strings.TrimSpace(fields[0])
		if i := strings.IndexByte(state, ' '); i >= 0 {
			state = state[:i]
		}
		state = strings.TrimRight(state, "+")
		if state == "" {
			continue
		}
		elapsed := ElapsedUnknown
		if len(fields) > 1 {
			if e := strings.TrimSpace(fields[1]); e != "" {
				elapsed = e
			}
		}
		return Record{State: models.TaskState(strings.ToUpper(state)), Elapsed: elapsed}
	}
	return UnknownRecord()
}
