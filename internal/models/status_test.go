package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassCompleted, StateCompleted.Classify())
	assert.Equal(t, ClassRunning, StateRunning.Classify())
	assert.Equal(t, ClassRunning, StatePending.Classify())
	assert.Equal(t, ClassFailed, StateFailed.Classify())
	assert.Equal(t, ClassFailed, StateCancelled.Classify())
	assert.Equal(t, ClassFailed, StateTimeout.Classify())

	// UNKNOWN folds into failed: silent failures must surface.
	assert.Equal(t, ClassFailed, StateUnknown.Classify())

	// Tokens this tool has never seen classify conservatively.
	assert.Equal(t, ClassFailed, TaskState("NODE_FAIL").Classify())
	assert.Equal(t, ClassFailed, TaskState("OUT_OF_MEMORY").Classify())
}

func TestClassify_CaseInsensitive(t *testing.T) {
	assert.Equal(t, ClassCompleted, TaskState("completed").Classify())
	assert.Equal(t, ClassRunning, TaskState("Pending").Classify())
}
