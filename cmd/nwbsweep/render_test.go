package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
)

func sampleOutcome() *models.SweepOutcome {
	tasks := []models.TaskResult{
		{Index: 1, Fields: []string{"1,512,512", "gzip", "4"}, State: models.StateCompleted, Elapsed: "00:10:00"},
		{Index: 2, Fields: []string{"1,512,512", "gzip", "5"}, State: models.StateRunning, Elapsed: "00:02:00"},
		{Index: 3, Fields: []string{"none", "lzf", ""}, State: models.StateUnknown, Elapsed: "-", Excerpt: "OSError: disk quota exceeded"},
	}
	return &models.SweepOutcome{
		JobID:     "98765",
		Label:     "exp12_gzip",
		Timestamp: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Tasks:     tasks,
		Digest:    models.BuildDigest(tasks),
	}
}

func TestRenderOutcome_SummaryAndLists(t *testing.T) {
	var buf bytes.Buffer
	renderOutcome(&buf, sampleOutcome(), models.DefaultSettings(), false)
	out := buf.String()

	assert.Contains(t, out, "1/3 completed")
	assert.Contains(t, out, "Running or pending: 2")
	assert.Contains(t, out, "Failed: 3")
	assert.Contains(t, out, "OSError: disk quota exceeded")
	assert.Contains(t, out, "UNKNOWN")
	assert.Contains(t, out, "-")
}

func TestRenderOutcome_RowsInIndexOrder(t *testing.T) {
	var buf bytes.Buffer
	renderOutcome(&buf, sampleOutcome(), models.DefaultSettings(), false)

	lines := strings.Split(buf.String(), "\n")
	var taskLines []string
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "1 ") || strings.HasPrefix(trimmed, "2 ") || strings.HasPrefix(trimmed, "3 ") {
			taskLines = append(taskLines, trimmed)
		}
	}
	require.Len(t, taskLines, 3)
	assert.True(t, strings.HasPrefix(taskLines[0], "1"))
	assert.True(t, strings.HasPrefix(taskLines[1], "2"))
	assert.True(t, strings.HasPrefix(taskLines[2], "3"))
}

func TestRenderOutcome_Deterministic(t *testing.T) {
	outcome := sampleOutcome()
	settings := models.DefaultSettings()

	var first, second bytes.Buffer
	renderOutcome(&first, outcome, settings, false)
	renderOutcome(&second, outcome, settings, false)

	assert.Equal(t, first.Bytes(), second.Bytes())
}

func TestRenderOutcome_StatusMarkers(t *testing.T) {
	var buf bytes.Buffer
	renderOutcome(&buf, sampleOutcome(), models.DefaultSettings(), false)
	out := buf.String()

	assert.Contains(t, out, markCompleted+" COMPLETED")
	assert.Contains(t, out, markRunning+" RUNNING")
	assert.Contains(t, out, markFailed+" UNKNOWN")
}

func TestSummaryLine(t *testing.T) {
	assert.Equal(t, "1/3 completed", summaryLine(sampleOutcome()))
}
