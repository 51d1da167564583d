package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/excerpt"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/slurm"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/sweep"
)

func testRows(n int) []sweep.ConfigRow {
	rows := make([]sweep.ConfigRow, n)
	for i := range rows {
		rows[i] = sweep.ConfigRow{
			Index:  i + 1,
			Fields: []string{"1,512,512", "gzip", "0", "0", "4"},
		}
	}
	return rows
}

func testExtractor(t *testing.T) *excerpt.Extractor {
	t.Helper()
	matchers, err := excerpt.BuildMatchers(models.DefaultSettings().Denylist)
	require.NoError(t, err)
	return excerpt.NewExtractor(matchers, 50)
}

func TestBuild_ThreeTaskScenario(t *testing.T) {
	logDir := t.TempDir()

	client := slurm.NewMockClient()
	client.Records[1] = slurm.Record{State: models.StateCompleted, Elapsed: "00:10:00"}
	client.Records[2] = slurm.Record{State: models.StateRunning, Elapsed: "00:02:00"}
	// Task 3 has no accounting record at all.

	b := NewBuilder("98765", "exp12_gzip", logDir, testRows(3),
		models.DefaultSettings(), client, testExtractor(t))

	outcome, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, outcome.Tasks, 3)

	assert.Equal(t, 1, outcome.Digest.Completed)
	assert.Equal(t, []int{2}, outcome.Digest.RunningIndices)
	assert.Equal(t, []int{3}, outcome.Digest.FailedIndices)

	task3 := outcome.Tasks[2]
	assert.Equal(t, models.StateUnknown, task3.State)
	assert.Equal(t, "-", task3.Elapsed)
}

func TestBuild_QueryErrorDegradesToUnknown(t *testing.T) {
	client := slurm.NewMockClient()
	client.Records[1] = slurm.Record{State: models.StateCompleted, Elapsed: "00:01:00"}
	client.FailIndices = map[int]bool{2: true}

	b := NewBuilder("1", "exp", t.TempDir(), testRows(2),
		models.DefaultSettings(), client, testExtractor(t))

	outcome, err := b.Build(context.Background())
	require.NoError(t, err, "a per-task query failure must not abort the report")

	assert.Equal(t, models.StateUnknown, outcome.Tasks[1].State)
	assert.Equal(t, []int{2}, outcome.Digest.FailedIndices)
}

func TestBuild_RowsStayInIndexOrderUnderConcurrency(t *testing.T) {
	const n = 40
	client := slurm.NewMockClient()
	for i := 1; i <= n; i++ {
		client.Records[i] = slurm.Record{State: models.StateCompleted, Elapsed: "00:01:00"}
	}

	settings := models.DefaultSettings()
	settings.Workers = 8

	b := NewBuilder("1", "exp", t.TempDir(), testRows(n), settings, client, testExtractor(t))
	outcome, err := b.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, outcome.Tasks, n)

	for i, task := range outcome.Tasks {
		assert.Equal(t, i+1, task.Index)
	}
	assert.Equal(t, n, outcome.Digest.Completed)
}

func TestBuild_PicksUpErrorExcerpt(t *testing.T) {
	logDir := t.TempDir()
	errLog := filepath.Join(logDir, "exp12_gzip--98765_002-err.log")
	content := "data = H5DataIO(**kwargs)\nOSError: disk quota exceeded\n"
	require.NoError(t, os.WriteFile(errLog, []byte(content), 0o644))

	client := slurm.NewMockClient()
	client.Records[1] = slurm.Record{State: models.StateCompleted, Elapsed: "00:05:00"}
	client.Records[2] = slurm.Record{State: models.StateFailed, Elapsed: "00:00:30"}

	b := NewBuilder("98765", "exp12_gzip", logDir, testRows(2),
		models.DefaultSettings(), client, testExtractor(t))

	outcome, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "", outcome.Tasks[0].Excerpt, "no error log means no excerpt")
	assert.Equal(t, "OSError: disk quota exceeded", outcome.Tasks[1].Excerpt)
}

func TestBuild_SelectsConfiguredColumns(t *testing.T) {
	rows := []sweep.ConfigRow{
		{Index: 1, Fields: []string{"none", "lzf"}}, // short row: no level field
	}
	client := slurm.NewMockClient()
	client.Records[1] = slurm.Record{State: models.StateCompleted, Elapsed: "00:01:00"}

	b := NewBuilder("1", "exp", t.TempDir(), rows,
		models.DefaultSettings(), client, testExtractor(t))

	outcome, err := b.Build(context.Background())
	require.NoError(t, err)

	// Chunk (pos 1), Compression (pos 2), Level (pos 5, absent -> blank).
	assert.Equal(t, []string{"none", "lzf", ""}, outcome.Tasks[0].Fields)
}

func TestBuild_RejectsSweepWiderThanPadding(t *testing.T) {
	settings := models.DefaultSettings()
	settings.PadWidth = 1

	client := slurm.NewMockClient()
	b := NewBuilder("1", "exp", t.TempDir(), testRows(12), settings, client, testExtractor(t))

	_, err := b.Build(context.Background())
	assert.Error(t, err, "log paths would be ambiguous beyond the padding width")
}

func TestBuild_InvariantHoldsForMixedStates(t *testing.T) {
	client := slurm.NewMockClient()
	client.Records[1] = slurm.Record{State: models.StateCompleted, Elapsed: "00:01:00"}
	client.Records[2] = slurm.Record{State: models.StatePending, Elapsed: "-"}
	client.Records[3] = slurm.Record{State: models.StateTimeout, Elapsed: "12:00:00"}
	client.Records[4] = slurm.Record{State: models.StateCancelled, Elapsed: "00:00:01"}

	b := NewBuilder("1", "exp", t.TempDir(), testRows(5),
		models.DefaultSettings(), client, testExtractor(t))

	outcome, err := b.Build(context.Background())
	require.NoError(t, err)

	d := outcome.Digest
	assert.Equal(t, d.Total, d.Completed+len(d.RunningIndices)+len(d.FailedIndices))
}
