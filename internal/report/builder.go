// Package report assembles the consolidated sweep status: one row per array
// task, classified and ordered by task index.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NeurodataWithoutBorders/nwbsweep/internal/excerpt"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/models"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/slurm"
	"github.com/NeurodataWithoutBorders/nwbsweep/internal/sweep"
)

// Builder drives the sweep: for each task index it consults the
// configuration table, the accounting client, and the excerpt extractor,
// then classifies and accumulates.
type Builder struct {
	jobID     string
	label     string
	logDir    string
	rows      []sweep.ConfigRow
	settings  *models.ReportSettings
	client    slurm.AccountingClient
	extractor *excerpt.Extractor
}

// NewBuilder wires a builder. rows defines N; settings must be validated.
func NewBuilder(jobID, label, logDir string, rows []sweep.ConfigRow, settings *models.ReportSettings, client slurm.AccountingClient, extractor *excerpt.Extractor) *Builder {
	return &Builder{
		jobID:     jobID,
		label:     label,
		logDir:    logDir,
		rows:      rows,
		settings:  settings,
		client:    client,
		extractor: extractor,
	}
}

// Build resolves every task concurrently and assembles the outcome in
// ascending index order. Per-task query failures degrade to UNKNOWN and the
// report still covers all N tasks; only a sweep too large for the padding
// width is an error, since its log paths would be ambiguous.
func (b *Builder) Build(ctx context.Context) (*models.SweepOutcome, error) {
	if _, err := sweep.PadIndex(len(b.rows), b.settings.PadWidth); err != nil {
		return nil, fmt.Errorf("sweep size %d: %w", len(b.rows), err)
	}

	// Workers write to disjoint slots, so the slice needs no locking; the
	// pre-sized layout also fixes row order regardless of completion order.
	results := make([]models.TaskResult, len(b.rows))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.settings.Workers)
	for i, row := range b.rows {
		g.Go(func() error {
			results[i] = b.resolveTask(ctx, row)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &models.SweepOutcome{
		JobID:     b.jobID,
		Label:     b.label,
		Timestamp: time.Now().UTC(),
		Tasks:     results,
		Digest:    models.BuildDigest(results),
	}, nil
}

func (b *Builder) resolveTask(ctx context.Context, row sweep.ConfigRow) models.TaskResult {
	rec, err := b.client.Resolve(ctx, b.jobID, row.Index)
	if err != nil {
		slog.Warn("accounting query failed, treating task as unknown",
			"job", b.jobID, "index", row.Index, "error", err)
		rec = slurm.UnknownRecord()
	}

	var excerptLine string
	errPath, err := sweep.LogPath(b.logDir, b.label, b.jobID, row.Index, b.settings.PadWidth, sweep.StreamErr)
	if err == nil {
		excerptLine = b.extractor.Extract(errPath)
	}

	fields := make([]string, len(b.settings.Columns))
	for j, col := range b.settings.Columns {
		fields[j] = row.Field(col.Position)
	}

	slog.Debug("task resolved",
		"index", row.Index, "state", rec.State, "elapsed", rec.Elapsed)

	return models.TaskResult{
		Index:   row.Index,
		Fields:  fields,
		State:   rec.State,
		Elapsed: rec.Elapsed,
		Excerpt: excerptLine,
	}
}
