// Package pipeline runs the end-to-end cleaning job: load the two raw
// mortality exports, reconcile their schemas, clean each table, merge
// and order them, and write the combined dataset. The whole run is
// synchronous and single-pass; it either completes or fails on an
// input-access problem.
package pipeline

import (
	"log/slog"

	"github.com/google/uuid"

	"mortality/internal/cleaning"
	"mortality/internal/config"
	"mortality/internal/exporter"
	"mortality/internal/loader"
	"mortality/internal/validation"
)

// Summary reports what a run did, for logging and for tests.
type Summary struct {
	Era1RowsLoaded int
	Era1RowsKept   int
	Era2RowsLoaded int
	Era2RowsKept   int
	RowsWritten    int
	OutputPath     string
}

// Run executes the full pipeline described by cfg. Identical inputs
// produce identical output; nothing carries over between runs.
func Run(cfg *config.Config, logger *slog.Logger) (*Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("run_id", uuid.New().String()))

	logger.Info("Starting mortality cleaning run",
		slog.String("era1", cfg.Inputs.Era1Path),
		slog.String("era2", cfg.Inputs.Era2Path),
		slog.String("output", cfg.Output.Path))

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputFiles(cfg.Inputs.Era1Path, cfg.Inputs.Era2Path); err != nil {
		return nil, err
	}

	era1, err := loader.Load(cfg.Inputs.Era1Path, logger)
	if err != nil {
		return nil, err
	}
	era2, err := loader.Load(cfg.Inputs.Era2Path, logger)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Era1RowsLoaded: era1.NumRows(),
		Era2RowsLoaded: era2.NumRows(),
		OutputPath:     cfg.Output.Path,
	}

	if err := cleaning.Reconcile(era1, era2); err != nil {
		return nil, err
	}

	clean1 := cleaning.Clean(era1, logger.With(slog.String("source", cleaning.SourceEra1)))
	clean2 := cleaning.Clean(era2, logger.With(slog.String("source", cleaning.SourceEra2)))
	summary.Era1RowsKept = clean1.NumRows()
	summary.Era2RowsKept = clean2.NumRows()

	merged, err := cleaning.MergeAndSort(clean1, clean2)
	if err != nil {
		return nil, err
	}
	summary.RowsWritten = merged.NumRows()

	writer := exporter.NewCSVWriter(logger)
	if err := writer.WriteTable(cfg.Output.Path, merged, exporter.WriteOptions{BOMPrefix: cfg.Output.BOM}); err != nil {
		return nil, err
	}

	logger.Info("Run complete",
		slog.Int("era1_rows_loaded", summary.Era1RowsLoaded),
		slog.Int("era1_rows_kept", summary.Era1RowsKept),
		slog.Int("era2_rows_loaded", summary.Era2RowsLoaded),
		slog.Int("era2_rows_kept", summary.Era2RowsKept),
		slog.Int("rows_written", summary.RowsWritten),
		slog.String("output", summary.OutputPath))
	return summary, nil
}
