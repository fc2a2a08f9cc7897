package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"mortality/internal/dataset"
	apperrors "mortality/internal/errors"
)

// CSVWriter writes cleaned tables to disk as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteTable writes the table to filePath with a header row, replacing
// any previous file. Missing cells are written as empty fields.
func (w *CSVWriter) WriteTable(filePath string, t *dataset.Table, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("path", filePath),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", len(t.Columns())))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperrors.NewOutputError(fmt.Sprintf("cannot create output directory %s", dir), err)
	}

	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return apperrors.NewOutputError(fmt.Sprintf("cannot create output file %s", filePath), err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return apperrors.NewOutputError("cannot write BOM", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	names := t.Columns()
	if err := writer.Write(names); err != nil {
		return apperrors.NewOutputError("cannot write header", err)
	}

	record := make([]string, len(names))
	for i := 0; i < t.NumRows(); i++ {
		for j, name := range names {
			c, _ := t.Column(name)
			record[j] = formatCell(c, i)
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewOutputError(fmt.Sprintf("cannot write record %d", i), err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewOutputError("cannot flush output", err)
	}
	return nil
}
