// Package loader reads a raw mortality export into an in-memory table.
// CSV is the primary format; CDC WONDER extracts re-saved from Excel
// are accepted as .xlsx. The first row is the header; every cell loads
// as text and stays text until the cleaning stage coerces it.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"mortality/internal/dataset"
	apperrors "mortality/internal/errors"
)

// Load reads the file at path into a table, dispatching on the file
// extension. A missing or unreadable file is fatal to the run.
func Load(path string, logger *slog.Logger) (*dataset.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		header []string
		rows   [][]string
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		header, rows, err = readXLSX(path)
	default:
		header, rows, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}

	table, err := buildTable(header, rows)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("malformed input %s", path), err)
	}

	logger.Info("Loaded raw table",
		slog.String("path", path),
		slog.Int("rows", table.NumRows()),
		slog.Int("columns", len(table.Columns())))
	return table, nil
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, apperrors.NewInputError(fmt.Sprintf("cannot open input file %s", path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	// CDC exports carry a ragged "Notes" footer, so row widths vary.
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("input file %s is empty", path), nil)
	}
	if err != nil {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("cannot read header of %s", path), err)
	}
	header = stripBOM(header)

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, apperrors.NewParsingError(fmt.Sprintf("cannot read %s", path), err)
		}
		rows = append(rows, record)
	}
	return header, rows, nil
}

func readXLSX(path string) ([]string, [][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, apperrors.NewInputError(fmt.Sprintf("cannot open input file %s", path), err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("input file %s has no sheets", path), nil)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("cannot read sheet %q of %s", sheets[0], path), err)
	}
	if len(rows) == 0 {
		return nil, nil, apperrors.NewParsingError(fmt.Sprintf("input file %s is empty", path), nil)
	}
	return stripBOM(rows[0]), rows[1:], nil
}

// buildTable converts header-mapped string records into columns. Cells
// beyond a short row and empty cells load as missing, matching how the
// historical dataset treated blank fields.
func buildTable(header []string, rows [][]string) (*dataset.Table, error) {
	table := dataset.New()
	for col, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("Unnamed_%d", col)
		}
		values := make([]string, len(rows))
		null := make([]bool, len(rows))
		for i, row := range rows {
			if col >= len(row) || row[col] == "" {
				null[i] = true
				continue
			}
			values[i] = row[col]
		}
		if err := table.AddColumn(dataset.NewStringColumn(name, values, null)); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func stripBOM(header []string) []string {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	return header
}
