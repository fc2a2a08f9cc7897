package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "mortality/internal/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTempCSV(t, "State,Year,Deaths\nCA,2010,10\nTX,2011,20\n")

	table, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"State", "Year", "Deaths"}, table.Columns())
	assert.Equal(t, 2, table.NumRows())

	state, ok := table.Column("State")
	require.True(t, ok)
	assert.Equal(t, "CA", state.String(0))
	assert.Equal(t, "TX", state.String(1))
}

func TestLoadCSVEmptyCellsAreMissing(t *testing.T) {
	path := writeTempCSV(t, "State,Deaths\nCA,\n,10\n")

	table, err := Load(path, nil)
	require.NoError(t, err)

	deaths, _ := table.Column("Deaths")
	assert.True(t, deaths.IsNull(0))
	state, _ := table.Column("State")
	assert.True(t, state.IsNull(1))
}

func TestLoadCSVRaggedRows(t *testing.T) {
	// CDC exports end with a footer of "Notes" rows that are narrower
	// than the data; short rows load with missing trailing cells.
	path := writeTempCSV(t, "Notes,State,Deaths\n,CA,10\n\"Dataset: Multiple Cause of Death\"\n")

	table, err := Load(path, nil)
	require.NoError(t, err)
	require.Equal(t, 2, table.NumRows())

	state, _ := table.Column("State")
	assert.Equal(t, "CA", state.String(0))
	assert.True(t, state.IsNull(1))
	notes, _ := table.Column("Notes")
	assert.Equal(t, "Dataset: Multiple Cause of Death", notes.String(1))
}

func TestLoadCSVStripsBOM(t *testing.T) {
	path := writeTempCSV(t, "\ufeffState,Deaths\nCA,10\n")

	table, err := Load(path, nil)
	require.NoError(t, err)
	assert.True(t, table.Has("State"))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTempCSV(t, "")

	_, err := Load(path, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"State", "Year", "Deaths"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"CA", 2010, 10}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"State", "Year", "Deaths"}, table.Columns())
	require.Equal(t, 1, table.NumRows())
	year, _ := table.Column("Year")
	assert.Equal(t, "2010", year.String(0), "cells load as text until coercion")
}
