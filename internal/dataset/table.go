package dataset

import (
	"fmt"
	"sort"
)

// Table is an in-memory column-oriented table. Column order is
// significant (it drives the output layout) and row order is only
// meaningful after an explicit sort.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New creates an empty table.
func New() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int {
	return t.rows
}

// Columns returns the column names in table order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether a column with the given name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// AddColumn appends a column to the table. The first column fixes the
// row count; later columns must match it.
func (t *Table) AddColumn(c *Column) error {
	if _, ok := t.index[c.Name]; ok {
		return fmt.Errorf("column %q already exists", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if len(t.cols) == 0 {
		t.rows = c.Len()
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// ReplaceColumn swaps the named column for a new one of the same
// length, keeping its position. Adding under a new name is an error.
func (t *Table) ReplaceColumn(name string, c *Column) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("column %q does not exist", name)
	}
	if c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if c.Name != name {
		return fmt.Errorf("replacement column is named %q, want %q", c.Name, name)
	}
	t.cols[i] = c
	return nil
}

// Rename changes a column's name in place. Renaming a column that does
// not exist is a no-op.
func (t *Table) Rename(old, new string) {
	i, ok := t.index[old]
	if !ok {
		return
	}
	delete(t.index, old)
	t.cols[i].Name = new
	t.index[new] = i
}

// Drop removes the named columns. Names that do not exist are ignored.
func (t *Table) Drop(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.cols[:0]
	t.index = make(map[string]int)
	for _, c := range t.cols {
		if drop[c.Name] {
			continue
		}
		t.index[c.Name] = len(kept)
		kept = append(kept, c)
	}
	t.cols = kept
}

// Filter returns a new table containing only the rows for which keep
// returns true. Relative row order is preserved and indices are dense
// again in the result.
func (t *Table) Filter(keep func(row int) bool) *Table {
	perm := make([]int, 0, t.rows)
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			perm = append(perm, i)
		}
	}
	out := New()
	for _, c := range t.cols {
		_ = out.AddColumn(c.take(perm))
	}
	out.rows = len(perm)
	return out
}

// SortStable orders the rows by the given columns, ascending, using a
// stable sort so rows with equal keys keep their relative order.
// Missing key cells sort after present ones; key columns that do not
// exist are skipped.
func (t *Table) SortStable(keys ...string) {
	var keyCols []*Column
	for _, k := range keys {
		if c, ok := t.Column(k); ok {
			keyCols = append(keyCols, c)
		}
	}
	if len(keyCols) == 0 || t.rows < 2 {
		return
	}
	perm := make([]int, t.rows)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		for _, c := range keyCols {
			switch c.compare(perm[a], perm[b]) {
			case -1:
				return true
			case 1:
				return false
			}
		}
		return false
	})
	for i, c := range t.cols {
		t.cols[i] = c.take(perm)
	}
}
