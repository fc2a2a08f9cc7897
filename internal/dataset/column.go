package dataset

import (
	"strconv"
	"strings"
)

// Kind identifies the value type held by a column.
type Kind int

const (
	// KindString holds free-text cells (labels, categories).
	KindString Kind = iota
	// KindFloat holds numeric cells.
	KindFloat
)

// Column is a single named column of a Table. Every cell carries an
// explicit null flag so that a missing value stays distinguishable from
// zero or the empty string.
type Column struct {
	Name string
	Kind Kind

	str  []string
	num  []float64
	null []bool
}

// NewStringColumn builds a string column. A nil null mask marks every
// cell as present.
func NewStringColumn(name string, values []string, null []bool) *Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &Column{Name: name, Kind: KindString, str: values, null: null}
}

// NewFloatColumn builds a numeric column. A nil null mask marks every
// cell as present.
func NewFloatColumn(name string, values []float64, null []bool) *Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &Column{Name: name, Kind: KindFloat, num: values, null: null}
}

// NewNullColumn builds a column of the given kind with every cell missing.
func NewNullColumn(name string, kind Kind, length int) *Column {
	null := make([]bool, length)
	for i := range null {
		null[i] = true
	}
	c := &Column{Name: name, Kind: kind, null: null}
	if kind == KindString {
		c.str = make([]string, length)
	} else {
		c.num = make([]float64, length)
	}
	return c
}

// Len returns the number of cells in the column.
func (c *Column) Len() int {
	return len(c.null)
}

// IsNull reports whether the cell at row i is missing.
func (c *Column) IsNull(i int) bool {
	return c.null[i]
}

// String returns the string cell at row i. It returns the empty string
// for missing cells and for numeric columns.
func (c *Column) String(i int) string {
	if c.Kind != KindString || c.null[i] {
		return ""
	}
	return c.str[i]
}

// Float returns the numeric cell at row i together with a presence flag.
func (c *Column) Float(i int) (float64, bool) {
	if c.Kind != KindFloat || c.null[i] {
		return 0, false
	}
	return c.num[i], true
}

// SetString overwrites the string cell at row i and marks it present.
func (c *Column) SetString(i int, v string) {
	c.str[i] = v
	c.null[i] = false
}

// SetFloat overwrites the numeric cell at row i and marks it present.
func (c *Column) SetFloat(i int, v float64) {
	c.num[i] = v
	c.null[i] = false
}

// SetNull marks the cell at row i as missing.
func (c *Column) SetNull(i int) {
	c.null[i] = true
	if c.Kind == KindString {
		c.str[i] = ""
	} else {
		c.num[i] = 0
	}
}

// Coerced returns a numeric copy of the column. String cells that do
// not parse as numbers become missing rather than failing, matching the
// recover-to-missing policy for dirty source data. Numeric columns are
// returned unchanged.
func (c *Column) Coerced() *Column {
	if c.Kind == KindFloat {
		return c
	}
	n := c.Len()
	out := &Column{
		Name: c.Name,
		Kind: KindFloat,
		num:  make([]float64, n),
		null: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		if c.null[i] {
			out.null[i] = true
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(c.str[i]), 64)
		if err != nil {
			out.null[i] = true
			continue
		}
		out.num[i] = v
	}
	return out
}

// take builds a copy of the column containing the rows listed in perm,
// in that order.
func (c *Column) take(perm []int) *Column {
	out := &Column{Name: c.Name, Kind: c.Kind, null: make([]bool, len(perm))}
	if c.Kind == KindString {
		out.str = make([]string, len(perm))
		for i, j := range perm {
			out.str[i] = c.str[j]
			out.null[i] = c.null[j]
		}
		return out
	}
	out.num = make([]float64, len(perm))
	for i, j := range perm {
		out.num[i] = c.num[j]
		out.null[i] = c.null[j]
	}
	return out
}

// compare orders two cells of the same column: -1, 0 or 1. Missing
// cells sort after present ones so that unsortable rows end up at the
// bottom deterministically.
func (c *Column) compare(i, j int) int {
	switch {
	case c.null[i] && c.null[j]:
		return 0
	case c.null[i]:
		return 1
	case c.null[j]:
		return -1
	}
	if c.Kind == KindString {
		return strings.Compare(c.str[i], c.str[j])
	}
	switch {
	case c.num[i] < c.num[j]:
		return -1
	case c.num[i] > c.num[j]:
		return 1
	}
	return 0
}
