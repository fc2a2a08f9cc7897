package dataset

import (
	"fmt"
	"strconv"
)

// ColumnSpec names one column of a fixed schema.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Schema is an ordered set of named, typed columns.
type Schema []ColumnSpec

// Project returns a new table with exactly the schema's columns in
// schema order. Columns the source lacks are filled with missing
// cells; columns the schema does not name are discarded; columns whose
// kind disagrees with the schema are converted.
func (t *Table) Project(schema Schema) *Table {
	out := New()
	for _, spec := range schema {
		c, ok := t.Column(spec.Name)
		switch {
		case !ok:
			c = NewNullColumn(spec.Name, spec.Kind, t.rows)
		case c.Kind != spec.Kind && spec.Kind == KindFloat:
			c = c.Coerced()
		case c.Kind != spec.Kind && spec.Kind == KindString:
			c = c.stringified()
		}
		_ = out.AddColumn(c)
	}
	out.rows = t.rows
	return out
}

// Concat appends b's rows below a's. Both tables must already share
// the same column layout, which Project guarantees.
func Concat(a, b *Table) (*Table, error) {
	out := New()
	for i, ca := range a.cols {
		if i >= len(b.cols) || b.cols[i].Name != ca.Name || b.cols[i].Kind != ca.Kind {
			return nil, fmt.Errorf("tables disagree on column %q", ca.Name)
		}
		cb := b.cols[i]
		merged := &Column{
			Name: ca.Name,
			Kind: ca.Kind,
			str:  append(append([]string(nil), ca.str...), cb.str...),
			num:  append(append([]float64(nil), ca.num...), cb.num...),
			null: append(append([]bool(nil), ca.null...), cb.null...),
		}
		if err := out.AddColumn(merged); err != nil {
			return nil, err
		}
	}
	out.rows = a.rows + b.rows
	return out, nil
}

// stringified returns a string copy of a numeric column, used when a
// schema demands text for a column that arrived numeric.
func (c *Column) stringified() *Column {
	if c.Kind == KindString {
		return c
	}
	n := c.Len()
	out := &Column{
		Name: c.Name,
		Kind: KindString,
		str:  make([]string, n),
		null: append([]bool(nil), c.null...),
	}
	for i := 0; i < n; i++ {
		if !c.null[i] {
			out.str[i] = strconv.FormatFloat(c.num[i], 'f', -1, 64)
		}
	}
	return out
}
