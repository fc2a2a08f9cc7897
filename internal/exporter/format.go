package exporter

import (
	"math"
	"strconv"

	"mortality/internal/dataset"
)

// formatCell renders one cell for CSV output. Missing cells become
// empty fields. Whole numbers print without a decimal point so counts
// and flags stay readable; everything else prints with the shortest
// representation that round-trips.
func formatCell(c *dataset.Column, row int) string {
	if c.IsNull(row) {
		return ""
	}
	if c.Kind == dataset.KindString {
		return c.String(row)
	}
	v, _ := c.Float(row)
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
