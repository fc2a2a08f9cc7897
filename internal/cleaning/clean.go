// Package cleaning implements the mortality cleaning pipeline: schema
// reconciliation, per-table record cleaning, and the final merge and
// ordering of the two export eras.
package cleaning

import (
	"log/slog"

	"mortality/internal/ageband"
	"mortality/internal/dataset"
)

// Clean transforms one raw table into its cleaned form. The steps run
// in a fixed order because later ones depend on earlier ones: the
// unreliability flag must see the crude rate as text, the calculated
// rate needs the coerced counts, and the sanity filter comes last so
// it sees every derived column. The returned table is new; rows that
// fail the sanity filter (Population > 0 and Deaths >= 0) are gone and
// row indices are dense again.
//
// Nothing in the data itself can fail this function. Unparseable
// numbers and age labels become missing cells, and absent columns are
// stood in for by all-missing ones.
func Clean(t *dataset.Table, logger *slog.Logger) *dataset.Table {
	if logger == nil {
		logger = slog.Default()
	}
	before := t.NumRows()

	t.Drop(redundantColumns...)
	flagUnreliable(t)
	coerceCounts(t)
	reportCrudeRate(t)
	normalizeSex(t)
	deriveAgeBands(t)
	calculateCrudeRate(t)
	out := sanityFilter(t)

	logger.Info("Cleaned table",
		slog.Int("rows_in", before),
		slog.Int("rows_out", out.NumRows()),
		slog.Int("rows_dropped", before-out.NumRows()))
	return out
}

// flagUnreliable records which rows had their crude rate suppressed as
// "Unreliable" by the source. The test is exact string equality against
// the original text, before any numeric coercion touches the column.
func flagUnreliable(t *dataset.Table) {
	n := t.NumRows()
	flags := make([]float64, n)
	if c, ok := t.Column(ColCrudeRate); ok {
		for i := 0; i < n; i++ {
			if !c.IsNull(i) && c.String(i) == unreliableMarker {
				flags[i] = 1
			}
		}
	}
	_ = t.AddColumn(dataset.NewFloatColumn(ColUnreliableFlag, flags, nil))
}

// coerceCounts converts the count columns to numbers. A column the
// export lacks entirely is materialized as all-missing so downstream
// steps need no special cases.
func coerceCounts(t *dataset.Table) {
	for _, name := range []string{ColYear, ColDeaths, ColPopulation} {
		if c, ok := t.Column(name); ok {
			_ = t.ReplaceColumn(name, c.Coerced())
		} else {
			_ = t.AddColumn(dataset.NewNullColumn(name, dataset.KindFloat, t.NumRows()))
		}
	}
}

// reportCrudeRate keeps the source's own rate as a numeric column and
// retires the raw text column. "Unreliable" and other non-numeric text
// coerce to missing.
func reportCrudeRate(t *dataset.Table) {
	if c, ok := t.Column(ColCrudeRate); ok {
		reported := c.Coerced()
		reported.Name = ColCrudeRateReported
		_ = t.AddColumn(reported)
		t.Drop(ColCrudeRate)
		return
	}
	_ = t.AddColumn(dataset.NewNullColumn(ColCrudeRateReported, dataset.KindFloat, t.NumRows()))
}

// normalizeSex expands single-letter sex codes to the long labels.
// Anything other than the two recognized codes passes through as is.
func normalizeSex(t *dataset.Table) {
	c, ok := t.Column(ColSex)
	if !ok || c.Kind != dataset.KindString {
		return
	}
	for i := 0; i < t.NumRows(); i++ {
		if c.IsNull(i) {
			continue
		}
		if long, ok := sexLabels[c.String(i)]; ok {
			c.SetString(i, long)
		}
	}
}

// deriveAgeBands parses the age-group label into numeric bounds plus a
// midpoint. When the export has no age-group column the three derived
// columns are not produced here; the output-schema projection
// materializes them as all-missing for that era.
func deriveAgeBands(t *dataset.Table) {
	c, ok := t.Column(ColAgeGroups)
	if !ok {
		return
	}
	n := t.NumRows()
	min := dataset.NewNullColumn(ColAgeMin, dataset.KindFloat, n)
	max := dataset.NewNullColumn(ColAgeMax, dataset.KindFloat, n)
	mid := dataset.NewNullColumn(ColAgeMid, dataset.KindFloat, n)
	for i := 0; i < n; i++ {
		if c.IsNull(i) {
			continue
		}
		label := c.String(i)
		lo, loOK := ageband.ParseMin(label)
		hi, hiOK := ageband.ParseMax(label)
		if loOK {
			min.SetFloat(i, float64(lo))
		}
		if hiOK {
			max.SetFloat(i, float64(hi))
		}
		if loOK && hiOK {
			mid.SetFloat(i, float64(lo+hi)/2)
		}
	}
	_ = t.AddColumn(min)
	_ = t.AddColumn(max)
	_ = t.AddColumn(mid)
}

// calculateCrudeRate computes deaths per 100,000 population from the
// coerced counts. A zero population would divide to infinity, so that
// case is missing, as is any row where either count is missing.
func calculateCrudeRate(t *dataset.Table) {
	n := t.NumRows()
	deaths, _ := t.Column(ColDeaths)
	pop, _ := t.Column(ColPopulation)
	calc := dataset.NewNullColumn(ColCrudeRateCalculated, dataset.KindFloat, n)
	for i := 0; i < n; i++ {
		d, dok := deaths.Float(i)
		p, pok := pop.Float(i)
		if !dok || !pok || p == 0 {
			continue
		}
		calc.SetFloat(i, d/p*crudeRateScale)
	}
	_ = t.AddColumn(calc)
}

// sanityFilter keeps only rows with a positive population and a
// non-negative death count. Missing counts fail both comparisons and
// are dropped with the rest.
func sanityFilter(t *dataset.Table) *dataset.Table {
	deaths, _ := t.Column(ColDeaths)
	pop, _ := t.Column(ColPopulation)
	return t.Filter(func(i int) bool {
		d, dok := deaths.Float(i)
		p, pok := pop.Float(i)
		return dok && pok && p > 0 && d >= 0
	})
}
