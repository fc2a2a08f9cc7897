package cleaning

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortality/internal/dataset"
)

// rawTable builds a table of string columns the way the loader does:
// empty cells load as missing.
func rawTable(t *testing.T, header []string, rows [][]string) *dataset.Table {
	t.Helper()
	tbl := dataset.New()
	for col, name := range header {
		values := make([]string, len(rows))
		null := make([]bool, len(rows))
		for i, row := range rows {
			if row[col] == "" {
				null[i] = true
				continue
			}
			values[i] = row[col]
		}
		require.NoError(t, tbl.AddColumn(dataset.NewStringColumn(name, values, null)))
	}
	return tbl
}

func floatAt(t *testing.T, tbl *dataset.Table, name string, row int) (float64, bool) {
	t.Helper()
	c, ok := tbl.Column(name)
	require.True(t, ok, "column %s missing", name)
	return c.Float(row)
}

func TestCleanSingleRow(t *testing.T) {
	raw := rawTable(t,
		[]string{ColState, "State Code", ColYear, ColAgeGroups, ColSex, ColRace, ColDeaths, ColPopulation, ColCrudeRate},
		[][]string{
			{"CA", "06", "2010", "45-54 years", "M", "White", "10", "100000", "10.0"},
		})

	out := Clean(raw, nil)
	require.Equal(t, 1, out.NumRows())

	assert.False(t, out.Has("State Code"), "machine-code sibling dropped")
	assert.False(t, out.Has(ColCrudeRate), "raw crude rate column retired")

	sex, _ := out.Column(ColSex)
	assert.Equal(t, "Male", sex.String(0))

	for name, want := range map[string]float64{
		ColYear:                2010,
		ColDeaths:              10,
		ColPopulation:          100000,
		ColUnreliableFlag:      0,
		ColCrudeRateReported:   10.0,
		ColCrudeRateCalculated: 10.0,
		ColAgeMin:              45,
		ColAgeMax:              54,
		ColAgeMid:              49.5,
	} {
		v, ok := floatAt(t, out, name, 0)
		assert.True(t, ok, name)
		assert.Equal(t, want, v, name)
	}
}

func TestCleanUnreliableFlag(t *testing.T) {
	raw := rawTable(t,
		[]string{ColDeaths, ColPopulation, ColCrudeRate},
		[][]string{
			{"1", "1000", "Unreliable"},
			{"2", "1000", "Unreliable (low count)"},
			{"3", "1000", "3.1"},
			{"4", "1000", ""},
		})

	out := Clean(raw, nil)
	require.Equal(t, 4, out.NumRows())

	wantFlags := []float64{1, 0, 0, 0}
	for i, want := range wantFlags {
		v, ok := floatAt(t, out, ColUnreliableFlag, i)
		assert.True(t, ok)
		assert.Equal(t, want, v, "row %d: flag is exact equality, not substring", i)
	}

	// The flag survives independently of the coerced numeric value.
	_, ok := floatAt(t, out, ColCrudeRateReported, 0)
	assert.False(t, ok, "Unreliable coerces to missing")
	v, ok := floatAt(t, out, ColCrudeRateReported, 2)
	assert.True(t, ok)
	assert.Equal(t, 3.1, v)
}

func TestCleanWithoutCrudeRateColumn(t *testing.T) {
	raw := rawTable(t,
		[]string{ColDeaths, ColPopulation},
		[][]string{{"5", "1000"}})

	out := Clean(raw, nil)
	require.Equal(t, 1, out.NumRows())

	v, ok := floatAt(t, out, ColUnreliableFlag, 0)
	assert.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = floatAt(t, out, ColCrudeRateReported, 0)
	assert.False(t, ok, "reported rate missing when source had none")
}

func TestCleanSexPassThrough(t *testing.T) {
	raw := rawTable(t,
		[]string{ColSex, ColDeaths, ColPopulation},
		[][]string{
			{"F", "1", "1000"},
			{"Female", "1", "1000"},
			{"Other", "1", "1000"},
		})

	out := Clean(raw, nil)
	sex, _ := out.Column(ColSex)
	assert.Equal(t, "Female", sex.String(0))
	assert.Equal(t, "Female", sex.String(1))
	assert.Equal(t, "Other", sex.String(2), "unrecognized codes untouched")
}

func TestCleanAgeColumnsAbsent(t *testing.T) {
	raw := rawTable(t,
		[]string{ColDeaths, ColPopulation},
		[][]string{{"1", "1000"}})

	out := Clean(raw, nil)
	assert.False(t, out.Has(ColAgeMin))
	assert.False(t, out.Has(ColAgeMax))
	assert.False(t, out.Has(ColAgeMid))
}

func TestCleanUnparseableAgeLabel(t *testing.T) {
	raw := rawTable(t,
		[]string{ColAgeGroups, ColDeaths, ColPopulation},
		[][]string{
			{"Not Stated", "1", "1000"},
			{"", "2", "1000"},
		})

	out := Clean(raw, nil)
	require.Equal(t, 2, out.NumRows())
	for i := 0; i < 2; i++ {
		for _, name := range []string{ColAgeMin, ColAgeMax, ColAgeMid} {
			_, ok := floatAt(t, out, name, i)
			assert.False(t, ok, "%s row %d", name, i)
		}
	}
}

func TestCleanSanityFilter(t *testing.T) {
	raw := rawTable(t,
		[]string{ColState, ColDeaths, ColPopulation},
		[][]string{
			{"keep", "0", "1"},
			{"zero population", "10", "0"},
			{"negative deaths", "-1", "1000"},
			{"missing population", "10", ""},
			{"missing deaths", "", "1000"},
			{"non-numeric population", "10", "suppressed"},
		})

	out := Clean(raw, nil)
	require.Equal(t, 1, out.NumRows())
	state, _ := out.Column(ColState)
	assert.Equal(t, "keep", state.String(0))
}

func TestCalculateCrudeRateZeroPopulation(t *testing.T) {
	tbl := dataset.New()
	require.NoError(t, tbl.AddColumn(dataset.NewFloatColumn(ColDeaths, []float64{10, 10, 0}, []bool{false, false, false})))
	require.NoError(t, tbl.AddColumn(dataset.NewFloatColumn(ColPopulation, []float64{0, 100000, 0}, []bool{false, false, false})))

	calculateCrudeRate(tbl)

	_, ok := floatAt(t, tbl, ColCrudeRateCalculated, 0)
	assert.False(t, ok, "division by zero normalized to missing, not infinity")
	v, ok := floatAt(t, tbl, ColCrudeRateCalculated, 1)
	assert.True(t, ok)
	assert.Equal(t, 10.0, v)
	_, ok = floatAt(t, tbl, ColCrudeRateCalculated, 2)
	assert.False(t, ok, "0/0 is missing too")
}

func TestCleanMissingCountColumnsMaterialized(t *testing.T) {
	// A table with no Deaths or Population column cleans to zero rows
	// rather than failing.
	raw := rawTable(t,
		[]string{ColState},
		[][]string{{"CA"}})

	out := Clean(raw, nil)
	assert.Equal(t, 0, out.NumRows())
	assert.True(t, out.Has(ColDeaths))
	assert.True(t, out.Has(ColPopulation))
}
