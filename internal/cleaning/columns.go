package cleaning

import "mortality/internal/dataset"

// Raw column names as they appear in the CDC WONDER exports.
const (
	ColState       = "State"
	ColYear        = "Year"
	ColAgeGroups   = "Ten-Year Age Groups"
	ColSex         = "Sex"
	ColRace        = "Race"
	ColSingleRace6 = "Single Race 6"
	ColDeaths      = "Deaths"
	ColPopulation  = "Population"
	ColCrudeRate   = "Crude Rate"
)

// Derived column names.
const (
	ColSourceFile          = "Source_File"
	ColUnreliableFlag      = "Unreliable_Flag"
	ColCrudeRateReported   = "CrudeRate_Reported"
	ColCrudeRateCalculated = "CrudeRate_Calculated"
	ColAgeMin              = "Age_Min"
	ColAgeMax              = "Age_Max"
	ColAgeMid              = "Age_Mid"
)

// Source tags distinguishing the two export eras.
const (
	SourceEra1 = "2004-2017"
	SourceEra2 = "2018-2023"
)

// unreliableMarker is the literal the source uses in place of a crude
// rate when the denominator is too small for a stable estimate.
const unreliableMarker = "Unreliable"

// crudeRateScale converts a deaths-per-population ratio to deaths per
// 100,000 population.
const crudeRateScale = 100000

// redundantColumns are machine-code duplicates of human-readable
// columns; they carry no extra information and are dropped outright.
var redundantColumns = []string{
	"State Code",
	"Year Code",
	"Ten-Year Age Groups Code",
	"Race Code",
	"Sex Code",
	"Single Race 6 Code", // only in the 2018-2023 export
}

// sexLabels expands the single-letter codes some export years use.
var sexLabels = map[string]string{
	"M": "Male",
	"F": "Female",
}

// OutputSchema is the canonical layout of the cleaned dataset. Both
// cleaned eras are projected onto it before concatenation, so every
// output row has every column even when a source file lacked one (the
// cells are simply missing).
var OutputSchema = dataset.Schema{
	{Name: ColState, Kind: dataset.KindString},
	{Name: ColYear, Kind: dataset.KindFloat},
	{Name: ColAgeGroups, Kind: dataset.KindString},
	{Name: ColSex, Kind: dataset.KindString},
	{Name: ColRace, Kind: dataset.KindString},
	{Name: ColDeaths, Kind: dataset.KindFloat},
	{Name: ColPopulation, Kind: dataset.KindFloat},
	{Name: ColUnreliableFlag, Kind: dataset.KindFloat},
	{Name: ColCrudeRateReported, Kind: dataset.KindFloat},
	{Name: ColCrudeRateCalculated, Kind: dataset.KindFloat},
	{Name: ColAgeMin, Kind: dataset.KindFloat},
	{Name: ColAgeMax, Kind: dataset.KindFloat},
	{Name: ColAgeMid, Kind: dataset.KindFloat},
	{Name: ColSourceFile, Kind: dataset.KindString},
}

// sortKey is the composite ordering of the final dataset.
var sortKey = []string{ColState, ColYear, ColAgeMin, ColSex, ColRace}
