package cleaning

import (
	"fmt"

	"mortality/internal/dataset"
)

// MergeAndSort combines the two cleaned eras into the final dataset.
// Each table is first projected onto OutputSchema, which fills columns
// one era lacks (for instance the derived age columns when an export
// had no age-group labels) with missing cells. The concatenated table
// is then put into its canonical order: a stable ascending sort by
// State, Year, Age_Min, Sex and Race, ties keeping their input order
// so identical inputs always produce identical output.
func MergeAndSort(era1, era2 *dataset.Table) (*dataset.Table, error) {
	merged, err := dataset.Concat(era1.Project(OutputSchema), era2.Project(OutputSchema))
	if err != nil {
		return nil, fmt.Errorf("merging cleaned tables: %w", err)
	}
	merged.SortStable(sortKey...)
	return merged, nil
}
