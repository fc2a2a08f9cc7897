package cleaning

import (
	"fmt"

	"mortality/internal/dataset"
)

// Reconcile aligns the two raw export schemas before cleaning. The
// 2018-2023 export names its race column "Single Race 6"; it is renamed
// to the canonical "Race" (its machine-code sibling falls to the
// generic redundant-column drop later). Each table is then tagged with
// a Source_File column so provenance survives the merge.
func Reconcile(era1, era2 *dataset.Table) error {
	era2.Rename(ColSingleRace6, ColRace)

	if err := tagSource(era1, SourceEra1); err != nil {
		return err
	}
	return tagSource(era2, SourceEra2)
}

func tagSource(t *dataset.Table, tag string) error {
	// The tag is authoritative; an identically named input column
	// cannot be allowed to shadow it.
	t.Drop(ColSourceFile)

	values := make([]string, t.NumRows())
	for i := range values {
		values[i] = tag
	}
	if err := t.AddColumn(dataset.NewStringColumn(ColSourceFile, values, nil)); err != nil {
		return fmt.Errorf("tagging table with %s: %w", tag, err)
	}
	return nil
}
