// Package dedupe flags probable duplicate entities by approximate name
// matching. It is independent of the rule library: it reads one name
// column and compares every pair of rows.
package dedupe

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/payops/validator/internal/table"
)

// SimilarityThreshold is the Levenshtein-ratio score (0-100) a pair
// must strictly exceed to be flagged. There is no configuration
// surface for it.
const SimilarityThreshold = 90

// DefaultNameColumn is the column scanned when no other is configured.
const DefaultNameColumn = "Name"

// Pair is a probable duplicate: two row indices (I < J) and the raw
// name values that matched.
type Pair struct {
	I     int    `json:"index_a"`
	J     int    `json:"index_b"`
	NameA string `json:"name_a"`
	NameB string `json:"name_b"`
}

// FindDuplicates scans every unordered pair of rows in the name column
// and returns the pairs whose similarity ratio exceeds the threshold,
// ordered by (I, J). Null names are skipped. A missing name column
// yields no pairs and no error: validation profiles are reused across
// files with varying schemas.
//
// The scan is O(n²) over operator-scale inputs (hundreds to low
// thousands of rows), so no blocking or indexing is applied.
func FindDuplicates(t *table.Table, nameColumn string) []Pair {
	if nameColumn == "" {
		nameColumn = DefaultNameColumn
	}
	cells := t.ColumnCells(nameColumn)
	if cells == nil {
		return nil
	}

	var pairs []Pair
	for i := 0; i < len(cells); i++ {
		if cells[i].IsNull() {
			continue
		}
		nameA := cells[i].String()
		for j := i + 1; j < len(cells); j++ {
			if cells[j].IsNull() {
				continue
			}
			nameB := cells[j].String()
			if fuzzy.Ratio(nameA, nameB) > SimilarityThreshold {
				pairs = append(pairs, Pair{I: i, J: j, NameA: nameA, NameB: nameB})
			}
		}
	}
	return pairs
}
