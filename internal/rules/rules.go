package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/payops/validator/internal/table"
)

// CheckColumnNames verifies that every expected column is present.
// The missing subset preserves the caller's order.
func CheckColumnNames(t *table.Table, expected []string) Outcome {
	var missing []string
	for _, col := range expected {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return failed(RuleColumnNames, "", fmt.Sprintf("Missing columns: %v", missing))
	}
	return passed(RuleColumnNames, "")
}

// CheckMissingValues scans every column for null cells and reports a
// column→count listing in table column order.
func CheckMissingValues(t *table.Table) Outcome {
	var parts []string
	for _, col := range t.Columns {
		count := 0
		for _, c := range t.ColumnCells(col) {
			if c.IsNull() {
				count++
			}
		}
		if count > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", col, count))
		}
	}
	if len(parts) > 0 {
		return failed(RuleMissingValues, "", "Columns with missing values: "+strings.Join(parts, ", "))
	}
	return passed(RuleMissingValues, "")
}

// CheckDataType verifies that a column matches an expected type tag
// (int, float, str/object or bool). Numeric tags are checked cell by
// cell via coercion; a column declared float accepts integer-valued
// cells, a column declared int rejects any fractional value.
func CheckDataType(t *table.Table, column, expectedType string) Outcome {
	if !t.HasColumn(column) {
		return skipped(RuleDataType, column, DetailColumnNotFound)
	}

	switch strings.ToLower(expectedType) {
	case "int", "float":
		if bad := DataTypeFailures(t, column, expectedType); len(bad) > 0 {
			return failed(RuleDataType, column, fmt.Sprintf(
				"Expected type '%s', but non-numeric or non-integer values found at indices %v.",
				expectedType, bad))
		}
		return passed(RuleDataType, column)

	case "object", "str":
		if t.ColumnDtype(column) == table.DtypeObject || allText(t.ColumnCells(column)) {
			return passed(RuleDataType, column)
		}
		return failed(RuleDataType, column, fmt.Sprintf(
			"Expected type '%s', but found '%s'.", expectedType, t.ColumnDtype(column)))

	case "bool":
		if t.ColumnDtype(column) == table.DtypeBool {
			return passed(RuleDataType, column)
		}
		return failed(RuleDataType, column, fmt.Sprintf(
			"Expected type 'bool', but found '%s'.", t.ColumnDtype(column)))

	default:
		return failed(RuleDataType, column, fmt.Sprintf(
			"Expected type '%s' is not supported.", expectedType))
	}
}

// DataTypeFailures returns the zero-based indices of non-null cells in
// the column that fail coercion to the numeric tag (int or float).
// Indices come back in ascending row order.
func DataTypeFailures(t *table.Table, column, expectedType string) []int {
	wantInt := strings.ToLower(expectedType) == "int"
	var bad []int
	for i, c := range t.ColumnCells(column) {
		if c.IsNull() {
			continue
		}
		v, ok := table.ToNumber(c)
		if !ok || (wantInt && !table.IsIntegerLike(v)) {
			bad = append(bad, i)
		}
	}
	return bad
}

// CheckUniqueValues verifies that all non-null values in the column
// are distinct. Null cells are exempt. The failure detail lists each
// duplicated value once, ordered by the value's first appearance in
// the column (not by where it first repeats).
func CheckUniqueValues(t *table.Table, column string) Outcome {
	if !t.HasColumn(column) {
		return skipped(RuleUniqueValues, column, DetailColumnNotFound)
	}

	counts := map[string]int{}
	display := map[string]string{}
	var order []string
	for _, c := range t.ColumnCells(column) {
		if c.IsNull() {
			continue
		}
		key := cellKey(c)
		if counts[key] == 0 {
			order = append(order, key)
			display[key] = c.String()
		}
		counts[key]++
	}
	var dups []string
	for _, key := range order {
		if counts[key] > 1 {
			dups = append(dups, display[key])
		}
	}
	if len(dups) > 0 {
		return failed(RuleUniqueValues, column, fmt.Sprintf(
			"Duplicate values found in column '%s'. Duplicated values: [%s]",
			column, strings.Join(dups, ", ")))
	}
	return passed(RuleUniqueValues, column)
}

// CheckRange verifies that numeric values fall inside the inclusive
// [min, max] interval. Non-numeric cells are reported as their own
// failure reason without short-circuiting the bound checks. Reasons
// are joined with "; " in the order non-numeric, below-minimum,
// above-maximum.
func CheckRange(t *table.Table, column string, min, max *float64) Outcome {
	if !t.HasColumn(column) {
		return skipped(RuleRange, column, DetailColumnNotFound)
	}

	res := RangeFailures(t, column, min, max)
	var reasons []string
	if len(res.NonNumeric) > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Column '%s' contains non-numeric values that prevent range check at indices %v.",
			column, res.NonNumeric))
	}
	if len(res.BelowMin) > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Values below minimum (%s) found at indices: %v", formatBound(*min), res.BelowMin))
	}
	if len(res.AboveMax) > 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Values above maximum (%s) found at indices: %v", formatBound(*max), res.AboveMax))
	}
	if res.NumericCount == 0 && len(res.NonNumeric) == 0 {
		reasons = append(reasons, fmt.Sprintf(
			"Column '%s' is not numeric and cannot be checked for range.", column))
	}

	if len(reasons) > 0 {
		return failed(RuleRange, column, strings.Join(reasons, "; "))
	}
	return passed(RuleRange, column)
}

// RangeResult carries the row indices collected by a range scan.
type RangeResult struct {
	NonNumeric   []int
	BelowMin     []int
	AboveMax     []int
	NumericCount int
}

// RangeFailures scans the column once and buckets each non-null cell:
// failed coercion, below min, or above max. Boundary values equal to
// min or max pass (inclusive range).
func RangeFailures(t *table.Table, column string, min, max *float64) RangeResult {
	var res RangeResult
	for i, c := range t.ColumnCells(column) {
		if c.IsNull() {
			continue
		}
		v, ok := table.ToNumber(c)
		if !ok {
			res.NonNumeric = append(res.NonNumeric, i)
			continue
		}
		res.NumericCount++
		if min != nil && v < *min {
			res.BelowMin = append(res.BelowMin, i)
		}
		if max != nil && v > *max {
			res.AboveMax = append(res.AboveMax, i)
		}
	}
	return res
}

func allText(cells []table.Cell) bool {
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		if c.Kind != table.KindText {
			return false
		}
	}
	return true
}

// cellKey normalizes a cell for equality comparison so "2" and "2.0"
// in a numeric column compare equal.
func cellKey(c table.Cell) string {
	switch c.Kind {
	case table.KindNumber:
		return "n:" + strconv.FormatFloat(c.Num, 'g', -1, 64)
	case table.KindBool:
		return "b:" + strconv.FormatBool(c.Bool)
	default:
		return "t:" + c.Raw
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
