package rules

import (
	"strings"
	"testing"

	"github.com/payops/validator/internal/table"
)

func mustTable(t *testing.T, records [][]string) *table.Table {
	t.Helper()
	tbl, err := table.FromRecords(records)
	if err != nil {
		t.Fatalf("FromRecords: %v", err)
	}
	return tbl
}

// ============================================================================
// Column presence
// ============================================================================

func TestCheckColumnNames_AllPresent(t *testing.T) {
	tbl := mustTable(t, [][]string{{"ID", "Name"}, {"1", "a"}})
	out := CheckColumnNames(tbl, []string{"ID", "Name"})
	if out.Status != StatusPassed {
		t.Errorf("status = %s, want passed (details: %s)", out.Status, out.Details)
	}
}

func TestCheckColumnNames_MissingSubsetPreservesOrder(t *testing.T) {
	tbl := mustTable(t, [][]string{{"ID", "Name"}, {"1", "a"}})
	out := CheckColumnNames(tbl, []string{"ID", "Name", "Value"})
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "[Value]") {
		t.Errorf("details = %q, want missing subset [Value]", out.Details)
	}
}

// ============================================================================
// Missing values
// ============================================================================

func TestCheckMissingValues(t *testing.T) {
	tbl := mustTable(t, [][]string{
		{"A", "B"},
		{"1", "x"},
		{"", "y"},
		{"", ""},
	})
	out := CheckMissingValues(tbl)
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "A=2") || !strings.Contains(out.Details, "B=1") {
		t.Errorf("details = %q, want counts A=2 and B=1", out.Details)
	}
}

func TestCheckMissingValues_Clean(t *testing.T) {
	tbl := mustTable(t, [][]string{{"A"}, {"1"}, {"2"}})
	if out := CheckMissingValues(tbl); out.Status != StatusPassed {
		t.Errorf("status = %s, want passed", out.Status)
	}
}

// ============================================================================
// Data type
// ============================================================================

func TestCheckDataType_IntVsFloat(t *testing.T) {
	// [1.0, 2.0, 3.5] as int fails at index 2 only; as float passes.
	tbl := mustTable(t, [][]string{{"V"}, {"1.0"}, {"2.0"}, {"3.5"}})

	out := CheckDataType(tbl, "V", "int")
	if out.Status != StatusFailed {
		t.Fatalf("int check status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "[2]") {
		t.Errorf("int check details = %q, want failing index [2]", out.Details)
	}

	if out := CheckDataType(tbl, "V", "float"); out.Status != StatusPassed {
		t.Errorf("float check status = %s, want passed (details: %s)", out.Status, out.Details)
	}
}

func TestCheckDataType_NonNumericText(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {"1"}, {"abc"}, {"3"}})
	out := CheckDataType(tbl, "V", "float")
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "[1]") {
		t.Errorf("details = %q, want failing index [1]", out.Details)
	}
}

func TestCheckDataType_NullsIgnored(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {"1"}, {""}, {"3"}})
	if out := CheckDataType(tbl, "V", "int"); out.Status != StatusPassed {
		t.Errorf("status = %s, want passed (details: %s)", out.Status, out.Details)
	}
}

func TestCheckDataType_Str(t *testing.T) {
	text := mustTable(t, [][]string{{"V"}, {"a"}, {"b"}})
	if out := CheckDataType(text, "V", "str"); out.Status != StatusPassed {
		t.Errorf("text column as str = %s, want passed", out.Status)
	}

	nums := mustTable(t, [][]string{{"V"}, {"1"}, {"2"}})
	out := CheckDataType(nums, "V", "str")
	if out.Status != StatusFailed {
		t.Fatalf("numeric column as str = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "float64") {
		t.Errorf("details = %q, want actual dtype float64", out.Details)
	}
}

func TestCheckDataType_Bool(t *testing.T) {
	bools := mustTable(t, [][]string{{"V"}, {"true"}, {"false"}})
	if out := CheckDataType(bools, "V", "bool"); out.Status != StatusPassed {
		t.Errorf("bool column as bool = %s, want passed", out.Status)
	}

	text := mustTable(t, [][]string{{"V"}, {"yes"}, {"no"}})
	if out := CheckDataType(text, "V", "bool"); out.Status != StatusFailed {
		t.Errorf("text column as bool = %s, want failed", out.Status)
	}
}

func TestCheckDataType_ColumnNotFound(t *testing.T) {
	tbl := mustTable(t, [][]string{{"A"}, {"1"}})
	out := CheckDataType(tbl, "Missing", "int")
	if out.Status != StatusSkipped {
		t.Fatalf("status = %s, want skipped", out.Status)
	}
	if out.Details != DetailColumnNotFound {
		t.Errorf("details = %q, want %q", out.Details, DetailColumnNotFound)
	}
	if out.Column != "Missing" {
		t.Errorf("column = %q, want Missing", out.Column)
	}
}

func TestCheckDataType_Unsupported(t *testing.T) {
	tbl := mustTable(t, [][]string{{"A"}, {"1"}})
	out := CheckDataType(tbl, "A", "date")
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "not supported") {
		t.Errorf("details = %q, want unsupported-type message", out.Details)
	}
}

// ============================================================================
// Uniqueness
// ============================================================================

func TestCheckUniqueValues_Duplicates(t *testing.T) {
	// [1, 2, 2, 3] fails and reports duplicated value 2.
	tbl := mustTable(t, [][]string{{"V"}, {"1"}, {"2"}, {"2"}, {"3"}})
	out := CheckUniqueValues(tbl, "V")
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "[2]") {
		t.Errorf("details = %q, want duplicated value listing [2]", out.Details)
	}
}

func TestCheckUniqueValues_NullsExempt(t *testing.T) {
	// [1, 2, 3, null] passes; repeated nulls never count.
	tbl := mustTable(t, [][]string{{"V"}, {"1"}, {"2"}, {"3"}, {""}, {""}})
	if out := CheckUniqueValues(tbl, "V"); out.Status != StatusPassed {
		t.Errorf("status = %s, want passed (details: %s)", out.Status, out.Details)
	}
}

func TestCheckUniqueValues_ListingDedupedFirstOccurrence(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {"b"}, {"a"}, {"b"}, {"a"}, {"b"}})
	out := CheckUniqueValues(tbl, "V")
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "[b, a]") {
		t.Errorf("details = %q, want first-occurrence listing [b, a]", out.Details)
	}
}

func TestCheckUniqueValues_ListingOrderedByFirstAppearance(t *testing.T) {
	// b repeats before a does, but a appears in the column first: the
	// listing follows first appearance, not first repetition.
	tbl := mustTable(t, [][]string{{"V"}, {"a"}, {"b"}, {"b"}, {"a"}})
	out := CheckUniqueValues(tbl, "V")
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "[a, b]") {
		t.Errorf("details = %q, want first-appearance listing [a, b]", out.Details)
	}
}

func TestCheckUniqueValues_ColumnNotFound(t *testing.T) {
	tbl := mustTable(t, [][]string{{"A"}, {"1"}})
	if out := CheckUniqueValues(tbl, "Missing"); out.Status != StatusSkipped {
		t.Errorf("status = %s, want skipped", out.Status)
	}
}

// ============================================================================
// Range
// ============================================================================

func fptr(f float64) *float64 { return &f }

func TestCheckRange_InclusiveBounds(t *testing.T) {
	// Values exactly equal to min or max never fail.
	tbl := mustTable(t, [][]string{{"V"}, {"0"}, {"50"}, {"100"}})
	if out := CheckRange(tbl, "V", fptr(0), fptr(100)); out.Status != StatusPassed {
		t.Errorf("status = %s, want passed (details: %s)", out.Status, out.Details)
	}
}

func TestCheckRange_Violations(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {"-5"}, {"50"}, {"150"}})
	out := CheckRange(tbl, "V", fptr(0), fptr(100))
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "below minimum (0) found at indices: [0]") {
		t.Errorf("details = %q, want below-minimum index 0", out.Details)
	}
	if !strings.Contains(out.Details, "above maximum (100) found at indices: [2]") {
		t.Errorf("details = %q, want above-maximum index 2", out.Details)
	}
}

func TestCheckRange_NonNumericDoesNotShortCircuit(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {"abc"}, {"150"}})
	out := CheckRange(tbl, "V", fptr(0), fptr(100))
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	nonNumIdx := strings.Index(out.Details, "non-numeric")
	aboveIdx := strings.Index(out.Details, "above maximum")
	if nonNumIdx < 0 || aboveIdx < 0 {
		t.Fatalf("details = %q, want both non-numeric and above-maximum reasons", out.Details)
	}
	if nonNumIdx > aboveIdx {
		t.Errorf("details = %q, non-numeric reason must come first", out.Details)
	}
	if !strings.Contains(out.Details, "; ") {
		t.Errorf("details = %q, reasons must be semicolon-separated", out.Details)
	}
}

func TestCheckRange_EntirelyNullColumn(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {""}, {""}})
	out := CheckRange(tbl, "V", fptr(0), nil)
	if out.Status != StatusFailed {
		t.Fatalf("status = %s, want failed", out.Status)
	}
	if !strings.Contains(out.Details, "not numeric and cannot be checked") {
		t.Errorf("details = %q, want not-numeric message", out.Details)
	}
}

func TestCheckRange_NoBounds(t *testing.T) {
	tbl := mustTable(t, [][]string{{"V"}, {"1"}, {"2"}}) // numeric, no bounds
	if out := CheckRange(tbl, "V", nil, nil); out.Status != StatusPassed {
		t.Errorf("status = %s, want trivially passed (details: %s)", out.Status, out.Details)
	}
}

func TestCheckRange_ColumnNotFound(t *testing.T) {
	tbl := mustTable(t, [][]string{{"A"}, {"1"}})
	if out := CheckRange(tbl, "Missing", fptr(0), nil); out.Status != StatusSkipped {
		t.Errorf("status = %s, want skipped", out.Status)
	}
}
