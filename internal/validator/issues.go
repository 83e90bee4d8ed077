package validator

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/payops/validator/internal/rules"
	"github.com/payops/validator/internal/table"
)

// RowIssue is one row's problems, addressed by display row number
// (zero-based index + 2: one-based plus the header row).
type RowIssue struct {
	Row    int      `json:"row"`
	Issues []string `json:"issues"`
}

// RowIssues derives the per-row issue list from the row-addressable
// checks: missing required fields, failed type coercions, and range
// violations. Issue order within a row follows the configuration.
// Nil when the table is not loaded.
func (s *Session) RowIssues() []RowIssue {
	if s.tbl == nil {
		return nil
	}

	n := s.tbl.Len()
	byRow := make([][]string, n)
	add := func(indices []int, issue string) {
		for _, i := range indices {
			if i >= 0 && i < n {
				byRow[i] = append(byRow[i], issue)
			}
		}
	}

	for _, col := range s.cfg.RequiredFields {
		cells := s.tbl.ColumnCells(col)
		for i := 0; i < n; i++ {
			if cells == nil || cells[i].IsNull() {
				byRow[i] = append(byRow[i], "Missing "+col)
			}
		}
	}

	for _, ct := range s.cfg.ColumnTypes {
		if !s.tbl.HasColumn(ct.Column) {
			continue
		}
		tag := strings.ToLower(ct.Type)
		if tag != "int" && tag != "float" {
			continue
		}
		add(rules.DataTypeFailures(s.tbl, ct.Column, ct.Type),
			fmt.Sprintf("Invalid %s value in '%s'", ct.Type, ct.Column))
	}

	for _, cr := range s.cfg.ColumnRanges {
		if !s.tbl.HasColumn(cr.Column) {
			continue
		}
		res := rules.RangeFailures(s.tbl, cr.Column, cr.Min, cr.Max)
		add(res.NonNumeric, fmt.Sprintf("Non-numeric value in '%s'", cr.Column))
		if cr.Min != nil {
			add(res.BelowMin, fmt.Sprintf("'%s' below minimum (%s)", cr.Column, formatBound(*cr.Min)))
		}
		if cr.Max != nil {
			add(res.AboveMax, fmt.Sprintf("'%s' above maximum (%s)", cr.Column, formatBound(*cr.Max)))
		}
	}

	var out []RowIssue
	for i, issues := range byRow {
		if len(issues) > 0 {
			out = append(out, RowIssue{Row: i + 2, Issues: issues})
		}
	}
	return out
}

// CleanedTable returns the table with every row the issue list
// references removed. Row order is preserved.
func (s *Session) CleanedTable(issues []RowIssue) *table.Table {
	if s.tbl == nil {
		return nil
	}
	drop := make(map[int]bool, len(issues))
	for _, iss := range issues {
		drop[iss.Row-2] = true
	}
	return s.tbl.WithoutRows(drop)
}

// WriteIssuesCSV writes the issue list as a two-column CSV: display
// row number and the comma-joined issue reasons.
func WriteIssuesCSV(w io.Writer, issues []RowIssue) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"row", "issues"}); err != nil {
		return err
	}
	for _, iss := range issues {
		if err := cw.Write([]string{strconv.Itoa(iss.Row), strings.Join(iss.Issues, ", ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
