// Package table holds the in-memory tabular data model shared by the
// rule library, the duplicate detector and the validation session.
// This package has no knowledge of validation rules; it only loads
// files into an ordered table and answers cell/column queries.
package table

import "strconv"

// Kind identifies the value stored in a Cell.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
)

// Dtype is the inferred representation of a whole column, using the
// conventional dtype names reports are expected to show.
type Dtype string

const (
	DtypeObject  Dtype = "object"
	DtypeNumeric Dtype = "float64"
	DtypeBool    Dtype = "bool"
)

// Cell is a single value in a row. Raw preserves the source text so
// reports and exports can show exactly what the file contained.
type Cell struct {
	Kind Kind
	Raw  string
	Num  float64
	Bool bool
}

// IsNull reports whether the cell is absent/empty.
func (c Cell) IsNull() bool { return c.Kind == KindNull }

// String renders the cell for display and export. Null cells render
// as the empty string; numbers use the shortest exact representation.
func (c Cell) String() string {
	switch c.Kind {
	case KindNull:
		return ""
	case KindNumber:
		if c.Raw != "" {
			return c.Raw
		}
		return strconv.FormatFloat(c.Num, 'g', -1, 64)
	case KindBool:
		if c.Raw != "" {
			return c.Raw
		}
		return strconv.FormatBool(c.Bool)
	default:
		return c.Raw
	}
}

// Null returns an absent cell.
func Null() Cell { return Cell{Kind: KindNull} }

// Text returns a textual cell.
func Text(s string) Cell { return Cell{Kind: KindText, Raw: s} }

// Number returns a numeric cell.
func Number(f float64) Cell {
	return Cell{Kind: KindNumber, Num: f, Raw: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Boolean returns a boolean cell.
func Boolean(b bool) Cell {
	return Cell{Kind: KindBool, Bool: b, Raw: strconv.FormatBool(b)}
}

// Table is an ordered sequence of rows, each positionally aligned with
// Columns. Column order and row order are preserved from the source
// file. Rows are addressed by zero-based index; the +2 display offset
// used in reports is a presentation concern handled by callers.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// ColumnIndex returns the position of a column by exact name.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// HasColumn reports whether the table contains the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.ColumnIndex(name)
	return ok
}

// ColumnCells returns the cells of the named column in row order, or
// nil if the column is absent.
func (t *Table) ColumnCells(name string) []Cell {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil
	}
	cells := make([]Cell, len(t.Rows))
	for i, row := range t.Rows {
		if idx < len(row) {
			cells[i] = row[idx]
		} else {
			cells[i] = Null()
		}
	}
	return cells
}

// ColumnDtype infers the representation of the named column: bool if
// every non-null cell is boolean, float64 if every non-null cell is
// numeric (an all-null column also reports float64, matching how
// columnar loaders type empty columns), object otherwise.
func (t *Table) ColumnDtype(name string) Dtype {
	cells := t.ColumnCells(name)
	allBool, allNum := true, true
	nonNull := 0
	for _, c := range cells {
		if c.IsNull() {
			continue
		}
		nonNull++
		if c.Kind != KindBool {
			allBool = false
		}
		if c.Kind != KindNumber {
			allNum = false
		}
	}
	switch {
	case nonNull == 0:
		return DtypeNumeric
	case allBool:
		return DtypeBool
	case allNum:
		return DtypeNumeric
	default:
		return DtypeObject
	}
}

// WithoutRows returns a copy of the table with the given zero-based
// row indices removed, preserving the order of the remaining rows.
func (t *Table) WithoutRows(drop map[int]bool) *Table {
	out := &Table{Columns: append([]string(nil), t.Columns...)}
	for i, row := range t.Rows {
		if drop[i] {
			continue
		}
		out.Rows = append(out.Rows, row)
	}
	return out
}
