package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

// Load reads a tabular source at path into a Table. The file extension
// selects the parser: .csv is read as delimited text, .xlsx as a
// columnar sheet (first sheet only). The first row is the header.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file extension %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
}

func loadCSV(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(bytes.NewReader(sanitizeUTF8(data)))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	return FromRecords(records)
}

func loadXLSX(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return FromRecords(records)
}

// FromRecords builds a Table from raw string records where the first
// record is the header. Short rows are padded with nulls; cells in a
// column are typed together so a column is numeric or boolean only
// when every non-null value in it is.
func FromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file")
	}

	header := records[0]
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	raws := records[1:]
	t := &Table{Columns: columns, Rows: make([][]Cell, len(raws))}
	for i := range t.Rows {
		t.Rows[i] = make([]Cell, len(columns))
	}

	for col := range columns {
		typeColumn(t, raws, col)
	}
	return t, nil
}

// typeColumn classifies one column of raw strings and fills the cells.
func typeColumn(t *Table, raws [][]string, col int) {
	allBool, allNum := true, true
	nonNull := 0
	for _, raw := range raws {
		v := ""
		if col < len(raw) {
			v = strings.TrimSpace(raw[col])
		}
		if v == "" {
			continue
		}
		nonNull++
		if _, ok := parseBool(v); !ok {
			allBool = false
		}
		if _, ok := ParseNumber(v); !ok {
			allNum = false
		}
	}

	for i, raw := range raws {
		v := ""
		if col < len(raw) {
			v = strings.TrimSpace(raw[col])
		}
		switch {
		case v == "":
			t.Rows[i][col] = Null()
		case nonNull > 0 && allBool:
			b, _ := parseBool(v)
			t.Rows[i][col] = Cell{Kind: KindBool, Bool: b, Raw: v}
		case nonNull > 0 && allNum:
			f, _ := ParseNumber(v)
			t.Rows[i][col] = Cell{Kind: KindNumber, Num: f, Raw: v}
		default:
			t.Rows[i][col] = Text(v)
		}
	}
}

// WriteCSV writes the table as CSV, header first, using each cell's
// display rendering.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i := range t.Columns {
			if i < len(row) {
				record[i] = row[i].String()
			} else {
				record[i] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// sanitizeUTF8 replaces invalid byte sequences with the replacement
// rune so exported spreadsheets with stray encodings still parse.
func sanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	var buf bytes.Buffer
	buf.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}
	return buf.Bytes()
}
