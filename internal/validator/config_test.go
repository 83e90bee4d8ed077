package validator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	want := []string{"Name", "Employee ID", "Hours Worked", "Total Pay"}
	if len(cfg.ExpectedColumns) != len(want) {
		t.Fatalf("expected columns = %v, want %v", cfg.ExpectedColumns, want)
	}
	for i, col := range want {
		if cfg.ExpectedColumns[i] != col {
			t.Errorf("expected column %d = %q, want %q", i, cfg.ExpectedColumns[i], col)
		}
	}
	if !cfg.CheckMissingValues {
		t.Error("missing-value scan should be on by default")
	}
	if cfg.nameColumn() != "Name" {
		t.Errorf("name column = %q, want Name", cfg.nameColumn())
	}
}

func TestLoadProfile(t *testing.T) {
	content := `expected_columns:
  - ID
  - Amount
check_missing_values: true
column_types:
  - column: Amount
    type: float
check_unique_values:
  - ID
column_ranges:
  - column: Amount
    min: 0
    max: 10000
required_fields:
  - ID
name_column: Full Name
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}

	if len(cfg.ExpectedColumns) != 2 || cfg.ExpectedColumns[1] != "Amount" {
		t.Errorf("expected columns = %v", cfg.ExpectedColumns)
	}
	if len(cfg.ColumnTypes) != 1 || cfg.ColumnTypes[0].Type != "float" {
		t.Errorf("column types = %+v", cfg.ColumnTypes)
	}
	if len(cfg.ColumnRanges) != 1 {
		t.Fatalf("column ranges = %+v", cfg.ColumnRanges)
	}
	cr := cfg.ColumnRanges[0]
	if cr.Min == nil || *cr.Min != 0 || cr.Max == nil || *cr.Max != 10000 {
		t.Errorf("range bounds = %+v", cr)
	}
	if cfg.NameColumn != "Full Name" {
		t.Errorf("name column = %q", cfg.NameColumn)
	}
}

func TestLoadProfile_OmittedBound(t *testing.T) {
	content := `column_ranges:
  - column: Amount
    min: 0
`
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if cfg.ColumnRanges[0].Max != nil {
		t.Errorf("omitted max should be nil, got %v", *cfg.ColumnRanges[0].Max)
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing profile")
	}
}

func TestLoadProfile_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("expected_columns: {not a list"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProfile(path); err == nil {
		t.Error("expected error for malformed profile")
	}
}
