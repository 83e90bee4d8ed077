package validator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/payops/validator/internal/dedupe"
)

// ColumnType declares the expected type tag for one column.
// Supported tags: int, float, str, object, bool.
type ColumnType struct {
	Column string `yaml:"column"`
	Type   string `yaml:"type"`
}

// ColumnRange declares an inclusive numeric interval for one column.
// Either bound may be omitted.
type ColumnRange struct {
	Column string   `yaml:"column"`
	Min    *float64 `yaml:"min"`
	Max    *float64 `yaml:"max"`
}

// Config describes which rules to run and their parameters. A profile
// is expected to be reused across files with varying schemas, so rules
// targeting columns a given file lacks are skipped, never failed.
//
// Column-scoped rules run in the order listed here.
type Config struct {
	// ExpectedColumns are required column names. Empty disables the
	// column-presence rule.
	ExpectedColumns []string `yaml:"expected_columns"`

	// CheckMissingValues toggles the whole-table null scan.
	CheckMissingValues bool `yaml:"check_missing_values"`

	// ColumnTypes maps columns to expected type tags, in order.
	ColumnTypes []ColumnType `yaml:"column_types"`

	// UniqueColumns require all non-null values to be distinct.
	UniqueColumns []string `yaml:"check_unique_values"`

	// ColumnRanges bound numeric columns, in order.
	ColumnRanges []ColumnRange `yaml:"column_ranges"`

	// RequiredFields are columns that must be non-null in every row.
	// Violations appear in the per-row issue list.
	RequiredFields []string `yaml:"required_fields"`

	// NameColumn is scanned for probable duplicates (default "Name").
	NameColumn string `yaml:"name_column"`
}

// DefaultConfig returns the payroll validation profile used when no
// profile file is supplied.
func DefaultConfig() Config {
	zero := 0.0
	hundred := 100.0
	return Config{
		ExpectedColumns:    []string{"Name", "Employee ID", "Hours Worked", "Total Pay"},
		CheckMissingValues: true,
		ColumnTypes: []ColumnType{
			{Column: "Hours Worked", Type: "float"},
			{Column: "Total Pay", Type: "float"},
		},
		UniqueColumns: []string{"Employee ID"},
		ColumnRanges: []ColumnRange{
			{Column: "Hours Worked", Min: &zero, Max: &hundred},
			{Column: "Total Pay", Min: &zero},
		},
		RequiredFields: []string{"Name", "Employee ID"},
		NameColumn:     dedupe.DefaultNameColumn,
	}
}

// LoadProfile reads a YAML validation profile from disk.
func LoadProfile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read profile: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) nameColumn() string {
	if c.NameColumn != "" {
		return c.NameColumn
	}
	return dedupe.DefaultNameColumn
}
