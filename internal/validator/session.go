// Package validator owns the per-file validation session: loading the
// source into a table, driving the rule library across the configured
// rules, collecting duplicate pairs and row issues, and rendering the
// report. Sessions are single-use, single-threaded values; nothing is
// shared or retained across files.
package validator

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/payops/validator/internal/dedupe"
	"github.com/payops/validator/internal/rules"
	"github.com/payops/validator/internal/table"
)

// DetailNotLoaded is the skip reason recorded for every configured
// rule when validation runs after a failed load.
const DetailNotLoaded = "Dataset not loaded"

// Session is the mutable state spanning load through report for one
// file: the table (nil after a load failure), the rule configuration,
// and the ordered outcome list accumulated so far.
type Session struct {
	path     string
	cfg      Config
	tbl      *table.Table
	outcomes []rules.Outcome
}

// New creates a session for one source file.
func New(path string, cfg Config) *Session {
	return &Session{path: path, cfg: cfg}
}

// Load reads the source into the session table. It always appends
// exactly one load outcome: passed on success, failed with the cause
// otherwise. Load failures are recorded, never raised.
func (s *Session) Load() bool {
	s.outcomes = nil
	tbl, err := table.Load(s.path)
	if err != nil {
		s.tbl = nil
		details := fmt.Sprintf("Error loading file: %v", err)
		if errors.Is(err, fs.ErrNotExist) {
			details = fmt.Sprintf("File not found at %s", s.path)
		}
		s.outcomes = append(s.outcomes, rules.Outcome{
			Rule: rules.RuleLoad, Status: rules.StatusFailed, Details: details,
		})
		return false
	}
	s.tbl = tbl
	s.outcomes = append(s.outcomes, rules.Outcome{
		Rule: rules.RuleLoad, Status: rules.StatusPassed, Details: "File loaded successfully.",
	})
	return true
}

// Validate clears all non-load outcomes and re-evaluates every
// configured rule against the current table, in fixed order: column
// presence, missing values, data types, uniqueness, ranges. When the
// load failed, every configured rule/column pair gets one skipped
// outcome instead. Returns the overall pass/fail: failed if any
// outcome, including the load record, failed.
//
// Re-invoking Validate with the same table and configuration yields an
// identical outcome list.
func (s *Session) Validate() bool {
	load := s.loadOutcome()
	s.outcomes = nil
	if load != nil {
		s.outcomes = append(s.outcomes, *load)
	}

	if s.tbl == nil {
		if load == nil {
			s.outcomes = append(s.outcomes, rules.Outcome{
				Rule: rules.RuleLoad, Status: rules.StatusFailed,
				Details: "Dataset not loaded before validation.",
			})
		}
		s.appendSkipped()
		return false
	}

	if len(s.cfg.ExpectedColumns) > 0 {
		s.outcomes = append(s.outcomes, rules.CheckColumnNames(s.tbl, s.cfg.ExpectedColumns))
	}
	if s.cfg.CheckMissingValues {
		s.outcomes = append(s.outcomes, rules.CheckMissingValues(s.tbl))
	}
	for _, ct := range s.cfg.ColumnTypes {
		s.outcomes = append(s.outcomes, rules.CheckDataType(s.tbl, ct.Column, ct.Type))
	}
	for _, col := range s.cfg.UniqueColumns {
		s.outcomes = append(s.outcomes, rules.CheckUniqueValues(s.tbl, col))
	}
	for _, cr := range s.cfg.ColumnRanges {
		s.outcomes = append(s.outcomes, rules.CheckRange(s.tbl, cr.Column, cr.Min, cr.Max))
	}

	return !s.anyFailed()
}

// appendSkipped records one skipped outcome per configured rule (per
// column for column-scoped rules) so the report explains why nothing
// ran. Every configured pair appears exactly once.
func (s *Session) appendSkipped() {
	skip := func(rule, column string) {
		s.outcomes = append(s.outcomes, rules.Outcome{
			Rule: rule, Status: rules.StatusSkipped, Column: column, Details: DetailNotLoaded,
		})
	}
	if len(s.cfg.ExpectedColumns) > 0 {
		skip(rules.RuleColumnNames, "")
	}
	if s.cfg.CheckMissingValues {
		skip(rules.RuleMissingValues, "")
	}
	for _, ct := range s.cfg.ColumnTypes {
		skip(rules.RuleDataType, ct.Column)
	}
	for _, col := range s.cfg.UniqueColumns {
		skip(rules.RuleUniqueValues, col)
	}
	for _, cr := range s.cfg.ColumnRanges {
		skip(rules.RuleRange, cr.Column)
	}
}

func (s *Session) loadOutcome() *rules.Outcome {
	for i := range s.outcomes {
		if s.outcomes[i].Rule == rules.RuleLoad {
			o := s.outcomes[i]
			return &o
		}
	}
	return nil
}

func (s *Session) anyFailed() bool {
	for _, o := range s.outcomes {
		if o.Status == rules.StatusFailed {
			return true
		}
	}
	return false
}

// Outcomes returns a copy of the accumulated outcome list, in order.
func (s *Session) Outcomes() []rules.Outcome {
	return append([]rules.Outcome(nil), s.outcomes...)
}

// Table returns the loaded table, or nil after a load failure.
func (s *Session) Table() *table.Table { return s.tbl }

// Duplicates runs the approximate-match scan over the configured name
// column. Nil when the table is not loaded.
func (s *Session) Duplicates() []dedupe.Pair {
	if s.tbl == nil {
		return nil
	}
	return dedupe.FindDuplicates(s.tbl, s.cfg.nameColumn())
}

// Result bundles everything one validation run produces. Callers that
// only need a subset ignore the extra fields.
type Result struct {
	Passed     bool            `json:"passed"`
	Outcomes   []rules.Outcome `json:"outcomes"`
	Issues     []RowIssue      `json:"issues"`
	Duplicates []dedupe.Pair   `json:"duplicates"`
	Report     string          `json:"report"`
	Table      *table.Table    `json:"-"`
	Cleaned    *table.Table    `json:"-"`
}

// Run executes the whole pipeline for one file: load, validate,
// duplicate scan, issue derivation, report. It always returns a
// complete report and issue list, even on total load failure.
func Run(path string, cfg Config) *Result {
	s := New(path, cfg)
	s.Load()
	passed := s.Validate()

	res := &Result{
		Passed:     passed,
		Outcomes:   s.Outcomes(),
		Issues:     s.RowIssues(),
		Duplicates: s.Duplicates(),
		Table:      s.Table(),
	}
	if s.tbl != nil {
		res.Cleaned = s.CleanedTable(res.Issues)
	}
	res.Report = s.Report()
	return res
}
