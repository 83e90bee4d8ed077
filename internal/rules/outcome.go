// Package rules implements the stateless validation rule library.
// Each rule consumes a loaded table plus rule-specific parameters and
// produces exactly one Outcome. Rules never mutate the table and never
// return Go errors: a rule that cannot run against its target reports
// a skipped outcome instead.
package rules

// Status is the result category of a rule invocation.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusInfo    Status = "info"
)

// Rule identifiers. These appear verbatim in reports and must stay
// stable across releases.
const (
	RuleLoad          = "load_excel"
	RuleColumnNames   = "check_column_names"
	RuleMissingValues = "check_missing_values"
	RuleDataType      = "check_data_type"
	RuleUniqueValues  = "check_unique_values"
	RuleRange         = "check_range"
	RuleSaveReport    = "save_report"
)

// DetailColumnNotFound is the skip reason when a configured rule
// targets a column the loaded table does not have.
const DetailColumnNotFound = "Column not found"

// Outcome is the structured result of one rule evaluation.
type Outcome struct {
	Rule    string `json:"rule"`
	Status  Status `json:"status"`
	Column  string `json:"column,omitempty"`
	Details string `json:"details,omitempty"`
}

func passed(rule, column string) Outcome {
	return Outcome{Rule: rule, Status: StatusPassed, Column: column}
}

func failed(rule, column, details string) Outcome {
	return Outcome{Rule: rule, Status: StatusFailed, Column: column, Details: details}
}

func skipped(rule, column, details string) Outcome {
	return Outcome{Rule: rule, Status: StatusSkipped, Column: column, Details: details}
}
