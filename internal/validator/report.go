package validator

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/payops/validator/internal/rules"
)

// Report renders the accumulated outcomes as a human-readable report.
// It is a pure read: calling it repeatedly yields the same text for
// the same outcome list.
func (s *Session) Report() string {
	return Render(s.outcomes)
}

// WriteReport renders the report and persists it to path. A write
// failure is a warning, never a validation failure; on success one
// info outcome records the save for traceability. Returns the
// rendered report either way.
func (s *Session) WriteReport(path string) string {
	report := Render(s.outcomes)
	if path == "" {
		return report
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		slog.Warn("could not save report", "path", path, "error", err)
		return report
	}
	s.outcomes = append(s.outcomes, rules.Outcome{
		Rule:    rules.RuleSaveReport,
		Status:  rules.StatusInfo,
		Details: fmt.Sprintf("Report saved to %s", path),
	})
	return report
}

// Render produces the deterministic report text: title, overall
// status, the load record first and always, then the non-empty
// Failed/Passed/Skipped sections with records sorted by
// (status, rule, column), and a closing marker.
func Render(outcomes []rules.Outcome) string {
	if len(outcomes) == 0 {
		return "No validation results available. Run Load and Validate first."
	}

	lines := []string{"--- Validation Report ---"}

	var load *rules.Outcome
	var others []rules.Outcome
	for i := range outcomes {
		if outcomes[i].Rule == rules.RuleLoad && load == nil {
			load = &outcomes[i]
			continue
		}
		others = append(others, outcomes[i])
	}
	sort.SliceStable(others, func(i, j int) bool {
		a, b := others[i], others[j]
		if a.Status != b.Status {
			return a.Status < b.Status
		}
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Column < b.Column
	})

	var failedRules, passedRules, skippedRules []rules.Outcome
	for _, o := range others {
		switch o.Status {
		case rules.StatusFailed:
			failedRules = append(failedRules, o)
		case rules.StatusPassed:
			passedRules = append(passedRules, o)
		case rules.StatusSkipped:
			skippedRules = append(skippedRules, o)
		}
	}

	overall := "PASSED"
	for _, o := range outcomes {
		if o.Status == rules.StatusFailed {
			overall = "FAILED"
			break
		}
	}
	lines = append(lines, "", "Overall Status: "+overall, "")

	if load != nil {
		lines = append(lines, fmt.Sprintf("- Rule '%s' (status: %s): %s",
			load.Rule, load.Status, detailsOrDefault(load.Details)))
		if len(others) > 0 {
			lines = append(lines, "")
		}
	}

	if len(failedRules) > 0 {
		lines = append(lines, "Failed Rules:")
		for _, o := range failedRules {
			lines = append(lines, fmt.Sprintf("- Rule '%s'%s: %s",
				o.Rule, columnSuffix(o), detailsOrDefault(o.Details)))
		}
		if len(passedRules) > 0 || len(skippedRules) > 0 {
			lines = append(lines, "")
		}
	}

	if len(passedRules) > 0 {
		lines = append(lines, "Passed Rules:")
		for _, o := range passedRules {
			if o.Details != "" {
				lines = append(lines, fmt.Sprintf("- Rule '%s'%s: %s", o.Rule, columnSuffix(o), o.Details))
			} else {
				lines = append(lines, fmt.Sprintf("- Rule '%s'%s (status: passed)", o.Rule, columnSuffix(o)))
			}
		}
		if len(skippedRules) > 0 {
			lines = append(lines, "")
		}
	}

	if len(skippedRules) > 0 {
		lines = append(lines, "Skipped Rules:")
		for _, o := range skippedRules {
			lines = append(lines, fmt.Sprintf("- Rule '%s'%s: %s",
				o.Rule, columnSuffix(o), detailsOrDefault(o.Details)))
		}
	}

	lines = append(lines, "--- End of Report ---")
	return strings.Join(lines, "\n")
}

func columnSuffix(o rules.Outcome) string {
	if o.Column == "" {
		return ""
	}
	return fmt.Sprintf(" (Column: %s)", o.Column)
}

func detailsOrDefault(details string) string {
	if details == "" {
		return "No specific details available."
	}
	return details
}
