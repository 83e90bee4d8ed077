// Command validate runs the validation pipeline against a single
// tabular file and prints the issue list, probable duplicates and the
// report to standard output.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/payops/validator/internal/table"
	"github.com/payops/validator/internal/validator"
)

var (
	profilePath string
	reportPath  string
	issuesPath  string
	cleanedPath string
	nameColumn  string
)

var rootCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a payroll dataset and flag probable duplicate names",
	Long: `Validate runs a configurable set of rules (column presence, missing
values, data types, uniqueness, numeric ranges) against a .csv or .xlsx
file, scans a name column for probable duplicates, and prints a
human-readable report. When any row-level issue exists, the issue list
is also written as a CSV.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&profilePath, "profile", "", "YAML rule profile (default: built-in payroll profile)")
	rootCmd.Flags().StringVar(&reportPath, "report", "", "write the text report to this path")
	rootCmd.Flags().StringVar(&issuesPath, "issues-csv", "validation_report.csv", "issue list CSV path (written when issues exist)")
	rootCmd.Flags().StringVar(&cleanedPath, "cleaned", "", "write the cleaned dataset (issue rows removed) to this path")
	rootCmd.Flags().StringVar(&nameColumn, "name-column", "", "column scanned for duplicate names (default from profile)")
}

func run(cmd *cobra.Command, args []string) error {
	cfg := validator.DefaultConfig()
	if profilePath != "" {
		var err error
		cfg, err = validator.LoadProfile(profilePath)
		if err != nil {
			return err
		}
	}
	if nameColumn != "" {
		cfg.NameColumn = nameColumn
	}

	session := validator.New(args[0], cfg)
	session.Load()
	session.Validate()

	issues := session.RowIssues()
	dupes := session.Duplicates()

	fmt.Println("Validation Results:")
	fmt.Println()
	for _, iss := range issues {
		fmt.Printf("Row %d: %s\n", iss.Row, strings.Join(iss.Issues, ", "))
	}

	if len(dupes) > 0 {
		fmt.Println("\nPotential Duplicates:")
		for _, d := range dupes {
			fmt.Printf("Row %d & Row %d: '%s' vs '%s'\n", d.I+2, d.J+2, d.NameA, d.NameB)
		}
	} else {
		fmt.Println("\nNo potential duplicate names found.")
	}

	report := session.WriteReport(reportPath)
	fmt.Println()
	fmt.Println(report)

	if len(issues) > 0 && issuesPath != "" {
		f, err := os.Create(issuesPath)
		if err != nil {
			return fmt.Errorf("write issues CSV: %w", err)
		}
		defer f.Close()
		if err := validator.WriteIssuesCSV(f, issues); err != nil {
			return fmt.Errorf("write issues CSV: %w", err)
		}
		fmt.Printf("\nIssues saved to %s\n", issuesPath)
	}

	if cleanedPath != "" {
		if tbl := session.CleanedTable(issues); tbl != nil {
			f, err := os.Create(cleanedPath)
			if err != nil {
				return fmt.Errorf("write cleaned dataset: %w", err)
			}
			defer f.Close()
			if err := table.WriteCSV(f, tbl); err != nil {
				return fmt.Errorf("write cleaned dataset: %w", err)
			}
			fmt.Printf("Cleaned dataset saved to %s\n", cleanedPath)
		}
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
