// Package statement handles the monthly statement command
package statement

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/krystal-group/stripe-statements/cmd/root"
	"github.com/krystal-group/stripe-statements/internal/export"
	"github.com/krystal-group/stripe-statements/internal/models"
	"github.com/krystal-group/stripe-statements/internal/statement"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the statement command
var Cmd = &cobra.Command{
	Use:   "statement",
	Short: "Generate a monthly statement for a company",
	Long: `Generate a monthly statement for one company and period.

The statement lists every primary transaction of the month in date order
with a running balance, framed by opening and closing balance rows, and
appends a customer payment summary.

Example:
  stripe-statements statement -c cgge -y 2025 -m 7 -f csv -o cgge-july.csv`,
	Run: statementFunc,
}

func statementFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Statement command called")

	company := root.SharedFlags.Company
	if company == "" {
		root.Log.Fatal("A company code must be specified with --company")
	}
	year, month, err := resolvePeriod()
	if err != nil {
		root.Log.Fatalf("Invalid period: %v", err)
	}

	var opening *decimal.Decimal
	if raw := root.SharedFlags.Opening; raw != "" {
		value, err := decimal.NewFromString(raw)
		if err != nil {
			root.Log.Fatalf("Invalid opening balance %q: %v", raw, err)
		}
		opening = &value
	}

	_, engine, _, err := root.Components()
	if err != nil {
		root.Log.Fatalf("Failed to initialize: %v", err)
	}

	result, err := engine.MonthlyStatement(company, year, month, opening)
	if err != nil {
		root.Log.Fatalf("Failed to reconcile %s %04d-%02d: %v", company, year, int(month), err)
	}

	st, err := statement.Build(result)
	if err != nil {
		root.Log.Fatalf("Failed to build statement: %v", err)
	}

	if err := writeStatement(st, root.SharedFlags.Format, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Failed to write statement: %v", err)
	}
	root.Log.Infof("Statement for %s %s generated successfully!", st.CompanyName, st.PeriodLabel())
}

// resolvePeriod defaults to the previous calendar month when no period flags
// are given, which is the common case for month-end runs.
func resolvePeriod() (int, time.Month, error) {
	year := root.SharedFlags.Year
	monthNum := root.SharedFlags.Month

	if year == 0 && monthNum == 0 {
		prev := time.Now().UTC().AddDate(0, -1, 0)
		return prev.Year(), prev.Month(), nil
	}
	if year < 1 {
		return 0, 0, fmt.Errorf("invalid year: %d", year)
	}
	if monthNum < 1 || monthNum > 12 {
		return 0, 0, fmt.Errorf("invalid month: %d", monthNum)
	}
	return year, time.Month(monthNum), nil
}

func writeStatement(st *models.Statement, format, output string) error {
	switch format {
	case "", "json":
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		return emit(append(data, '\n'), output)
	case "html":
		data, err := export.RenderHTML(st)
		if err != nil {
			return err
		}
		return emit(data, output)
	case "pdf":
		data, err := export.RenderPrintHTML(st)
		if err != nil {
			return err
		}
		return emit(data, output)
	case "csv":
		data, err := export.RenderCSV(st)
		if err != nil {
			return err
		}
		return emit(data, output)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func emit(data []byte, output string) error {
	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0600)
}
