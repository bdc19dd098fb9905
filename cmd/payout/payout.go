// Package payout handles the payout reconciliation command
package payout

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/krystal-group/stripe-statements/cmd/root"
	"github.com/krystal-group/stripe-statements/internal/currencyutils"
	"github.com/krystal-group/stripe-statements/internal/models"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Cmd represents the payout command
var Cmd = &cobra.Command{
	Use:   "payout",
	Short: "Reconcile Stripe payouts for a company and month",
	Long: `Reconcile Stripe payouts for one company and month.

Transactions are grouped by their transfer date rather than their created
date, so the report answers what Stripe actually paid out during the month
and what is still pending transfer.

Example:
  stripe-statements payout -c cgge -y 2025 -m 7`,
	Run: payoutFunc,
}

func payoutFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Payout command called")

	company := root.SharedFlags.Company
	if company == "" {
		root.Log.Fatal("A company code must be specified with --company")
	}
	year := root.SharedFlags.Year
	monthNum := root.SharedFlags.Month
	if year < 1 || monthNum < 1 || monthNum > 12 {
		root.Log.Fatalf("Invalid period: %04d-%02d", year, monthNum)
	}

	_, engine, registry, err := root.Components()
	if err != nil {
		root.Log.Fatalf("Failed to initialize: %v", err)
	}

	report, err := engine.PayoutReport(company, year, time.Month(monthNum))
	if err != nil {
		root.Log.Fatalf("Failed to reconcile payouts for %s %04d-%02d: %v", company, year, monthNum, err)
	}

	currency := "HKD"
	if c, err := registry.Get(company); err == nil {
		currency = c.Currency
	}

	if err := writeReport(report, currency, root.SharedFlags.Format, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Failed to write payout report: %v", err)
	}
	root.Log.Info("Payout reconciliation completed successfully!")
}

func writeReport(report *models.PayoutReport, currency, format, output string) error {
	var data []byte
	switch format {
	case "", "json":
		var err error
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
	case "text":
		data = []byte(summarize(report, currency))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(output, data, 0600)
}

func summarize(r *models.PayoutReport, currency string) string {
	money := func(d decimal.Decimal) string {
		return currencyutils.FormatAmount(d, currency)
	}
	return fmt.Sprintf(
		"Charges:   %d for %s (fees %s)\n"+
			"Refunds:   %d for %s\n"+
			"Reversals: %d for %s\n"+
			"Paid out:  %s\n"+
			"Pending:   %d charges, ending balance %s\n",
		r.ChargeCount, money(r.ChargesGross), money(r.ChargesFees),
		r.RefundCount, money(r.RefundsGross),
		r.ReversalCount, money(r.ReversalsGross),
		money(r.TotalPaidOut),
		r.PendingChargeCount, money(r.EndingBalance),
	)
}
