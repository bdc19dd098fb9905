// Package statement assembles printable monthly statements from reconciled
// ledgers. The builder recomputes the running balance row by row and
// refuses to emit a statement whose rows do not land exactly on the
// engine's closing balance.
package statement

import (
	"fmt"

	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/models"
	"github.com/krystal-group/stripe-statements/internal/parsererror"
	"github.com/krystal-group/stripe-statements/internal/reconcile"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Build turns a reconciled month into a full statement: opening row, one
// row per ledger entry with the balance after it, a subtotal row, the
// closing row and the customer payment summary.
func Build(result *reconcile.MonthlyResult) (*models.Statement, error) {
	st := models.NewStatement(
		result.Company.Code,
		result.Company.Name,
		result.Year,
		result.Month,
		result.Company.Currency,
	)
	st.OpeningBalance = result.Opening
	st.TotalDebits = result.TotalDebits
	st.TotalCredits = result.TotalCredits
	st.ClosingBalance = result.Closing
	st.OpeningDefaulted = result.OpeningDefaulted
	st.SkippedRows = result.SkippedRows
	st.Warnings = append(st.Warnings, result.Warnings...)

	st.Rows = append(st.Rows, models.StatementRow{
		Kind:    models.RowOpening,
		Date:    dateutils.StartOfMonth(result.Year, result.Month),
		Label:   models.OpeningRowLabel,
		Balance: result.Opening,
	})

	running := result.Opening
	for _, entry := range result.Entries {
		running = running.Add(entry.Delta())
		st.Rows = append(st.Rows, models.StatementRow{
			Kind:        models.RowEntry,
			Date:        entry.Date,
			Label:       entry.Nature.Label(),
			Party:       entry.Party,
			Debit:       entry.Debit,
			Credit:      entry.Credit,
			Balance:     running,
			SourceID:    entry.SourceID,
			Description: entry.Description,
		})
	}

	if !running.Equal(result.Closing) {
		return nil, &parsererror.ReconciliationError{
			Company:  result.Company.Code,
			Period:   st.Period(),
			Expected: result.Closing,
			Actual:   running,
		}
	}

	st.Rows = append(st.Rows, models.StatementRow{
		Kind:   models.RowSubtotal,
		Label:  models.SubtotalLabel,
		Debit:  result.TotalDebits,
		Credit: result.TotalCredits,
	})
	st.Rows = append(st.Rows, models.StatementRow{
		Kind:    models.RowClosing,
		Date:    dateutils.NextMonth(result.Year, result.Month).AddDate(0, 0, -1),
		Label:   models.ClosingRowLabel,
		Balance: result.Closing,
	})

	buildCustomerSummary(st, result)

	log.WithFields(logrus.Fields{
		logging.FieldCompany: st.Company,
		logging.FieldPeriod:  st.Period(),
		logging.FieldCount:   len(st.Rows),
		logging.FieldBalance: st.ClosingBalance.StringFixed(2),
	}).Info("Built monthly statement")

	return st, nil
}

// buildCustomerSummary lists each payment received during the month, in
// chronological order, with the sum at the end. Fee, refund and payout
// rows do not belong to a customer and stay out.
func buildCustomerSummary(st *models.Statement, result *reconcile.MonthlyResult) {
	for _, entry := range result.Entries {
		if entry.Nature != models.NaturePayment {
			continue
		}
		description := entry.Description
		if description == "" {
			description = fmt.Sprintf("Payment %s", entry.SourceID)
		}
		st.Customers = append(st.Customers, models.CustomerEntry{
			Date:        entry.Date,
			Name:        entry.Party,
			Amount:      entry.Debit,
			Description: description,
		})
		st.CustomerTotal = st.CustomerTotal.Add(entry.Debit)
	}
}
