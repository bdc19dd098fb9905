// Package reconcile computes opening and closing balances for monthly
// statements and reconciles bank payouts. It has two views over the same
// records: the monthly statement view keyed on creation date and the
// payout view keyed on the date funds reached the bank.
package reconcile

import (
	"time"

	"github.com/krystal-group/stripe-statements/internal/classifier"
	"github.com/krystal-group/stripe-statements/internal/companies"
	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/loader"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/models"
	"github.com/krystal-group/stripe-statements/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// MonthlyResult is the reconciled ledger for one company month, the input
// to the statement builder.
type MonthlyResult struct {
	Company companies.Company
	Year    int
	Month   time.Month

	Opening          decimal.Decimal
	OpeningDefaulted bool
	Entries          []models.LedgerEntry
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	Closing          decimal.Decimal

	SkippedRows int
	Warnings    []string
}

// Engine loads a company's records and reconciles them.
type Engine struct {
	loader *loader.Loader
}

// NewEngine creates an engine over the given loader.
func NewEngine(l *loader.Loader) *Engine {
	return &Engine{loader: l}
}

// MonthlyStatement reconciles one company month by creation date.
// openingOverride, when non-nil, is taken verbatim as the opening balance;
// otherwise the opening is carried forward from all prior activity.
func (e *Engine) MonthlyStatement(code string, year int, month time.Month, openingOverride *decimal.Decimal) (*MonthlyResult, error) {
	loaded, err := e.loader.LoadCompany(code)
	if err != nil {
		return nil, err
	}

	result, err := MonthlyFromRecords(loaded.Records, loaded.Company, year, month, openingOverride)
	if err != nil {
		return nil, err
	}

	result.SkippedRows = loaded.SkippedRows
	result.Warnings = append(result.Warnings, loaded.Warnings...)

	log.WithFields(logrus.Fields{
		logging.FieldCompany: code,
		logging.FieldPeriod:  dateutils.FormatDate(dateutils.StartOfMonth(year, month), "2006-01"),
		logging.FieldBalance: result.Closing.StringFixed(2),
		logging.FieldMode:    "monthly",
	}).Info("Reconciled monthly statement")

	return result, nil
}

// MonthlyFromRecords is the pure reconciliation over an in-memory record
// set. Secondary tier records are excluded before anything is summed.
func MonthlyFromRecords(records []models.TransactionRecord, company companies.Company, year int, month time.Month, openingOverride *decimal.Decimal) (*MonthlyResult, error) {
	if len(records) == 0 && openingOverride == nil {
		return nil, &parsererror.PeriodNotFoundError{Company: company.Code, Year: year, Month: month}
	}

	entries := classifier.ExpandAll(records)
	start := dateutils.StartOfMonth(year, month)
	next := dateutils.NextMonth(year, month)

	result := &MonthlyResult{
		Company: company,
		Year:    year,
		Month:   month,
	}

	switch {
	case openingOverride != nil:
		result.Opening = *openingOverride
	default:
		prior := entriesBefore(entries, start)
		if len(prior) == 0 {
			// No history to carry forward. Zero is an assumption, not a
			// fact, so it is flagged rather than silent.
			result.Opening = decimal.Zero
			result.OpeningDefaulted = true
			result.Warnings = append(result.Warnings, "no prior activity, opening balance defaulted to 0.00")
		} else {
			result.Opening = models.SumDeltas(prior)
		}
	}

	for _, entry := range entries {
		if entry.Date.Before(start) || !entry.Date.Before(next) {
			continue
		}
		result.Entries = append(result.Entries, entry)
		result.TotalDebits = result.TotalDebits.Add(entry.Debit)
		result.TotalCredits = result.TotalCredits.Add(entry.Credit)
	}

	result.Closing = result.Opening.Add(result.TotalDebits).Sub(result.TotalCredits)
	return result, nil
}

// entriesBefore returns the entries dated strictly before the cutoff.
// Summing them collapses the month-by-month carry forward into one prefix
// sum; the two agree because each month's closing is its opening plus its
// own entries.
func entriesBefore(entries []models.LedgerEntry, cutoff time.Time) []models.LedgerEntry {
	var prior []models.LedgerEntry
	for _, e := range entries {
		if e.Date.Before(cutoff) {
			prior = append(prior, e)
		}
	}
	return prior
}

// CarryForward returns the balance carried into the given month from all
// earlier activity, and whether any earlier activity exists.
func CarryForward(records []models.TransactionRecord, year int, month time.Month) (decimal.Decimal, bool) {
	entries := classifier.ExpandAll(records)
	prior := entriesBefore(entries, dateutils.StartOfMonth(year, month))
	return models.SumDeltas(prior), len(prior) > 0
}

// PreviousBalance loads a company and returns the carry forward into the
// given month.
func (e *Engine) PreviousBalance(code string, year int, month time.Month) (decimal.Decimal, bool, error) {
	loaded, err := e.loader.LoadCompany(code)
	if err != nil {
		return decimal.Zero, false, err
	}
	balance, found := CarryForward(loaded.Records, year, month)
	return balance, found, nil
}
