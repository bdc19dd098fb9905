// Package parsererror defines the typed errors raised while loading,
// classifying and reconciling transaction data.
package parsererror

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RowParseError represents a CSV row that could not be converted into a
// transaction record. Rows failing this way are skipped and counted, not
// fatal.
type RowParseError struct {
	File  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("%s line %d: failed to parse %s='%s': %v",
		e.File, e.Line, e.Field, e.Value, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}

// DateFormatError represents a date value that matched none of the known
// export formats.
type DateFormatError struct {
	Value string
	Err   error
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("unrecognized date format: '%s'", e.Value)
}

func (e *DateFormatError) Unwrap() error {
	return e.Err
}

// DataSourceError represents a data directory or file that could not be
// used at all, as opposed to individual bad rows.
type DataSourceError struct {
	Path   string
	Reason string
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source unavailable at %s: %s", e.Path, e.Reason)
}

// InvalidFormatError represents a CSV file whose header matches none of the
// supported export shapes.
type InvalidFormatError struct {
	FilePath string
	Msg      string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s", e.FilePath, e.Msg)
}

// ReconciliationError is raised when the running balance recomputed over
// statement rows does not land on the closing balance the engine derived.
// A statement failing this check is never published.
type ReconciliationError struct {
	Company  string
	Period   string
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("statement for %s %s does not reconcile: running balance %s, expected closing %s",
		e.Company, e.Period, e.Actual.StringFixed(2), e.Expected.StringFixed(2))
}

// PeriodNotFoundError is raised when a statement is requested for a
// company and month with no transaction history at all before or during
// the period and no opening override to anchor it.
type PeriodNotFoundError struct {
	Company string
	Year    int
	Month   time.Month
}

func (e *PeriodNotFoundError) Error() string {
	return fmt.Sprintf("no transaction data for %s in %s %d", e.Company, e.Month, e.Year)
}

// UnknownCompanyError is raised when a company code is not in the registry.
type UnknownCompanyError struct {
	Code string
}

func (e *UnknownCompanyError) Error() string {
	return fmt.Sprintf("unknown company code: %s", e.Code)
}
