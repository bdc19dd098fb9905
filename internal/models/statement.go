package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RowKind distinguishes the structural rows of a statement from the
// transaction rows between them.
type RowKind string

const (
	RowOpening  RowKind = "opening"
	RowEntry    RowKind = "entry"
	RowSubtotal RowKind = "subtotal"
	RowClosing  RowKind = "closing"
)

// Statement row labels for the opening and closing lines. The wording is
// part of the exported CSV contract.
const (
	OpeningRowLabel = "Opening Balance/Brought Forward"
	ClosingRowLabel = "Closing Balance/Carry Forward"
	SubtotalLabel   = "Subtotal"
)

// StatementRow is one printed line of a monthly statement. Entry rows carry
// a debit or credit plus the running balance after the row; opening and
// closing rows carry only the balance; the subtotal row carries the period
// debit and credit totals.
type StatementRow struct {
	Kind        RowKind
	Date        time.Time
	Label       string
	Party       string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	SourceID    string
	Description string
}

// CustomerEntry is one line of the customer payment summary appended to a
// monthly statement.
type CustomerEntry struct {
	Date        time.Time
	Name        string
	Amount      decimal.Decimal
	Description string
}

// Statement is a fully assembled monthly statement for one company.
// All totals are computed by the reconciliation engine and the builder;
// exporters only format what is here.
type Statement struct {
	ID          uuid.UUID
	Company     string
	CompanyName string
	Year        int
	Month       time.Month
	Currency    string

	OpeningBalance   decimal.Decimal
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	ClosingBalance   decimal.Decimal
	OpeningDefaulted bool

	Rows          []StatementRow
	Customers     []CustomerEntry
	CustomerTotal decimal.Decimal

	SkippedRows int
	Warnings    []string
	GeneratedAt time.Time
}

// NewStatement creates an empty statement shell with a fresh identifier.
func NewStatement(company, companyName string, year int, month time.Month, currency string) *Statement {
	return &Statement{
		ID:          uuid.New(),
		Company:     company,
		CompanyName: companyName,
		Year:        year,
		Month:       month,
		Currency:    currency,
		GeneratedAt: time.Now().UTC(),
	}
}

// PeriodLabel returns the human readable period, e.g. "July 2025".
func (s *Statement) PeriodLabel() string {
	return fmt.Sprintf("%s %d", s.Month.String(), s.Year)
}

// Period returns the machine readable period, e.g. "2025-07".
func (s *Statement) Period() string {
	return fmt.Sprintf("%04d-%02d", s.Year, int(s.Month))
}
