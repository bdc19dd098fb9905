package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PayoutReport reconciles one month of bank payouts for a company. It is
// shaped to line up field for field with the payout report the processor
// publishes, so the two can be compared side by side.
//
// Sign conventions follow the source data: charge amounts are positive,
// refund gross amounts are negative (money returned to customers) and
// payout reversal amounts are positive (failed transfers coming back).
type PayoutReport struct {
	Company     string
	CompanyName string
	Year        int
	Month       time.Month
	Currency    string

	ChargeCount  int
	ChargesGross decimal.Decimal
	ChargesFees  decimal.Decimal

	RefundCount  int
	RefundsGross decimal.Decimal

	ReversalCount  int
	ReversalsGross decimal.Decimal

	// TotalPaidOut is what actually reached the bank during the month:
	// charges gross minus fees, plus refunds (negative) and reversals.
	TotalPaidOut decimal.Decimal

	// Activity already created but scheduled for a transfer after the
	// month's end. EndingBalance is its net value, the amount still held
	// by the processor when the month closes.
	PendingChargeCount int
	PendingGross       decimal.Decimal
	PendingFees        decimal.Decimal
	PendingReversals   decimal.Decimal
	EndingBalance      decimal.Decimal

	GeneratedAt time.Time
}

// Period returns the machine readable period, e.g. "2025-07".
func (r *PayoutReport) Period() string {
	return fmt.Sprintf("%04d-%02d", r.Year, int(r.Month))
}

// PeriodLabel returns the human readable period, e.g. "July 2025".
func (r *PayoutReport) PeriodLabel() string {
	return fmt.Sprintf("%s %d", r.Month.String(), r.Year)
}
