// Package models defines the core data structures shared by the loader,
// classifier, reconciliation engine and exporters.
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the normalized lifecycle state of a transaction.
// Raw export values like "Paid" are mapped onto this closed set.
type TransactionStatus string

const (
	StatusSucceeded TransactionStatus = "succeeded"
	StatusRefunded  TransactionStatus = "refunded"
	StatusFailed    TransactionStatus = "failed"
	StatusCanceled  TransactionStatus = "canceled"
	StatusPending   TransactionStatus = "pending"
	StatusUnknown   TransactionStatus = "unknown"
)

// ParseStatus normalizes a raw status value from a CSV export.
// Values the exports are known to use ("Paid", "Refunded", ...) map onto
// the closed enum; anything else becomes StatusUnknown.
func ParseStatus(raw string) TransactionStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "succeeded", "available":
		return StatusSucceeded
	case "refunded", "refund":
		return StatusRefunded
	case "failed":
		return StatusFailed
	case "canceled", "cancelled":
		return StatusCanceled
	case "pending":
		return StatusPending
	default:
		return StatusUnknown
	}
}

// Tier determines whether a transaction participates in balance
// calculations (primary) or is carried for reporting only (secondary).
type Tier string

const (
	TierPrimary   Tier = "primary"
	TierSecondary Tier = "secondary"
)

// Tier maps a status onto its reconciliation tier. Only succeeded and
// refunded transactions move money, so only they are primary. Unknown
// statuses fail safe into the secondary tier.
func (s TransactionStatus) Tier() Tier {
	switch s {
	case StatusSucceeded, StatusRefunded:
		return TierPrimary
	default:
		return TierSecondary
	}
}

// Nature describes what kind of money movement a transaction represents.
type Nature string

const (
	NaturePayment        Nature = "payment"
	NatureRefund         Nature = "refund"
	NaturePayout         Nature = "payout"
	NaturePayoutReversal Nature = "payout_reversal"
	NatureProcessingFee  Nature = "processing_fee"
	NatureAdjustment     Nature = "adjustment"
)

// Label returns the display name used on statement rows.
func (n Nature) Label() string {
	switch n {
	case NaturePayment:
		return "Gross Payment"
	case NatureRefund:
		return "Refund"
	case NaturePayout:
		return "Payout"
	case NaturePayoutReversal:
		return "Payout Reversal"
	case NatureProcessingFee:
		return "Processing Fee"
	default:
		return "Adjustment"
	}
}

// TransactionRecord is a single normalized transaction from a CSV export.
// Amounts are exact decimals; CreatedAt drives monthly statements while
// TransferDate (zero when the funds have not reached the bank yet) drives
// payout reconciliation.
type TransactionRecord struct {
	ID           string
	Company      string
	CreatedAt    time.Time
	TransferDate time.Time
	Gross        decimal.Decimal
	Fee          decimal.Decimal
	Currency     string
	Status       TransactionStatus
	Nature       Nature

	// Raw identity columns, resolved into a display name by the
	// classifier's fallback chain.
	CustomerEmail       string
	MetadataEmail       string
	CustomerDescription string
	MetadataUserID      string

	Description string
	SourceFile  string
}

// HasTransferDate reports whether the funds for this record have been
// assigned to a bank payout.
func (r TransactionRecord) HasTransferDate() bool {
	return !r.TransferDate.IsZero()
}

// Net returns gross minus fee.
func (r TransactionRecord) Net() decimal.Decimal {
	return r.Gross.Sub(r.Fee)
}
