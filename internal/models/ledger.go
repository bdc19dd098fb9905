package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartyStripe is the counterparty recorded on processing fee rows.
const PartyStripe = "Stripe"

// LedgerEntry is a single debit or credit line derived from a transaction.
// Exactly one of Debit and Credit is non-zero. Debits increase the
// processor balance (money collected on our behalf), credits decrease it
// (fees withheld, refunds returned, payouts transferred to the bank).
type LedgerEntry struct {
	Date        time.Time
	Nature      Nature
	Party       string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	SourceID    string
	Description string
}

// Delta returns the signed effect of the entry on the running balance.
func (e LedgerEntry) Delta() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// IsDebit reports whether the entry carries a debit amount.
func (e LedgerEntry) IsDebit() bool {
	return !e.Debit.IsZero()
}

// SumDeltas adds up the signed effect of a slice of entries.
func SumDeltas(entries []LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Delta())
	}
	return total
}
