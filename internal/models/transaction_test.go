package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected TransactionStatus
	}{
		{"paid maps to succeeded", "Paid", StatusSucceeded},
		{"lowercase paid", "paid", StatusSucceeded},
		{"already normalized", "succeeded", StatusSucceeded},
		{"refunded", "Refunded", StatusRefunded},
		{"failed", "Failed", StatusFailed},
		{"canceled", "Canceled", StatusCanceled},
		{"british spelling", "Cancelled", StatusCanceled},
		{"pending", "Pending", StatusPending},
		{"whitespace trimmed", "  Paid  ", StatusSucceeded},
		{"unknown value", "Disputed", StatusUnknown},
		{"empty", "", StatusUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseStatus(tc.raw))
		})
	}
}

func TestStatusTier(t *testing.T) {
	tests := []struct {
		status TransactionStatus
		tier   Tier
	}{
		{StatusSucceeded, TierPrimary},
		{StatusRefunded, TierPrimary},
		{StatusFailed, TierSecondary},
		{StatusCanceled, TierSecondary},
		{StatusPending, TierSecondary},
		{StatusUnknown, TierSecondary},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.tier, tc.status.Tier())
		})
	}
}

func TestLedgerEntryDelta(t *testing.T) {
	debit := LedgerEntry{Debit: decimal.NewFromFloat(134.29)}
	credit := LedgerEntry{Credit: decimal.NewFromFloat(5.17)}

	assert.Equal(t, "134.29", debit.Delta().StringFixed(2))
	assert.Equal(t, "-5.17", credit.Delta().StringFixed(2))
	assert.True(t, debit.IsDebit())
	assert.False(t, credit.IsDebit())
}

func TestSumDeltas(t *testing.T) {
	entries := []LedgerEntry{
		{Debit: decimal.NewFromFloat(100.00)},
		{Credit: decimal.NewFromFloat(3.20)},
		{Credit: decimal.NewFromFloat(96.80)},
	}
	assert.True(t, SumDeltas(entries).IsZero())
}

func TestTransactionRecordHelpers(t *testing.T) {
	rec := TransactionRecord{
		Gross: decimal.NewFromFloat(134.29),
		Fee:   decimal.NewFromFloat(5.17),
	}
	assert.Equal(t, "129.12", rec.Net().StringFixed(2))
	assert.False(t, rec.HasTransferDate())

	rec.TransferDate = time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.True(t, rec.HasTransferDate())
}

func TestStatementPeriod(t *testing.T) {
	st := NewStatement("cgge", "CGGE", 2025, time.July, "HKD")
	assert.Equal(t, "July 2025", st.PeriodLabel())
	assert.Equal(t, "2025-07", st.Period())
	assert.NotEqual(t, st.ID.String(), NewStatement("cgge", "CGGE", 2025, time.July, "HKD").ID.String())
}

func TestNatureLabel(t *testing.T) {
	assert.Equal(t, "Gross Payment", NaturePayment.Label())
	assert.Equal(t, "Processing Fee", NatureProcessingFee.Label())
	assert.Equal(t, "Payout Reversal", NaturePayoutReversal.Label())
	assert.Equal(t, "Adjustment", NatureAdjustment.Label())
}
