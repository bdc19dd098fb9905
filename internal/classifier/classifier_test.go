package classifier

import (
	"testing"
	"time"

	"github.com/krystal-group/stripe-statements/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(nature models.Nature, status models.TransactionStatus, gross, fee string) models.TransactionRecord {
	g, _ := decimal.NewFromString(gross)
	f, _ := decimal.NewFromString(fee)
	return models.TransactionRecord{
		ID:        "ch_test",
		CreatedAt: time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC),
		Gross:     g,
		Fee:       f,
		Status:    status,
		Nature:    nature,
	}
}

func TestNatureOf(t *testing.T) {
	tests := []struct {
		name     string
		category string
		id       string
		status   models.TransactionStatus
		expected models.Nature
	}{
		{"charge category", "charge", "txn_1", models.StatusSucceeded, models.NaturePayment},
		{"refund category", "refund", "txn_2", models.StatusRefunded, models.NatureRefund},
		{"payout category", "payout", "po_1", models.StatusSucceeded, models.NaturePayout},
		{"failed payout is reversal", "payout", "po_2", models.StatusFailed, models.NaturePayoutReversal},
		{"explicit reversal category", "payout_reversal", "po_3", models.StatusSucceeded, models.NaturePayoutReversal},
		{"fee category", "fee", "txn_3", models.StatusSucceeded, models.NatureProcessingFee},
		{"charge id prefix", "", "ch_abc", models.StatusSucceeded, models.NaturePayment},
		{"payment intent prefix", "", "py_abc", models.StatusSucceeded, models.NaturePayment},
		{"refund id prefix", "", "re_abc", models.StatusRefunded, models.NatureRefund},
		{"payout id prefix", "", "po_abc", models.StatusSucceeded, models.NaturePayout},
		{"failed payout id prefix", "", "po_abc", models.StatusFailed, models.NaturePayoutReversal},
		{"unrecognized falls to adjustment", "", "xx_abc", models.StatusSucceeded, models.NatureAdjustment},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NatureOf(tc.category, tc.id, tc.status))
		})
	}
}

func TestCustomerIdentityFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		rec      models.TransactionRecord
		expected string
	}{
		{
			"email wins",
			models.TransactionRecord{CustomerEmail: "a@x.com", MetadataEmail: "b@x.com", CustomerDescription: "desc", MetadataUserID: "42"},
			"a@x.com",
		},
		{
			"metadata email second",
			models.TransactionRecord{MetadataEmail: "b@x.com", CustomerDescription: "desc", MetadataUserID: "42"},
			"b@x.com",
		},
		{
			"description third",
			models.TransactionRecord{CustomerDescription: "Jane Customer", MetadataUserID: "42"},
			"Jane Customer",
		},
		{
			"user id last",
			models.TransactionRecord{MetadataUserID: "42"},
			"User 42",
		},
		{
			"nothing known",
			models.TransactionRecord{},
			"Unknown Customer",
		},
		{
			"blank email skipped",
			models.TransactionRecord{CustomerEmail: "   ", MetadataEmail: "b@x.com"},
			"b@x.com",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, CustomerIdentity(tc.rec))
		})
	}
}

func TestExpandPaymentWithFee(t *testing.T) {
	rec := record(models.NaturePayment, models.StatusSucceeded, "134.29", "5.17")
	rec.CustomerEmail = "jane@example.com"

	entries := Expand(rec)
	require.Len(t, entries, 2)

	assert.Equal(t, models.NaturePayment, entries[0].Nature)
	assert.Equal(t, "jane@example.com", entries[0].Party)
	assert.Equal(t, "134.29", entries[0].Debit.StringFixed(2))
	assert.True(t, entries[0].Credit.IsZero())

	assert.Equal(t, models.NatureProcessingFee, entries[1].Nature)
	assert.Equal(t, models.PartyStripe, entries[1].Party)
	assert.Equal(t, "5.17", entries[1].Credit.StringFixed(2))
	assert.True(t, entries[1].Debit.IsZero())
}

func TestExpandPaymentWithoutFee(t *testing.T) {
	entries := Expand(record(models.NaturePayment, models.StatusSucceeded, "100.00", "0"))
	require.Len(t, entries, 1)
	assert.Equal(t, models.NaturePayment, entries[0].Nature)
}

func TestExpandRefundIsCreditRegardlessOfSign(t *testing.T) {
	for _, gross := range []string{"50.00", "-50.00"} {
		entries := Expand(record(models.NatureRefund, models.StatusRefunded, gross, "0"))
		require.Len(t, entries, 1)
		assert.Equal(t, "50.00", entries[0].Credit.StringFixed(2))
		assert.True(t, entries[0].Debit.IsZero())
	}
}

func TestExpandPayoutAndReversal(t *testing.T) {
	payout := Expand(record(models.NaturePayout, models.StatusSucceeded, "2000.00", "0"))
	require.Len(t, payout, 1)
	assert.Equal(t, "2000.00", payout[0].Credit.StringFixed(2))

	reversal := Expand(record(models.NaturePayoutReversal, models.StatusSucceeded, "54.35", "0"))
	require.Len(t, reversal, 1)
	assert.Equal(t, "54.35", reversal[0].Debit.StringFixed(2))
}

func TestExpandAdjustmentFollowsSign(t *testing.T) {
	up := Expand(record(models.NatureAdjustment, models.StatusSucceeded, "10.00", "0"))
	require.Len(t, up, 1)
	assert.Equal(t, "10.00", up[0].Debit.StringFixed(2))

	down := Expand(record(models.NatureAdjustment, models.StatusSucceeded, "-10.00", "0"))
	require.Len(t, down, 1)
	assert.Equal(t, "10.00", down[0].Credit.StringFixed(2))
}

func TestExpandSecondaryTierYieldsNothing(t *testing.T) {
	for _, status := range []models.TransactionStatus{
		models.StatusFailed, models.StatusCanceled, models.StatusPending, models.StatusUnknown,
	} {
		rec := record(models.NaturePayment, status, "100.00", "3.00")
		assert.Nil(t, Expand(rec), "status %s should not produce entries", status)
	}
}

func TestExpandAllOrdering(t *testing.T) {
	day1 := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)

	recs := []models.TransactionRecord{
		{ID: "ch_b", CreatedAt: day2, Gross: decimal.NewFromInt(20), Status: models.StatusSucceeded, Nature: models.NaturePayment},
		{ID: "ch_a", CreatedAt: day1, Gross: decimal.NewFromInt(10), Fee: decimal.NewFromInt(1), Status: models.StatusSucceeded, Nature: models.NaturePayment},
		{ID: "ch_z", CreatedAt: day1, Gross: decimal.NewFromInt(5), Status: models.StatusFailed, Nature: models.NaturePayment},
	}

	entries := ExpandAll(recs)
	require.Len(t, entries, 3)

	assert.Equal(t, "ch_a", entries[0].SourceID)
	assert.Equal(t, models.NaturePayment, entries[0].Nature)
	assert.Equal(t, "ch_a", entries[1].SourceID)
	assert.Equal(t, models.NatureProcessingFee, entries[1].Nature)
	assert.Equal(t, "ch_b", entries[2].SourceID)
}
