// Package classifier assigns each transaction its reconciliation tier and
// nature, and expands transactions into the debit and credit ledger entries
// that statements are built from.
package classifier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/krystal-group/stripe-statements/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// TierOf returns the reconciliation tier of a record. The mapping is total:
// every record lands in exactly one tier, and anything that is not a
// settled movement of money is excluded from balances rather than guessed
// at.
func TierOf(rec models.TransactionRecord) models.Tier {
	return rec.Status.Tier()
}

// NatureOf infers the nature of a transaction from its reporting category,
// identifier prefix and status. Used for the itemised export shape, where
// nature is not implied by the file layout.
func NatureOf(reportingCategory, id string, status models.TransactionStatus) models.Nature {
	switch strings.ToLower(strings.TrimSpace(reportingCategory)) {
	case "charge", "payment":
		return models.NaturePayment
	case "refund":
		return models.NatureRefund
	case "payout":
		if status == models.StatusFailed {
			return models.NaturePayoutReversal
		}
		return models.NaturePayout
	case "payout_reversal", "payout_failure":
		return models.NaturePayoutReversal
	case "fee", "stripe_fee":
		return models.NatureProcessingFee
	case "adjustment":
		return models.NatureAdjustment
	}

	switch {
	case strings.HasPrefix(id, "ch_"), strings.HasPrefix(id, "py_"), strings.HasPrefix(id, "pi_"):
		return models.NaturePayment
	case strings.HasPrefix(id, "re_"), strings.HasPrefix(id, "pyr_"):
		return models.NatureRefund
	case strings.HasPrefix(id, "po_"):
		if status == models.StatusFailed {
			return models.NaturePayoutReversal
		}
		return models.NaturePayout
	}

	return models.NatureAdjustment
}

// CustomerIdentity resolves the display name for the customer behind a
// record. The sources are tried in a fixed order because the exports fill
// different columns depending on how the checkout was integrated.
func CustomerIdentity(rec models.TransactionRecord) string {
	if v := strings.TrimSpace(rec.CustomerEmail); v != "" {
		return v
	}
	if v := strings.TrimSpace(rec.MetadataEmail); v != "" {
		return v
	}
	if v := strings.TrimSpace(rec.CustomerDescription); v != "" {
		return v
	}
	if v := strings.TrimSpace(rec.MetadataUserID); v != "" {
		return "User " + v
	}
	return "Unknown Customer"
}

// Expand converts one record into its ledger entries. Secondary tier
// records yield nothing. A payment yields a gross debit plus, when a fee
// was withheld, a processing fee credit against the processor. Refunds and
// payouts are credits, payout reversals are debits, adjustments follow the
// sign of their gross amount.
func Expand(rec models.TransactionRecord) []models.LedgerEntry {
	if TierOf(rec) != models.TierPrimary {
		return nil
	}

	switch rec.Nature {
	case models.NaturePayment:
		entries := []models.LedgerEntry{{
			Date:        rec.CreatedAt,
			Nature:      models.NaturePayment,
			Party:       CustomerIdentity(rec),
			Debit:       rec.Gross.Abs(),
			SourceID:    rec.ID,
			Description: rec.Description,
		}}
		if rec.Fee.IsPositive() {
			entries = append(entries, models.LedgerEntry{
				Date:        rec.CreatedAt,
				Nature:      models.NatureProcessingFee,
				Party:       models.PartyStripe,
				Credit:      rec.Fee,
				SourceID:    rec.ID,
				Description: fmt.Sprintf("Processing fee for %s", rec.ID),
			})
		}
		return entries

	case models.NatureRefund:
		return []models.LedgerEntry{{
			Date:        rec.CreatedAt,
			Nature:      models.NatureRefund,
			Party:       CustomerIdentity(rec),
			Credit:      rec.Gross.Abs(),
			SourceID:    rec.ID,
			Description: rec.Description,
		}}

	case models.NaturePayout:
		return []models.LedgerEntry{{
			Date:        rec.CreatedAt,
			Nature:      models.NaturePayout,
			Party:       "Bank",
			Credit:      rec.Gross.Abs(),
			SourceID:    rec.ID,
			Description: rec.Description,
		}}

	case models.NaturePayoutReversal:
		return []models.LedgerEntry{{
			Date:        rec.CreatedAt,
			Nature:      models.NaturePayoutReversal,
			Party:       "Bank",
			Debit:       rec.Gross.Abs(),
			SourceID:    rec.ID,
			Description: rec.Description,
		}}

	case models.NatureProcessingFee:
		return []models.LedgerEntry{{
			Date:        rec.CreatedAt,
			Nature:      models.NatureProcessingFee,
			Party:       models.PartyStripe,
			Credit:      rec.Gross.Abs(),
			SourceID:    rec.ID,
			Description: rec.Description,
		}}

	default:
		entry := models.LedgerEntry{
			Date:        rec.CreatedAt,
			Nature:      models.NatureAdjustment,
			Party:       models.PartyStripe,
			SourceID:    rec.ID,
			Description: rec.Description,
		}
		if rec.Gross.IsNegative() {
			entry.Credit = rec.Gross.Abs()
		} else {
			entry.Debit = rec.Gross
		}
		return []models.LedgerEntry{entry}
	}
}

// ExpandAll expands every record and returns the combined entries sorted
// by date, breaking ties by source identifier so repeated runs over the
// same data produce the same order.
func ExpandAll(records []models.TransactionRecord) []models.LedgerEntry {
	var entries []models.LedgerEntry
	excluded := 0
	for _, rec := range records {
		expanded := Expand(rec)
		if expanded == nil {
			excluded++
			continue
		}
		entries = append(entries, expanded...)
	}

	SortEntries(entries)

	if excluded > 0 {
		log.WithField("count", excluded).Debug("Excluded secondary tier records from ledger")
	}
	return entries
}

// SortEntries orders entries by date, then source identifier, then nature.
// The nature tiebreak keeps a payment's fee credit directly after its
// gross debit.
func SortEntries(entries []models.LedgerEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if entries[i].SourceID != entries[j].SourceID {
			return entries[i].SourceID < entries[j].SourceID
		}
		return entries[i].Nature == models.NaturePayment && entries[j].Nature == models.NatureProcessingFee
	})
}
