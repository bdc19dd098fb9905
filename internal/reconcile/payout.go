package reconcile

import (
	"time"

	"github.com/krystal-group/stripe-statements/internal/classifier"
	"github.com/krystal-group/stripe-statements/internal/companies"
	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/models"

	"github.com/sirupsen/logrus"
)

// PayoutReport reconciles one company month against bank payouts.
// Attribution is by transfer date, not creation date, which is what makes
// the report line up with what the bank actually received.
func (e *Engine) PayoutReport(code string, year int, month time.Month) (*models.PayoutReport, error) {
	loaded, err := e.loader.LoadCompany(code)
	if err != nil {
		return nil, err
	}

	report := PayoutFromRecords(loaded.Records, loaded.Company, year, month)

	log.WithFields(logrus.Fields{
		logging.FieldCompany: code,
		logging.FieldPeriod:  report.Period(),
		logging.FieldBalance: report.TotalPaidOut.StringFixed(2),
		logging.FieldMode:    "payout",
	}).Info("Reconciled payout report")

	return report, nil
}

// PayoutFromRecords is the pure payout reconciliation over an in-memory
// record set. Records without a transfer date have not been assigned to
// any payout yet and are excluded from both the month and the pending
// section. Payout records themselves are the transfers being reconciled
// against, not activity inside them, so they are skipped too.
func PayoutFromRecords(records []models.TransactionRecord, company companies.Company, year int, month time.Month) *models.PayoutReport {
	report := &models.PayoutReport{
		Company:     company.Code,
		CompanyName: company.Name,
		Year:        year,
		Month:       month,
		Currency:    company.Currency,
		GeneratedAt: time.Now().UTC(),
	}

	next := dateutils.NextMonth(year, month)

	for _, rec := range records {
		if classifier.TierOf(rec) != models.TierPrimary {
			continue
		}
		if !rec.HasTransferDate() {
			continue
		}
		if rec.Nature == models.NaturePayout {
			continue
		}

		inMonth := dateutils.InMonth(rec.TransferDate, year, month)
		pending := !rec.TransferDate.Before(next)
		if !inMonth && !pending {
			continue
		}

		switch rec.Nature {
		case models.NaturePayment:
			if inMonth {
				report.ChargeCount++
				report.ChargesGross = report.ChargesGross.Add(rec.Gross)
				report.ChargesFees = report.ChargesFees.Add(rec.Fee)
			} else {
				report.PendingChargeCount++
				report.PendingGross = report.PendingGross.Add(rec.Gross)
				report.PendingFees = report.PendingFees.Add(rec.Fee)
			}

		case models.NatureRefund:
			if inMonth {
				report.RefundCount++
				report.RefundsGross = report.RefundsGross.Add(rec.Gross)
			} else {
				report.PendingGross = report.PendingGross.Add(rec.Gross)
			}

		case models.NaturePayoutReversal:
			if inMonth {
				report.ReversalCount++
				report.ReversalsGross = report.ReversalsGross.Add(rec.Gross.Abs())
			} else {
				report.PendingReversals = report.PendingReversals.Add(rec.Gross.Abs())
			}

		default:
			// Adjustments follow their sign into the gross buckets.
			if inMonth {
				report.ChargesGross = report.ChargesGross.Add(rec.Gross)
				report.ChargesFees = report.ChargesFees.Add(rec.Fee)
			} else {
				report.PendingGross = report.PendingGross.Add(rec.Gross)
				report.PendingFees = report.PendingFees.Add(rec.Fee)
			}
		}
	}

	report.TotalPaidOut = report.ChargesGross.
		Sub(report.ChargesFees).
		Add(report.RefundsGross).
		Add(report.ReversalsGross)

	report.EndingBalance = report.PendingGross.
		Sub(report.PendingFees).
		Add(report.PendingReversals)

	return report
}
