// Package export renders assembled statements and payout reports as CSV,
// HTML and print-ready (PDF layout) documents. Exporters format what the
// builder produced; no totals are recomputed here.
package export

import (
	"github.com/krystal-group/stripe-statements/internal/common"
	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/models"

	"github.com/gocarina/gocsv"
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

// statementCSVRow is the flat CSV layout of one statement line. The column
// set is the established accounting export shape, including the manual
// Acknowledged tick column, so it stays open in the same spreadsheets as
// before.
type statementCSVRow struct {
	Date         string `csv:"Date"`
	Nature       string `csv:"Nature"`
	Party        string `csv:"Party"`
	Debit        string `csv:"Debit"`
	Credit       string `csv:"Credit"`
	Balance      string `csv:"Balance"`
	Acknowledged string `csv:"Acknowledged"`
	Description  string `csv:"Description"`
}

// csvAmount renders an amount cell, leaving structural zeroes blank the
// way the accounting export always has.
func csvAmount(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.StringFixed(2)
}

func statementRows(st *models.Statement) []statementCSVRow {
	rows := make([]statementCSVRow, 0, len(st.Rows))
	for _, row := range st.Rows {
		out := statementCSVRow{
			Nature:      row.Label,
			Party:       row.Party,
			Description: row.Description,
		}
		if !row.Date.IsZero() {
			out.Date = dateutils.ToISODate(row.Date)
		}

		switch row.Kind {
		case models.RowOpening, models.RowClosing:
			out.Balance = row.Balance.StringFixed(2)
		case models.RowSubtotal:
			out.Debit = row.Debit.StringFixed(2)
			out.Credit = row.Credit.StringFixed(2)
		default:
			out.Debit = csvAmount(row.Debit)
			out.Credit = csvAmount(row.Credit)
			out.Balance = row.Balance.StringFixed(2)
		}
		rows = append(rows, out)
	}
	return rows
}

// RenderCSV renders a statement as CSV bytes.
func RenderCSV(st *models.Statement) ([]byte, error) {
	data, err := gocsv.MarshalBytes(statementRows(st))
	if err != nil {
		return nil, err
	}
	return data, nil
}

// WriteCSV writes a statement CSV to a file.
func WriteCSV(st *models.Statement, filePath string) error {
	if err := common.WriteCSVFile(statementRows(st), filePath); err != nil {
		return err
	}
	log.WithField("file", filePath).Info("Wrote statement CSV")
	return nil
}
