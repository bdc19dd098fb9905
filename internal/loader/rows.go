// Package loader discovers CSV export files in the data directory and
// parses them into normalized transaction records. Two export shapes are
// supported: the unified payments export and the itemised balance activity
// export. Files are attributed to companies by the registry, malformed rows
// are skipped and counted, never fatal.
package loader

import (
	"github.com/krystal-group/stripe-statements/internal/common"
)

// ExportFormat identifies which export shape a CSV file carries.
type ExportFormat string

const (
	FormatUnified  ExportFormat = "unified"
	FormatItemised ExportFormat = "itemised"
	FormatUnknown  ExportFormat = "unknown"
)

// unifiedRow maps the unified payments export. Column names follow the
// dashboard export verbatim, including the numbered metadata columns.
// Exports from different dashboard versions add extra columns; gocsv
// ignores anything not listed here.
type unifiedRow struct {
	ID                  string `csv:"id"`
	CreatedDate         string `csv:"Created date (UTC)"`
	Amount              string `csv:"Amount"`
	AmountRefunded      string `csv:"Amount Refunded"`
	Currency            string `csv:"Currency"`
	ConvertedAmount     string `csv:"Converted Amount"`
	ConvertedCurrency   string `csv:"Converted Currency"`
	Fee                 string `csv:"Fee"`
	Status              string `csv:"Status"`
	Description         string `csv:"Description"`
	CustomerEmail       string `csv:"Customer Email"`
	CustomerDescription string `csv:"Customer Description"`
	RefundedDate        string `csv:"Refunded date (UTC)"`
	TransferDate        string `csv:"Transfer Date (UTC)"`
	MetadataEmail       string `csv:"2. User email (metadata)"`
	MetadataUserID      string `csv:"userID (metadata)"`
}

// itemisedRow maps the itemised balance activity export. available_on is
// the date the funds reached (or will reach) the bank, which makes it the
// transfer date for payout reconciliation.
type itemisedRow struct {
	BalanceTransactionID string `csv:"balance_transaction_id"`
	Created              string `csv:"created"`
	AvailableOn          string `csv:"available_on"`
	Gross                string `csv:"gross"`
	Fee                  string `csv:"fee"`
	Net                  string `csv:"net"`
	Currency             string `csv:"currency"`
	ReportingCategory    string `csv:"reporting_category"`
	Description          string `csv:"description"`
}

// Required header signatures for format detection. The unified signature
// keys on the dashboard's verbose column names, the itemised one on the
// snake_case reporting columns. Optional columns like the transfer date
// are deliberately not part of the signature.
var (
	unifiedRequiredColumns  = []string{"id", "Created date (UTC)", "Amount", "Status"}
	itemisedRequiredColumns = []string{"balance_transaction_id", "created", "available_on", "gross", "fee", "reporting_category"}
)

// DetectFormat sniffs a CSV file's header and reports which export shape
// it carries.
func DetectFormat(filePath string) (ExportFormat, error) {
	header, err := common.ReadHeader(filePath)
	if err != nil {
		return FormatUnknown, err
	}
	if header == nil {
		return FormatUnknown, nil
	}

	if common.HasColumns(header, itemisedRequiredColumns) {
		return FormatItemised, nil
	}
	if common.HasColumns(header, unifiedRequiredColumns) {
		return FormatUnified, nil
	}
	return FormatUnknown, nil
}
