package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/krystal-group/stripe-statements/internal/classifier"
	"github.com/krystal-group/stripe-statements/internal/common"
	"github.com/krystal-group/stripe-statements/internal/companies"
	"github.com/krystal-group/stripe-statements/internal/currencyutils"
	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/fileutils"
	"github.com/krystal-group/stripe-statements/internal/logging"
	"github.com/krystal-group/stripe-statements/internal/models"
	"github.com/krystal-group/stripe-statements/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// errMissingValue marks a required column that was empty.
var errMissingValue = errors.New("missing value")

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// EnvDataDir is the environment variable naming the data directory.
const EnvDataDir = "STRIPE_CSV_DATA"

// DefaultDataDir is the working directory convention used when nothing is
// configured.
const DefaultDataDir = "complete_csv"

// ResolveDataDir picks the data directory: explicit configuration first,
// then the environment variable, then the working directory convention.
func ResolveDataDir(configured string) string {
	if configured != "" {
		return configured
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return env
	}
	return DefaultDataDir
}

// Loader reads transaction records for registered companies out of a data
// directory.
type Loader struct {
	dir string
	reg *companies.Registry
}

// New creates a loader over the given data directory.
func New(dir string, registry *companies.Registry) *Loader {
	return &Loader{dir: dir, reg: registry}
}

// registry returns the company registry the loader attributes files with.
func (l *Loader) registry() *companies.Registry {
	return l.reg
}

// DataDir returns the directory the loader reads from.
func (l *Loader) DataDir() string {
	return l.dir
}

// FileResult describes what one CSV file contributed.
type FileResult struct {
	Path        string
	Format      ExportFormat
	Records     int
	SkippedRows int
}

// LoadResult is the outcome of loading one company's files.
type LoadResult struct {
	Company     companies.Company
	Records     []models.TransactionRecord
	Files       []FileResult
	SkippedRows int
	Warnings    []string
	DirMissing  bool
}

// LoadCompany reads every CSV file attributed to the company. A missing
// data directory yields an empty result flagged as degraded rather than an
// error, so statements for other companies keep working.
func (l *Loader) LoadCompany(code string) (*LoadResult, error) {
	company, err := l.reg.Get(code)
	if err != nil {
		return nil, err
	}

	result := &LoadResult{Company: company}

	if !fileutils.DirectoryExists(l.dir) {
		log.WithFields(logrus.Fields{
			logging.FieldFile:    l.dir,
			logging.FieldCompany: company.Code,
		}).Warn("Data directory does not exist")
		result.DirMissing = true
		result.Warnings = append(result.Warnings, "data directory not found: "+l.dir)
		return result, nil
	}

	files, err := fileutils.ListFilesWithExtension(l.dir, ".csv")
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		owner, ok := l.reg.ForFile(path)
		if !ok || owner.Code != company.Code {
			continue
		}

		fileResult, records, warnings := l.loadFile(path, company)
		result.Files = append(result.Files, fileResult)
		result.Records = append(result.Records, records...)
		result.SkippedRows += fileResult.SkippedRows
		result.Warnings = append(result.Warnings, warnings...)
	}

	log.WithFields(logrus.Fields{
		logging.FieldCompany: company.Code,
		logging.FieldCount:   len(result.Records),
		logging.FieldSkipped: result.SkippedRows,
	}).Info("Loaded transaction records")

	return result, nil
}

// loadFile parses one CSV file in whichever shape it carries.
func (l *Loader) loadFile(path string, company companies.Company) (FileResult, []models.TransactionRecord, []string) {
	fileResult := FileResult{Path: path, Format: FormatUnknown}
	var warnings []string

	format, err := DetectFormat(path)
	if err != nil {
		warnings = append(warnings, "unreadable file skipped: "+path)
		log.WithError(err).WithField(logging.FieldFile, path).Warn("Skipping unreadable CSV file")
		return fileResult, nil, warnings
	}
	fileResult.Format = format

	var records []models.TransactionRecord
	switch format {
	case FormatUnified:
		records, fileResult.SkippedRows, err = l.parseUnified(path, company)
	case FormatItemised:
		records, fileResult.SkippedRows, err = l.parseItemised(path, company)
	default:
		warnings = append(warnings, "unrecognized CSV shape skipped: "+path)
		log.WithField(logging.FieldFile, path).Warn("Skipping CSV file with unrecognized header")
		return fileResult, nil, warnings
	}
	if err != nil {
		warnings = append(warnings, "unparseable file skipped: "+path)
		log.WithError(err).WithField(logging.FieldFile, path).Warn("Skipping unparseable CSV file")
		return fileResult, nil, warnings
	}

	fileResult.Records = len(records)
	return fileResult, records, warnings
}

// parseUnified converts unified payment rows into records. A refunded row
// produces both the original charge and a refund record dated at the
// refund date.
func (l *Loader) parseUnified(path string, company companies.Company) ([]models.TransactionRecord, int, error) {
	rows, err := common.ReadCSVFile[unifiedRow](path)
	if err != nil {
		return nil, 0, err
	}

	var records []models.TransactionRecord
	skipped := 0

	for i, row := range rows {
		rec, refund, err := convertUnifiedRow(row, company, path)
		if err != nil {
			skipped++
			log.WithError(err).WithFields(logrus.Fields{
				logging.FieldFile: path,
				"line":            i + 2,
			}).Warn("Skipping malformed row")
			continue
		}
		records = append(records, rec)
		if refund != nil {
			records = append(records, *refund)
		}
	}

	return records, skipped, nil
}

// convertUnifiedRow builds the charge record, plus a refund record when
// the row carries a refunded amount. The converted amount, when present,
// is preferred because it is denominated in the settlement currency the
// statement is kept in.
func convertUnifiedRow(row unifiedRow, company companies.Company, path string) (models.TransactionRecord, *models.TransactionRecord, error) {
	var zero models.TransactionRecord

	if strings.TrimSpace(row.ID) == "" {
		return zero, nil, &parsererror.RowParseError{File: path, Field: "id", Err: errMissingValue}
	}

	createdAt, err := dateutils.ParseDateString(row.CreatedDate)
	if err != nil || createdAt.IsZero() {
		return zero, nil, &parsererror.RowParseError{File: path, Field: "Created date (UTC)", Value: row.CreatedDate, Err: err}
	}

	gross, currency := row.Amount, row.Currency
	if strings.TrimSpace(row.ConvertedAmount) != "" {
		gross = row.ConvertedAmount
		if strings.TrimSpace(row.ConvertedCurrency) != "" {
			currency = row.ConvertedCurrency
		}
	}

	grossAmount, err := currencyutils.ParseAmount(gross)
	if err != nil {
		return zero, nil, err
	}
	feeAmount, err := currencyutils.ParseAmount(row.Fee)
	if err != nil {
		return zero, nil, err
	}

	transferDate, err := dateutils.ParseDateString(row.TransferDate)
	if err != nil {
		return zero, nil, &parsererror.DateFormatError{Value: row.TransferDate, Err: err}
	}

	rec := models.TransactionRecord{
		ID:                  row.ID,
		Company:             company.Code,
		CreatedAt:           createdAt,
		TransferDate:        transferDate,
		Gross:               grossAmount,
		Fee:                 feeAmount,
		Currency:            strings.ToUpper(strings.TrimSpace(currency)),
		Status:              models.ParseStatus(row.Status),
		Nature:              models.NaturePayment,
		CustomerEmail:       row.CustomerEmail,
		MetadataEmail:       row.MetadataEmail,
		CustomerDescription: row.CustomerDescription,
		MetadataUserID:      row.MetadataUserID,
		Description:         row.Description,
		SourceFile:          path,
	}

	refund, err := refundRecordFor(rec, row)
	if err != nil {
		return zero, nil, err
	}
	return rec, refund, nil
}

// refundRecordFor derives the refund record from a refunded unified row.
// The refund carries the refunded gross only; the fee on the original
// payment is not reversed.
func refundRecordFor(charge models.TransactionRecord, row unifiedRow) (*models.TransactionRecord, error) {
	if charge.Status != models.StatusRefunded {
		return nil, nil
	}

	refunded, err := currencyutils.ParseAmount(row.AmountRefunded)
	if err != nil {
		return nil, err
	}
	if !refunded.IsPositive() {
		return nil, nil
	}

	refundDate, err := dateutils.ParseDateString(row.RefundedDate)
	if err != nil {
		return nil, &parsererror.DateFormatError{Value: row.RefundedDate, Err: err}
	}
	if refundDate.IsZero() {
		refundDate = charge.CreatedAt
	}

	refund := charge
	refund.ID = charge.ID + "-refund"
	refund.CreatedAt = refundDate
	refund.Gross = refunded.Neg()
	refund.Fee = decimal.Zero
	refund.Nature = models.NatureRefund
	refund.Description = "Refund of " + charge.ID
	return &refund, nil
}

// parseItemised converts itemised balance activity rows into records.
func (l *Loader) parseItemised(path string, company companies.Company) ([]models.TransactionRecord, int, error) {
	rows, err := common.ReadCSVFile[itemisedRow](path)
	if err != nil {
		return nil, 0, err
	}

	var records []models.TransactionRecord
	skipped := 0

	for i, row := range rows {
		rec, err := convertItemisedRow(row, company, path)
		if err != nil {
			skipped++
			log.WithError(err).WithFields(logrus.Fields{
				logging.FieldFile: path,
				"line":            i + 2,
			}).Warn("Skipping malformed row")
			continue
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}

func convertItemisedRow(row itemisedRow, company companies.Company, path string) (models.TransactionRecord, error) {
	var zero models.TransactionRecord

	if strings.TrimSpace(row.BalanceTransactionID) == "" {
		return zero, &parsererror.RowParseError{File: path, Field: "balance_transaction_id", Err: errMissingValue}
	}

	createdAt, err := dateutils.ParseDateString(row.Created)
	if err != nil || createdAt.IsZero() {
		return zero, &parsererror.RowParseError{File: path, Field: "created", Value: row.Created, Err: err}
	}

	availableOn, err := dateutils.ParseDateString(row.AvailableOn)
	if err != nil {
		return zero, &parsererror.DateFormatError{Value: row.AvailableOn, Err: err}
	}

	gross, err := currencyutils.ParseAmount(row.Gross)
	if err != nil {
		return zero, err
	}
	fee, err := currencyutils.ParseAmount(row.Fee)
	if err != nil {
		return zero, err
	}

	// Itemised exports only contain settled balance activity.
	status := models.StatusSucceeded
	nature := classifier.NatureOf(row.ReportingCategory, row.BalanceTransactionID, status)
	if nature == models.NatureRefund {
		status = models.StatusRefunded
	}

	return models.TransactionRecord{
		ID:           row.BalanceTransactionID,
		Company:      company.Code,
		CreatedAt:    createdAt,
		TransferDate: availableOn,
		Gross:        gross,
		Fee:          fee,
		Currency:     strings.ToUpper(strings.TrimSpace(row.Currency)),
		Status:       status,
		Nature:       nature,
		Description:  row.Description,
		SourceFile:   path,
	}, nil
}

// CompanySubdir returns the path of a company's dedicated subdirectory
// under the data directory, whether or not it exists.
func (l *Loader) CompanySubdir(c companies.Company) string {
	if c.Subdir == "" {
		return l.dir
	}
	return filepath.Join(l.dir, c.Subdir)
}
