package statement

import (
	"testing"
	"time"

	"github.com/krystal-group/stripe-statements/internal/companies"
	"github.com/krystal-group/stripe-statements/internal/models"
	"github.com/krystal-group/stripe-statements/internal/parsererror"
	"github.com/krystal-group/stripe-statements/internal/reconcile"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func sampleResult() *reconcile.MonthlyResult {
	day14 := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)
	day18 := time.Date(2025, 7, 18, 10, 0, 0, 0, time.UTC)

	return &reconcile.MonthlyResult{
		Company: companies.Company{Code: "cgge", Name: "CGGE", Currency: "HKD"},
		Year:    2025,
		Month:   time.July,
		Opening: dec("100.00"),
		Entries: []models.LedgerEntry{
			{Date: day14, Nature: models.NaturePayment, Party: "jane@example.com", Debit: dec("134.29"), SourceID: "ch_1", Description: "Course fee"},
			{Date: day14, Nature: models.NatureProcessingFee, Party: models.PartyStripe, Credit: dec("5.17"), SourceID: "ch_1"},
			{Date: day18, Nature: models.NaturePayout, Party: "Bank", Credit: dec("129.12"), SourceID: "po_1"},
		},
		TotalDebits:  dec("134.29"),
		TotalCredits: dec("134.29"),
		Closing:      dec("100.00"),
	}
}

func TestBuildStatementRows(t *testing.T) {
	st, err := Build(sampleResult())
	require.NoError(t, err)

	require.Len(t, st.Rows, 6)

	opening := st.Rows[0]
	assert.Equal(t, models.RowOpening, opening.Kind)
	assert.Equal(t, models.OpeningRowLabel, opening.Label)
	assert.Equal(t, "100.00", opening.Balance.StringFixed(2))

	payment := st.Rows[1]
	assert.Equal(t, models.RowEntry, payment.Kind)
	assert.Equal(t, "Gross Payment", payment.Label)
	assert.Equal(t, "234.29", payment.Balance.StringFixed(2))

	fee := st.Rows[2]
	assert.Equal(t, "Processing Fee", fee.Label)
	assert.Equal(t, "229.12", fee.Balance.StringFixed(2))

	payout := st.Rows[3]
	assert.Equal(t, "Payout", payout.Label)
	assert.Equal(t, "100.00", payout.Balance.StringFixed(2))

	subtotal := st.Rows[4]
	assert.Equal(t, models.RowSubtotal, subtotal.Kind)
	assert.Equal(t, "134.29", subtotal.Debit.StringFixed(2))
	assert.Equal(t, "134.29", subtotal.Credit.StringFixed(2))

	closing := st.Rows[5]
	assert.Equal(t, models.RowClosing, closing.Kind)
	assert.Equal(t, models.ClosingRowLabel, closing.Label)
	assert.Equal(t, "100.00", closing.Balance.StringFixed(2))
	assert.Equal(t, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), closing.Date)
}

func TestBuildStatementMetadata(t *testing.T) {
	st, err := Build(sampleResult())
	require.NoError(t, err)

	assert.Equal(t, "cgge", st.Company)
	assert.Equal(t, "CGGE", st.CompanyName)
	assert.Equal(t, "July 2025", st.PeriodLabel())
	assert.Equal(t, "HKD", st.Currency)
	assert.NotEmpty(t, st.ID)
}

func TestBuildCustomerSummary(t *testing.T) {
	st, err := Build(sampleResult())
	require.NoError(t, err)

	require.Len(t, st.Customers, 1)
	assert.Equal(t, "jane@example.com", st.Customers[0].Name)
	assert.Equal(t, "134.29", st.Customers[0].Amount.StringFixed(2))
	assert.Equal(t, "Course fee", st.Customers[0].Description)
	assert.Equal(t, "134.29", st.CustomerTotal.StringFixed(2))
}

func TestBuildRejectsInconsistentClosing(t *testing.T) {
	result := sampleResult()
	result.Closing = dec("999.99")

	_, err := Build(result)
	require.Error(t, err)

	var recErr *parsererror.ReconciliationError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, "cgge", recErr.Company)
	assert.Equal(t, "999.99", recErr.Expected.StringFixed(2))
	assert.Equal(t, "100.00", recErr.Actual.StringFixed(2))
}

func TestBuildZeroActivity(t *testing.T) {
	result := &reconcile.MonthlyResult{
		Company:          companies.Company{Code: "ki", Name: "Krystal Institute", Currency: "HKD"},
		Year:             2025,
		Month:            time.March,
		Opening:          dec("50.00"),
		Closing:          dec("50.00"),
		OpeningDefaulted: false,
	}

	st, err := Build(result)
	require.NoError(t, err)

	// Opening, subtotal and closing only.
	require.Len(t, st.Rows, 3)
	assert.Equal(t, "50.00", st.Rows[2].Balance.StringFixed(2))
	assert.Empty(t, st.Customers)
}

func TestBuildCarriesWarnings(t *testing.T) {
	result := sampleResult()
	result.OpeningDefaulted = true
	result.SkippedRows = 3
	result.Warnings = []string{"two rows skipped in cgge_payments.csv"}

	st, err := Build(result)
	require.NoError(t, err)

	assert.True(t, st.OpeningDefaulted)
	assert.Equal(t, 3, st.SkippedRows)
	assert.Contains(t, st.Warnings[0], "skipped")
}
