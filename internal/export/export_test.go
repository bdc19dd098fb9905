package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/krystal-group/stripe-statements/internal/models"

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

func sampleStatement() *models.Statement {
	st := models.NewStatement("cgge", "CGGE", 2025, time.July, "HKD")
	st.OpeningBalance = dec("100.00")
	st.TotalDebits = dec("134.29")
	st.TotalCredits = dec("5.17")
	st.ClosingBalance = dec("229.12")

	day14 := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)
	st.Rows = []models.StatementRow{
		{Kind: models.RowOpening, Date: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), Label: models.OpeningRowLabel, Balance: dec("100.00")},
		{Kind: models.RowEntry, Date: day14, Label: "Gross Payment", Party: "jane@example.com", Debit: dec("134.29"), Balance: dec("234.29"), SourceID: "ch_1", Description: "Course fee"},
		{Kind: models.RowEntry, Date: day14, Label: "Processing Fee", Party: models.PartyStripe, Credit: dec("5.17"), Balance: dec("229.12"), SourceID: "ch_1"},
		{Kind: models.RowSubtotal, Label: models.SubtotalLabel, Debit: dec("134.29"), Credit: dec("5.17")},
		{Kind: models.RowClosing, Date: time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), Label: models.ClosingRowLabel, Balance: dec("229.12")},
	}
	st.Customers = []models.CustomerEntry{
		{Date: day14, Name: "jane@example.com", Amount: dec("134.29"), Description: "Course fee"},
	}
	st.CustomerTotal = dec("134.29")
	return st
}

func TestRenderCSV(t *testing.T) {
	data, err := RenderCSV(sampleStatement())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Date,Nature,Party,Debit,Credit,Balance,Acknowledged,Description", lines[0])
	assert.Equal(t, "2025-07-01,Opening Balance/Brought Forward,,,,100.00,,", lines[1])
	assert.Equal(t, "2025-07-14,Gross Payment,jane@example.com,134.29,,234.29,,Course fee", lines[2])
	assert.Equal(t, "2025-07-14,Processing Fee,Stripe,,5.17,229.12,,", lines[3])
	assert.Equal(t, ",Subtotal,,134.29,5.17,,,", lines[4])
	assert.Equal(t, "2025-07-31,Closing Balance/Carry Forward,,,,229.12,,", lines[5])
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "statement.csv")
	require.NoError(t, WriteCSV(sampleStatement(), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Closing Balance/Carry Forward")
}

func TestRenderHTML(t *testing.T) {
	data, err := RenderHTML(sampleStatement())
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<title>CGGE Statement July 2025</title>")
	assert.Contains(t, html, "Opening Balance/Brought Forward")
	assert.Contains(t, html, "HK$134.29")
	assert.Contains(t, html, "jane@example.com")
	assert.Contains(t, html, "Customer Payments")
	assert.NotContains(t, html, "@media print")
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	st := sampleStatement()
	st.Rows[1].Description = "<script>alert(1)</script>"

	data, err := RenderHTML(st)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "<script>alert(1)</script>")
}

func TestRenderPrintHTML(t *testing.T) {
	data, err := RenderPrintHTML(sampleStatement())
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "@media print")
	assert.Contains(t, html, "size: A4")
	assert.Contains(t, html, "Closing Balance/Carry Forward")
}

func TestRenderHTMLShowsOpeningDefaultedWarning(t *testing.T) {
	st := sampleStatement()
	st.OpeningDefaulted = true

	data, err := RenderHTML(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Opening balance defaulted")
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statement.html")
	require.NoError(t, WriteHTML(sampleStatement(), path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "@media print")
}
