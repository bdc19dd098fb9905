package export

import (
	"bytes"
	"html/template"

	"github.com/krystal-group/stripe-statements/internal/currencyutils"
	"github.com/krystal-group/stripe-statements/internal/dateutils"
	"github.com/krystal-group/stripe-statements/internal/fileutils"
	"github.com/krystal-group/stripe-statements/internal/models"

	"github.com/shopspring/decimal"
)

// statementTemplate renders the monthly statement table plus the customer
// summary. The print block at the top only activates in print mode, which
// is how the PDF output works: the document is laid out for A4 and handed
// to a print-to-PDF step.
const statementTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.CompanyName}} Statement {{.PeriodLabel}}</title>
<style>
body { font-family: "Helvetica Neue", Arial, sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; margin-bottom: 0; }
h2 { font-size: 1.1em; margin-top: 2em; }
p.meta { color: #666; margin-top: 0.2em; }
table { border-collapse: collapse; width: 100%; margin-top: 1em; }
th, td { border: 1px solid #ccc; padding: 6px 10px; font-size: 0.9em; }
th { background: #f2f2f2; text-align: left; }
td.num { text-align: right; font-variant-numeric: tabular-nums; }
tr.structural td { font-weight: bold; background: #fafafa; }
p.warning { color: #b00; }
{{if .Print}}
@page { size: A4; margin: 18mm; }
@media print {
  body { margin: 0; }
  tr { page-break-inside: avoid; }
}
{{end}}
</style>
</head>
<body>
<h1>{{.CompanyName}}</h1>
<p class="meta">Monthly Statement &middot; {{.PeriodLabel}} &middot; {{.Currency}} &middot; Ref {{.Ref}}</p>
{{if .OpeningDefaulted}}<p class="warning">Opening balance defaulted to 0.00: no prior activity on record.</p>{{end}}
{{range .Warnings}}<p class="warning">{{.}}</p>{{end}}

<table>
<thead>
<tr><th>Date</th><th>Nature</th><th>Party</th><th>Debit</th><th>Credit</th><th>Balance</th><th>Description</th></tr>
</thead>
<tbody>
{{range .Rows}}
<tr{{if .Structural}} class="structural"{{end}}>
<td>{{.Date}}</td>
<td>{{.Label}}</td>
<td>{{.Party}}</td>
<td class="num">{{.Debit}}</td>
<td class="num">{{.Credit}}</td>
<td class="num">{{.Balance}}</td>
<td>{{.Description}}</td>
</tr>
{{end}}
</tbody>
</table>

{{if .Customers}}
<h2>Customer Payments</h2>
<table>
<thead>
<tr><th>Date</th><th>Customer</th><th>Amount</th><th>Description</th></tr>
</thead>
<tbody>
{{range .Customers}}
<tr>
<td>{{.Date}}</td>
<td>{{.Name}}</td>
<td class="num">{{.Amount}}</td>
<td>{{.Description}}</td>
</tr>
{{end}}
<tr class="structural"><td></td><td>Total</td><td class="num">{{.CustomerTotal}}</td><td></td></tr>
</tbody>
</table>
{{end}}
</body>
</html>
`

var statementTmpl = template.Must(template.New("statement").Parse(statementTemplate))

type htmlRow struct {
	Date        string
	Label       string
	Party       string
	Debit       string
	Credit      string
	Balance     string
	Description string
	Structural  bool
}

type htmlCustomer struct {
	Date        string
	Name        string
	Amount      string
	Description string
}

type htmlStatement struct {
	CompanyName      string
	PeriodLabel      string
	Currency         string
	Ref              string
	OpeningDefaulted bool
	Warnings         []string
	Rows             []htmlRow
	Customers        []htmlCustomer
	CustomerTotal    string
	Print            bool
}

func money(d decimal.Decimal, currency string) string {
	return currencyutils.FormatAmount(d, currency)
}

func htmlAmount(d decimal.Decimal, currency string) string {
	if d.IsZero() {
		return ""
	}
	return money(d, currency)
}

func htmlData(st *models.Statement, print bool) htmlStatement {
	data := htmlStatement{
		CompanyName:      st.CompanyName,
		PeriodLabel:      st.PeriodLabel(),
		Currency:         st.Currency,
		Ref:              st.ID.String(),
		OpeningDefaulted: st.OpeningDefaulted,
		Warnings:         st.Warnings,
		CustomerTotal:    money(st.CustomerTotal, st.Currency),
		Print:            print,
	}

	for _, row := range st.Rows {
		out := htmlRow{
			Label:       row.Label,
			Party:       row.Party,
			Description: row.Description,
			Structural:  row.Kind != models.RowEntry,
		}
		if !row.Date.IsZero() {
			out.Date = dateutils.ToISODate(row.Date)
		}
		switch row.Kind {
		case models.RowOpening, models.RowClosing:
			out.Balance = money(row.Balance, st.Currency)
		case models.RowSubtotal:
			out.Debit = money(row.Debit, st.Currency)
			out.Credit = money(row.Credit, st.Currency)
		default:
			out.Debit = htmlAmount(row.Debit, st.Currency)
			out.Credit = htmlAmount(row.Credit, st.Currency)
			out.Balance = money(row.Balance, st.Currency)
		}
		data.Rows = append(data.Rows, out)
	}

	for _, c := range st.Customers {
		data.Customers = append(data.Customers, htmlCustomer{
			Date:        dateutils.ToISODate(c.Date),
			Name:        c.Name,
			Amount:      money(c.Amount, st.Currency),
			Description: c.Description,
		})
	}

	return data
}

// RenderHTML renders a statement as a standalone HTML document.
func RenderHTML(st *models.Statement) ([]byte, error) {
	var buf bytes.Buffer
	if err := statementTmpl.Execute(&buf, htmlData(st, false)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderPrintHTML renders the print-ready variant of the statement, laid
// out for A4 so a print-to-PDF step produces the archival document.
func RenderPrintHTML(st *models.Statement) ([]byte, error) {
	var buf bytes.Buffer
	if err := statementTmpl.Execute(&buf, htmlData(st, true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteHTML writes a rendered statement document to a file.
func WriteHTML(st *models.Statement, filePath string, print bool) error {
	var (
		data []byte
		err  error
	)
	if print {
		data, err = RenderPrintHTML(st)
	} else {
		data, err = RenderHTML(st)
	}
	if err != nil {
		return err
	}

	if err := fileutils.WriteFile(filePath, data, 0600); err != nil {
		return err
	}
	log.WithField("file", filePath).Info("Wrote statement document")
	return nil
}
