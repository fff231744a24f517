package document

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// InvoiceData is the data bound to the dues invoice template
type InvoiceData struct {
	AssociationName    string
	AssociationAddress string
	InvoiceNumber      string
	IssueDate          time.Time
	DueDate            time.Time
	BillToName         string
	BlockLot           string
	Email              string
	Phone              string
	Description        string
	Amount             decimal.Decimal
	AdminContact       string
}

// ReceiptData is the data bound to the payment receipt template
type ReceiptData struct {
	AssociationName    string
	AssociationAddress string
	ReceiptNumber      string
	ReferenceNumber    string
	PaymentDate        time.Time
	PaidByName         string
	BlockLot           string
	Description        string
	Amount             decimal.Decimal
	ProcessingFee      decimal.Decimal
	AdminContact       string
}

// TemplateEngine renders association documents to HTML ready for the
// PDF renderer
type TemplateEngine struct {
	invoice *template.Template
	receipt *template.Template
}

// NewTemplateEngine parses the built-in document templates
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"formatMoney": formatMoney,
		"formatDate":  formatDate,
		"upper":       strings.ToUpper,
		"title":       titleCase,
	}

	invoice, err := template.New("invoice").Funcs(funcMap).Parse(invoiceTemplate)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse invoice template", err)
	}
	receipt, err := template.New("receipt").Funcs(funcMap).Parse(receiptTemplate)
	if err != nil {
		return nil, NewRenderError(ErrCodeInvalidHTML, "failed to parse receipt template", err)
	}

	return &TemplateEngine{
		invoice: invoice,
		receipt: receipt,
	}, nil
}

// RenderInvoice renders the dues invoice template to HTML
func (e *TemplateEngine) RenderInvoice(data InvoiceData) (string, error) {
	var buf bytes.Buffer
	if err := e.invoice.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute invoice template", err)
	}
	return buf.String(), nil
}

// RenderReceipt renders the payment receipt template to HTML
func (e *TemplateEngine) RenderReceipt(data ReceiptData) (string, error) {
	var buf bytes.Buffer
	if err := e.receipt.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute receipt template", err)
	}
	return buf.String(), nil
}

// formatMoney formats a decimal value as Philippine pesos
// Example: 4500 -> "₱4,500.00"
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + "₱" + result.String() + "." + decPart
}

// formatDate formats a time as a long-form date
// Example: "January 15, 2025"
func formatDate(t time.Time) string {
	return t.Format("January 2, 2006")
}

// titleCase converts a string to title case
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

const documentStyle = `
  body { font-family: Helvetica, Arial, sans-serif; color: #222; font-size: 13px; }
  .header { text-align: center; margin-bottom: 24px; }
  .header h1 { margin: 0; font-size: 20px; letter-spacing: 2px; }
  .header p { margin: 4px 0; color: #555; }
  .doc-title { font-size: 16px; font-weight: bold; margin: 16px 0 8px; }
  .meta td { padding: 2px 12px 2px 0; }
  table.items { width: 100%; border-collapse: collapse; margin: 16px 0; }
  table.items th, table.items td { border: 1px solid #999; padding: 8px; text-align: left; }
  table.items th { background: #f0f0f0; }
  table.items td.amount, table.items th.amount { text-align: right; }
  .total-row td { font-weight: bold; }
  .confirmed { color: #1a7f37; font-size: 15px; font-weight: bold; margin: 16px 0; }
  .footer { margin-top: 32px; text-align: center; color: #555; font-size: 12px; }
`

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>` + documentStyle + `</style>
</head>
<body>
  <div class="header">
    <h1>{{upper .AssociationName}}</h1>
    <p>{{.AssociationAddress}}</p>
  </div>

  <div class="doc-title">Monthly Dues Invoice</div>

  <table class="meta">
    <tr><td>Invoice No.</td><td>{{.InvoiceNumber}}</td></tr>
    <tr><td>Issue Date</td><td>{{formatDate .IssueDate}}</td></tr>
    <tr><td>Due Date</td><td>{{formatDate .DueDate}}</td></tr>
  </table>

  <div class="doc-title">Bill To</div>
  <table class="meta">
    <tr><td>Name</td><td>{{.BillToName}}</td></tr>
    <tr><td>Block/Lot</td><td>{{.BlockLot}}</td></tr>
    <tr><td>Email</td><td>{{.Email}}</td></tr>
    {{if .Phone}}<tr><td>Phone</td><td>{{.Phone}}</td></tr>{{end}}
  </table>

  <table class="items">
    <tr><th>Description</th><th class="amount">Amount</th></tr>
    <tr><td>{{.Description}}</td><td class="amount">{{formatMoney .Amount}}</td></tr>
    <tr class="total-row"><td>Total Due</td><td class="amount">{{formatMoney .Amount}}</td></tr>
  </table>

  <p>Payment is due on or before {{formatDate .DueDate}}. Please settle at the
  association office or through any accredited payment channel.</p>

  <div class="footer">
    <p>Thank you for your prompt payment!</p>
    <p>{{.AdminContact}}</p>
  </div>
</body>
</html>`

const receiptTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>` + documentStyle + `</style>
</head>
<body>
  <div class="header">
    <h1>{{upper .AssociationName}}</h1>
    <p>{{.AssociationAddress}}</p>
  </div>

  <div class="doc-title">PAYMENT RECEIPT</div>

  <table class="meta">
    <tr><td>Receipt No.</td><td>{{.ReceiptNumber}}</td></tr>
    <tr><td>Reference No.</td><td>{{.ReferenceNumber}}</td></tr>
    <tr><td>Payment Date</td><td>{{formatDate .PaymentDate}}</td></tr>
    <tr><td>Received From</td><td>{{.PaidByName}}</td></tr>
    <tr><td>Block/Lot</td><td>{{.BlockLot}}</td></tr>
  </table>

  <table class="items">
    <tr><th>Description</th><th class="amount">Amount</th></tr>
    <tr><td>{{.Description}}</td><td class="amount">{{formatMoney .Amount}}</td></tr>
    <tr><td>Processing Fee</td><td class="amount">{{formatMoney .ProcessingFee}}</td></tr>
    <tr class="total-row"><td>Total Paid</td><td class="amount">{{formatMoney .Amount}}</td></tr>
  </table>

  <div class="confirmed">PAYMENT CONFIRMED</div>

  <div class="footer">
    <p>This receipt is system generated and valid without signature.</p>
    <p>{{.AdminContact}}</p>
  </div>
</body>
</html>`
