// services/invoice_render.go
package services

import (
	"bytes"
	"fmt"
	"html/template"

	"voltworks-backend/models"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.Invoice.InvoiceNumber}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice { max-width: 820px; margin: 0 auto; }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #1d4ed8;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta { text-align: right; font-size: 14px; }
    .meta .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .section { margin-bottom: 24px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals { margin-top: 12px; text-align: right; font-size: 16px; }
    .status {
      display: inline-block;
      padding: 4px 10px;
      border-radius: 4px;
      background: #eff6ff;
      color: #1d4ed8;
      font-size: 12px;
      text-transform: uppercase;
    }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <h1>{{.Business.BusinessName}}</h1>
        <div>{{.Business.BusinessAddress}}</div>
        {{if .Business.VATNumber}}<div>VAT: {{.Business.VATNumber}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Invoice</div>
        <div>{{.Invoice.InvoiceNumber}}</div>
        {{if .Invoice.DueDate}}<div class="label">Due</div><div>{{.Invoice.DueDate}}</div>{{end}}
        <div class="status">{{.Invoice.Status}}</div>
      </div>
    </div>
    <div class="section">
      <div class="label">Billed to</div>
      <div>{{.Invoice.ClientName}}</div>
      {{if .Invoice.ClientEmail}}<div>{{.Invoice.ClientEmail}}</div>{{end}}
    </div>
    <table>
      <tr><th>Description</th><th>Amount</th></tr>
      <tr><td>{{if .Invoice.Notes}}{{.Invoice.Notes}}{{else}}Electrical work{{end}}</td><td>{{.Amount}}</td></tr>
    </table>
    <div class="totals">Total due: <strong>{{.Amount}}</strong></div>
  </div>
</body>
</html>
`

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceHTMLTemplate))

// RenderInvoiceHTML renders a printable invoice document.
func RenderInvoiceHTML(business models.User, invoice models.Invoice) (string, error) {
	data := struct {
		Business models.User
		Invoice  models.Invoice
		Amount   string
	}{
		Business: business,
		Invoice:  invoice,
		Amount:   fmt.Sprintf("£%.2f", invoice.Amount),
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return buf.String(), nil
}
