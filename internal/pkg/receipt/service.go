// internal/pkg/receipt/service.go
package receipt

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Reboyy/grocery-grid-guardian-30/internal/config"
	"github.com/Reboyy/grocery-grid-guardian-30/internal/domain/sale"
	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Service renders receipts from committed sales. Rendering is pure
// formatting; the same sale always produces the same document.
type Service struct {
	config *config.Config
}

// NewService creates a new receipt service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// Data holds everything a rendered receipt shows
type Data struct {
	StoreName     string
	StoreAddress  string
	StorePhone    string
	ReceiptNumber string
	CashierName   string
	Timestamp     time.Time
	Items         []sale.SaleItem
	Total         int64
	PaymentMethod string
	Footer        string
}

// Build assembles receipt data from a sale and the cashier's display name
func (s *Service) Build(sl *sale.Sale, cashierName string) *Data {
	return &Data{
		StoreName:     s.config.Store.Name,
		StoreAddress:  s.config.Store.Address,
		StorePhone:    s.config.Store.Phone,
		ReceiptNumber: sl.ReceiptNumber,
		CashierName:   cashierName,
		Timestamp:     sl.CreatedAt,
		Items:         sl.Items,
		Total:         sl.TotalAmount,
		PaymentMethod: string(sl.PaymentMethod),
		Footer:        s.config.Store.ReceiptFooter,
	}
}

const lineWidth = 40

// RenderText formats the receipt for a 40-column line printer
func RenderText(data *Data) string {
	var b strings.Builder

	writeCentered(&b, data.StoreName)
	if data.StoreAddress != "" {
		writeCentered(&b, data.StoreAddress)
	}
	if data.StorePhone != "" {
		writeCentered(&b, data.StorePhone)
	}
	b.WriteString(strings.Repeat("=", lineWidth) + "\n")

	fmt.Fprintf(&b, "Receipt: %s\n", data.ReceiptNumber)
	fmt.Fprintf(&b, "Cashier: %s\n", data.CashierName)
	fmt.Fprintf(&b, "Date:    %s\n", data.Timestamp.Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("-", lineWidth) + "\n")

	for _, item := range data.Items {
		// Truncate by runes; printed width is rune-based and a byte cut
		// could split a multi-byte character
		name := item.Name
		if runes := []rune(name); len(runes) > 22 {
			name = string(runes[:22])
		}
		fmt.Fprintf(&b, "%-22s %3dx %10s\n", name, item.Quantity, formatCents(item.Subtotal))
	}

	b.WriteString(strings.Repeat("-", lineWidth) + "\n")
	fmt.Fprintf(&b, "%-26s %12s\n", "TOTAL", formatCents(data.Total))
	fmt.Fprintf(&b, "%-26s %12s\n", "PAYMENT", strings.ToUpper(data.PaymentMethod))
	b.WriteString(strings.Repeat("=", lineWidth) + "\n")

	if data.Footer != "" {
		writeCentered(&b, data.Footer)
	}

	return b.String()
}

// RenderPDF converts the receipt to a printable PDF document
func (s *Service) RenderPDF(data *Data) (*bytes.Buffer, error) {
	htmlContent, err := renderHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set("A5")

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.Zoom.Set(0.95)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func renderHTML(data *Data) (string, error) {
	tmpl := template.Must(template.New("receipt").Funcs(template.FuncMap{
		"cents": formatCents,
	}).Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func writeCentered(b *strings.Builder, text string) {
	width := utf8.RuneCountInString(text)
	if width >= lineWidth {
		b.WriteString(text + "\n")
		return
	}
	pad := (lineWidth - width) / 2
	b.WriteString(strings.Repeat(" ", pad) + text + "\n")
}

func formatCents(amount int64) string {
	return fmt.Sprintf("$%.2f", float64(amount)/100)
}

// Receipt HTML template
const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Receipt {{.ReceiptNumber}}</title>
    <style>
        body {
            font-family: "Courier New", monospace;
            margin: 0 auto;
            padding: 20px;
            max-width: 400px;
            color: #111;
        }
        .header {
            text-align: center;
            border-bottom: 2px dashed #111;
            padding-bottom: 10px;
            margin-bottom: 10px;
        }
        .store-name {
            font-size: 18px;
            font-weight: bold;
        }
        .meta {
            margin-bottom: 10px;
        }
        table {
            width: 100%;
            border-collapse: collapse;
        }
        td {
            padding: 2px 0;
        }
        td.qty, td.amount {
            text-align: right;
            white-space: nowrap;
        }
        .total-row td {
            border-top: 1px dashed #111;
            font-weight: bold;
            padding-top: 6px;
        }
        .footer {
            text-align: center;
            border-top: 2px dashed #111;
            margin-top: 10px;
            padding-top: 10px;
        }
    </style>
</head>
<body>
    <div class="header">
        <div class="store-name">{{.StoreName}}</div>
        {{if .StoreAddress}}<div>{{.StoreAddress}}</div>{{end}}
        {{if .StorePhone}}<div>{{.StorePhone}}</div>{{end}}
    </div>
    <div class="meta">
        <div>Receipt: {{.ReceiptNumber}}</div>
        <div>Cashier: {{.CashierName}}</div>
        <div>Date: {{.Timestamp.Format "2006-01-02 15:04:05"}}</div>
    </div>
    <table>
        {{range .Items}}
        <tr>
            <td>{{.Name}}</td>
            <td class="qty">{{.Quantity}}x</td>
            <td class="amount">{{cents .Subtotal}}</td>
        </tr>
        {{end}}
        <tr class="total-row">
            <td>TOTAL</td>
            <td></td>
            <td class="amount">{{cents .Total}}</td>
        </tr>
    </table>
    {{if .Footer}}<div class="footer">{{.Footer}}</div>{{end}}
</body>
</html>
`
