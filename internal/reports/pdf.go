package reports

import (
	"bytes"
	"fmt"

	"shopledger/internal/models"

	"github.com/jung-kurt/gofpdf"
)

// One line per record, clipped so it never runs off an A4 page.
const maxLineChars = 110

// ExportPDF lays out the latest sales and expenses as a flat printable
// document, paginating whenever a page runs out of vertical space.
func (s *Service) ExportPDF() ([]byte, error) {
	salesList, err := s.RecentSales()
	if err != nil {
		return nil, err
	}
	expenses, err := s.RecentExpenses()
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "ShopLedger Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Sales (latest 200):", "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, sale := range salesList {
		pdf.CellFormat(0, 5, clip(saleLine(sale)), "", 1, "", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, "Expenses (latest 200):", "", 1, "", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, e := range expenses {
		line := fmt.Sprintf("%s  %s  Amount: %s",
			e.CreatedAt.Format("02/01/2006 15:04"), e.Description, e.Amount.StringFixed(2))
		pdf.CellFormat(0, 5, clip(line), "", 1, "", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func saleLine(sale models.Sale) string {
	customerName := "-"
	if sale.Customer != nil {
		customerName = sale.Customer.Name
	}
	return fmt.Sprintf("#%d %s  Customer: %s  Total: %s  Payment: %s",
		sale.ID, sale.CreatedAt.Format("02/01/2006 15:04"),
		customerName, sale.Total.StringFixed(2), sale.PaymentMethod)
}

func clip(line string) string {
	runes := []rune(line)
	if len(runes) <= maxLineChars {
		return line
	}
	return string(runes[:maxLineChars])
}
