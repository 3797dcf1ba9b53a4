package catalog

import (
	"github.com/tealeg/xlsx"
)

// ExportProductsXLSX renders the full catalog as a spreadsheet, one row
// per product, newest first.
func (s *Service) ExportProductsXLSX() (*xlsx.File, error) {
	products, err := s.ListProducts()
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Name", "SKU", "CostPrice", "SalePrice", "Stock", "CreatedAt"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(int(p.ID))
		row.AddCell().SetValue(p.Name)
		if p.SKU != nil {
			row.AddCell().SetValue(*p.SKU)
		} else {
			row.AddCell().SetValue("")
		}
		row.AddCell().SetValue(p.CostPrice.StringFixed(2))
		row.AddCell().SetValue(p.SalePrice.StringFixed(2))
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return file, nil
}
