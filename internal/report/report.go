package report

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/example/lenstock/internal/models"
)

// Summary aggregates the whole inventory for the dashboard.
type Summary struct {
	TotalItems    int            `json:"total_itens"`
	TotalQuantity int            `json:"total_quantidade"`
	TotalValue    float64        `json:"valor_total"`
	LowStock      []models.Lens  `json:"estoque_baixo"`
	ByBrand       map[string]int `json:"marcas"`
}

// Summarize computes inventory totals over the given records. Records with a
// quantity below lowStockThreshold are collected into LowStock. ByBrand maps
// each brand present in the input to its summed quantity; brands without
// records never appear as keys. The result does not depend on input order.
func Summarize(lenses []models.Lens, lowStockThreshold int) Summary {
	summary := Summary{
		TotalItems: len(lenses),
		LowStock:   []models.Lens{},
		ByBrand:    map[string]int{},
	}

	for _, lens := range lenses {
		summary.TotalQuantity += lens.Quantity
		summary.TotalValue += float64(lens.Quantity) * lens.Price
		summary.ByBrand[lens.Brand] += lens.Quantity

		if lens.Quantity < lowStockThreshold {
			summary.LowStock = append(summary.LowStock, lens)
		}
	}

	return summary
}

var exportHeaders = []string{
	"ID", "Nome", "Marca", "Grau Esférico", "Grau Cilíndrico", "Eixo",
	"Quantidade", "Preço", "Valor Total", "Descrição",
}

// ExportRows flattens the records into spreadsheet rows, one per lens, in
// input order. The line value column is quantity times unit price.
func ExportRows(lenses []models.Lens) [][]interface{} {
	rows := make([][]interface{}, 0, len(lenses))
	for _, lens := range lenses {
		rows = append(rows, []interface{}{
			lens.ID.String(),
			lens.Name,
			lens.Brand,
			lens.SphericalPower,
			lens.CylindricalPower,
			lens.Axis,
			lens.Quantity,
			lens.Price,
			float64(lens.Quantity) * lens.Price,
			lens.Description,
		})
	}
	return rows
}

// ExportFilename returns the timestamped spreadsheet name for an export
// started at the given time.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("relatorio_estoque_%s.xlsx", now.Format("20060102_150405"))
}

// WriteExport writes the inventory to a timestamped .xlsx file under dir and
// returns the file name and its full path.
func WriteExport(dir string, lenses []models.Lens, now time.Time) (string, string, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return "", "", err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return "", "", err
		}
	}

	for i, row := range ExportRows(lenses) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", "", err
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return "", "", err
		}
	}

	name := ExportFilename(now)
	path := filepath.Join(dir, name)
	if err := file.SaveAs(path); err != nil {
		return "", "", err
	}

	return name, path, nil
}
