package tabular

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
)

var _ ports.PurchaseSheetReader = (*PurchaseSheetReader)(nil)

// PurchaseSheetReader lee la planilla de compras sin imponer columnas; la interpretación
// la hace el caso de uso de importación.
type PurchaseSheetReader struct{}

// NewPurchaseSheetReader construye el lector.
func NewPurchaseSheetReader() *PurchaseSheetReader { return &PurchaseSheetReader{} }

// ReadPurchaseSheet abre la primera hoja activa del libro. Si el contenido no es un xlsx
// se intenta como CSV.
func (p *PurchaseSheetReader) ReadPurchaseSheet(r io.Reader) (*ports.PurchaseSheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer planilla: %w", err)
	}
	records, err := readXLSX(data)
	if err != nil {
		var csvErr error
		if records, csvErr = readCSV(data); csvErr != nil {
			return nil, fmt.Errorf("planilla no reconocida: %w", err)
		}
	}
	return toSheet(records), nil
}

func toSheet(records [][]string) *ports.PurchaseSheet {
	sheet := &ports.PurchaseSheet{}
	if len(records) == 0 {
		return sheet
	}
	for _, h := range records[0] {
		sheet.Headers = append(sheet.Headers, strings.TrimSpace(h))
	}
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		row := make(ports.SheetRow, len(sheet.Headers))
		for i, h := range sheet.Headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Template planilla vacía con las columnas que la importación reconoce.
func (p *PurchaseSheetReader) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	header := []interface{}{"Item Name", "Quantity", "Unit", "Category", "Rate", "Vendor"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escribir plantilla: %w", err)
	}
	return buf.Bytes(), nil
}
