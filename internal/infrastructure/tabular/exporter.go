package tabular

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
)

var _ ports.TransactionExporter = (*Exporter)(nil)

var exportHeader = []interface{}{
	"Date/Time", "Item Name", "Category", "Quantity", "Unit", "Type",
	"User", "Rate (₹)", "Amount (₹)", "Vendor", "Notes",
}

// Exporter escribe el log de transacciones como xlsx.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// ExportTransactions una fila por transacción, en el orden recibido.
func (e *Exporter) ExportTransactions(txs []dto.TransactionResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Transactions"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return nil, err
	}
	for i, t := range txs {
		row := []interface{}{
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.ItemName,
			t.Category,
			t.Quantity.InexactFloat64(),
			t.Unit,
			t.Type,
			t.Username,
			optional(t.Rate),
			optional(t.Amount),
			t.Vendor,
			t.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 20)
	_ = f.SetColWidth(sheet, "B", "B", 28)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func optional(d *decimal.Decimal) interface{} {
	if d == nil {
		return ""
	}
	return d.InexactFloat64()
}
