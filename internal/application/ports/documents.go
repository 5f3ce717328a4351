package ports

import (
	"io"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Nombres lógicos de los reportes de entrada.
const (
	ReportPurchases = "purchase_report"
	ReportIssues    = "store_to_kitchen_report"
	ReportSales     = "sales_report"
	ReportRecipes   = "recipes_bom"
)

// NamedReader archivo subido: el nombre define el formato (.csv / .xlsx).
type NamedReader struct {
	Filename string
	Reader   io.Reader
}

// DatasetParser convierte los archivos de reporte en un dataset tipado.
// Las claves del mapa son los nombres lógicos Report*. Recipes es opcional.
type DatasetParser interface {
	ParseDataset(files map[string]NamedReader) (*entity.Dataset, error)
}

// SheetRow fila cruda de una planilla, indexada por cabecera.
type SheetRow map[string]string

// PurchaseSheet planilla de compras sin interpretar.
type PurchaseSheet struct {
	Headers []string
	Rows    []SheetRow
}

// PurchaseSheetReader lee la planilla Excel de compras y genera la plantilla vacía.
type PurchaseSheetReader interface {
	ReadPurchaseSheet(r io.Reader) (*PurchaseSheet, error)
	Template() ([]byte, error)
}

// TransactionExporter exporta transacciones a una planilla.
type TransactionExporter interface {
	ExportTransactions(txs []dto.TransactionResponse) ([]byte, error)
}

// ReportPDFGenerator genera el PDF del reporte combinado.
type ReportPDFGenerator interface {
	GenerateReportPDF(report *dto.FullReportDTO) ([]byte, error)
}
