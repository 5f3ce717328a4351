package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Operaciones del ledger ────────────────────────────────────────────────────

// PurchaseRequest body para POST /api/inventory/purchase.
type PurchaseRequest struct {
	ItemName string           `json:"item_name"`
	Category string           `json:"category"`
	Quantity decimal.Decimal  `json:"quantity"`
	Unit     string           `json:"unit"`
	Rate     *decimal.Decimal `json:"rate,omitempty"`
	Amount   *decimal.Decimal `json:"amount,omitempty"` // si falta y hay rate: rate × quantity
	Vendor   string           `json:"vendor,omitempty"`
}

// IssueRequest body para POST /api/inventory/kitchen.
type IssueRequest struct {
	ItemName string          `json:"item_name"`
	Quantity decimal.Decimal `json:"quantity"`
	Notes    string          `json:"notes,omitempty"`
}

// ManagerAddRequest alta directa de un ítem por el gerente.
type ManagerAddRequest struct {
	ItemName string          `json:"item_name"`
	Category string          `json:"category"`
	Quantity decimal.Decimal `json:"quantity"`
	Unit     string          `json:"unit"`
}

// ManagerUpdateRequest edición directa; los campos nil no cambian.
type ManagerUpdateRequest struct {
	OriginalName string           `json:"original_name"`
	NewName      *string          `json:"item_name,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
}

// ManagerDeleteRequest baja de un ítem.
type ManagerDeleteRequest struct {
	ItemName string `json:"item_name"`
}

// LedgerResult respuesta de una operación del ledger con el estado resultante del ítem.
type LedgerResult struct {
	ResultResponse
	Item     *InventoryItemResponse `json:"item,omitempty"`
	LowStock bool                   `json:"low_stock,omitempty"`
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// InventoryItemResponse estado de un ítem.
type InventoryItemResponse struct {
	ItemName       string          `json:"item_name"`
	Category       string          `json:"category"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	TotalPurchased decimal.Decimal `json:"total_purchased"`
	LastUpdated    time.Time       `json:"last_updated"`
}

// CategorySummaryResponse conteos por categoría.
type CategorySummaryResponse struct {
	Category   string `json:"category"`
	ItemCount  int    `json:"item_count"`
	InStock    int    `json:"in_stock"`
	OutOfStock int    `json:"out_of_stock"`
}

// InventoryOverviewResponse GET /api/inventory.
type InventoryOverviewResponse struct {
	Items   []InventoryItemResponse   `json:"items"`
	Summary []CategorySummaryResponse `json:"summary"`
	Total   int                       `json:"total"`
}

// LowStockItemResponse ítem bajo el umbral.
type LowStockItemResponse struct {
	InventoryItemResponse
	Threshold decimal.Decimal `json:"threshold"`
}

// AlertResponse resultado del envío de alertas.
type AlertResponse struct {
	Success bool `json:"success"`
	Count   int  `json:"count"`
	Sent    bool `json:"sent"`
}

// ── Transacciones ─────────────────────────────────────────────────────────────

// TransactionQuery parámetros de GET /api/transactions.
type TransactionQuery struct {
	Type  string `query:"type"`
	From  string `query:"from"`  // YYYY-MM-DD
	To    string `query:"to"`    // YYYY-MM-DD (inclusive)
	Date  string `query:"date"`  // YYYY-MM-DD; equivale a from=to=date
	Limit int    `query:"limit"` // default 100
}

// TransactionResponse entrada del log de auditoría.
type TransactionResponse struct {
	ID        string           `json:"id"`
	ItemName  string           `json:"item_name"`
	Category  string           `json:"category"`
	Quantity  decimal.Decimal  `json:"quantity"`
	Unit      string           `json:"unit"`
	Type      string           `json:"type"`
	Username  string           `json:"username"`
	Rate      *decimal.Decimal `json:"rate,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Vendor    string           `json:"vendor,omitempty"`
	Notes     string           `json:"notes,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ── Importación de compras desde Excel ────────────────────────────────────────

// PurchasePreviewItem fila interpretada de la planilla de compras.
type PurchasePreviewItem struct {
	ItemName       string           `json:"item_name"`
	Category       string           `json:"category"`
	CategorySource string           `json:"category_source"` // sheet | inventory | auto
	Quantity       decimal.Decimal  `json:"quantity"`
	Unit           string           `json:"unit"`
	Rate           *decimal.Decimal `json:"rate,omitempty"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	Vendor         string           `json:"vendor,omitempty"`
	AutoDetected   bool             `json:"auto_detected"`
}

// PurchasePreviewResponse vista previa antes de confirmar.
type PurchasePreviewResponse struct {
	Success      bool                  `json:"success"`
	Items        []PurchasePreviewItem `json:"items"`
	Count        int                   `json:"count"`
	WarningCount int                   `json:"warning_count"`
	WarningItems []string              `json:"warning_items"`
}

// PurchaseUploadRequest ítems confirmados.
type PurchaseUploadRequest struct {
	Items []PurchasePreviewItem `json:"items"`
}

// PurchaseUploadResponse resultado por lote; los errores son por ítem.
type PurchaseUploadResponse struct {
	Success    bool     `json:"success"`
	AddedCount int      `json:"added_count"`
	Errors     []string `json:"errors,omitempty"`
}
