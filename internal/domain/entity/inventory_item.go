package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem estado vivo de un ítem del almacén. ItemName es la clave natural.
// Invariantes: Quantity >= 0, TotalPurchased no decrece, Quantity <= TotalPurchased.
type InventoryItem struct {
	ItemName       string
	Category       string
	Quantity       decimal.Decimal
	Unit           string
	TotalPurchased decimal.Decimal
	LastUpdated    time.Time
}

// InStock indica si queda existencia.
func (i *InventoryItem) InStock() bool {
	return i.Quantity.IsPositive()
}

// CategorySummary conteo de ítems por categoría.
type CategorySummary struct {
	Category   string
	ItemCount  int
	InStock    int
	OutOfStock int
}

// LowStockItem ítem bajo el umbral junto con el umbral aplicado.
type LowStockItem struct {
	Item      InventoryItem
	Threshold decimal.Decimal
}
