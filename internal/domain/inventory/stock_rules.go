// Package inventory contiene las reglas de stock del ledger (servicio de dominio sin I/O).
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// QtyPlaces decimales con que se guardan las cantidades.
const QtyPlaces = 3

// Rules parámetros de las reglas de stock.
type Rules struct {
	LowStockFraction decimal.Decimal // umbral = total comprado × fracción
	IssueTolerance   decimal.Decimal // absorbe la deriva de sumas/restas repetidas
}

// DefaultRules fracción 0.10 y tolerancia 0.001.
func DefaultRules() Rules {
	return Rules{
		LowStockFraction: decimal.RequireFromString("0.10"),
		IssueTolerance:   decimal.RequireFromString("0.001"),
	}
}

// RoundQty redondea una cantidad a QtyPlaces decimales.
func RoundQty(q decimal.Decimal) decimal.Decimal {
	return q.Round(QtyPlaces)
}

// Threshold cantidad por debajo de la cual el ítem está bajo de stock.
func (r Rules) Threshold(item *entity.InventoryItem) decimal.Decimal {
	return item.TotalPurchased.Mul(r.LowStockFraction)
}

// IsLowStock quantity < total_purchased × fracción, solo si hubo compras.
func (r Rules) IsLowStock(item *entity.InventoryItem) bool {
	if !item.TotalPurchased.IsPositive() {
		return false
	}
	return item.Quantity.LessThan(r.Threshold(item))
}

// CanIssue indica si la existencia cubre qty con la tolerancia.
func (r Rules) CanIssue(available, qty decimal.Decimal) bool {
	return !available.Add(r.IssueTolerance).LessThan(qty)
}

// ApplyPurchase suma qty a la existencia y al acumulado comprado.
func ApplyPurchase(item *entity.InventoryItem, qty decimal.Decimal) {
	item.Quantity = RoundQty(item.Quantity.Add(qty))
	item.TotalPurchased = RoundQty(item.TotalPurchased.Add(qty))
}

// ApplyIssue descuenta qty; un resultado negativo por redondeo queda en 0.
func ApplyIssue(item *entity.InventoryItem, qty decimal.Decimal) {
	item.Quantity = clamp(RoundQty(item.Quantity.Sub(qty)))
}

// ApplyAdjustment fija la existencia a newQty. Un aumento también se suma al acumulado
// comprado para conservar quantity <= total_purchased. Devuelve la diferencia (con signo).
func ApplyAdjustment(item *entity.InventoryItem, newQty decimal.Decimal) decimal.Decimal {
	newQty = clamp(RoundQty(newQty))
	diff := newQty.Sub(item.Quantity)
	if diff.IsPositive() {
		item.TotalPurchased = RoundQty(item.TotalPurchased.Add(diff))
	}
	item.Quantity = newQty
	return diff
}

func clamp(q decimal.Decimal) decimal.Decimal {
	if q.IsNegative() {
		return decimal.Zero
	}
	return q
}

// Reconcile cantidad que resulta de reproducir las transacciones de un ítem:
// entradas (purchase, manager_add) menos salidas (kitchen).
// Las transacciones conservan el nombre con que se registraron: tras un manager_delete el
// ítem desaparece, y tras un renombre el historial previo queda bajo el nombre anterior
// (la nota de manager_edit lo indica con RenamedFromPrefix). Para reconciliar un ítem
// renombrado hay que sumar ambos historiales.
func Reconcile(txs []entity.Transaction) decimal.Decimal {
	q := decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case entity.TxTypePurchase, entity.TxTypeManagerAdd:
			q = q.Add(tx.Quantity)
		case entity.TxTypeKitchen:
			q = q.Sub(tx.Quantity)
		}
	}
	return RoundQty(q)
}
