package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestIsLowStock_Limite(t *testing.T) {
	r := inventory.DefaultRules()

	assert.True(t, r.IsLowStock(&entity.InventoryItem{Quantity: d("9"), TotalPurchased: d("100")}), "9 < 10")
	assert.False(t, r.IsLowStock(&entity.InventoryItem{Quantity: d("10"), TotalPurchased: d("100")}), "10 no es < 10")
	assert.False(t, r.IsLowStock(&entity.InventoryItem{Quantity: d("0"), TotalPurchased: d("0")}), "sin compras no alerta")
}

func TestCanIssue_Tolerancia(t *testing.T) {
	r := inventory.DefaultRules()

	assert.True(t, r.CanIssue(d("2.9995"), d("3")))
	assert.True(t, r.CanIssue(d("3"), d("3")))
	assert.False(t, r.CanIssue(d("2.998"), d("3")))
}

func TestApplyPurchaseIssue(t *testing.T) {
	item := &entity.InventoryItem{}
	inventory.ApplyPurchase(item, d("10"))
	inventory.ApplyPurchase(item, d("5"))
	assert.True(t, item.Quantity.Equal(d("15")))
	assert.True(t, item.TotalPurchased.Equal(d("15")))

	inventory.ApplyIssue(item, d("12"))
	assert.True(t, item.Quantity.Equal(d("3")))
	assert.True(t, item.TotalPurchased.Equal(d("15")), "las salidas no tocan el acumulado")

	inventory.ApplyIssue(item, d("3.0004"))
	assert.True(t, item.Quantity.IsZero(), "la deriva negativa se recorta a 0")
}

func TestApplyAdjustment_MantieneInvariante(t *testing.T) {
	item := &entity.InventoryItem{Quantity: d("5"), TotalPurchased: d("10")}

	diff := inventory.ApplyAdjustment(item, d("12"))
	assert.True(t, diff.Equal(d("7")))
	assert.True(t, item.TotalPurchased.Equal(d("17")))
	assert.True(t, item.Quantity.LessThanOrEqual(item.TotalPurchased))

	diff = inventory.ApplyAdjustment(item, d("2"))
	assert.True(t, diff.Equal(d("-10")))
	assert.True(t, item.TotalPurchased.Equal(d("17")), "una baja no reduce el acumulado")
}

func TestReconcile(t *testing.T) {
	txs := []entity.Transaction{
		{Type: entity.TxTypePurchase, Quantity: d("10")},
		{Type: entity.TxTypePurchase, Quantity: d("5")},
		{Type: entity.TxTypeKitchen, Quantity: d("12")},
		{Type: entity.TxTypeManagerEdit, Quantity: d("0")},
	}
	assert.True(t, inventory.Reconcile(txs).Equal(d("3")))
}
