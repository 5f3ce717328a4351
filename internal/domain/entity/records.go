package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord una línea del reporte de compras (purchase_report).
type PurchaseRecord struct {
	Date     time.Time
	ItemName string
	Quantity decimal.Decimal
	Unit     string
	Rate     decimal.Decimal
	Amount   decimal.Decimal
}

// IssueRecord una salida de almacén hacia cocina (store_to_kitchen_report).
type IssueRecord struct {
	Date           time.Time
	ItemName       string
	Category       string
	QuantityIssued decimal.Decimal
	Unit           string
}

// SaleRecord una línea de venta de un plato del menú (sales_report).
type SaleRecord struct {
	Date         time.Time
	ItemName     string
	Category     string
	QuantitySold decimal.Decimal
	Price        decimal.Decimal
	Revenue      decimal.Decimal
	FoodCost     decimal.Decimal
	Profit       decimal.Decimal
}

// RecipeComponent línea de la receta (BOM): cuánto ingrediente consume una unidad vendida.
type RecipeComponent struct {
	MenuItem        string
	Ingredient      string
	QuantityPerUnit decimal.Decimal
	Unit            string
}

// Dataset instantánea inmutable de los cuatro reportes sobre la que corren los análisis.
type Dataset struct {
	Purchases []PurchaseRecord
	Issues    []IssueRecord
	Sales     []SaleRecord
	Recipes   []RecipeComponent
	LoadedAt  time.Time
}

// Empty indica si no hay registros transaccionales cargados.
func (d *Dataset) Empty() bool {
	return d == nil || (len(d.Purchases) == 0 && len(d.Issues) == 0 && len(d.Sales) == 0)
}
