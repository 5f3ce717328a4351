package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Todas las cifras de estos DTOs van redondeadas a 2 decimales.

// ── Resumen ───────────────────────────────────────────────────────────────────

// SummaryDTO KPIs globales del dataset.
type SummaryDTO struct {
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalProfit         decimal.Decimal `json:"total_profit"`
	TotalPurchaseAmount decimal.Decimal `json:"total_purchase_amount"`
	TotalItemsSold      decimal.Decimal `json:"total_items_sold"`
	DateFrom            string          `json:"date_from,omitempty"`
	DateTo              string          `json:"date_to,omitempty"`
}

// ── Merma ─────────────────────────────────────────────────────────────────────

// LeakageItemDTO comprado vs entregado de un ítem.
type LeakageItemDTO struct {
	ItemName   string          `json:"item_name"`
	Unit       string          `json:"unit"`
	Purchased  decimal.Decimal `json:"total_purchased"`
	Issued     decimal.Decimal `json:"total_issued"`
	Difference decimal.Decimal `json:"difference"`
	Amount     decimal.Decimal `json:"amount"`
	LeakagePct decimal.Decimal `json:"leakage_pct"`
	ValueLost  decimal.Decimal `json:"value_lost"`
	Status     string          `json:"status,omitempty"` // HIGH ALERT | WARNING
}

// LeakageReportDTO GET /api/analytics/leakage.
type LeakageReportDTO struct {
	Items          []LeakageItemDTO `json:"items"`
	TotalValueLost decimal.Decimal  `json:"total_value_lost"`
	HighAlerts     int              `json:"high_alerts"`
	Warnings       int              `json:"warnings"`
}

// ── Varianza ──────────────────────────────────────────────────────────────────

// VarianceItemDTO teórico vs real de un ingrediente.
type VarianceItemDTO struct {
	Ingredient  string          `json:"ingredient"`
	Unit        string          `json:"unit"`
	Theoretical decimal.Decimal `json:"theoretical"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`
	VariancePct decimal.Decimal `json:"variance_pct"`
	Status      string          `json:"status"` // OVER-USE | UNDER-USE | NORMAL
}

// VarianceReportDTO GET /api/analytics/variance.
type VarianceReportDTO struct {
	Items    []VarianceItemDTO `json:"items"`
	OverUse  int               `json:"over_use"`
	UnderUse int               `json:"under_use"`
}

// ── Precios ───────────────────────────────────────────────────────────────────

// PricePointDTO punto de la serie de precios.
type PricePointDTO struct {
	Date string          `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// PriceTrendDTO tendencia de precio de un ítem.
type PriceTrendDTO struct {
	ItemName       string          `json:"item_name"`
	Unit           string          `json:"unit"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	FirstPrice     decimal.Decimal `json:"first_price"`
	LastPrice      decimal.Decimal `json:"last_price"`
	ChangePct      decimal.Decimal `json:"change_pct"`
	Trend          string          `json:"trend"` // UP | DOWN | STABLE
	Alert          bool            `json:"alert"`
	Recommendation string          `json:"recommendation,omitempty"`
	Series         []PricePointDTO `json:"series"`
}

// ── Menú ──────────────────────────────────────────────────────────────────────

// MenuItemDTO plato clasificado.
type MenuItemDTO struct {
	ItemName        string          `json:"item_name"`
	Category        string          `json:"category"`
	QuantitySold    decimal.Decimal `json:"quantity_sold"`
	Revenue         decimal.Decimal `json:"revenue"`
	FoodCost        decimal.Decimal `json:"food_cost"`
	Profit          decimal.Decimal `json:"profit"`
	ProfitMarginPct decimal.Decimal `json:"profit_margin_pct"`
	Class           string          `json:"classification"`
}

// MenuGroupDTO platos de un cuadrante.
type MenuGroupDTO struct {
	Class  string        `json:"classification"`
	Advice string        `json:"advice"`
	Count  int           `json:"count"`
	Items  []MenuItemDTO `json:"items"`
}

// MenuReportDTO GET /api/analytics/menu-engineering.
type MenuReportDTO struct {
	MeanQuantitySold decimal.Decimal `json:"mean_quantity_sold"`
	MeanMarginPct    decimal.Decimal `json:"mean_margin_pct"`
	TotalItems       int             `json:"total_items"`
	Groups           []MenuGroupDTO  `json:"groups"`
}

// ── Consumo y ventas ──────────────────────────────────────────────────────────

// ConsumptionDTO patrón de consumo diario de un ítem.
type ConsumptionDTO struct {
	ItemName       string          `json:"item_name"`
	Unit           string          `json:"unit"`
	TotalUsed      decimal.Decimal `json:"total_used"`
	DailyAvg       decimal.Decimal `json:"daily_avg"`
	DailyMax       decimal.Decimal `json:"daily_max"`
	DailyMin       decimal.Decimal `json:"daily_min"`
	StdDev         decimal.Decimal `json:"std_dev"`
	ConsistencyPct decimal.Decimal `json:"consistency_pct"`
	Days           int             `json:"days"`
}

// DailySalesDTO ventas de un día.
type DailySalesDTO struct {
	Date         string          `json:"date"`
	Revenue      decimal.Decimal `json:"revenue"`
	Profit       decimal.Decimal `json:"profit"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
}

// ── Reporte combinado ─────────────────────────────────────────────────────────

// FullReportDTO GET /api/analytics/report.
type FullReportDTO struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     SummaryDTO        `json:"summary"`
	Leakage     LeakageReportDTO  `json:"leakage"`
	Variance    VarianceReportDTO `json:"variance"`
	PriceTrends []PriceTrendDTO   `json:"price_trends"`
	Menu        MenuReportDTO     `json:"menu_engineering"`
	Consumption []ConsumptionDTO  `json:"consumption"`
	DailySales  []DailySalesDTO   `json:"daily_sales"`
}

// DatasetStatsDTO resultado de reemplazar el dataset.
type DatasetStatsDTO struct {
	Purchases int       `json:"purchases"`
	Issues    int       `json:"issues"`
	Sales     int       `json:"sales"`
	Recipes   int       `json:"recipes"`
	LoadedAt  time.Time `json:"loaded_at"`
}
