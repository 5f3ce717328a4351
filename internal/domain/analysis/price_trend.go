package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Dirección del precio.
const (
	TrendUp     = "UP"
	TrendDown   = "DOWN"
	TrendStable = "STABLE"
)

// Recomendaciones de compra.
const (
	RecommendAlternateVendors = "Find alternative vendors"
	RecommendStockUp          = "Stock up now"
	RecommendNone             = ""
)

// PricePoint tarifa de una compra en la serie cronológica.
type PricePoint struct {
	Date time.Time
	Rate decimal.Decimal
}

// PriceTrend evolución de la tarifa de un ítem en la ventana del dataset.
type PriceTrend struct {
	ItemName       string
	Unit           string
	TotalAmount    decimal.Decimal
	FirstRate      decimal.Decimal
	LastRate       decimal.Decimal
	ChangePct      decimal.Decimal
	Direction      string
	Alert          bool
	Recommendation string
	Series         []PricePoint
}

// PriceTrends analiza los N ítems con mayor monto comprado.
func (a *Analyzer) PriceTrends(ds *entity.Dataset) []PriceTrend {
	totals := GroupBy(ds.Purchases,
		func(p entity.PurchaseRecord) string { return p.ItemName },
		[]Measure[entity.PurchaseRecord]{
			{Name: "amount", Value: func(p entity.PurchaseRecord) decimal.Decimal { return p.Amount }, Reduce: Sum},
		},
	)
	top := append([]string(nil), totals.Keys()...)
	sort.Strings(top)
	sort.SliceStable(top, func(x, y int) bool {
		return totals.Get(top[x]).Value("amount").GreaterThan(totals.Get(top[y]).Value("amount"))
	})
	if len(top) > a.policy.TopPriceItems {
		top = top[:a.policy.TopPriceItems]
	}

	byItem := make(map[string][]entity.PurchaseRecord, len(top))
	for _, p := range ds.Purchases {
		byItem[p.ItemName] = append(byItem[p.ItemName], p)
	}

	trends := make([]PriceTrend, 0, len(top))
	for _, name := range top {
		rows := byItem[name]
		sort.SliceStable(rows, func(x, y int) bool { return rows[x].Date.Before(rows[y].Date) })

		t := PriceTrend{
			ItemName:    name,
			Unit:        rows[0].Unit,
			TotalAmount: totals.Get(name).Value("amount"),
			FirstRate:   rows[0].Rate,
			LastRate:    rows[len(rows)-1].Rate,
			Series:      make([]PricePoint, 0, len(rows)),
		}
		for _, r := range rows {
			t.Series = append(t.Series, PricePoint{Date: r.Date, Rate: r.Rate})
		}
		t.ChangePct = Percent(t.LastRate.Sub(t.FirstRate), t.FirstRate)
		a.classifyPrice(&t)
		trends = append(trends, t)
	}
	return trends
}

func (a *Analyzer) classifyPrice(t *PriceTrend) {
	switch t.ChangePct.Sign() {
	case 1:
		t.Direction = TrendUp
	case -1:
		t.Direction = TrendDown
	default:
		t.Direction = TrendStable
	}
	t.Alert = t.ChangePct.Abs().GreaterThan(a.policy.PriceAlertPct)
	switch {
	case t.ChangePct.GreaterThan(a.policy.PriceRisePct):
		t.Recommendation = RecommendAlternateVendors
	case t.ChangePct.LessThan(a.policy.PriceDropPct):
		t.Recommendation = RecommendStockUp
	default:
		t.Recommendation = RecommendNone
	}
}
