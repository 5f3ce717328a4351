package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// DailySales totales de venta de un día.
type DailySales struct {
	Date         time.Time
	Revenue      decimal.Decimal
	Profit       decimal.Decimal
	QuantitySold decimal.Decimal
}

// Summary KPIs globales del dataset.
type Summary struct {
	TotalRevenue        decimal.Decimal
	TotalProfit         decimal.Decimal
	TotalPurchaseAmount decimal.Decimal
	TotalItemsSold      decimal.Decimal
	From                time.Time // primer día con ventas
	To                  time.Time // último día con ventas
}

// DailySales serie diaria de ingresos, utilidad y unidades, en orden cronológico.
func (a *Analyzer) DailySales(ds *entity.Dataset) []DailySales {
	byDay := GroupBy(ds.Sales,
		func(s entity.SaleRecord) string { return s.Date.Format(dateLayout) },
		[]Measure[entity.SaleRecord]{
			{Name: "revenue", Value: func(s entity.SaleRecord) decimal.Decimal { return s.Revenue }, Reduce: Sum},
			{Name: "profit", Value: func(s entity.SaleRecord) decimal.Decimal { return s.Profit }, Reduce: Sum},
			{Name: "qty", Value: func(s entity.SaleRecord) decimal.Decimal { return s.QuantitySold }, Reduce: Sum},
		},
	)
	days := append([]string(nil), byDay.Keys()...)
	sort.Strings(days) // YYYY-MM-DD ordena cronológicamente

	out := make([]DailySales, 0, len(days))
	for _, d := range days {
		g := byDay.Get(d)
		date, _ := time.Parse(dateLayout, d)
		out = append(out, DailySales{
			Date:         date,
			Revenue:      g.Value("revenue"),
			Profit:       g.Value("profit"),
			QuantitySold: g.Value("qty"),
		})
	}
	return out
}

// Summary totales de ventas y compras y rango de fechas de las ventas.
func (a *Analyzer) Summary(ds *entity.Dataset) Summary {
	s := Summary{
		TotalRevenue:        decimal.Zero,
		TotalProfit:         decimal.Zero,
		TotalPurchaseAmount: decimal.Zero,
		TotalItemsSold:      decimal.Zero,
	}
	for i, r := range ds.Sales {
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)
		s.TotalProfit = s.TotalProfit.Add(r.Profit)
		s.TotalItemsSold = s.TotalItemsSold.Add(r.QuantitySold)
		if i == 0 || r.Date.Before(s.From) {
			s.From = r.Date
		}
		if i == 0 || r.Date.After(s.To) {
			s.To = r.Date
		}
	}
	for _, p := range ds.Purchases {
		s.TotalPurchaseAmount = s.TotalPurchaseAmount.Add(p.Amount)
	}
	return s
}
