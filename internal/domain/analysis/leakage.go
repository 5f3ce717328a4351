package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Bandas de merma.
const (
	LeakageHighAlert = "HIGH ALERT"
	LeakageWarning   = "WARNING"
	LeakageNone      = ""
)

// LeakageItem comprado vs entregado a cocina para un ítem.
type LeakageItem struct {
	ItemName   string
	Unit       string
	Purchased  decimal.Decimal
	Issued     decimal.Decimal
	Difference decimal.Decimal
	Amount     decimal.Decimal // valor total comprado
	LeakagePct decimal.Decimal
	ValueLost  decimal.Decimal
	Status     string
}

// LeakageReport ítems ordenados de mayor a menor merma.
type LeakageReport struct {
	Items          []LeakageItem
	TotalValueLost decimal.Decimal // incluye aportes negativos
	HighAlerts     int
	Warnings       int
}

// Leakage cruza compras y salidas por ítem (outer join; lado ausente = 0).
func (a *Analyzer) Leakage(ds *entity.Dataset) LeakageReport {
	purchased := GroupBy(ds.Purchases,
		func(p entity.PurchaseRecord) string { return p.ItemName },
		[]Measure[entity.PurchaseRecord]{
			{Name: "qty", Value: func(p entity.PurchaseRecord) decimal.Decimal { return p.Quantity }, Reduce: Sum},
			{Name: "amount", Value: func(p entity.PurchaseRecord) decimal.Decimal { return p.Amount }, Reduce: Sum},
		},
		Label[entity.PurchaseRecord]{Name: "unit", Value: func(p entity.PurchaseRecord) string { return p.Unit }},
	)
	issued := GroupBy(ds.Issues,
		func(i entity.IssueRecord) string { return i.ItemName },
		[]Measure[entity.IssueRecord]{
			{Name: "qty", Value: func(i entity.IssueRecord) decimal.Decimal { return i.QuantityIssued }, Reduce: Sum},
		},
		Label[entity.IssueRecord]{Name: "unit", Value: func(i entity.IssueRecord) string { return i.Unit }},
	)

	keys := UnionKeys(purchased, issued)
	report := LeakageReport{Items: make([]LeakageItem, 0, len(keys)), TotalValueLost: decimal.Zero}
	for _, k := range keys {
		p, i := purchased.Get(k), issued.Get(k)
		unit := p.Label("unit")
		if unit == "" {
			unit = i.Label("unit")
		}
		bought := p.Value("qty")
		diff := bought.Sub(i.Value("qty"))
		item := LeakageItem{
			ItemName:   k,
			Unit:       unit,
			Purchased:  bought,
			Issued:     i.Value("qty"),
			Difference: diff,
			Amount:     p.Value("amount"),
			LeakagePct: Percent(diff, bought),
			ValueLost:  Ratio(diff, bought).Mul(p.Value("amount")),
		}
		item.Status = a.leakageBand(item.LeakagePct)
		switch item.Status {
		case LeakageHighAlert:
			report.HighAlerts++
		case LeakageWarning:
			report.Warnings++
		}
		report.TotalValueLost = report.TotalValueLost.Add(item.ValueLost)
		report.Items = append(report.Items, item)
	}

	sort.SliceStable(report.Items, func(x, y int) bool {
		return report.Items[x].LeakagePct.GreaterThan(report.Items[y].LeakagePct)
	})
	return report
}

func (a *Analyzer) leakageBand(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThan(a.policy.LeakageHighPct):
		return LeakageHighAlert
	case pct.GreaterThan(a.policy.LeakageWarningPct):
		return LeakageWarning
	}
	return LeakageNone
}
