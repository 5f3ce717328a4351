package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// ConsumptionPattern estadística de las salidas diarias de un ítem.
type ConsumptionPattern struct {
	ItemName       string
	Unit           string
	TotalUsed      decimal.Decimal
	DailyAvg       decimal.Decimal
	DailyMax       decimal.Decimal
	DailyMin       decimal.Decimal
	StdDev         decimal.Decimal
	ConsistencyPct decimal.Decimal // 100 - coeficiente de variación; 0 si la media es 0
	Days           int
}

// Consumption analiza los ítems más entregados a cocina a partir de sus totales diarios.
func (a *Analyzer) Consumption(ds *entity.Dataset) []ConsumptionPattern {
	// total por (ítem, día)
	daily := GroupBy(ds.Issues,
		func(i entity.IssueRecord) string { return i.ItemName + "\x00" + i.Date.Format(dateLayout) },
		[]Measure[entity.IssueRecord]{
			{Name: "qty", Value: func(i entity.IssueRecord) decimal.Decimal { return i.QuantityIssued }, Reduce: Sum},
		},
		Label[entity.IssueRecord]{Name: "item", Value: func(i entity.IssueRecord) string { return i.ItemName }},
		Label[entity.IssueRecord]{Name: "unit", Value: func(i entity.IssueRecord) string { return i.Unit }},
	)

	perItem := make(map[string][]decimal.Decimal)
	units := make(map[string]string)
	var names []string
	for _, k := range daily.Keys() {
		g := daily.Get(k)
		name := g.Label("item")
		if _, ok := perItem[name]; !ok {
			names = append(names, name)
			units[name] = g.Label("unit")
		}
		perItem[name] = append(perItem[name], g.Value("qty"))
	}

	patterns := make([]ConsumptionPattern, 0, len(names))
	for _, n := range names {
		days := perItem[n]
		mean := Reduce(days, Mean)
		std := Reduce(days, StdDev)
		p := ConsumptionPattern{
			ItemName:  n,
			Unit:      units[n],
			TotalUsed: Reduce(days, Sum),
			DailyAvg:  mean,
			DailyMax:  Reduce(days, Max),
			DailyMin:  Reduce(days, Min),
			StdDev:    std,
			Days:      len(days),
		}
		if mean.IsPositive() {
			p.ConsistencyPct = hundred.Sub(Percent(std, mean))
		}
		patterns = append(patterns, p)
	}

	sort.Slice(patterns, func(x, y int) bool { return patterns[x].ItemName < patterns[y].ItemName })
	sort.SliceStable(patterns, func(x, y int) bool { return patterns[x].TotalUsed.GreaterThan(patterns[y].TotalUsed) })
	if len(patterns) > a.policy.TopConsumptionItems {
		patterns = patterns[:a.policy.TopConsumptionItems]
	}
	return patterns
}
