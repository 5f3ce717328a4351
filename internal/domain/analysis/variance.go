package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Clasificación de varianza.
const (
	VarianceOverUse  = "OVER-USE"
	VarianceUnderUse = "UNDER-USE"
	VarianceNormal   = "NORMAL"
)

// VarianceItem consumo teórico (ventas × receta) frente al entregado a cocina.
type VarianceItem struct {
	Ingredient  string
	Unit        string
	Theoretical decimal.Decimal
	Actual      decimal.Decimal
	Variance    decimal.Decimal
	VariancePct decimal.Decimal
	Status      string
}

// VarianceReport ingredientes ordenados de mayor a menor varianza.
type VarianceReport struct {
	Items    []VarianceItem
	OverUse  int
	UnderUse int
}

// Variance calcula el consumo teórico solo para platos vendidos y lo cruza con las salidas.
func (a *Analyzer) Variance(ds *entity.Dataset) VarianceReport {
	sold := GroupBy(ds.Sales,
		func(s entity.SaleRecord) string { return s.ItemName },
		[]Measure[entity.SaleRecord]{
			{Name: "qty", Value: func(s entity.SaleRecord) decimal.Decimal { return s.QuantitySold }, Reduce: Sum},
		},
	)

	// El orden de las recetas define el orden de aparición de los ingredientes.
	var linked []entity.RecipeComponent
	for _, rc := range ds.Recipes {
		if sold.Has(rc.MenuItem) {
			linked = append(linked, rc)
		}
	}
	theoretical := GroupBy(linked,
		func(rc entity.RecipeComponent) string { return rc.Ingredient },
		[]Measure[entity.RecipeComponent]{
			{Name: "qty", Value: func(rc entity.RecipeComponent) decimal.Decimal {
				return sold.Get(rc.MenuItem).Value("qty").Mul(rc.QuantityPerUnit)
			}, Reduce: Sum},
		},
		Label[entity.RecipeComponent]{Name: "unit", Value: func(rc entity.RecipeComponent) string { return rc.Unit }},
	)
	issued := GroupBy(ds.Issues,
		func(i entity.IssueRecord) string { return i.ItemName },
		[]Measure[entity.IssueRecord]{
			{Name: "qty", Value: func(i entity.IssueRecord) decimal.Decimal { return i.QuantityIssued }, Reduce: Sum},
		},
		Label[entity.IssueRecord]{Name: "unit", Value: func(i entity.IssueRecord) string { return i.Unit }},
	)

	keys := UnionKeys(theoretical, issued)
	report := VarianceReport{Items: make([]VarianceItem, 0, len(keys))}
	for _, k := range keys {
		t, i := theoretical.Get(k), issued.Get(k)
		unit := t.Label("unit")
		if unit == "" {
			unit = i.Label("unit")
		}
		v := i.Value("qty").Sub(t.Value("qty"))
		item := VarianceItem{
			Ingredient:  k,
			Unit:        unit,
			Theoretical: t.Value("qty"),
			Actual:      i.Value("qty"),
			Variance:    v,
			VariancePct: Percent(v, t.Value("qty")),
		}
		switch {
		case item.VariancePct.GreaterThan(a.policy.VarianceOverPct):
			item.Status = VarianceOverUse
			report.OverUse++
		case item.VariancePct.LessThan(a.policy.VarianceUnderPct):
			item.Status = VarianceUnderUse
			report.UnderUse++
		default:
			item.Status = VarianceNormal
		}
		report.Items = append(report.Items, item)
	}

	sort.SliceStable(report.Items, func(x, y int) bool {
		return report.Items[x].VariancePct.GreaterThan(report.Items[y].VariancePct)
	})
	return report
}
