package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Cuadrantes de ingeniería de menú.
const (
	MenuStar      = "STAR"
	MenuPlowHorse = "PLOW HORSE"
	MenuPuzzle    = "PUZZLE"
	MenuDog       = "DOG"
)

// MenuClasses orden fijo de presentación de los cuadrantes.
var MenuClasses = []string{MenuStar, MenuPlowHorse, MenuPuzzle, MenuDog}

var menuAdvice = map[string]string{
	MenuStar:      "High Profit + High Popularity - Promote these",
	MenuPlowHorse: "Low Profit + High Popularity - Reduce ingredient costs",
	MenuPuzzle:    "High Profit + Low Popularity - Better marketing needed",
	MenuDog:       "Low Profit + Low Popularity - Consider removing",
}

// MenuItem métricas agregadas de un plato.
type MenuItem struct {
	ItemName        string
	Category        string
	QuantitySold    decimal.Decimal
	Revenue         decimal.Decimal
	FoodCost        decimal.Decimal
	Profit          decimal.Decimal
	ProfitMarginPct decimal.Decimal
	Class           string
}

// MenuGroup platos de un cuadrante, de mayor a menor ingreso.
type MenuGroup struct {
	Class  string
	Advice string
	Items  []MenuItem
}

// MenuReport cuadrantes en orden STAR, PLOW HORSE, PUZZLE, DOG.
type MenuReport struct {
	MeanQuantitySold decimal.Decimal
	MeanMarginPct    decimal.Decimal
	Groups           []MenuGroup
	TotalItems       int
}

// Count número de platos del cuadrante.
func (r MenuReport) Count(class string) int {
	for _, g := range r.Groups {
		if g.Class == class {
			return len(g.Items)
		}
	}
	return 0
}

// MenuEngineering clasifica cada plato por popularidad y rentabilidad frente a la media del dataset.
func (a *Analyzer) MenuEngineering(ds *entity.Dataset) MenuReport {
	agg := GroupBy(ds.Sales,
		func(s entity.SaleRecord) string { return s.ItemName },
		[]Measure[entity.SaleRecord]{
			{Name: "qty", Value: func(s entity.SaleRecord) decimal.Decimal { return s.QuantitySold }, Reduce: Sum},
			{Name: "revenue", Value: func(s entity.SaleRecord) decimal.Decimal { return s.Revenue }, Reduce: Sum},
			{Name: "food_cost", Value: func(s entity.SaleRecord) decimal.Decimal { return s.FoodCost }, Reduce: Sum},
			{Name: "profit", Value: func(s entity.SaleRecord) decimal.Decimal { return s.Profit }, Reduce: Sum},
		},
		Label[entity.SaleRecord]{Name: "category", Value: func(s entity.SaleRecord) string { return s.Category }},
	)

	names := append([]string(nil), agg.Keys()...)
	sort.Strings(names)

	items := make([]MenuItem, 0, len(names))
	qtys := make([]decimal.Decimal, 0, len(names))
	margins := make([]decimal.Decimal, 0, len(names))
	for _, n := range names {
		g := agg.Get(n)
		it := MenuItem{
			ItemName:        n,
			Category:        g.Label("category"),
			QuantitySold:    g.Value("qty"),
			Revenue:         g.Value("revenue"),
			FoodCost:        g.Value("food_cost"),
			Profit:          g.Value("profit"),
			ProfitMarginPct: Percent(g.Value("profit"), g.Value("revenue")),
		}
		items = append(items, it)
		qtys = append(qtys, it.QuantitySold)
		margins = append(margins, it.ProfitMarginPct)
	}

	report := MenuReport{
		MeanQuantitySold: Reduce(qtys, Mean),
		MeanMarginPct:    Reduce(margins, Mean),
		TotalItems:       len(items),
	}
	byClass := make(map[string][]MenuItem, len(MenuClasses))
	for _, it := range items {
		it.Class = classifyMenu(
			it.QuantitySold.GreaterThanOrEqual(report.MeanQuantitySold),
			it.ProfitMarginPct.GreaterThanOrEqual(report.MeanMarginPct),
		)
		byClass[it.Class] = append(byClass[it.Class], it)
	}
	for _, c := range MenuClasses {
		group := byClass[c]
		sort.SliceStable(group, func(x, y int) bool { return group[x].Revenue.GreaterThan(group[y].Revenue) })
		report.Groups = append(report.Groups, MenuGroup{Class: c, Advice: menuAdvice[c], Items: group})
	}
	return report
}

func classifyMenu(popular, profitable bool) string {
	switch {
	case popular && profitable:
		return MenuStar
	case popular:
		return MenuPlowHorse
	case profitable:
		return MenuPuzzle
	}
	return MenuDog
}
