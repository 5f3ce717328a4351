package analysis

import (
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Analyzer ejecuta los análisis con una política fija. No guarda estado entre llamadas.
type Analyzer struct {
	policy Policy
	now    func() time.Time
}

// New construye el analizador. TopPriceItems/TopConsumptionItems en cero toman el valor por defecto.
func New(p Policy) *Analyzer {
	return &Analyzer{policy: p.withDefaults(), now: time.Now}
}

// Policy política vigente.
func (a *Analyzer) Policy() Policy { return a.policy }

// Report todos los análisis sobre el mismo dataset.
type Report struct {
	GeneratedAt time.Time
	Summary     Summary
	Leakage     LeakageReport
	Variance    VarianceReport
	PriceTrends []PriceTrend
	Menu        MenuReport
	Consumption []ConsumptionPattern
	DailySales  []DailySales
}

// FullReport combina todos los análisis.
func (a *Analyzer) FullReport(ds *entity.Dataset) Report {
	return Report{
		GeneratedAt: a.now(),
		Summary:     a.Summary(ds),
		Leakage:     a.Leakage(ds),
		Variance:    a.Variance(ds),
		PriceTrends: a.PriceTrends(ds),
		Menu:        a.MenuEngineering(ds),
		Consumption: a.Consumption(ds),
		DailySales:  a.DailySales(ds),
	}
}
