package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
)

const (
	moneyPlaces = 2
	dateLayout  = "2006-01-02"
)

func r2(v decimal.Decimal) decimal.Decimal { return v.Round(moneyPlaces) }

// ToSummaryDTO mapea los KPIs.
func ToSummaryDTO(s analysis.Summary) dto.SummaryDTO {
	out := dto.SummaryDTO{
		TotalRevenue:        r2(s.TotalRevenue),
		TotalProfit:         r2(s.TotalProfit),
		TotalPurchaseAmount: r2(s.TotalPurchaseAmount),
		TotalItemsSold:      r2(s.TotalItemsSold),
	}
	if !s.From.IsZero() {
		out.DateFrom = s.From.Format(dateLayout)
		out.DateTo = s.To.Format(dateLayout)
	}
	return out
}

// ToLeakageDTO mapea el reporte de merma.
func ToLeakageDTO(r analysis.LeakageReport) dto.LeakageReportDTO {
	out := dto.LeakageReportDTO{
		Items:          make([]dto.LeakageItemDTO, 0, len(r.Items)),
		TotalValueLost: r2(r.TotalValueLost),
		HighAlerts:     r.HighAlerts,
		Warnings:       r.Warnings,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, dto.LeakageItemDTO{
			ItemName:   it.ItemName,
			Unit:       it.Unit,
			Purchased:  r2(it.Purchased),
			Issued:     r2(it.Issued),
			Difference: r2(it.Difference),
			Amount:     r2(it.Amount),
			LeakagePct: r2(it.LeakagePct),
			ValueLost:  r2(it.ValueLost),
			Status:     it.Status,
		})
	}
	return out
}

// ToVarianceDTO mapea el reporte de varianza.
func ToVarianceDTO(r analysis.VarianceReport) dto.VarianceReportDTO {
	out := dto.VarianceReportDTO{
		Items:    make([]dto.VarianceItemDTO, 0, len(r.Items)),
		OverUse:  r.OverUse,
		UnderUse: r.UnderUse,
	}
	for _, it := range r.Items {
		out.Items = append(out.Items, dto.VarianceItemDTO{
			Ingredient:  it.Ingredient,
			Unit:        it.Unit,
			Theoretical: r2(it.Theoretical),
			Actual:      r2(it.Actual),
			Variance:    r2(it.Variance),
			VariancePct: r2(it.VariancePct),
			Status:      it.Status,
		})
	}
	return out
}

// ToPriceTrendDTOs mapea las tendencias de precio.
func ToPriceTrendDTOs(trends []analysis.PriceTrend) []dto.PriceTrendDTO {
	out := make([]dto.PriceTrendDTO, 0, len(trends))
	for _, t := range trends {
		series := make([]dto.PricePointDTO, 0, len(t.Series))
		for _, p := range t.Series {
			series = append(series, dto.PricePointDTO{Date: p.Date.Format(dateLayout), Rate: r2(p.Rate)})
		}
		out = append(out, dto.PriceTrendDTO{
			ItemName:       t.ItemName,
			Unit:           t.Unit,
			TotalAmount:    r2(t.TotalAmount),
			FirstPrice:     r2(t.FirstRate),
			LastPrice:      r2(t.LastRate),
			ChangePct:      r2(t.ChangePct),
			Trend:          t.Direction,
			Alert:          t.Alert,
			Recommendation: t.Recommendation,
			Series:         series,
		})
	}
	return out
}

// ToMenuDTO mapea la matriz de menú; los cuadrantes vacíos se incluyen con Count 0.
func ToMenuDTO(r analysis.MenuReport) dto.MenuReportDTO {
	out := dto.MenuReportDTO{
		MeanQuantitySold: r2(r.MeanQuantitySold),
		MeanMarginPct:    r2(r.MeanMarginPct),
		TotalItems:       r.TotalItems,
		Groups:           make([]dto.MenuGroupDTO, 0, len(r.Groups)),
	}
	for _, g := range r.Groups {
		items := make([]dto.MenuItemDTO, 0, len(g.Items))
		for _, it := range g.Items {
			items = append(items, dto.MenuItemDTO{
				ItemName:        it.ItemName,
				Category:        it.Category,
				QuantitySold:    r2(it.QuantitySold),
				Revenue:         r2(it.Revenue),
				FoodCost:        r2(it.FoodCost),
				Profit:          r2(it.Profit),
				ProfitMarginPct: r2(it.ProfitMarginPct),
				Class:           it.Class,
			})
		}
		out.Groups = append(out.Groups, dto.MenuGroupDTO{Class: g.Class, Advice: g.Advice, Count: len(items), Items: items})
	}
	return out
}

// ToConsumptionDTOs mapea los patrones de consumo.
func ToConsumptionDTOs(ps []analysis.ConsumptionPattern) []dto.ConsumptionDTO {
	out := make([]dto.ConsumptionDTO, 0, len(ps))
	for _, p := range ps {
		out = append(out, dto.ConsumptionDTO{
			ItemName:       p.ItemName,
			Unit:           p.Unit,
			TotalUsed:      r2(p.TotalUsed),
			DailyAvg:       r2(p.DailyAvg),
			DailyMax:       r2(p.DailyMax),
			DailyMin:       r2(p.DailyMin),
			StdDev:         r2(p.StdDev),
			ConsistencyPct: r2(p.ConsistencyPct),
			Days:           p.Days,
		})
	}
	return out
}

// ToDailySalesDTOs mapea la serie diaria.
func ToDailySalesDTOs(days []analysis.DailySales) []dto.DailySalesDTO {
	out := make([]dto.DailySalesDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailySalesDTO{
			Date:         d.Date.Format(dateLayout),
			Revenue:      r2(d.Revenue),
			Profit:       r2(d.Profit),
			QuantitySold: r2(d.QuantitySold),
		})
	}
	return out
}

// ToFullReportDTO mapea el reporte combinado.
func ToFullReportDTO(r analysis.Report) dto.FullReportDTO {
	return dto.FullReportDTO{
		GeneratedAt: r.GeneratedAt,
		Summary:     ToSummaryDTO(r.Summary),
		Leakage:     ToLeakageDTO(r.Leakage),
		Variance:    ToVarianceDTO(r.Variance),
		PriceTrends: ToPriceTrendDTOs(r.PriceTrends),
		Menu:        ToMenuDTO(r.Menu),
		Consumption: ToConsumptionDTOs(r.Consumption),
		DailySales:  ToDailySalesDTOs(r.DailySales),
	}
}
