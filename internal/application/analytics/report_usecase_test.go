package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/application/analytics"
	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var day1 = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

func sampleDataset() *entity.Dataset {
	return &entity.Dataset{
		Purchases: []entity.PurchaseRecord{
			{Date: day1, ItemName: "Rice", Quantity: d("100"), Unit: "KG", Rate: d("1"), Amount: d("100")},
			{Date: day1.AddDate(0, 0, 5), ItemName: "Rice", Quantity: d("100"), Unit: "KG", Rate: d("1.2"), Amount: d("120")},
		},
		Issues: []entity.IssueRecord{
			{Date: day1, ItemName: "Rice", Category: "Grocery", QuantityIssued: d("80"), Unit: "KG"},
			{Date: day1.AddDate(0, 0, 1), ItemName: "Rice", Category: "Grocery", QuantityIssued: d("90"), Unit: "KG"},
		},
		Sales: []entity.SaleRecord{
			{Date: day1, ItemName: "Biryani", Category: "Main", QuantitySold: d("10"), Price: d("10"), Revenue: d("100"), FoodCost: d("40"), Profit: d("60")},
			{Date: day1.AddDate(0, 0, 1), ItemName: "Pulao", Category: "Main", QuantitySold: d("4"), Price: d("8"), Revenue: d("32"), FoodCost: d("20"), Profit: d("12")},
		},
		Recipes: []entity.RecipeComponent{
			{MenuItem: "Biryani", Ingredient: "Rice", QuantityPerUnit: d("0.333"), Unit: "KG"},
		},
	}
}

type stubParser struct {
	ds  *entity.Dataset
	err error
}

func (p stubParser) ParseDataset(map[string]ports.NamedReader) (*entity.Dataset, error) {
	return p.ds, p.err
}

type stubPDF struct{ got *dto.FullReportDTO }

func (p *stubPDF) GenerateReportPDF(r *dto.FullReportDTO) ([]byte, error) {
	p.got = r
	return []byte("%PDF"), nil
}

func newUseCase(ds *entity.Dataset, parser ports.DatasetParser, pdf ports.ReportPDFGenerator) *analytics.ReportUseCase {
	return analytics.NewReportUseCase(memory.NewDatasetStore(ds), analysis.New(analysis.DefaultPolicy()), parser, pdf, nil, nil)
}

func TestLeakage_RedondeaADosDecimales(t *testing.T) {
	uc := newUseCase(sampleDataset(), nil, nil)

	rep, err := uc.Leakage(context.Background())
	require.NoError(t, err)
	require.Len(t, rep.Items, 1)
	it := rep.Items[0]
	assert.True(t, it.LeakagePct.Equal(d("15")), "(200-170)/200×100")
	assert.True(t, it.ValueLost.Equal(d("33")), "0.15 × 220")
	assert.Equal(t, analysis.LeakageWarning, it.Status, "15 no supera el umbral alto")
}

func TestFullReport_IncluyeTodosLosAnalisis(t *testing.T) {
	uc := newUseCase(sampleDataset(), nil, nil)

	rep, err := uc.FullReport(context.Background())
	require.NoError(t, err)
	assert.True(t, rep.Summary.TotalRevenue.Equal(d("132")))
	assert.Equal(t, "2026-09-01", rep.Summary.DateFrom)
	assert.Equal(t, "2026-09-02", rep.Summary.DateTo)
	require.Len(t, rep.Variance.Items, 1)
	assert.True(t, rep.Variance.Items[0].Theoretical.Equal(d("3.33")))
	require.Len(t, rep.PriceTrends, 1)
	assert.Equal(t, analysis.TrendUp, rep.PriceTrends[0].Trend)
	assert.True(t, rep.PriceTrends[0].Alert)
	require.Len(t, rep.Menu.Groups, 4, "los cuatro cuadrantes siempre presentes")
	assert.Equal(t, 2, rep.Menu.TotalItems)
	require.Len(t, rep.DailySales, 2)
	require.Len(t, rep.Consumption, 1)
	assert.Equal(t, 2, rep.Consumption[0].Days)
}

func TestReplaceDataset(t *testing.T) {
	uc := newUseCase(nil, stubParser{ds: sampleDataset()}, nil)

	_, err := uc.ReplaceDataset(context.Background(), map[string]ports.NamedReader{
		ports.ReportPurchases: {Filename: "purchase.csv"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "faltan salidas y ventas")

	stats, err := uc.ReplaceDataset(context.Background(), map[string]ports.NamedReader{
		ports.ReportPurchases: {Filename: "purchase.csv"},
		ports.ReportIssues:    {Filename: "stk.csv"},
		ports.ReportSales:     {Filename: "sales.csv"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Purchases)
	assert.Equal(t, 1, stats.Recipes)
	assert.False(t, stats.LoadedAt.IsZero())

	sum, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.TotalProfit.Equal(d("72")))
}

func TestReplaceDataset_ErrorDeIntegridadNoReemplaza(t *testing.T) {
	bad := &domain.DataIntegrityError{Dataset: ports.ReportSales, Missing: []string{"Revenue"}}
	uc := newUseCase(sampleDataset(), stubParser{err: bad}, nil)

	_, err := uc.ReplaceDataset(context.Background(), map[string]ports.NamedReader{
		ports.ReportPurchases: {}, ports.ReportIssues: {}, ports.ReportSales: {},
	})
	assert.ErrorIs(t, err, domain.ErrDataIntegrity)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Sales, "el dataset anterior sigue vigente")
}

func TestReportPDF(t *testing.T) {
	pdf := &stubPDF{}
	uc := newUseCase(sampleDataset(), nil, pdf)

	b, err := uc.ReportPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), b)
	require.NotNil(t, pdf.got)
	assert.Equal(t, 1, len(pdf.got.Leakage.Items))
}

func TestAnalisis_DatasetVacio(t *testing.T) {
	uc := newUseCase(nil, nil, nil)

	rep, err := uc.FullReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rep.Leakage.Items)
	assert.Empty(t, rep.PriceTrends)
	assert.True(t, rep.Summary.TotalRevenue.IsZero())
	assert.Empty(t, rep.Summary.DateFrom)
}

func TestLoaded(t *testing.T) {
	ok, err := newUseCase(nil, nil, nil).Loaded(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = newUseCase(sampleDataset(), nil, nil).Loaded(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
}
