package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "950.00", formatMoney("950.00"))
	assert.Equal(t, "25,000.50", formatMoney("25000.50"))
	assert.Equal(t, "1,000,000", formatMoney("1000000"))
	assert.Equal(t, "-1,200.00", formatMoney("-1200.00"))
}

func TestGenerateReportPDF(t *testing.T) {
	report := &dto.FullReportDTO{
		GeneratedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
		Summary:     dto.SummaryDTO{TotalRevenue: decimal.NewFromInt(132000), DateFrom: "2024-01-01", DateTo: "2024-01-31"},
		Leakage: dto.LeakageReportDTO{Items: []dto.LeakageItemDTO{
			{ItemName: "Onion", Unit: "KG", Purchased: decimal.NewFromInt(100), Issued: decimal.NewFromInt(70),
				LeakagePct: decimal.NewFromInt(30), ValueLost: decimal.NewFromInt(900), Status: "HIGH ALERT"},
		}},
		PriceTrends: []dto.PriceTrendDTO{{ItemName: "Onion", Trend: "UP", Alert: true, Recommendation: "Negociar"}},
		Menu: dto.MenuReportDTO{Groups: []dto.MenuGroupDTO{
			{Class: "STAR", Advice: "Mantener", Count: 1, Items: []dto.MenuItemDTO{{ItemName: "Paneer Tikka"}}},
		}},
	}

	data, err := NewMarotoPDFGenerator("").GenerateReportPDF(report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateReportPDF_Nil(t *testing.T) {
	_, err := NewMarotoPDFGenerator("x").GenerateReportPDF(nil)
	assert.Error(t, err)
}
