package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

func leakageDataset() *entity.Dataset {
	return &entity.Dataset{
		Purchases: []entity.PurchaseRecord{
			purchase("2024-01-01", "Rice", "60", "5", "300"),
			purchase("2024-01-05", "Rice", "40", "5", "200"),
			purchase("2024-01-02", "Oil", "50", "2", "100"),
			purchase("2024-01-02", "Salt", "10", "1", "10"),
			purchase("2024-01-03", "Sugar", "10", "3", "30"),
		},
		Issues: []entity.IssueRecord{
			issue("2024-01-02", "Rice", "80"),
			issue("2024-01-03", "Oil", "44"),
			issue("2024-01-03", "Salt", "10"),
			issue("2024-01-04", "Sugar", "12"),
			issue("2024-01-04", "Ghost", "5"),
		},
	}
}

func TestLeakage_CalculoYBandas(t *testing.T) {
	rep := analysis.New(analysis.DefaultPolicy()).Leakage(leakageDataset())

	require.Len(t, rep.Items, 5, "outer join: todos los ítems de ambos lados")
	names := make([]string, 0, len(rep.Items))
	for _, it := range rep.Items {
		names = append(names, it.ItemName)
	}
	assert.Equal(t, []string{"Rice", "Oil", "Ghost", "Salt", "Sugar"}, names,
		"orden descendente por %; empates por nombre")

	rice := rep.Items[0]
	assertDec(t, "100", rice.Purchased)
	assertDec(t, "80", rice.Issued)
	assertDec(t, "20", rice.LeakagePct)
	assertDec(t, "100", rice.ValueLost)
	assert.Equal(t, analysis.LeakageHighAlert, rice.Status)

	oil := rep.Items[1]
	assertDec(t, "12", oil.LeakagePct)
	assert.Equal(t, analysis.LeakageWarning, oil.Status)

	ghost := rep.Items[2]
	assertDec(t, "0", ghost.LeakagePct, "sin compras el % es 0, no infinito")
	assertDec(t, "0", ghost.ValueLost)
	assertDec(t, "-5", ghost.Difference)

	sugar := rep.Items[4]
	assertDec(t, "-20", sugar.LeakagePct)
	assertDec(t, "-6", sugar.ValueLost)
	assert.Equal(t, analysis.LeakageNone, sugar.Status)

	assertDec(t, "106", rep.TotalValueLost, "el total incluye aportes negativos")
	assert.Equal(t, 1, rep.HighAlerts)
	assert.Equal(t, 1, rep.Warnings)
}

func TestLeakage_UmbralesConfigurables(t *testing.T) {
	p := analysis.DefaultPolicy()
	p.LeakageHighPct = d("25")
	rep := analysis.New(p).Leakage(leakageDataset())

	assert.Equal(t, analysis.LeakageWarning, rep.Items[0].Status, "20% ya no supera el umbral alto de 25%")
	assert.Equal(t, 0, rep.HighAlerts)
	assert.Equal(t, 2, rep.Warnings)
}

func TestLeakage_DatasetVacio(t *testing.T) {
	rep := analysis.New(analysis.DefaultPolicy()).Leakage(&entity.Dataset{})

	assert.Empty(t, rep.Items)
	assertDec(t, "0", rep.TotalValueLost)
}
