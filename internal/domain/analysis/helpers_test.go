package analysis_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msg ...string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "esperado %s, obtenido %s %v", want, got.String(), msg)
}

func purchase(date, item, qty, rate, amount string) entity.PurchaseRecord {
	return entity.PurchaseRecord{Date: day(date), ItemName: item, Quantity: d(qty), Unit: "KG", Rate: d(rate), Amount: d(amount)}
}

func issue(date, item, qty string) entity.IssueRecord {
	return entity.IssueRecord{Date: day(date), ItemName: item, QuantityIssued: d(qty), Unit: "KG"}
}

func sale(date, item, qty, revenue, profit string) entity.SaleRecord {
	rev, prof := d(revenue), d(profit)
	return entity.SaleRecord{
		Date: day(date), ItemName: item, Category: "Main", QuantitySold: d(qty),
		Revenue: rev, FoodCost: rev.Sub(prof), Profit: prof,
	}
}
