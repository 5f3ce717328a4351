package analysis

import "github.com/shopspring/decimal"

// Policy umbrales de clasificación. Son constantes de negocio configurables.
type Policy struct {
	LeakageHighPct    decimal.Decimal // > → HIGH ALERT
	LeakageWarningPct decimal.Decimal // > → WARNING
	VarianceOverPct   decimal.Decimal // > → OVER-USE
	VarianceUnderPct  decimal.Decimal // < → UNDER-USE
	PriceAlertPct     decimal.Decimal // |change| > → alerta
	PriceRisePct      decimal.Decimal // > → buscar proveedores alternos
	PriceDropPct      decimal.Decimal // < → compra por volumen

	TopPriceItems       int
	TopConsumptionItems int
}

// DefaultPolicy umbrales por defecto.
func DefaultPolicy() Policy {
	return Policy{
		LeakageHighPct:      decimal.NewFromInt(15),
		LeakageWarningPct:   decimal.NewFromInt(10),
		VarianceOverPct:     decimal.NewFromInt(15),
		VarianceUnderPct:    decimal.NewFromInt(-10),
		PriceAlertPct:       decimal.NewFromInt(10),
		PriceRisePct:        decimal.NewFromInt(10),
		PriceDropPct:        decimal.NewFromInt(-5),
		TopPriceItems:       5,
		TopConsumptionItems: 10,
	}
}

func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.TopPriceItems <= 0 {
		p.TopPriceItems = d.TopPriceItems
	}
	if p.TopConsumptionItems <= 0 {
		p.TopConsumptionItems = d.TopConsumptionItems
	}
	return p
}
