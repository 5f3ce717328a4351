package ports

import "time"

// Metrics contadores de negocio expuestos al sistema de monitoreo.
type Metrics interface {
	TransactionRecorded(txType string)
	LedgerRejected(reason string)
	LowStockItems(n int)
	AnalysisDuration(name string, d time.Duration)
}

// NopMetrics no registra nada.
type NopMetrics struct{}

func (NopMetrics) TransactionRecorded(string)             {}
func (NopMetrics) LedgerRejected(string)                  {}
func (NopMetrics) LowStockItems(int)                      {}
func (NopMetrics) AnalysisDuration(string, time.Duration) {}
