// Package metrics expone las métricas de negocio en formato Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
)

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus implementa ports.Metrics sobre un registry propio.
type Prometheus struct {
	registry     *prometheus.Registry
	transactions *prometheus.CounterVec
	rejected     *prometheus.CounterVec
	lowStock     prometheus.Gauge
	analysis     *prometheus.HistogramVec
}

// New registra los colectores bajo el namespace dado.
func New(namespace string) *Prometheus {
	reg := prometheus.NewRegistry()
	p := &Prometheus{
		registry: reg,
		transactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_transactions_total",
			Help:      "Transacciones registradas en el ledger por tipo.",
		}, []string{"type"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ledger_rejected_total",
			Help:      "Operaciones del ledger rechazadas por motivo.",
		}, []string{"reason"}),
		lowStock: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "inventory_low_stock_items",
			Help:      "Ítems bajo el umbral en la última consulta.",
		}),
		analysis: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Duración de cada análisis.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"analysis"}),
	}
	reg.MustRegister(
		p.transactions, p.rejected, p.lowStock, p.analysis,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

func (p *Prometheus) TransactionRecorded(txType string) {
	p.transactions.WithLabelValues(txType).Inc()
}

func (p *Prometheus) LedgerRejected(reason string) {
	p.rejected.WithLabelValues(reason).Inc()
}

func (p *Prometheus) LowStockItems(n int) {
	p.lowStock.Set(float64(n))
}

func (p *Prometheus) AnalysisDuration(name string, d time.Duration) {
	p.analysis.WithLabelValues(name).Observe(d.Seconds())
}

// Registry registry con todos los colectores.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// Handler endpoint /metrics.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}
