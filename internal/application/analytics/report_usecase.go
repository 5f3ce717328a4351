// Package analytics contiene los casos de uso de los reportes de merma, varianza,
// precios, ingeniería de menú y consumo sobre el dataset cargado.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

// ReportUseCase ejecuta los análisis sobre la instantánea vigente del DatasetRepository.
//
// Los análisis son funciones puras del dominio; aquí solo se carga el dataset,
// se mide la duración y se mapea a DTO.
type ReportUseCase struct {
	datasets repository.DatasetRepository
	analyzer *analysis.Analyzer
	parser   ports.DatasetParser
	pdf      ports.ReportPDFGenerator
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewReportUseCase construye el caso de uso. parser, pdf, metrics y log pueden ser nil.
func NewReportUseCase(
	datasets repository.DatasetRepository,
	analyzer *analysis.Analyzer,
	parser ports.DatasetParser,
	pdf ports.ReportPDFGenerator,
	metrics ports.Metrics,
	log *logger.Logger,
) *ReportUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReportUseCase{datasets: datasets, analyzer: analyzer, parser: parser, pdf: pdf, metrics: metrics, log: log}
}

// run carga el dataset y mide la duración del análisis indicado.
func run[T any](ctx context.Context, uc *ReportUseCase, name string, fn func(*entity.Dataset) T) (T, error) {
	var zero T
	ds, err := uc.datasets.Load(ctx)
	if err != nil {
		return zero, fmt.Errorf("cargar dataset: %w", err)
	}
	start := time.Now()
	out := fn(ds)
	uc.metrics.AnalysisDuration(name, time.Since(start))
	return out, nil
}

// Summary KPIs globales.
func (uc *ReportUseCase) Summary(ctx context.Context) (*dto.SummaryDTO, error) {
	s, err := run(ctx, uc, "summary", uc.analyzer.Summary)
	if err != nil {
		return nil, err
	}
	out := ToSummaryDTO(s)
	return &out, nil
}

// Leakage merma por ítem.
func (uc *ReportUseCase) Leakage(ctx context.Context) (*dto.LeakageReportDTO, error) {
	r, err := run(ctx, uc, "leakage", uc.analyzer.Leakage)
	if err != nil {
		return nil, err
	}
	out := ToLeakageDTO(r)
	return &out, nil
}

// Variance consumo teórico vs real por ingrediente.
func (uc *ReportUseCase) Variance(ctx context.Context) (*dto.VarianceReportDTO, error) {
	r, err := run(ctx, uc, "variance", uc.analyzer.Variance)
	if err != nil {
		return nil, err
	}
	out := ToVarianceDTO(r)
	return &out, nil
}

// PriceTrends tendencia de precios de los ítems de mayor gasto.
func (uc *ReportUseCase) PriceTrends(ctx context.Context) ([]dto.PriceTrendDTO, error) {
	r, err := run(ctx, uc, "price_trends", uc.analyzer.PriceTrends)
	if err != nil {
		return nil, err
	}
	return ToPriceTrendDTOs(r), nil
}

// MenuEngineering matriz popularidad/rentabilidad.
func (uc *ReportUseCase) MenuEngineering(ctx context.Context) (*dto.MenuReportDTO, error) {
	r, err := run(ctx, uc, "menu_engineering", uc.analyzer.MenuEngineering)
	if err != nil {
		return nil, err
	}
	out := ToMenuDTO(r)
	return &out, nil
}

// Consumption patrón de consumo diario.
func (uc *ReportUseCase) Consumption(ctx context.Context) ([]dto.ConsumptionDTO, error) {
	r, err := run(ctx, uc, "consumption", uc.analyzer.Consumption)
	if err != nil {
		return nil, err
	}
	return ToConsumptionDTOs(r), nil
}

// DailySales serie diaria de ventas.
func (uc *ReportUseCase) DailySales(ctx context.Context) ([]dto.DailySalesDTO, error) {
	r, err := run(ctx, uc, "daily_sales", uc.analyzer.DailySales)
	if err != nil {
		return nil, err
	}
	return ToDailySalesDTOs(r), nil
}

// FullReport todos los análisis sobre la misma instantánea.
func (uc *ReportUseCase) FullReport(ctx context.Context) (*dto.FullReportDTO, error) {
	r, err := run(ctx, uc, "full_report", uc.analyzer.FullReport)
	if err != nil {
		return nil, err
	}
	out := ToFullReportDTO(r)
	return &out, nil
}

// ReportPDF genera el reporte combinado en PDF.
func (uc *ReportUseCase) ReportPDF(ctx context.Context) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador PDF no configurado")
	}
	rep, err := uc.FullReport(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReportPDF(rep)
}

// ReplaceDataset interpreta los archivos subidos y reemplaza la instantánea completa.
// Compras, salidas y ventas son obligatorias; recetas es opcional.
func (uc *ReportUseCase) ReplaceDataset(ctx context.Context, files map[string]ports.NamedReader) (*dto.DatasetStatsDTO, error) {
	if uc.parser == nil {
		return nil, fmt.Errorf("parser de reportes no configurado")
	}
	var missing []string
	for _, name := range []string{ports.ReportPurchases, ports.ReportIssues, ports.ReportSales} {
		if _, ok := files[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: faltan archivos %v", domain.ErrInvalidInput, missing)
	}
	ds, err := uc.parser.ParseDataset(files)
	if err != nil {
		return nil, err
	}
	if ds.LoadedAt.IsZero() {
		ds.LoadedAt = time.Now()
	}
	if err := uc.datasets.Replace(ctx, ds); err != nil {
		return nil, fmt.Errorf("reemplazar dataset: %w", err)
	}
	stats := statsOf(ds)
	uc.log.Info().
		Int("purchases", stats.Purchases).
		Int("issues", stats.Issues).
		Int("sales", stats.Sales).
		Int("recipes", stats.Recipes).
		Msg("dataset reemplazado")
	return &stats, nil
}

// Loaded indica si hay compras, entregas o ventas cargadas.
func (uc *ReportUseCase) Loaded(ctx context.Context) (bool, error) {
	ds, err := uc.datasets.Load(ctx)
	if err != nil {
		return false, err
	}
	return !ds.Empty(), nil
}

// Stats conteos del dataset vigente.
func (uc *ReportUseCase) Stats(ctx context.Context) (*dto.DatasetStatsDTO, error) {
	ds, err := uc.datasets.Load(ctx)
	if err != nil {
		return nil, err
	}
	s := statsOf(ds)
	return &s, nil
}

// statsOf conteos de registros por reporte.
func statsOf(ds *entity.Dataset) dto.DatasetStatsDTO {
	return dto.DatasetStatsDTO{
		Purchases: len(ds.Purchases),
		Issues:    len(ds.Issues),
		Sales:     len(ds.Sales),
		Recipes:   len(ds.Recipes),
		LoadedAt:  ds.LoadedAt,
	}
}
