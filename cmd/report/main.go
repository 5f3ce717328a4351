// report genera el reporte de análisis a partir de un directorio de reportes CSV/XLSX,
// sin levantar el servidor.
//
// Uso: go run ./cmd/report [-dir ./data] [-pdf reporte.pdf]
// Sin -pdf imprime el reporte completo en JSON por stdout.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/restaurant-analytics/internal/application/analytics"
	"github.com/jhoicas/restaurant-analytics/internal/bootstrap"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/restaurant-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/tabular"
	"github.com/jhoicas/restaurant-analytics/pkg/config"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	dir := flag.String("dir", cfg.Storage.DataDir, "directorio con los reportes de compras, entregas, ventas y recetas")
	pdfPath := flag.String("pdf", "", "ruta del PDF a generar (por defecto JSON por stdout)")
	flag.Parse()

	ds, err := tabular.LoadDir(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer reportes: %v\n", err)
		os.Exit(1)
	}

	uc := analytics.NewReportUseCase(
		memory.NewDatasetStore(ds),
		analysis.New(bootstrap.Policy(cfg.Policy)),
		nil,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
		nil,
		logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("report"),
	)

	ctx := context.Background()
	if *pdfPath != "" {
		b, err := uc.ReportPDF(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Generar PDF: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*pdfPath, b, 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir PDF: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Escrito %s (%d bytes)\n", *pdfPath, len(b))
		return
	}

	report, err := uc.FullReport(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar reporte: %v\n", err)
		os.Exit(1)
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		fmt.Fprintf(os.Stderr, "Codificar JSON: %v\n", err)
		os.Exit(1)
	}
}
