// seed carga los reportes de un directorio en la tabla de dataset de PostgreSQL,
// reemplazando el contenido anterior.
//
// Uso: go run ./cmd/seed [directorio]
// Por defecto usa DATA_DIR. Aplica las migraciones antes de escribir.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/restaurant-analytics/internal/infrastructure/tabular"
	"github.com/jhoicas/restaurant-analytics/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	dir := cfg.Storage.DataDir
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	ds, err := tabular.LoadDir(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer reportes: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar a la base: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migrar: %v\n", err)
		os.Exit(1)
	}
	if err := postgres.NewDatasetRepository(pool).Replace(ctx, ds); err != nil {
		fmt.Fprintf(os.Stderr, "Guardar dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dataset cargado desde %s: %d compras, %d entregas, %d ventas, %d recetas\n",
		dir, len(ds.Purchases), len(ds.Issues), len(ds.Sales), len(ds.Recipes))
}
