package repository

import (
	"context"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// DatasetRepository proveedor de solo lectura de los cuatro reportes para los análisis.
// Replace sustituye el dataset completo de forma atómica.
type DatasetRepository interface {
	Load(ctx context.Context) (*entity.Dataset, error)
	Replace(ctx context.Context, ds *entity.Dataset) error
}
