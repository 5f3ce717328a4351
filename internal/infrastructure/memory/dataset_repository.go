package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

var _ repository.DatasetRepository = (*DatasetStore)(nil)

// DatasetStore guarda la instantánea vigente de los cuatro reportes.
type DatasetStore struct {
	mu sync.RWMutex
	ds *entity.Dataset
}

// NewDatasetStore crea el almacén; ds puede ser nil (dataset vacío).
func NewDatasetStore(ds *entity.Dataset) *DatasetStore {
	if ds == nil {
		ds = &entity.Dataset{}
	}
	return &DatasetStore{ds: ds}
}

// Load devuelve la instantánea vigente. Los análisis no la modifican.
func (s *DatasetStore) Load(ctx context.Context) (*entity.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds, nil
}

// Replace publica una nueva instantánea completa.
func (s *DatasetStore) Replace(ctx context.Context, ds *entity.Dataset) error {
	if ds == nil {
		ds = &entity.Dataset{}
	}
	next := *ds
	if next.LoadedAt.IsZero() {
		next.LoadedAt = time.Now()
	}
	s.mu.Lock()
	s.ds = &next
	s.mu.Unlock()
	return nil
}
