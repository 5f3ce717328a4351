package repository

import (
	"context"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// InventoryItemRepository puerto de persistencia del inventario vivo.
// Get devuelve (nil, nil) si el ítem no existe.
type InventoryItemRepository interface {
	Get(ctx context.Context, itemName string) (*entity.InventoryItem, error)
	// GetForUpdate igual que Get pero bloquea el ítem hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, itemName string) (*entity.InventoryItem, error)
	List(ctx context.Context) ([]*entity.InventoryItem, error)
	Upsert(ctx context.Context, item *entity.InventoryItem) error
	// Rename cambia la clave del ítem conservando sus datos.
	Rename(ctx context.Context, oldName, newName string) error
	Delete(ctx context.Context, itemName string) error
	CountByCategory(ctx context.Context, category string) (int, error)
	RenameCategory(ctx context.Context, oldName, newName string) error
}
