package inventory

import (
	"context"

	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de almacenamiento, pasando repositorios
// atados a esa transacción. Garantiza que cada operación del ledger sea un read-modify-write atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.TransactionRepository,
		categoryRepo repository.CategoryRepository,
	) error) error
}

// Actor usuario autenticado que origina la operación.
type Actor struct {
	UserID   string
	Username string
}
