package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// TransactionRepository puerto del log de auditoría (append-only).
type TransactionRepository interface {
	Append(ctx context.Context, tx *entity.Transaction) error
	// List devuelve las transacciones más recientes primero.
	List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.Transaction, error)
	ListByItem(ctx context.Context, itemName string) ([]*entity.Transaction, error)
	// DeleteOlderThan poda por política de retención; devuelve cuántas se eliminaron.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
