package ports

import (
	"context"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// Notifier puerto de salida de alertas (chat bot, correo, ...).
// El ledger no lo invoca por sí mismo: lo usan los casos de uso de alertas.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyLowStock(ctx context.Context, items []entity.LowStockItem) error
}

// NopNotifier descarta todas las alertas.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string) error                        { return nil }
func (NopNotifier) NotifyLowStock(context.Context, []entity.LowStockItem) error { return nil }
