package ports

import (
	"context"

	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// EventPublisher publica las transacciones del ledger ya confirmadas.
// Un fallo de publicación no revierte la operación.
type EventPublisher interface {
	PublishTransaction(ctx context.Context, tx *entity.Transaction) error
}

// NopPublisher no publica nada.
type NopPublisher struct{}

func (NopPublisher) PublishTransaction(context.Context, *entity.Transaction) error { return nil }
