package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

const (
	defaultTxLimit = 100
	maxExportRows  = 500
	dateLayout     = "2006-01-02"
)

// TransactionUseCase consulta y exporta el log de auditoría dentro de la ventana de retención.
type TransactionUseCase struct {
	txRepo        repository.TransactionRepository
	exporter      ports.TransactionExporter
	retentionDays int
	log           *logger.Logger
	now           func() time.Time
}

// NewTransactionUseCase construye el caso de uso. retentionDays <= 0 desactiva la poda.
func NewTransactionUseCase(
	txRepo repository.TransactionRepository,
	exporter ports.TransactionExporter,
	retentionDays int,
	log *logger.Logger,
) *TransactionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TransactionUseCase{txRepo: txRepo, exporter: exporter, retentionDays: retentionDays, log: log, now: time.Now}
}

// Prune elimina las transacciones fuera de la ventana de retención.
func (uc *TransactionUseCase) Prune(ctx context.Context) (int64, error) {
	if uc.retentionDays <= 0 {
		return 0, nil
	}
	n, err := uc.txRepo.DeleteOlderThan(ctx, uc.cutoff())
	if err != nil {
		return 0, fmt.Errorf("podar transacciones: %w", err)
	}
	if n > 0 {
		uc.log.Info().Int64("deleted", n).Int("retention_days", uc.retentionDays).Msg("transacciones antiguas eliminadas")
	}
	return n, nil
}

// List poda y luego lista con filtros (tipo, rango o fecha única, límite; por defecto 100).
func (uc *TransactionUseCase) List(ctx context.Context, q dto.TransactionQuery) ([]dto.TransactionResponse, error) {
	if _, err := uc.Prune(ctx); err != nil {
		return nil, err
	}
	filter, err := uc.toFilter(q)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, ToTransactionResponse(t))
	}
	return out, nil
}

// Export lista (hasta 500 filas) y genera la planilla.
func (uc *TransactionUseCase) Export(ctx context.Context, q dto.TransactionQuery) ([]byte, error) {
	if uc.exporter == nil {
		return nil, fmt.Errorf("exportador no configurado")
	}
	if q.Limit <= 0 || q.Limit > maxExportRows {
		q.Limit = maxExportRows
	}
	rows, err := uc.List(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no hay transacciones para exportar", domain.ErrNotFound)
	}
	return uc.exporter.ExportTransactions(rows)
}

func (uc *TransactionUseCase) toFilter(q dto.TransactionQuery) (entity.TransactionFilter, error) {
	f := entity.TransactionFilter{Type: strings.TrimSpace(q.Type), Limit: q.Limit}
	if f.Type != "" && !entity.ValidTxType(f.Type) {
		return f, fmt.Errorf("%w: tipo de transacción %q", domain.ErrInvalidInput, f.Type)
	}
	if f.Limit <= 0 {
		f.Limit = defaultTxLimit
	}

	from, to := q.From, q.To
	if q.Date != "" {
		from, to = q.Date, q.Date
	}
	if from != "" {
		t, err := time.ParseInLocation(dateLayout, from, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: fecha inicial %q", domain.ErrInvalidInput, from)
		}
		f.From = t
	}
	if to != "" {
		t, err := time.ParseInLocation(dateLayout, to, time.Local)
		if err != nil {
			return f, fmt.Errorf("%w: fecha final %q", domain.ErrInvalidInput, to)
		}
		f.To = t.AddDate(0, 0, 1) // "to" es inclusivo
	}
	if uc.retentionDays > 0 && f.From.Before(uc.cutoff()) {
		f.From = uc.cutoff()
	}
	return f, nil
}

func (uc *TransactionUseCase) cutoff() time.Time {
	return uc.now().AddDate(0, 0, -uc.retentionDays)
}

// ToTransactionResponse mapea la entidad al DTO.
func ToTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        t.ID,
		ItemName:  t.ItemName,
		Category:  t.Category,
		Quantity:  t.Quantity,
		Unit:      t.Unit,
		Type:      t.Type,
		Username:  t.Username,
		Rate:      t.Rate,
		Amount:    t.Amount,
		Vendor:    t.Vendor,
		Notes:     t.Notes,
		CreatedAt: t.CreatedAt,
	}
}
