package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/classifier"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

// LedgerUseCase operaciones que mutan el inventario vivo. Cada operación corre en una sola
// transacción (TxRunner): lee el ítem con bloqueo, aplica la regla, persiste y agrega la
// transacción de auditoría después de la escritura de cantidad.
type LedgerUseCase struct {
	txRunner TxRunner
	rules    inventory.Rules
	events   ports.EventPublisher
	metrics  ports.Metrics
	log      *logger.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso. events, metrics y log pueden ser nil.
func NewLedgerUseCase(
	txRunner TxRunner,
	rules inventory.Rules,
	events ports.EventPublisher,
	metrics ports.Metrics,
	log *logger.Logger,
) *LedgerUseCase {
	if events == nil {
		events = ports.NopPublisher{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{txRunner: txRunner, rules: rules, events: events, metrics: metrics, log: log, now: time.Now}
}

// Rules reglas de stock vigentes.
func (uc *LedgerUseCase) Rules() inventory.Rules { return uc.rules }

// Purchase suma una compra. Si el ítem no existe lo crea con quantity = total_purchased = qty.
// Solo falla con cantidad no positiva o nombre vacío.
func (uc *LedgerUseCase) Purchase(ctx context.Context, actor Actor, in dto.PurchaseRequest) (*entity.InventoryItem, error) {
	name := strings.TrimSpace(in.ItemName)
	qty := inventory.RoundQty(in.Quantity)
	if name == "" || !qty.IsPositive() {
		uc.metrics.LedgerRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	amount := in.Amount
	if amount == nil && in.Rate != nil {
		a := in.Rate.Mul(qty).Round(2)
		amount = &a
	}

	var (
		result *entity.InventoryItem
		logged *entity.Transaction
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.TransactionRepository,
		_ repository.CategoryRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if item == nil {
			item = &entity.InventoryItem{
				ItemName:       name,
				Category:       orDefault(in.Category, classifier.DetectCategory(name)),
				Unit:           orDefault(in.Unit, classifier.DetectUnit(name)),
				Quantity:       decimal.Zero,
				TotalPurchased: decimal.Zero,
			}
		}
		inventory.ApplyPurchase(item, qty)
		item.LastUpdated = uc.now()
		if err := itemRepo.Upsert(ctx, item); err != nil {
			return err
		}
		logged = uc.newTx(actor, item, entity.TxTypePurchase, qty)
		logged.Rate = in.Rate
		logged.Amount = amount
		logged.Vendor = strings.TrimSpace(in.Vendor)
		if err := txRepo.Append(ctx, logged); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.committed(ctx, logged)
	return result, nil
}

// Issue entrega qty a cocina. Devuelve además si el ítem quedó bajo el umbral.
func (uc *LedgerUseCase) Issue(ctx context.Context, actor Actor, in dto.IssueRequest) (*entity.InventoryItem, bool, error) {
	name := strings.TrimSpace(in.ItemName)
	qty := inventory.RoundQty(in.Quantity)
	if name == "" || !qty.IsPositive() {
		uc.metrics.LedgerRejected("invalid_input")
		return nil, false, domain.ErrInvalidInput
	}

	var (
		result *entity.InventoryItem
		logged *entity.Transaction
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.TransactionRepository,
		_ repository.CategoryRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		if !uc.rules.CanIssue(item.Quantity, qty) {
			return &domain.InsufficientStockError{
				Item: name, Available: item.Quantity.String(), Requested: qty.String(), Unit: item.Unit,
			}
		}
		before := item.Quantity
		inventory.ApplyIssue(item, qty)
		item.LastUpdated = uc.now()
		if err := itemRepo.Upsert(ctx, item); err != nil {
			return err
		}
		// se registra lo que realmente salió: con la tolerancia puede ser menos que qty
		logged = uc.newTx(actor, item, entity.TxTypeKitchen, before.Sub(item.Quantity))
		logged.Notes = strings.TrimSpace(in.Notes)
		if err := txRepo.Append(ctx, logged); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		uc.rejected(err)
		return nil, false, err
	}
	uc.committed(ctx, logged)
	return result, uc.rules.IsLowStock(result), nil
}

// ManagerAdd alta administrativa. Falla con ErrDuplicate si el ítem ya existe.
func (uc *LedgerUseCase) ManagerAdd(ctx context.Context, actor Actor, in dto.ManagerAddRequest) (*entity.InventoryItem, error) {
	name := strings.TrimSpace(in.ItemName)
	if name == "" || in.Quantity.IsNegative() {
		uc.metrics.LedgerRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}
	qty := inventory.RoundQty(in.Quantity)

	var (
		result *entity.InventoryItem
		logged *entity.Transaction
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.TransactionRepository,
		_ repository.CategoryRepository,
	) error {
		existing, err := itemRepo.GetForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: %s ya existe", domain.ErrDuplicate, name)
		}
		item := &entity.InventoryItem{
			ItemName:       name,
			Category:       orDefault(in.Category, classifier.DetectCategory(name)),
			Unit:           orDefault(in.Unit, classifier.DetectUnit(name)),
			Quantity:       qty,
			TotalPurchased: qty,
			LastUpdated:    uc.now(),
		}
		if err := itemRepo.Upsert(ctx, item); err != nil {
			return err
		}
		logged = uc.newTx(actor, item, entity.TxTypeManagerAdd, qty)
		if err := txRepo.Append(ctx, logged); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		uc.rejected(err)
		return nil, err
	}
	uc.committed(ctx, logged)
	return result, nil
}

// ManagerUpdate edición administrativa. Un cambio de cantidad se audita como compra (aumento)
// o salida a cocina (baja) marcada como ajuste del gerente; un cambio solo de datos, como manager_edit.
func (uc *LedgerUseCase) ManagerUpdate(ctx context.Context, actor Actor, in dto.ManagerUpdateRequest) (*entity.InventoryItem, error) {
	orig := strings.TrimSpace(in.OriginalName)
	if orig == "" || (in.Quantity != nil && in.Quantity.IsNegative()) {
		uc.metrics.LedgerRejected("invalid_input")
		return nil, domain.ErrInvalidInput
	}

	var (
		result *entity.InventoryItem
		logged *entity.Transaction
	)
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.TransactionRepository,
		_ repository.CategoryRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, orig)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, orig)
		}

		var changes []string
		if in.NewName != nil {
			newName := strings.TrimSpace(*in.NewName)
			if newName != "" && newName != orig {
				other, err := itemRepo.GetForUpdate(ctx, newName)
				if err != nil {
					return err
				}
				if other != nil {
					return fmt.Errorf("%w: %s ya existe", domain.ErrDuplicate, newName)
				}
				if err := itemRepo.Rename(ctx, orig, newName); err != nil {
					return err
				}
				item.ItemName = newName
				changes = append(changes, entity.RenamedFromPrefix+orig)
			}
		}
		if in.Category != nil && strings.TrimSpace(*in.Category) != "" && *in.Category != item.Category {
			item.Category = strings.TrimSpace(*in.Category)
			changes = append(changes, "categoría "+item.Category)
		}
		if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" && *in.Unit != item.Unit {
			item.Unit = strings.TrimSpace(*in.Unit)
			changes = append(changes, "unidad "+item.Unit)
		}
		diff := decimal.Zero
		if in.Quantity != nil {
			diff = inventory.ApplyAdjustment(item, *in.Quantity)
		}
		if diff.IsZero() && len(changes) == 0 {
			result = item
			return nil
		}

		item.LastUpdated = uc.now()
		if err := itemRepo.Upsert(ctx, item); err != nil {
			return err
		}
		switch diff.Sign() {
		case 1:
			logged = uc.newTx(actor, item, entity.TxTypePurchase, diff)
			logged.Notes = entity.NoteManagerAdjustment
		case -1:
			logged = uc.newTx(actor, item, entity.TxTypeKitchen, diff.Abs())
			logged.Notes = entity.NoteManagerAdjustment
		default:
			logged = uc.newTx(actor, item, entity.TxTypeManagerEdit, decimal.Zero)
			logged.Notes = strings.Join(changes, "; ")
		}
		if err := txRepo.Append(ctx, logged); err != nil {
			return err
		}
		result = item
		return nil
	})
	if err != nil {
		uc.rejected(err)
		return nil, err
	}
	if logged != nil {
		uc.committed(ctx, logged)
	}
	return result, nil
}

// ManagerDelete elimina el ítem y registra manager_delete con su estado previo.
func (uc *LedgerUseCase) ManagerDelete(ctx context.Context, actor Actor, in dto.ManagerDeleteRequest) error {
	name := strings.TrimSpace(in.ItemName)
	if name == "" {
		uc.metrics.LedgerRejected("invalid_input")
		return domain.ErrInvalidInput
	}
	var logged *entity.Transaction
	err := uc.txRunner.Run(ctx, func(
		itemRepo repository.InventoryItemRepository,
		txRepo repository.TransactionRepository,
		_ repository.CategoryRepository,
	) error {
		item, err := itemRepo.GetForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if item == nil {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
		}
		if err := itemRepo.Delete(ctx, name); err != nil {
			return err
		}
		logged = uc.newTx(actor, item, entity.TxTypeManagerDelete, item.Quantity)
		logged.Notes = fmt.Sprintf("eliminado con %s %s (total comprado %s)", item.Quantity, item.Unit, item.TotalPurchased)
		return txRepo.Append(ctx, logged)
	})
	if err != nil {
		uc.rejected(err)
		return err
	}
	uc.committed(ctx, logged)
	return nil
}

func (uc *LedgerUseCase) newTx(actor Actor, item *entity.InventoryItem, txType string, qty decimal.Decimal) *entity.Transaction {
	return &entity.Transaction{
		ID:        uuid.New().String(),
		ItemName:  item.ItemName,
		Category:  item.Category,
		Quantity:  qty,
		Unit:      item.Unit,
		Type:      txType,
		UserID:    actor.UserID,
		Username:  actor.Username,
		CreatedAt: uc.now(),
	}
}

// committed se ejecuta tras el Commit: métricas, log y evento. Un fallo al publicar solo se registra.
func (uc *LedgerUseCase) committed(ctx context.Context, tx *entity.Transaction) {
	uc.metrics.TransactionRecorded(tx.Type)
	uc.log.Info().
		Str("type", tx.Type).
		Str("item", tx.ItemName).
		Str("qty", tx.Quantity.String()).
		Str("user", tx.Username).
		Msg("transacción de inventario registrada")
	if err := uc.events.PublishTransaction(ctx, tx); err != nil {
		uc.log.Warn().Err(err).Str("tx_id", tx.ID).Msg("publicar evento de transacción")
	}
}

func (uc *LedgerUseCase) rejected(err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		uc.metrics.LedgerRejected("insufficient_stock")
	case errors.Is(err, domain.ErrNotFound):
		uc.metrics.LedgerRejected("not_found")
	case errors.Is(err, domain.ErrDuplicate):
		uc.metrics.LedgerRejected("duplicate")
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return def
}
