package inventory

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain/analysis"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
	"github.com/jhoicas/restaurant-analytics/pkg/logger"
)

// QueryUseCase consultas del inventario vivo y alertas de stock bajo.
type QueryUseCase struct {
	itemRepo repository.InventoryItemRepository
	rules    inventory.Rules
	notifier ports.Notifier
	metrics  ports.Metrics
	log      *logger.Logger
}

// NewQueryUseCase construye el caso de uso. notifier, metrics y log pueden ser nil.
func NewQueryUseCase(
	itemRepo repository.InventoryItemRepository,
	rules inventory.Rules,
	notifier ports.Notifier,
	metrics ports.Metrics,
	log *logger.Logger,
) *QueryUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &QueryUseCase{itemRepo: itemRepo, rules: rules, notifier: notifier, metrics: metrics, log: log}
}

// Overview lista los ítems por categoría y nombre, con el resumen por categoría.
func (uc *QueryUseCase) Overview(ctx context.Context) (*dto.InventoryOverviewResponse, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ItemName < items[j].ItemName
	})

	out := &dto.InventoryOverviewResponse{
		Items:   make([]dto.InventoryItemResponse, 0, len(items)),
		Summary: summarize(items),
		Total:   len(items),
	}
	for _, it := range items {
		out.Items = append(out.Items, ToItemResponse(it))
	}
	return out, nil
}

// summarize conteo por categoría reutilizando el motor de agregación.
func summarize(items []*entity.InventoryItem) []dto.CategorySummaryResponse {
	one := func(*entity.InventoryItem) decimal.Decimal { return decimal.NewFromInt(1) }
	inStock := func(it *entity.InventoryItem) decimal.Decimal {
		if it.InStock() {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	}
	groups := analysis.GroupBy(items,
		func(it *entity.InventoryItem) string { return it.Category },
		[]analysis.Measure[*entity.InventoryItem]{
			{Name: "count", Value: one, Reduce: analysis.Sum},
			{Name: "in_stock", Value: inStock, Reduce: analysis.Sum},
		},
	)
	keys := append([]string(nil), groups.Keys()...)
	sort.Strings(keys)

	out := make([]dto.CategorySummaryResponse, 0, len(keys))
	for _, k := range keys {
		g := groups.Get(k)
		count := int(g.Value("count").IntPart())
		in := int(g.Value("in_stock").IntPart())
		out = append(out, dto.CategorySummaryResponse{Category: k, ItemCount: count, InStock: in, OutOfStock: count - in})
	}
	return out
}

// InStockNames nombres de ítems con existencia, para autocompletar en cocina.
func (uc *QueryUseCase) InStockNames(ctx context.Context) ([]string, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.InStock() {
			names = append(names, it.ItemName)
		}
	}
	sort.Strings(names)
	return names, nil
}

// LowStock ítems con total_purchased > 0 y quantity < total_purchased × fracción, por nombre.
func (uc *QueryUseCase) LowStock(ctx context.Context) ([]entity.LowStockItem, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var low []entity.LowStockItem
	for _, it := range items {
		if uc.rules.IsLowStock(it) {
			low = append(low, entity.LowStockItem{Item: *it, Threshold: uc.rules.Threshold(it)})
		}
	}
	sort.Slice(low, func(i, j int) bool { return low[i].Item.ItemName < low[j].Item.ItemName })
	uc.metrics.LowStockItems(len(low))
	return low, nil
}

// SendLowStockAlerts envía una alerta agrupada con todos los ítems bajo el umbral.
func (uc *QueryUseCase) SendLowStockAlerts(ctx context.Context) (*dto.AlertResponse, error) {
	low, err := uc.LowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return &dto.AlertResponse{Success: true}, nil
	}
	if err := uc.notifier.NotifyLowStock(ctx, low); err != nil {
		return nil, fmt.Errorf("enviar alerta de stock bajo: %w", err)
	}
	uc.log.Info().Int("items", len(low)).Msg("alerta de stock bajo enviada")
	return &dto.AlertResponse{Success: true, Count: len(low), Sent: true}, nil
}

// NotifyIfLow alerta de un solo ítem tras una salida. Los errores solo se registran.
func (uc *QueryUseCase) NotifyIfLow(ctx context.Context, item *entity.InventoryItem) {
	if item == nil || !uc.rules.IsLowStock(item) {
		return
	}
	if err := uc.notifier.Notify(ctx, LowStockMessage(item, uc.rules.Threshold(item))); err != nil {
		uc.log.Warn().Err(err).Str("item", item.ItemName).Msg("alerta individual de stock bajo")
	}
}

// LowStockMessage texto HTML de la alerta individual.
func LowStockMessage(item *entity.InventoryItem, threshold decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("⚠️ <b>LOW STOCK ALERT</b>\n\n")
	fmt.Fprintf(&b, "📦 <b>Item:</b> %s\n", html.EscapeString(item.ItemName))
	fmt.Fprintf(&b, "📉 <b>Current:</b> %s %s\n", item.Quantity.StringFixed(2), html.EscapeString(item.Unit))
	fmt.Fprintf(&b, "🎯 <b>Threshold:</b> %s %s\n", threshold.StringFixed(2), html.EscapeString(item.Unit))
	b.WriteString("\nPlease restock soon!")
	return b.String()
}

// ToItemResponse mapea la entidad al DTO.
func ToItemResponse(it *entity.InventoryItem) dto.InventoryItemResponse {
	return dto.InventoryItemResponse{
		ItemName:       it.ItemName,
		Category:       it.Category,
		Quantity:       it.Quantity,
		Unit:           it.Unit,
		TotalPurchased: it.TotalPurchased,
		LastUpdated:    it.LastUpdated,
	}
}
