package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
	"github.com/jhoicas/restaurant-analytics/internal/domain"
	"github.com/jhoicas/restaurant-analytics/internal/domain/classifier"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
	"github.com/jhoicas/restaurant-analytics/internal/domain/repository"
)

// Origen de la categoría en la vista previa.
const (
	SourceSheet     = "sheet"
	SourceInventory = "inventory"
	SourceAuto      = "auto"
)

// PurchaseImportUseCase interpreta la planilla de compras y registra los ítems confirmados.
type PurchaseImportUseCase struct {
	reader   ports.PurchaseSheetReader
	itemRepo repository.InventoryItemRepository
	ledger   *LedgerUseCase
}

// NewPurchaseImportUseCase construye el caso de uso.
func NewPurchaseImportUseCase(reader ports.PurchaseSheetReader, itemRepo repository.InventoryItemRepository, ledger *LedgerUseCase) *PurchaseImportUseCase {
	return &PurchaseImportUseCase{reader: reader, itemRepo: itemRepo, ledger: ledger}
}

// sheetColumns cabeceras detectadas por palabra clave.
type sheetColumns struct {
	item, qty, category, unit string
	rate, vendor              []string
}

func detectColumns(headers []string) (sheetColumns, bool) {
	var c sheetColumns
	has := func(h string, kws ...string) bool {
		l := strings.ToLower(h)
		for _, kw := range kws {
			if strings.Contains(l, kw) {
				return true
			}
		}
		return false
	}
	for _, h := range headers {
		if c.item == "" && has(h, "item", "name", "product") {
			c.item = h
		}
		if c.qty == "" && has(h, "qty", "quantity", "amount") {
			c.qty = h
		}
		// categoría y unidad: gana la última cabecera que coincide
		if has(h, "category", "cat") {
			c.category = h
		}
		if has(h, "unit") {
			c.unit = h
		}
		if has(h, "rate", "price") {
			c.rate = append(c.rate, h)
		}
		if has(h, "vendor", "supplier") {
			c.vendor = append(c.vendor, h)
		}
	}
	if c.item == "" && len(headers) > 0 {
		c.item = headers[0]
	}
	return c, c.item != ""
}

// Preview lee la planilla y resuelve categoría y unidad por prioridad:
// valor de la planilla (si es válido) → ítem existente en inventario → clasificador por palabras clave.
func (uc *PurchaseImportUseCase) Preview(ctx context.Context, r io.Reader) (*dto.PurchasePreviewResponse, error) {
	sheet, err := uc.reader.ReadPurchaseSheet(r)
	if err != nil {
		return nil, err
	}
	cols, ok := detectColumns(sheet.Headers)
	if !ok {
		return nil, fmt.Errorf("%w: no se encontró la columna de nombre de ítem", domain.ErrInvalidInput)
	}

	existing, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.InventoryItem, len(existing))
	for _, it := range existing {
		byName[strings.ToLower(it.ItemName)] = it
	}

	out := &dto.PurchasePreviewResponse{Success: true, Items: []dto.PurchasePreviewItem{}, WarningItems: []string{}}
	for _, row := range sheet.Rows {
		name := strings.TrimSpace(row[cols.item])
		if name == "" || strings.EqualFold(name, "nan") {
			continue
		}
		item := dto.PurchasePreviewItem{ItemName: name, Quantity: decimal.Zero}
		if cols.qty != "" {
			if q, err := decimal.NewFromString(strings.TrimSpace(row[cols.qty])); err == nil {
				item.Quantity = q
			}
		}

		if cols.category != "" {
			if c, ok := classifier.NormalizeCategory(row[cols.category]); ok {
				item.Category, item.CategorySource = c, SourceSheet
			}
		}
		if cols.unit != "" {
			if u, ok := classifier.NormalizeUnit(row[cols.unit]); ok {
				item.Unit = u
			}
		}
		if item.Category == "" || item.Unit == "" {
			if inv, ok := byName[strings.ToLower(name)]; ok {
				if item.Category == "" {
					item.Category, item.CategorySource = inv.Category, SourceInventory
				}
				if item.Unit == "" {
					item.Unit = inv.Unit
				}
			}
		}
		if item.Category == "" {
			item.Category, item.CategorySource = classifier.DetectCategory(name), SourceAuto
			item.AutoDetected = true
		}
		if item.Unit == "" {
			item.Unit = classifier.DetectUnit(name)
		}

		for _, h := range cols.rate {
			if v, err := decimal.NewFromString(strings.TrimSpace(row[h])); err == nil {
				rate := v
				item.Rate = &rate
			}
		}
		for _, h := range cols.vendor {
			if v := strings.TrimSpace(row[h]); v != "" {
				item.Vendor = v
			}
		}
		if item.Rate != nil && !item.Rate.IsZero() {
			amount := item.Rate.Mul(item.Quantity).Round(2)
			item.Amount = &amount
		}

		out.Items = append(out.Items, item)
		if item.AutoDetected {
			out.WarningItems = append(out.WarningItems, name)
		}
	}
	out.Count = len(out.Items)
	out.WarningCount = len(out.WarningItems)
	return out, nil
}

// Upload registra cada ítem confirmado como compra. Los errores se acumulan por ítem.
func (uc *PurchaseImportUseCase) Upload(ctx context.Context, actor Actor, in dto.PurchaseUploadRequest) (*dto.PurchaseUploadResponse, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: no hay ítems para cargar", domain.ErrInvalidInput)
	}
	out := &dto.PurchaseUploadResponse{Success: true}
	for i, it := range in.Items {
		_, err := uc.ledger.Purchase(ctx, actor, dto.PurchaseRequest{
			ItemName: it.ItemName,
			Category: it.Category,
			Quantity: it.Quantity,
			Unit:     it.Unit,
			Rate:     it.Rate,
			Amount:   it.Amount,
			Vendor:   it.Vendor,
		})
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("fila %d (%s): %v", i+1, it.ItemName, err))
			continue
		}
		out.AddedCount++
	}
	out.Success = out.AddedCount > 0
	return out, nil
}

// Template planilla vacía para descargar.
func (uc *PurchaseImportUseCase) Template() ([]byte, error) {
	return uc.reader.Template()
}
