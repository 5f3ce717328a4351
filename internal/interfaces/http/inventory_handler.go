package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
	"github.com/jhoicas/restaurant-analytics/internal/domain/entity"
)

// InventoryHandler consultas del inventario, compras, importación y salidas a cocina.
type InventoryHandler struct {
	ledger   *inventory.LedgerUseCase
	query    *inventory.QueryUseCase
	importer *inventory.PurchaseImportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, query *inventory.QueryUseCase, importer *inventory.PurchaseImportUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, query: query, importer: importer}
}

func itemResult(msg string, it *entity.InventoryItem, low bool) dto.LedgerResult {
	resp := inventory.ToItemResponse(it)
	return dto.LedgerResult{ResultResponse: dto.OK(msg), Item: &resp, LowStock: low}
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// Overview godoc
// @Summary      Inventario actual
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryOverviewResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) Overview(c *fiber.Ctx) error {
	out, err := h.query.Overview(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Items godoc
// @Summary      Nombres de ítems con existencia
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/inventory/items [get]
func (h *InventoryHandler) Items(c *fiber.Ctx) error {
	names, err := h.query.InStockNames(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(names)
}

// LowStock godoc
// @Summary      Ítems bajo el umbral
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockItemResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	low, err := h.query.LowStock(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LowStockItemResponse, 0, len(low))
	for i := range low {
		out = append(out, dto.LowStockItemResponse{
			InventoryItemResponse: inventory.ToItemResponse(&low[i].Item),
			Threshold:             low[i].Threshold,
		})
	}
	return c.JSON(out)
}

// ── Compras ───────────────────────────────────────────────────────────────────

// Purchase godoc
// @Summary      Registrar compra
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseRequest  true  "ítem, cantidad, unidad, tarifa"
// @Success      200   {object}  dto.LedgerResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchase [post]
func (h *InventoryHandler) Purchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.ledger.Purchase(c.UserContext(), actorOf(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(itemResult(fmt.Sprintf("Agregado %s %s de %s", in.Quantity.String(), item.Unit, item.ItemName), item, false))
}

// PurchasePreview godoc
// @Summary      Vista previa de planilla de compras
// @Tags         inventory
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "planilla .xlsx"
// @Success      200   {object}  dto.PurchasePreviewResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchase/preview [post]
func (h *InventoryHandler) PurchasePreview(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "no se subió ningún archivo"))
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	out, err := h.importer.Preview(c.UserContext(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PurchaseUpload godoc
// @Summary      Confirmar compras importadas
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PurchaseUploadRequest  true  "ítems confirmados"
// @Success      200   {object}  dto.PurchaseUploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/purchase/upload [post]
func (h *InventoryHandler) PurchaseUpload(c *fiber.Ctx) error {
	var in dto.PurchaseUploadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.importer.Upload(c.UserContext(), actorOf(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// PurchaseTemplate godoc
// @Summary      Plantilla xlsx para importar compras
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200
// @Router       /api/inventory/purchase/template [get]
func (h *InventoryHandler) PurchaseTemplate(c *fiber.Ctx) error {
	data, err := h.importer.Template()
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="purchase_template.xlsx"`)
	return c.Send(data)
}

// ── Cocina ────────────────────────────────────────────────────────────────────

// Issue godoc
// @Summary      Salida a cocina
// @Description  Descuenta existencia; si el ítem queda bajo el umbral se envía una alerta.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueRequest  true  "ítem y cantidad"
// @Success      200   {object}  dto.LedgerResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/kitchen [post]
func (h *InventoryHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, low, err := h.ledger.Issue(c.UserContext(), actorOf(c), in)
	if err != nil {
		return writeError(c, err)
	}
	if low {
		h.query.NotifyIfLow(c.UserContext(), item)
	}
	return c.JSON(itemResult(fmt.Sprintf("Entregado %s %s de %s", in.Quantity.String(), item.Unit, item.ItemName), item, low))
}
