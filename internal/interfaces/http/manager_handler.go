package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
)

// ManagerHandler edición directa del inventario.
type ManagerHandler struct {
	ledger *inventory.LedgerUseCase
}

// NewManagerHandler construye el handler.
func NewManagerHandler(ledger *inventory.LedgerUseCase) *ManagerHandler {
	return &ManagerHandler{ledger: ledger}
}

// Add godoc
// @Summary      Alta de ítem
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManagerAddRequest  true  "ítem"
// @Success      201   {object}  dto.LedgerResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/items [post]
func (h *ManagerHandler) Add(c *fiber.Ctx) error {
	var in dto.ManagerAddRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.ledger.ManagerAdd(c.UserContext(), actorOf(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(itemResult("Ítem agregado: "+item.ItemName, item, false))
}

// Update godoc
// @Summary      Editar ítem
// @Description  Renombrar, recategorizar, cambiar unidad o ajustar cantidad. Los ajustes quedan en el log.
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManagerUpdateRequest  true  "original_name y campos a cambiar"
// @Success      200   {object}  dto.LedgerResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/manager/items [put]
func (h *ManagerHandler) Update(c *fiber.Ctx) error {
	var in dto.ManagerUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	item, err := h.ledger.ManagerUpdate(c.UserContext(), actorOf(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(itemResult("Ítem actualizado: "+item.ItemName, item, false))
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         manager
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ManagerDeleteRequest  true  "ítem"
// @Success      200   {object}  dto.ResultResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/manager/items [delete]
func (h *ManagerHandler) Delete(c *fiber.Ctx) error {
	var in dto.ManagerDeleteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.ledger.ManagerDelete(c.UserContext(), actorOf(c), in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.OK("Ítem eliminado: " + in.ItemName))
}
