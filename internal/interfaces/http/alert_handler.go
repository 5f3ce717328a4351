package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/inventory"
)

// AlertHandler envío manual de alertas.
type AlertHandler struct {
	query *inventory.QueryUseCase
}

// NewAlertHandler construye el handler.
func NewAlertHandler(query *inventory.QueryUseCase) *AlertHandler {
	return &AlertHandler{query: query}
}

// SendLowStock godoc
// @Summary      Enviar alerta de stock bajo
// @Description  Un solo mensaje con todos los ítems bajo el umbral.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/alerts/low-stock [post]
func (h *AlertHandler) SendLowStock(c *fiber.Ctx) error {
	out, err := h.query.SendLowStockAlerts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
