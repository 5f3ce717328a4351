package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/analytics"
	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
	"github.com/jhoicas/restaurant-analytics/internal/application/ports"
)

// Campos del formulario de carga → nombre lógico del reporte.
var uploadFields = []struct {
	field    string
	report   string
	required bool
}{
	{"purchase", ports.ReportPurchases, true},
	{"stk", ports.ReportIssues, true},
	{"sales", ports.ReportSales, true},
	{"recipes", ports.ReportRecipes, false},
}

// AnalyticsHandler maneja los endpoints de analítica sobre el dataset cargado.
type AnalyticsHandler struct {
	uc *analytics.ReportUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.ReportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func respond[T any](c *fiber.Ctx, out T, err error) error {
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      KPIs del período
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SummaryDTO
// @Router       /api/analytics/summary [get]
func (h *AnalyticsHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	return respond(c, out, err)
}

// Leakage godoc
// @Summary      Merma: comprado vs entregado a cocina
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LeakageReportDTO
// @Router       /api/analytics/leakage [get]
func (h *AnalyticsHandler) Leakage(c *fiber.Ctx) error {
	out, err := h.uc.Leakage(c.UserContext())
	return respond(c, out, err)
}

// Variance godoc
// @Summary      Varianza de recetas: consumo teórico vs real
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VarianceReportDTO
// @Router       /api/analytics/variance [get]
func (h *AnalyticsHandler) Variance(c *fiber.Ctx) error {
	out, err := h.uc.Variance(c.UserContext())
	return respond(c, out, err)
}

// PriceTrends godoc
// @Summary      Tendencia de precios de compra
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PriceTrendDTO
// @Router       /api/analytics/price-trends [get]
func (h *AnalyticsHandler) PriceTrends(c *fiber.Ctx) error {
	out, err := h.uc.PriceTrends(c.UserContext())
	return respond(c, out, err)
}

// MenuEngineering godoc
// @Summary      Matriz de ingeniería de menú
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MenuReportDTO
// @Router       /api/analytics/menu-engineering [get]
func (h *AnalyticsHandler) MenuEngineering(c *fiber.Ctx) error {
	out, err := h.uc.MenuEngineering(c.UserContext())
	return respond(c, out, err)
}

// Consumption godoc
// @Summary      Patrones de consumo diario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConsumptionDTO
// @Router       /api/analytics/consumption [get]
func (h *AnalyticsHandler) Consumption(c *fiber.Ctx) error {
	out, err := h.uc.Consumption(c.UserContext())
	return respond(c, out, err)
}

// DailySales godoc
// @Summary      Ventas por día
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DailySalesDTO
// @Router       /api/analytics/daily-sales [get]
func (h *AnalyticsHandler) DailySales(c *fiber.Ctx) error {
	out, err := h.uc.DailySales(c.UserContext())
	return respond(c, out, err)
}

// Report godoc
// @Summary      Reporte combinado
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.FullReportDTO
// @Router       /api/analytics/report [get]
func (h *AnalyticsHandler) Report(c *fiber.Ctx) error {
	out, err := h.uc.FullReport(c.UserContext())
	return respond(c, out, err)
}

// ReportPDF godoc
// @Summary      Reporte combinado en PDF
// @Tags         analytics
// @Security     Bearer
// @Produce      application/pdf
// @Success      200
// @Router       /api/analytics/report.pdf [get]
func (h *AnalyticsHandler) ReportPDF(c *fiber.Ctx) error {
	data, err := h.uc.ReportPDF(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="restaurant_report.pdf"`)
	return c.Send(data)
}

// Dataset godoc
// @Summary      Registros cargados en el dataset
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DatasetStatsDTO
// @Router       /api/analytics/dataset [get]
func (h *AnalyticsHandler) Dataset(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	return respond(c, out, err)
}

// Upload godoc
// @Summary      Reemplazar el dataset
// @Description  Compras, salidas a cocina y ventas son obligatorios (CSV o XLSX); recetas es opcional.
// @Description  Si algún archivo no valida, el dataset anterior se conserva.
// @Tags         analytics
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        purchase  formData  file  true   "purchase_report"
// @Param        stk       formData  file  true   "store_to_kitchen_report"
// @Param        sales     formData  file  true   "sales_report"
// @Param        recipes   formData  file  false  "recipes_bom"
// @Success      200  {object}  dto.DatasetStatsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/analytics/upload [post]
func (h *AnalyticsHandler) Upload(c *fiber.Ctx) error {
	files := make(map[string]ports.NamedReader, len(uploadFields))
	var opened []multipart.File
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, u := range uploadFields {
		fh, err := c.FormFile(u.field)
		if err != nil {
			if !u.required {
				continue
			}
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("MISSING_FILE", "falta el archivo '"+u.field+"'"))
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, err)
		}
		opened = append(opened, f)
		files[u.report] = ports.NamedReader{Filename: fh.Filename, Reader: f}
	}
	out, err := h.uc.ReplaceDataset(c.UserContext(), files)
	return respond(c, out, err)
}
