package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurant-analytics/internal/application/dto"
)

// datasetChecker es el contrato mínimo que necesita el middleware para saber si hay datos.
// Lo implementa *analytics.ReportUseCase.
type datasetChecker interface {
	Loaded(ctx context.Context) (bool, error)
}

// RequireDataset corta las rutas de análisis mientras no haya reportes cargados.
//
// Comportamiento:
//   - 409 Conflict → dataset vacío; hay que subir los reportes primero.
//   - 503 Service Unavailable → no se pudo leer el dataset.
func RequireDataset(checker datasetChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := checker.Loaded(c.UserContext())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("DATASET_CHECK_FAILED", "no se pudo leer el dataset, intente más tarde"))
		}
		if !ok {
			return c.Status(fiber.StatusConflict).JSON(dto.Fail("DATASET_EMPTY",
				"no hay reportes cargados; suba compras, entregas y ventas en /api/analytics/upload"))
		}
		return c.Next()
	}
}
