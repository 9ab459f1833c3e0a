package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/budoverein/dojokasse/internal/application/dto"
	"github.com/budoverein/dojokasse/internal/application/forecast"
	"github.com/budoverein/dojokasse/internal/domain"
)

// ForecastHandler bedient die Umsatzprognose (geschützt).
type ForecastHandler struct {
	uc *forecast.ForecastUseCase
}

// NewForecastHandler baut den Handler.
func NewForecastHandler(uc *forecast.ForecastUseCase) *ForecastHandler {
	return &ForecastHandler{uc: uc}
}

// Get liefert die annotierte Umsatzreihe: Ist-Monate plus sechs
// Prognoseperioden mit Trend und Unsicherheitsband.
// GET /api/forecast?months=12
func (h *ForecastHandler) Get(c *fiber.Ctx) error {
	dojoID := GetDojoID(c)
	if dojoID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Token ungültig"})
	}
	months := forecast.DefaultMonths
	if raw := c.Query("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 60 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "months muss zwischen 1 und 60 liegen"})
		}
		months = parsed
	}
	result, err := h.uc.Forecast(c.Context(), dojoID, months)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "ungültige Monatsangabe"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(result)
}
