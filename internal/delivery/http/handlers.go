package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/delhibreath/backend/internal/domain"
	"github.com/delhibreath/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	aqiSvc      *service.AQIService
	defaultCity string
}

// NewHandler creates a new handler
func NewHandler(aqiSvc *service.AQIService, defaultCity string) *Handler {
	return &Handler{
		aqiSvc:      aqiSvc,
		defaultCity: defaultCity,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	status := "ok"
	if err := h.aqiSvc.Health(c.Context()); err != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{
		"status":  status,
		"service": "delhibreath-backend",
		"version": "1.0.0",
	})
}

// Liveness returns a status token and the current UTC time
func (h *Handler) Liveness(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"time":   domain.Clock.Now().UTC().Format(time.RFC3339),
	})
}

// GetAirQuality returns outside and modeled inside AQI for a city.
// Upstream failures never surface as errors here: the service
// substitutes the fallback reading and marks its source accordingly.
func (h *Handler) GetAirQuality(c *fiber.Ctx) error {
	city := c.Query("city", h.defaultCity)
	parameter := c.Query("parameter", "pm25")
	efficiency := c.QueryInt("inside_efficiency", domain.DefaultEfficiency)

	reading := h.aqiSvc.GetAirQuality(c.Context(), city, parameter, efficiency)

	return c.JSON(domain.AirQualityResponse{
		Data:    reading,
		Success: true,
	})
}

// GetHistory returns persisted readings for a city within a time range
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	city := c.Query("city", h.defaultCity)

	hours := c.QueryInt("hours", 24)
	if hours < 1 || hours > 720 { // max 30 days
		hours = 24
	}

	to := domain.Clock.Now().UTC()
	from := to.Add(-time.Duration(hours) * time.Hour)

	data, err := h.aqiSvc.GetHistory(c.Context(), city, from, to)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch reading history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
