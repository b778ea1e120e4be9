package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/delhibreath/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, aqiSvc *service.AQIService, defaultCity string) {
	handler := NewHandler(aqiSvc, defaultCity)

	// Health and liveness
	app.Get("/health", handler.HealthCheck)
	app.Get("/test", handler.Liveness)

	// Prometheus metrics
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Main endpoint, kept at the root for frontend compatibility
	app.Get("/aqi", handler.GetAirQuality)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/aqi", handler.GetAirQuality)
		api.Get("/history", handler.GetHistory)
	}
}
