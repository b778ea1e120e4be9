package domain

import (
	"context"
	"time"
)

// DataRepository defines the interface for reading persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type DataRepository interface {
	// SaveReading persists a computed air quality reading
	SaveReading(ctx context.Context, reading AirQuality) error

	// GetHistoricalReadings retrieves reading history for a city
	GetHistoricalReadings(ctx context.Context, city string, from, to time.Time) ([]AirQuality, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
