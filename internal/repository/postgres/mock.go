package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/delhibreath/backend/internal/domain"
)

// MockRepository implements domain.DataRepository for testing/demo mode.
// Readings are held in memory so the history endpoint still works when
// no database is configured.
type MockRepository struct {
	mu       sync.Mutex
	readings []domain.AirQuality
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveReading stores the reading in memory
func (r *MockRepository) SaveReading(ctx context.Context, reading domain.AirQuality) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, reading)
	// Bound memory in long-running demo sessions
	if len(r.readings) > 1000 {
		r.readings = r.readings[len(r.readings)-1000:]
	}
	return nil
}

// GetHistoricalReadings returns in-memory readings for a city within the range
func (r *MockRepository) GetHistoricalReadings(ctx context.Context, city string, from, to time.Time) ([]domain.AirQuality, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.AirQuality
	for i := len(r.readings) - 1; i >= 0; i-- {
		a := r.readings[i]
		if a.City != city {
			continue
		}
		if a.LastUpdated.Before(from) || a.LastUpdated.After(to) {
			continue
		}
		results = append(results, a)
		if len(results) == 100 {
			break
		}
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
