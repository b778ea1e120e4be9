package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/delhibreath/backend/internal/domain"
	"github.com/delhibreath/backend/internal/observability"
)

// AQIService computes air quality readings from upstream measurements
type AQIService struct {
	client  *OpenAQClient
	repo    DataRepository
	metrics *observability.Metrics

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewAQIService creates a new AQI service
func NewAQIService(client *OpenAQClient, repo DataRepository, metrics *observability.Metrics) *AQIService {
	return &AQIService{
		client:  client,
		repo:    repo,
		metrics: metrics,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *AQIService) WaitBackground() {
	s.wgBg.Wait()
}

// GetAirQuality fetches the latest measurement for a city and converts
// it to outside and modeled inside AQI values. The upstream fetch may
// fail; the returned reading is then synthesized from the fixed
// fallback sample and marked with Source "fallback". This method never
// returns an error: failures collapse into the fallback reading.
func (s *AQIService) GetAirQuality(ctx context.Context, city, parameter string, efficiency int) domain.AirQuality {
	eff := domain.ClampEfficiency(efficiency)

	start := domain.Clock.Now()
	m, err := s.client.LatestMeasurement(ctx, city, parameter)
	s.metrics.FetchDuration.Observe(domain.Clock.Since(start).Seconds())

	var reading domain.AirQuality
	if err != nil {
		log.Printf("Upstream fetch failed for %s/%s, serving fallback: %v", city, parameter, err)
		s.metrics.UpstreamErrors.Inc()
		reading = buildReading(city, parameter, domain.FallbackConcentration, domain.DefaultEfficiency,
			domain.Clock.Now().UTC(), domain.SourceFallback)
	} else {
		reading = buildReading(city, parameter, m.Concentration, eff, m.LastUpdated, domain.SourceLive)
	}

	s.metrics.ReadingsServed.WithLabelValues(reading.Source).Inc()

	// Persist the reading asynchronously (tracked for graceful shutdown)
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := s.repo.SaveReading(bgCtx, reading); saveErr != nil {
			log.Printf("Failed to save reading: %v", saveErr)
		}
	}()

	return reading
}

// GetHistory returns persisted readings for a city within a time range
func (s *AQIService) GetHistory(ctx context.Context, city string, from, to time.Time) ([]domain.AirQuality, error) {
	return s.repo.GetHistoricalReadings(ctx, city, from, to)
}

// Health checks repository connectivity
func (s *AQIService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// buildReading runs the AQI conversion for one measured concentration
func buildReading(city, parameter string, conc float64, eff int, lastUpdated time.Time, source string) domain.AirQuality {
	outside := domain.PM25ToAQI(conc)
	inside := domain.PM25ToAQI(domain.ReducedConcentration(conc, eff))

	return domain.AirQuality{
		City:               city,
		Parameter:          parameter,
		Concentration:      conc,
		OutsideAQI:         outside,
		InsideAQI:          inside,
		ImprovementPercent: domain.ImprovementPercent(outside, inside),
		Category:           domain.AQICategory(outside),
		Source:             source,
		LastUpdated:        lastUpdated,
	}
}
