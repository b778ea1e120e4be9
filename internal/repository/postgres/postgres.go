package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/delhibreath/backend/internal/domain"
)

// PostgresRepository implements domain.DataRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveReading persists an air quality reading to PostgreSQL
func (r *PostgresRepository) SaveReading(ctx context.Context, reading domain.AirQuality) error {
	query := `
		INSERT INTO aqi_readings (
			city, parameter, concentration, outside_aqi, inside_aqi,
			improvement_percent, category, source, last_updated
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		reading.City, reading.Parameter, reading.Concentration, reading.OutsideAQI, reading.InsideAQI,
		reading.ImprovementPercent, reading.Category, reading.Source, reading.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save reading: %w", err)
	}

	return nil
}

// GetHistoricalReadings retrieves reading history for a city from PostgreSQL
func (r *PostgresRepository) GetHistoricalReadings(ctx context.Context, city string, from, to time.Time) ([]domain.AirQuality, error) {
	query := `
		SELECT city, parameter, concentration, outside_aqi, inside_aqi,
			   improvement_percent, category, source, last_updated
		FROM aqi_readings
		WHERE city = $1 AND last_updated BETWEEN $2 AND $3
		ORDER BY last_updated DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, city, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query readings: %w", err)
	}
	defer rows.Close()

	var results []domain.AirQuality
	for rows.Next() {
		var a domain.AirQuality
		err := rows.Scan(
			&a.City, &a.Parameter, &a.Concentration, &a.OutsideAQI, &a.InsideAQI,
			&a.ImprovementPercent, &a.Category, &a.Source, &a.LastUpdated,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan reading row: %w", err)
		}
		results = append(results, a)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
