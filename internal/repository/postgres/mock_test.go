package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delhibreath/backend/internal/domain"
)

func TestMockRepository_SaveAndHistory(t *testing.T) {
	repo := NewMockRepository()
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	readings := []domain.AirQuality{
		{City: "Delhi", OutsideAQI: 230, LastUpdated: base.Add(-2 * time.Hour)},
		{City: "Delhi", OutsideAQI: 180, LastUpdated: base.Add(-1 * time.Hour)},
		{City: "Mumbai", OutsideAQI: 120, LastUpdated: base.Add(-1 * time.Hour)},
		{City: "Delhi", OutsideAQI: 90, LastUpdated: base.Add(-48 * time.Hour)}, // outside range
	}
	for _, r := range readings {
		require.NoError(t, repo.SaveReading(ctx, r))
	}

	got, err := repo.GetHistoricalReadings(ctx, "Delhi", base.Add(-24*time.Hour), base)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest first
	assert.Equal(t, 180, got[0].OutsideAQI)
	assert.Equal(t, 230, got[1].OutsideAQI)
}

func TestMockRepository_EmptyHistory(t *testing.T) {
	repo := NewMockRepository()

	got, err := repo.GetHistoricalReadings(context.Background(), "Delhi", time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMockRepository_Health(t *testing.T) {
	assert.NoError(t, NewMockRepository().Health(context.Background()))
}
