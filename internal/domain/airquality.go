package domain

import "time"

// Reading source markers. Fallback readings are synthesized when the
// upstream fetch fails, so callers and logs can tell them apart from
// live data.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// Fallback sample values typical for Delhi winter, used whenever the
// upstream fetch fails.
const (
	FallbackConcentration = 180.0
	DefaultEfficiency     = 85
)

// AirQuality represents one computed air quality reading for a city
type AirQuality struct {
	City               string    `json:"city"`
	Parameter          string    `json:"parameter"`
	Concentration      float64   `json:"concentration"`
	OutsideAQI         int       `json:"outside_aqi"`
	InsideAQI          int       `json:"inside_aqi"`
	ImprovementPercent int       `json:"improvement_percent"`
	Category           string    `json:"category"`
	Source             string    `json:"source"`
	LastUpdated        time.Time `json:"last_updated"`
}

// AirQualityResponse wraps a reading with metadata
type AirQualityResponse struct {
	Data    AirQuality `json:"data"`
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
}
