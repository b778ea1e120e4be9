package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/delhibreath/backend/internal/domain"
)

// DefaultOpenAQBaseURL is the production OpenAQ API endpoint.
const DefaultOpenAQBaseURL = "https://api.openaq.org/v2"

// OpenAQClient fetches latest pollutant measurements from the OpenAQ API
type OpenAQClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenAQClient creates a new OpenAQ client
func NewOpenAQClient(baseURL, apiKey string, timeout time.Duration) *OpenAQClient {
	if baseURL == "" {
		baseURL = DefaultOpenAQBaseURL
	}
	return &OpenAQClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Measurement is the latest upstream reading for one city and parameter
type Measurement struct {
	Concentration float64
	LastUpdated   time.Time
}

// openAQLatestResponse represents the OpenAQ /v2/latest API response
type openAQLatestResponse struct {
	Results []struct {
		City         string `json:"city"`
		Measurements []struct {
			Parameter   string  `json:"parameter"`
			Value       float64 `json:"value"`
			LastUpdated string  `json:"lastUpdated"`
			Unit        string  `json:"unit"`
		} `json:"measurements"`
	} `json:"results"`
}

// LatestMeasurement fetches the most recent measurement for a city.
// Any transport error, non-200 status, malformed payload, or empty
// result set is returned as an error; the caller decides the fallback.
func (c *OpenAQClient) LatestMeasurement(ctx context.Context, city, parameter string) (Measurement, error) {
	params := url.Values{
		"city":      {city},
		"parameter": {parameter},
		"limit":     {"1"},
	}
	reqURL := fmt.Sprintf("%s/latest?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Measurement{}, fmt.Errorf("openaq: failed to create request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Measurement{}, fmt.Errorf("openaq: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Measurement{}, fmt.Errorf("openaq: unexpected status %d", resp.StatusCode)
	}

	var latest openAQLatestResponse
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		return Measurement{}, fmt.Errorf("openaq: failed to decode response: %w", err)
	}

	if len(latest.Results) == 0 || len(latest.Results[0].Measurements) == 0 {
		return Measurement{}, fmt.Errorf("openaq: no measurements for city %q", city)
	}

	m := latest.Results[0].Measurements[0]
	measurement := Measurement{Concentration: m.Value}

	// OpenAQ timestamps are RFC 3339; fall back to now if absent or malformed.
	if ts, parseErr := time.Parse(time.RFC3339, m.LastUpdated); parseErr == nil {
		measurement.LastUpdated = ts.UTC()
	} else {
		measurement.LastUpdated = domain.Clock.Now().UTC()
	}

	return measurement, nil
}
