package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delhibreath/backend/internal/domain"
	"github.com/delhibreath/backend/internal/observability"
	"github.com/delhibreath/backend/internal/repository/postgres"
	"github.com/delhibreath/backend/internal/service"
)

func newTestApp(upstreamURL string) (*fiber.App, *service.AQIService) {
	client := service.NewOpenAQClient(upstreamURL, "", 5*time.Second)
	svc := service.NewAQIService(client, postgres.NewMockRepository(), observability.NewMetricsForTesting())

	app := fiber.New()
	SetupRoutes(app, svc, "Delhi")
	return app, svc
}

func failingUpstream() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
}

func liveUpstream(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v))
}

func TestLiveness(t *testing.T) {
	frozen := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	srv := failingUpstream()
	defer srv.Close()
	app, _ := newTestApp(srv.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	decodeBody(t, resp, &got)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "2024-01-15T12:00:00Z", got.Time)
}

func TestHealthCheck(t *testing.T) {
	srv := failingUpstream()
	defer srv.Close()
	app, _ := newTestApp(srv.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Status  string `json:"status"`
		Service string `json:"service"`
	}
	decodeBody(t, resp, &got)
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, "delhibreath-backend", got.Service)
}

func TestGetAirQuality_FallbackStaysHTTP200(t *testing.T) {
	frozen := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	srv := failingUpstream()
	defer srv.Close()
	app, _ := newTestApp(srv.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/aqi", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.AirQualityResponse
	decodeBody(t, resp, &got)

	assert.True(t, got.Success)
	assert.Equal(t, "Delhi", got.Data.City)
	assert.Equal(t, "pm25", got.Data.Parameter)
	assert.Equal(t, domain.SourceFallback, got.Data.Source)
	assert.Equal(t, 180.0, got.Data.Concentration)
	assert.Equal(t, 230, got.Data.OutsideAQI)
	assert.Equal(t, 82, got.Data.InsideAQI)
	assert.Equal(t, 64, got.Data.ImprovementPercent)
	assert.Equal(t, frozen, got.Data.LastUpdated.UTC())
}

func TestGetAirQuality_QueryParams(t *testing.T) {
	srv := liveUpstream(`{
		"results": [{
			"measurements": [{"parameter": "pm25", "value": 90.0, "lastUpdated": "2024-01-15T08:30:00Z"}]
		}]
	}`)
	defer srv.Close()
	app, _ := newTestApp(srv.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/aqi?city=Mumbai&inside_efficiency=0", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got domain.AirQualityResponse
	decodeBody(t, resp, &got)

	assert.Equal(t, "Mumbai", got.Data.City)
	assert.Equal(t, domain.SourceLive, got.Data.Source)
	assert.Equal(t, 90.0, got.Data.Concentration)
	// Zero efficiency: inside equals outside, no improvement
	assert.Equal(t, got.Data.OutsideAQI, got.Data.InsideAQI)
	assert.Equal(t, 0, got.Data.ImprovementPercent)
}

func TestGetAirQuality_VersionedRoute(t *testing.T) {
	srv := failingUpstream()
	defer srv.Close()
	app, _ := newTestApp(srv.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/aqi", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetHistory(t *testing.T) {
	frozen := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(frozen))
	defer domain.SetClock(nil)

	srv := failingUpstream()
	defer srv.Close()
	app, svc := newTestApp(srv.URL)

	// Serve one fallback reading, wait for the background save
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/aqi", nil))
	require.NoError(t, err)
	resp.Body.Close()
	svc.WaitBackground()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/history?hours=24", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		Success bool                `json:"success"`
		Data    []domain.AirQuality `json:"data"`
		Count   int                 `json:"count"`
	}
	decodeBody(t, resp, &got)
	assert.True(t, got.Success)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Data, 1)
	assert.Equal(t, domain.SourceFallback, got.Data[0].Source)
}

func TestGetHistory_ClampsHours(t *testing.T) {
	srv := failingUpstream()
	defer srv.Close()
	app, _ := newTestApp(srv.URL)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/history?hours=9999", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
