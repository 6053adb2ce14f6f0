package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weather-skill/datasource"
	"weather-skill/models"
)

// Language requested from the API; condition descriptions come back in German.
const Language = "de"

// OpenWeatherMapForecastSource provides forecasts from OpenWeatherMap
type OpenWeatherMapForecastSource struct {
	apiKey  string
	baseURL string
	units   string
	client  *http.Client
}

// Ensure OpenWeatherMapForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*OpenWeatherMapForecastSource)(nil)

// NewOpenWeatherMapForecastSource creates a new forecast source
func NewOpenWeatherMapForecastSource(config *datasource.Config) *OpenWeatherMapForecastSource {
	return &OpenWeatherMapForecastSource{
		apiKey:  config.APIKey,
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		units:   config.Units,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// SetHTTPClient replaces the HTTP client (useful for testing)
func (o *OpenWeatherMapForecastSource) SetHTTPClient(client *http.Client) {
	o.client = client
}

// Name returns the provider name
func (o *OpenWeatherMapForecastSource) Name() string {
	return "OpenWeatherMap"
}

// buildURL constructs the forecast URL for a location
func (o *OpenWeatherMapForecastSource) buildURL(location string) string {
	params := url.Values{}
	params.Set("q", location)
	params.Set("APPID", o.apiKey)
	params.Set("units", o.units)
	params.Set("lang", Language)
	return fmt.Sprintf("%s/forecast?%s", o.baseURL, params.Encode())
}

// FetchForecast gets forecast data from OpenWeatherMap.
//
// Transport and decode failures are returned as *datasource.NetworkError. A
// non-200 answer with a JSON body is not an error: OpenWeatherMap reports an
// unknown city or a bad key with an error-shaped body and no forecast list,
// which callers detect from the empty list.
func (o *OpenWeatherMapForecastSource) FetchForecast(ctx context.Context, location string) (models.ForecastResponse, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.buildURL(location), nil)
	if err != nil {
		return models.ForecastResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return models.ForecastResponse{}, &datasource.NetworkError{Operation: "request", Err: err}
	}
	defer resp.Body.Close()

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.ForecastResponse{}, &datasource.NetworkError{Operation: "read", Err: err}
	}

	var forecastResp models.ForecastResponse
	if err := json.Unmarshal(rawData, &forecastResp); err != nil {
		return models.ForecastResponse{}, &datasource.NetworkError{Operation: "decode", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("forecast request rejected",
			"provider", o.Name(),
			"location", location,
			"status", resp.StatusCode,
			"message", forecastResp.Message,
		)
	}

	slog.Debug("forecast fetched",
		"provider", o.Name(),
		"location", location,
		"samples", len(forecastResp.List),
		"duration", time.Since(start),
	)

	return forecastResp, nil
}
