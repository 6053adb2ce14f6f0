package datasource

import (
	"context"

	"weather-skill/models"
)

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches the raw 3-hour forecast list for a location
	FetchForecast(ctx context.Context, location string) (models.ForecastResponse, error)

	// Name returns the source's name
	Name() string
}
