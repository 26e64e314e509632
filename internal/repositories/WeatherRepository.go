package repositories

import (
	"context"
	"net/http"
	"time"

	"weatherstack-check/internal/models"
)

// WeatherRepository is the contract the conformance harness drives.
type WeatherRepository interface {
	Name() string
	GetCurrentWeather(ctx context.Context, location string, units models.Units) (*models.WeatherResponse, error)
	GetHistoricalWeather(ctx context.Context, location, date string, units models.Units) (*models.WeatherResponse, error)
	GetForecastWeather(ctx context.Context, location string, forecastDays int, units models.Units) (*models.WeatherResponse, error)
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTPClient returns a pooled client. Deadlines come from the per-attempt
// request context, so the client itself has no Timeout.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 2,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
