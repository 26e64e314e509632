package conformance

import (
	"time"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/models"
)

var planRestricted = []apierr.Kind{apierr.KindRateLimitOrPlan}

// DefaultScenarios is the standard suite. today anchors the future date used
// by the negative historical check.
func DefaultScenarios(today time.Time) []Scenario {
	tomorrow := today.UTC().AddDate(0, 0, 1).Format(models.DateLayout)

	return []Scenario{
		{
			Name: "current weather in London", Kind: models.KindCurrent,
			Location: "London", Units: models.UnitsMetric,
			ExpectLocation: "London", ExpectCountry: "United Kingdom",
		},
		{
			Name: "current weather in New York", Kind: models.KindCurrent,
			Location: "New York", Units: models.UnitsMetric,
			ExpectLocation: "New York", ExpectCountry: "United States of America",
		},
		{
			Name: "current weather in Tokyo", Kind: models.KindCurrent,
			Location: "Tokyo", Units: models.UnitsMetric,
			ExpectLocation: "Tokyo", ExpectCountry: "Japan",
		},
		{
			Name: "current weather in Paris", Kind: models.KindCurrent,
			Location: "Paris", Units: models.UnitsMetric,
			ExpectLocation: "Paris", ExpectCountry: "France",
		},
		{
			Name: "historical weather in Cluj on 2024-12-24", Kind: models.KindHistorical,
			Location: "Cluj", Units: models.UnitsMetric, Date: "2024-12-24",
			SkipOn: planRestricted,
		},
		{
			Name: "7 day forecast for Cluj", Kind: models.KindForecast,
			Location: "Cluj", Units: models.UnitsMetric, ForecastDays: 7,
			SkipOn: planRestricted,
		},
		{
			Name: "forecast beyond 14 days is rejected", Kind: models.KindForecast,
			Location: "Cluj", Units: models.UnitsMetric, ForecastDays: 15,
			ExpectErr: apierr.KindInvalidRequest,
		},
		{
			Name: "historical date in the future is rejected", Kind: models.KindHistorical,
			Location: "Cluj", Units: models.UnitsMetric, Date: tomorrow,
			ExpectErr: apierr.KindInvalidRequest,
		},
	}
}
