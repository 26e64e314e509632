package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherstack-check/internal/apierr"
)

var testNow = time.Date(2025, 7, 25, 15, 0, 0, 0, time.UTC)

func TestEndpointRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     EndpointRequest
		wantErr bool
		field   string
	}{
		{"current ok", EndpointRequest{Kind: KindCurrent, Location: "London", Units: UnitsMetric}, false, ""},
		{"empty location", EndpointRequest{Kind: KindCurrent, Location: "  ", Units: UnitsMetric}, true, "query"},
		{"bad units", EndpointRequest{Kind: KindCurrent, Location: "London", Units: "k"}, true, "units"},
		{"current with date", EndpointRequest{Kind: KindCurrent, Location: "London", Units: UnitsMetric, Date: "2024-12-24"}, true, ""},
		{"historical ok", EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsMetric, Date: "2024-12-24"}, false, ""},
		{"historical today", EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsMetric, Date: "2025-07-25"}, false, ""},
		{"historical future", EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsMetric, Date: "2025-07-26"}, true, "historical_date"},
		{"historical missing date", EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsMetric}, true, "historical_date"},
		{"historical malformed date", EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsMetric, Date: "24.12.2024"}, true, "historical_date"},
		{"historical with days", EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsMetric, Date: "2024-12-24", ForecastDays: 3}, true, "forecast_days"},
		{"forecast ok", EndpointRequest{Kind: KindForecast, Location: "Cluj", Units: UnitsMetric, ForecastDays: 7}, false, ""},
		{"forecast zero", EndpointRequest{Kind: KindForecast, Location: "Cluj", Units: UnitsMetric}, true, "forecast_days"},
		{"forecast fifteen", EndpointRequest{Kind: KindForecast, Location: "Cluj", Units: UnitsMetric, ForecastDays: 15}, true, "forecast_days"},
		{"forecast with date", EndpointRequest{Kind: KindForecast, Location: "Cluj", Units: UnitsMetric, ForecastDays: 2, Date: "2024-12-24"}, true, "historical_date"},
		{"unknown kind", EndpointRequest{Kind: "monthly", Location: "Cluj", Units: UnitsMetric}, true, "kind"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(testNow)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.ErrorIs(t, err, apierr.KindInvalidRequest)
			if tt.field != "" {
				var e *apierr.Error
				require.ErrorAs(t, err, &e)
				assert.Equal(t, tt.field, e.Field)
			}
		})
	}
}

func TestEndpointRequest_Params(t *testing.T) {
	hist := EndpointRequest{Kind: KindHistorical, Location: "Cluj", Units: UnitsFahrenheit, Date: "2024-12-24"}
	p := hist.Params("secret")
	assert.Equal(t, "secret", p.Get("access_key"))
	assert.Equal(t, "Cluj", p.Get("query"))
	assert.Equal(t, "f", p.Get("units"))
	assert.Equal(t, "2024-12-24", p.Get("historical_date"))
	assert.Empty(t, p.Get("forecast_days"))

	fc := EndpointRequest{Kind: KindForecast, Location: "Cluj", Units: UnitsMetric, ForecastDays: 7}
	assert.Equal(t, "7", fc.Params("secret").Get("forecast_days"))
	assert.Equal(t, "/forecast", fc.Kind.Path())
}

func TestParseUnits(t *testing.T) {
	u, err := ParseUnits("metric")
	require.NoError(t, err)
	assert.Equal(t, UnitsMetric, u)

	u, err = ParseUnits("F")
	require.NoError(t, err)
	assert.Equal(t, UnitsFahrenheit, u)

	u, err = ParseUnits("")
	require.NoError(t, err)
	assert.Equal(t, UnitsMetric, u)

	_, err = ParseUnits("kelvin")
	assert.ErrorIs(t, err, apierr.KindInvalidRequest)
}

func TestWeatherResponse_Days(t *testing.T) {
	resp := &WeatherResponse{
		Kind: KindForecast,
		Forecast: map[string]DailyWeather{
			"2025-07-27": {Date: "2025-07-27"},
			"2025-07-25": {Date: "2025-07-25"},
			"2025-07-26": {Date: "2025-07-26"},
		},
	}

	days := resp.Days()
	require.Len(t, days, 3)
	assert.Equal(t, "2025-07-25", days[0].Date)
	assert.Equal(t, "2025-07-27", days[2].Date)
	assert.Equal(t, 1, FilterByDate(days, "2025-07-26"))
	assert.Equal(t, -1, FilterByDate(days, "2025-08-01"))
}

func TestSchemaFor(t *testing.T) {
	s, ok := SchemaFor(KindHistorical)
	require.True(t, ok)
	assert.Equal(t, "historical", s.Sections[2].Key)
	assert.True(t, s.Sections[2].Dated)

	_, ok = SchemaFor("monthly")
	assert.False(t, ok)
}
