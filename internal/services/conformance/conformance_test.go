package conformance_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/metrics"
	"weatherstack-check/internal/models"
	"weatherstack-check/internal/services/conformance"
	"weatherstack-check/pkg/logger"
)

// MockRepository implements WeatherRepository for testing
type MockRepository struct {
	current    map[string]*models.WeatherResponse
	historical *models.WeatherResponse
	forecast   *models.WeatherResponse
	err        error
	calls      []string
}

func (m *MockRepository) Name() string {
	return "mock"
}

func (m *MockRepository) GetCurrentWeather(_ context.Context, location string, _ models.Units) (*models.WeatherResponse, error) {
	m.calls = append(m.calls, "current:"+location)
	if m.err != nil {
		return nil, m.err
	}
	resp, ok := m.current[location]
	if !ok {
		return nil, apierr.FromProviderCode(apierr.CodeRequestFailed, "request_failed", "unknown location")
	}
	return resp, nil
}

func (m *MockRepository) GetHistoricalWeather(_ context.Context, location, date string, _ models.Units) (*models.WeatherResponse, error) {
	m.calls = append(m.calls, "historical:"+location)
	req := models.EndpointRequest{Kind: models.KindHistorical, Location: location, Units: models.UnitsMetric, Date: date}
	if err := req.Validate(time.Now()); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.historical, nil
}

func (m *MockRepository) GetForecastWeather(_ context.Context, location string, days int, _ models.Units) (*models.WeatherResponse, error) {
	m.calls = append(m.calls, "forecast:"+location)
	req := models.EndpointRequest{Kind: models.KindForecast, Location: location, Units: models.UnitsMetric, ForecastDays: days}
	if err := req.Validate(time.Now()); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.forecast, nil
}

func currentResponse(t *testing.T, name, country string) *models.WeatherResponse {
	t.Helper()
	var payload map[string]any
	doc := `{"location": {"name": "` + name + `", "country": "` + country + `"}, "current": {"temperature": 12}}`
	dec := json.NewDecoder(bytes.NewReader([]byte(doc)))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&payload))
	return &models.WeatherResponse{
		Kind:     models.KindCurrent,
		Location: models.Location{Name: name, Country: country},
		Payload:  payload,
	}
}

func datedResponse(kind models.Kind) *models.WeatherResponse {
	resp := &models.WeatherResponse{
		Kind:    kind,
		Payload: map[string]any{"location": map[string]any{"name": "Cluj-Napoca", "country": "Romania"}},
	}
	if kind == models.KindHistorical {
		resp.Historical = map[string]models.DailyWeather{"2024-12-24": {Date: "2024-12-24"}}
	}
	return resp
}

func newService(repo *MockRepository) (*conformance.Service, *metrics.Collector) {
	m := metrics.New(prometheus.NewRegistry())
	return conformance.NewService(repo, m, logger.NewNop()), m
}

func healthyRepo(t *testing.T) *MockRepository {
	return &MockRepository{
		current: map[string]*models.WeatherResponse{
			"London":   currentResponse(t, "London", "United Kingdom"),
			"New York": currentResponse(t, "New York", "United States of America"),
			"Tokyo":    currentResponse(t, "Tokyo", "Japan"),
			"Paris":    currentResponse(t, "Paris", "France"),
		},
		historical: datedResponse(models.KindHistorical),
		forecast:   datedResponse(models.KindForecast),
	}
}

func TestRun_AllPass(t *testing.T) {
	repo := healthyRepo(t)
	service, m := newService(repo)

	report := service.Run(context.Background(), conformance.DefaultScenarios(time.Now()))

	for _, res := range report.Results {
		assert.Equal(t, conformance.StatusPass, res.Status, "%s: %s", res.Scenario.Name, res.Reason)
	}
	assert.True(t, report.OK())
	assert.Equal(t, 8, report.Passed)
	assert.Equal(t, 8.0, testutil.ToFloat64(m.ScenariosTotal.WithLabelValues("pass")))
	assert.Equal(t, []string{
		"current:London", "current:New York", "current:Tokyo", "current:Paris",
		"historical:Cluj", "forecast:Cluj", "forecast:Cluj", "historical:Cluj",
	}, repo.calls, "scenarios run sequentially in order")
}

func TestRun_LocationMismatchFails(t *testing.T) {
	repo := healthyRepo(t)
	repo.current["Paris"] = currentResponse(t, "Paris", "United States of America")
	service, _ := newService(repo)

	report := service.Run(context.Background(), conformance.Filter(conformance.DefaultScenarios(time.Now()), models.KindCurrent))

	require.Len(t, report.Results, 4)
	assert.False(t, report.OK())
	assert.Equal(t, 1, report.Failed)
	paris := report.Results[3]
	assert.Equal(t, conformance.StatusFail, paris.Status)
	assert.True(t, apierr.Is(paris.Err, apierr.KindLocationMismatch))
	assert.Contains(t, paris.Reason, "France")
}

func TestRunScenario_SkipOnPlanRestriction(t *testing.T) {
	repo := healthyRepo(t)
	repo.err = apierr.FromProviderCode(apierr.CodeHistoricalNotOnPlan, "historical_queries_not_supported_on_plan", "upgrade")
	service, _ := newService(repo)

	res := service.RunScenario(context.Background(), conformance.Scenario{
		Name: "historical", Kind: models.KindHistorical, Location: "Cluj", Date: "2024-12-24",
		SkipOn: []apierr.Kind{apierr.KindRateLimitOrPlan},
	})

	assert.Equal(t, conformance.StatusSkip, res.Status)
	assert.Contains(t, res.Reason, "603")
}

func TestRunScenario_UnexpectedErrorFails(t *testing.T) {
	repo := healthyRepo(t)
	repo.err = apierr.FromProviderCode(apierr.CodeInvalidAccessKey, "invalid_access_key", "bad key")
	service, _ := newService(repo)

	res := service.RunScenario(context.Background(), conformance.Scenario{
		Name: "historical", Kind: models.KindHistorical, Location: "Cluj", Date: "2024-12-24",
		SkipOn: []apierr.Kind{apierr.KindRateLimitOrPlan},
	})

	assert.Equal(t, conformance.StatusFail, res.Status)
	assert.ErrorIs(t, res.Err, apierr.KindAuthentication)
}

func TestRunScenario_ExpectedErrorButSuccess(t *testing.T) {
	service, _ := newService(healthyRepo(t))

	res := service.RunScenario(context.Background(), conformance.Scenario{
		Name: "bad", Kind: models.KindCurrent, Location: "London",
		ExpectErr: apierr.KindInvalidRequest,
	})

	assert.Equal(t, conformance.StatusFail, res.Status)
	assert.Contains(t, res.Reason, "InvalidRequestError")
}

func TestRunScenario_WrongErrorKind(t *testing.T) {
	service, _ := newService(healthyRepo(t))

	res := service.RunScenario(context.Background(), conformance.Scenario{
		Name: "unknown", Kind: models.KindCurrent, Location: "Atlantis",
		ExpectErr: apierr.KindAuthentication,
	})

	assert.Equal(t, conformance.StatusFail, res.Status)
	assert.ErrorIs(t, res.Err, apierr.KindInvalidRequest)
}

func TestRunScenario_MissingTemperatureFails(t *testing.T) {
	repo := healthyRepo(t)
	broken := currentResponse(t, "London", "United Kingdom")
	delete(broken.Payload["current"].(map[string]any), "temperature")
	repo.current["London"] = broken
	service, _ := newService(repo)

	res := service.RunScenario(context.Background(), conformance.DefaultScenarios(time.Now())[0])

	assert.Equal(t, conformance.StatusFail, res.Status)
	assert.ErrorIs(t, res.Err, apierr.KindResponseStructure)
}

func TestRun_CancelledContextStopsCalls(t *testing.T) {
	repo := healthyRepo(t)
	service, _ := newService(repo)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := service.Run(ctx, conformance.DefaultScenarios(time.Now()))

	assert.Empty(t, repo.calls)
	assert.Equal(t, 8, report.Failed)
	assert.ErrorIs(t, report.Results[0].Err, context.Canceled)
}

func TestDefaultScenarios(t *testing.T) {
	today := time.Date(2025, 7, 25, 23, 30, 0, 0, time.UTC)

	scenarios := conformance.DefaultScenarios(today)

	require.Len(t, scenarios, 8)
	assert.Len(t, conformance.Filter(scenarios, models.KindCurrent), 4)
	assert.Len(t, conformance.Filter(scenarios, models.KindHistorical), 2)
	assert.Len(t, conformance.Filter(scenarios, models.KindForecast), 2)
	assert.Len(t, conformance.Filter(scenarios, ""), 8)

	future := scenarios[7]
	assert.Equal(t, "2025-07-26", future.Date)
	assert.Equal(t, apierr.KindInvalidRequest, future.ExpectErr)
	assert.Equal(t, 15, scenarios[6].ForecastDays)
}

func TestRun_HistoricalWithoutRequestedDateFails(t *testing.T) {
	repo := healthyRepo(t)
	repo.historical.Historical = map[string]models.DailyWeather{"2024-12-23": {Date: "2024-12-23"}}
	service, _ := newService(repo)

	report := service.Run(context.Background(), conformance.Filter(conformance.DefaultScenarios(time.Now()), models.KindHistorical))

	require.Len(t, report.Results, 2)
	res := report.Results[0]
	assert.Equal(t, conformance.StatusFail, res.Status)
	assert.True(t, apierr.Is(res.Err, apierr.KindResponseStructure))
	assert.Contains(t, res.Reason, "2024-12-24")
}

func TestWithUnits(t *testing.T) {
	scenarios := conformance.DefaultScenarios(time.Now())

	converted := conformance.WithUnits(scenarios, models.UnitsFahrenheit)

	require.Len(t, converted, len(scenarios))
	for _, sc := range converted {
		assert.Equal(t, models.UnitsFahrenheit, sc.Units, sc.Name)
	}
	assert.Equal(t, models.UnitsMetric, scenarios[0].Units, "input is left untouched")
}
