package conformance

import (
	"context"
	"fmt"
	"slices"
	"time"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/metrics"
	"weatherstack-check/internal/models"
	"weatherstack-check/internal/repositories"
	"weatherstack-check/internal/validator"
	"weatherstack-check/pkg/logger"
)

type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	// StatusSkip marks a scenario the account cannot run, e.g. historical
	// data on the free plan.
	StatusSkip Status = "skip"
)

// Scenario is one end-to-end check against the weather API.
type Scenario struct {
	Name         string
	Kind         models.Kind
	Location     string
	Units        models.Units
	Date         string
	ForecastDays int

	// ExpectLocation is compared exactly with location.name. Empty only
	// requires a name to be present.
	ExpectLocation string
	// ExpectCountry is compared exactly with location.country when set.
	ExpectCountry string
	// ExpectErr makes the scenario pass only when the call fails with this
	// kind. KindUnknown expects success.
	ExpectErr apierr.Kind
	// SkipOn lists error kinds that turn a failure into a skip.
	SkipOn []apierr.Kind
}

type Result struct {
	Scenario Scenario
	Status   Status
	Reason   string
	Err      error
	Duration time.Duration
	Response *models.WeatherResponse
}

type Report struct {
	Results  []Result
	Passed   int
	Failed   int
	Skipped  int
	Duration time.Duration
}

func (r Report) OK() bool {
	return r.Failed == 0
}

func (r *Report) add(res Result) {
	r.Results = append(r.Results, res)
	switch res.Status {
	case StatusPass:
		r.Passed++
	case StatusSkip:
		r.Skipped++
	default:
		r.Failed++
	}
}

// Service runs scenarios against a weather client.
type Service struct {
	client  repositories.WeatherRepository
	metrics *metrics.Collector
	l       *logger.Logger
}

func NewService(client repositories.WeatherRepository, m *metrics.Collector, l *logger.Logger) *Service {
	return &Service{
		client:  client,
		metrics: m,
		l:       l,
	}
}

// Run executes scenarios one after another. Once ctx is done the remaining
// scenarios are reported as failed without being called.
func (s *Service) Run(ctx context.Context, scenarios []Scenario) Report {
	start := time.Now()
	s.l.Info("starting conformance run", map[string]any{
		"client":    s.client.Name(),
		"scenarios": len(scenarios),
	})

	var report Report
	for _, sc := range scenarios {
		var res Result
		if err := ctx.Err(); err != nil {
			res = Result{Scenario: sc, Status: StatusFail, Reason: "not run: " + err.Error(), Err: err}
		} else {
			res = s.RunScenario(ctx, sc)
		}

		s.metrics.ObserveScenario(string(res.Status))
		report.add(res)
	}
	report.Duration = time.Since(start)

	s.l.Info("completed conformance run", map[string]any{
		"passed":      report.Passed,
		"failed":      report.Failed,
		"skipped":     report.Skipped,
		"duration_ms": report.Duration.Milliseconds(),
	})

	return report
}

func (s *Service) RunScenario(ctx context.Context, sc Scenario) Result {
	start := time.Now()
	resp, err := s.call(ctx, sc)

	res := judge(sc, resp, err)
	res.Duration = time.Since(start)

	fields := map[string]any{
		"scenario": sc.Name,
		"endpoint": string(sc.Kind),
		"location": sc.Location,
		"status":   string(res.Status),
	}
	switch res.Status {
	case StatusFail:
		fields["reason"] = res.Reason
		s.l.Warning("scenario failed", fields)
	case StatusSkip:
		fields["reason"] = res.Reason
		s.l.Info("scenario skipped", fields)
	default:
		s.l.Info("scenario passed", fields)
	}

	return res
}

func (s *Service) call(ctx context.Context, sc Scenario) (*models.WeatherResponse, error) {
	switch sc.Kind {
	case models.KindCurrent:
		return s.client.GetCurrentWeather(ctx, sc.Location, sc.Units)
	case models.KindHistorical:
		return s.client.GetHistoricalWeather(ctx, sc.Location, sc.Date, sc.Units)
	case models.KindForecast:
		return s.client.GetForecastWeather(ctx, sc.Location, sc.ForecastDays, sc.Units)
	}
	return nil, apierr.Field(apierr.KindInvalidRequest, "kind", "unknown endpoint kind %q", sc.Kind)
}

func judge(sc Scenario, resp *models.WeatherResponse, err error) Result {
	res := Result{Scenario: sc, Response: resp, Err: err}
	kind := apierr.KindOf(err)

	switch {
	case err != nil && sc.ExpectErr != apierr.KindUnknown && kind == sc.ExpectErr:
		res.Status = StatusPass
	case err != nil && slices.Contains(sc.SkipOn, kind):
		res.Status = StatusSkip
		res.Reason = err.Error()
	case err != nil:
		res.Status = StatusFail
		res.Reason = err.Error()
	case sc.ExpectErr != apierr.KindUnknown:
		res.Status = StatusFail
		res.Reason = fmt.Sprintf("expected %s, call succeeded", sc.ExpectErr)
	default:
		if verr := checkResponse(sc, resp); verr != nil {
			res.Status = StatusFail
			res.Reason = verr.Error()
			res.Err = verr
			return res
		}
		res.Status = StatusPass
	}

	return res
}

// checkResponse runs the checks that depend on what the scenario asked for.
func checkResponse(sc Scenario, resp *models.WeatherResponse) error {
	if sc.ExpectLocation != "" {
		if err := validator.ValidateLocationMatch(resp.Payload, sc.ExpectLocation, sc.ExpectCountry); err != nil {
			return err
		}
	} else if _, err := validator.ValidateLocationPresence(resp.Payload); err != nil {
		return err
	}

	switch sc.Kind {
	case models.KindCurrent:
		current, _ := resp.Payload["current"].(map[string]any)
		return validator.ValidateTemperatureField(current, "current")
	case models.KindHistorical:
		if models.FilterByDate(resp.Days(), sc.Date) < 0 {
			return apierr.Field(apierr.KindResponseStructure, "historical", "no entry for requested date %s", sc.Date)
		}
	}

	return nil
}

// Filter keeps the scenarios of the given kind. An empty kind keeps all.
func Filter(scenarios []Scenario, kind models.Kind) []Scenario {
	if kind == "" {
		return scenarios
	}
	var out []Scenario
	for _, sc := range scenarios {
		if sc.Kind == kind {
			out = append(out, sc)
		}
	}
	return out
}

// WithUnits returns a copy of scenarios that all request the given units.
func WithUnits(scenarios []Scenario, units models.Units) []Scenario {
	out := make([]Scenario, len(scenarios))
	for i, sc := range scenarios {
		sc.Units = units
		out[i] = sc
	}
	return out
}
