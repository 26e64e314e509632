package models

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"weatherstack-check/internal/apierr"
)

// DateLayout is the calendar date format used by the provider.
const DateLayout = "2006-01-02"

const (
	MinForecastDays = 1
	MaxForecastDays = 14
)

// Kind is the endpoint kind of a request.
type Kind string

const (
	KindCurrent    Kind = "current"
	KindHistorical Kind = "historical"
	KindForecast   Kind = "forecast"
)

// Path returns the endpoint path relative to the API base URL.
func (k Kind) Path() string {
	return "/" + string(k)
}

func (k Kind) Valid() bool {
	switch k {
	case KindCurrent, KindHistorical, KindForecast:
		return true
	}
	return false
}

// Units is the provider unit system.
type Units string

const (
	UnitsMetric     Units = "m"
	UnitsScientific Units = "s"
	UnitsFahrenheit Units = "f"
)

// ParseUnits accepts either the provider code or the long name.
func ParseUnits(s string) (Units, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "m", "metric":
		return UnitsMetric, nil
	case "s", "scientific":
		return UnitsScientific, nil
	case "f", "fahrenheit":
		return UnitsFahrenheit, nil
	}
	return "", apierr.Field(apierr.KindInvalidRequest, "units", "unsupported units %q", s)
}

func (u Units) Valid() bool {
	switch u {
	case UnitsMetric, UnitsScientific, UnitsFahrenheit:
		return true
	}
	return false
}

// EndpointRequest is one call to the provider. Date is set only for
// historical requests and ForecastDays only for forecast requests.
type EndpointRequest struct {
	Kind         Kind
	Location     string
	Units        Units
	Date         string
	ForecastDays int
}

// Validate checks the request before anything is sent. now is the request
// time; a historical date later than its UTC calendar day is rejected.
func (r EndpointRequest) Validate(now time.Time) error {
	if !r.Kind.Valid() {
		return apierr.Field(apierr.KindInvalidRequest, "kind", "unknown endpoint kind %q", r.Kind)
	}
	if strings.TrimSpace(r.Location) == "" {
		return apierr.Field(apierr.KindInvalidRequest, "query", "location cannot be empty")
	}
	if !r.Units.Valid() {
		return apierr.Field(apierr.KindInvalidRequest, "units", "unsupported units %q", r.Units)
	}

	switch r.Kind {
	case KindHistorical:
		if r.ForecastDays != 0 {
			return apierr.Field(apierr.KindInvalidRequest, "forecast_days", "forecast_days is not allowed on historical requests")
		}
		return validateHistoricalDate(r.Date, now)
	case KindForecast:
		if r.Date != "" {
			return apierr.Field(apierr.KindInvalidRequest, "historical_date", "historical_date is not allowed on forecast requests")
		}
		if r.ForecastDays < MinForecastDays || r.ForecastDays > MaxForecastDays {
			return apierr.Field(apierr.KindInvalidRequest, "forecast_days",
				"forecast_days must be between %d and %d, got %d", MinForecastDays, MaxForecastDays, r.ForecastDays)
		}
	default:
		if r.Date != "" || r.ForecastDays != 0 {
			return apierr.New(apierr.KindInvalidRequest, "current requests take neither historical_date nor forecast_days")
		}
	}

	return nil
}

func validateHistoricalDate(date string, now time.Time) error {
	if date == "" {
		return apierr.Field(apierr.KindInvalidRequest, "historical_date", "historical_date is required")
	}
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return &apierr.Error{
			Kind:    apierr.KindInvalidRequest,
			Field:   "historical_date",
			Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date),
			Err:     err,
		}
	}
	today := now.UTC().Truncate(24 * time.Hour)
	if d.After(today) {
		return apierr.Field(apierr.KindInvalidRequest, "historical_date",
			"date %s is in the future (today is %s)", date, today.Format(DateLayout))
	}
	return nil
}

// Params builds the query string sent to the provider.
func (r EndpointRequest) Params(accessKey string) url.Values {
	v := url.Values{}
	v.Set("access_key", accessKey)
	v.Set("query", r.Location)
	v.Set("units", string(r.Units))
	switch r.Kind {
	case KindHistorical:
		v.Set("historical_date", r.Date)
	case KindForecast:
		v.Set("forecast_days", strconv.Itoa(r.ForecastDays))
	}
	return v
}

// LogFields returns the request attributes used in log lines.
func (r EndpointRequest) LogFields() map[string]any {
	fields := map[string]any{
		"endpoint": string(r.Kind),
		"location": r.Location,
		"units":    string(r.Units),
	}
	if r.Date != "" {
		fields["historical_date"] = r.Date
	}
	if r.ForecastDays != 0 {
		fields["forecast_days"] = r.ForecastDays
	}
	return fields
}
