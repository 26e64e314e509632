// Package stub imitates the weatherstack API for local runs and integration
// tests. Answers follow the provider's JSON shape, including its in-band
// error objects.
package stub

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/models"
)

type Plan string

const (
	// PlanFree rejects historical and forecast queries like the free tier.
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

func ParsePlan(s string) (Plan, error) {
	switch Plan(strings.ToLower(strings.TrimSpace(s))) {
	case PlanFree:
		return PlanFree, nil
	case PlanPaid, "":
		return PlanPaid, nil
	}
	return "", errors.Errorf("unknown plan %q, expected free or paid", s)
}

// Failure is an in-band provider error.
type Failure struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%d %s: %s", f.Code, f.Type, f.Info)
}

// ErrorBody is the document the provider sends alongside HTTP 200 when a
// request is rejected.
type ErrorBody struct {
	Success bool     `json:"success"`
	Error   *Failure `json:"error"`
}

func (f *Failure) Body() ErrorBody {
	return ErrorBody{Success: false, Error: f}
}

func fail(code int, typ, info string) *Failure {
	return &Failure{Code: code, Type: typ, Info: info}
}

// Query carries the raw query parameters of one request.
type Query struct {
	AccessKey      string
	Location       string
	Units          string
	HistoricalDate string
	ForecastDays   string
}

type Provider struct {
	key    string
	plan   Plan
	now    func() time.Time
	cities []City
}

type Option func(*Provider)

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func WithCatalog(cities []City) Option {
	return func(p *Provider) { p.cities = cities }
}

func NewProvider(key string, plan Plan, opts ...Option) *Provider {
	p := &Provider{
		key:    key,
		plan:   plan,
		now:    time.Now,
		cities: DefaultCatalog,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Plan() Plan {
	return p.plan
}

func (p *Provider) Current(q Query) (*models.WeatherResponse, error) {
	city, units, err := p.resolve(q)
	if err != nil {
		return nil, err
	}

	resp := p.base(models.KindCurrent, city, units)
	resp.Current = p.current(city, units)
	return resp, nil
}

func (p *Provider) Historical(q Query) (*models.WeatherResponse, error) {
	city, units, err := p.resolve(q)
	if err != nil {
		return nil, err
	}
	if p.plan == PlanFree {
		return nil, fail(apierr.CodeHistoricalNotOnPlan, "historical_queries_not_supported_on_plan",
			"Your current subscription plan does not support historical weather data. Please upgrade your account to use this feature.")
	}
	if q.HistoricalDate == "" {
		return nil, fail(apierr.CodeMissingHistoricalDate, "missing_historical_date",
			"Please specify a date for your historical weather query.")
	}
	date, perr := time.Parse(models.DateLayout, q.HistoricalDate)
	if perr != nil || date.After(p.now().UTC()) {
		return nil, fail(apierr.CodeInvalidHistoricalDate, "invalid_historical_date",
			"You have specified an invalid historical date. Please try again or refer to our API documentation.")
	}

	resp := p.base(models.KindHistorical, city, units)
	resp.Current = p.current(city, units)
	resp.Historical = map[string]models.DailyWeather{
		q.HistoricalDate: daily(city, units, date, 0),
	}
	return resp, nil
}

func (p *Provider) Forecast(q Query) (*models.WeatherResponse, error) {
	city, units, err := p.resolve(q)
	if err != nil {
		return nil, err
	}
	if p.plan == PlanFree {
		return nil, fail(apierr.CodeForecastNotOnPlan, "forecast_days_not_supported_on_plan",
			"Your current subscription plan does not support weather forecast data. Please upgrade your account to use this feature.")
	}
	days, perr := strconv.Atoi(q.ForecastDays)
	if perr != nil || days < models.MinForecastDays || days > models.MaxForecastDays {
		return nil, fail(apierr.CodeInvalidForecastDays, "invalid_forecast_days",
			"You have specified an invalid forecast days value. Please try again or refer to our API documentation.")
	}

	resp := p.base(models.KindForecast, city, units)
	resp.Current = p.current(city, units)
	resp.Forecast = make(map[string]models.DailyWeather, days)
	start := localTime(p.now(), city).Truncate(24 * time.Hour)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		resp.Forecast[d.Format(models.DateLayout)] = daily(city, units, d, i)
	}
	return resp, nil
}

// resolve runs the checks every endpoint shares, in the provider's order.
func (p *Provider) resolve(q Query) (City, models.Units, error) {
	switch {
	case q.AccessKey == "":
		return City{}, "", fail(apierr.CodeInvalidAccessKey, "missing_access_key",
			"You have not supplied an API Access Key. [Required format: access_key=YOUR_ACCESS_KEY]")
	case q.AccessKey != p.key:
		return City{}, "", fail(apierr.CodeInvalidAccessKey, "invalid_access_key",
			"You have not supplied a valid API Access Key. [Technical Support: support@apilayer.com]")
	case strings.TrimSpace(q.Location) == "":
		return City{}, "", fail(apierr.CodeMissingQuery, "missing_query",
			"Please specify a valid location identifier using the query parameter.")
	}

	units := models.Units(q.Units)
	if units == "" {
		units = models.UnitsMetric
	}
	if !units.Valid() {
		return City{}, "", fail(apierr.CodeInvalidUnit, "invalid_unit",
			"You have specified an invalid unit. Please try again or refer to our API documentation.")
	}

	city, ok := lookup(p.cities, q.Location)
	if !ok {
		return City{}, "", fail(apierr.CodeRequestFailed, "request_failed",
			"Your API request failed. Please try again or contact support.")
	}

	return city, units, nil
}

func (p *Provider) base(kind models.Kind, c City, u models.Units) *models.WeatherResponse {
	now := p.now()
	return &models.WeatherResponse{
		Kind: kind,
		Request: models.RequestInfo{
			Type:     "City",
			Query:    c.Name + ", " + c.Country,
			Language: "en",
			Unit:     string(u),
		},
		Location: models.Location{
			Name:           c.Name,
			Country:        c.Country,
			Region:         c.Region,
			Lat:            c.Lat,
			Lon:            c.Lon,
			TimezoneID:     c.TimezoneID,
			Localtime:      localTime(now, c).Format("2006-01-02 15:04"),
			LocaltimeEpoch: now.Unix(),
			UTCOffset:      c.UTCOffset,
		},
	}
}

func (p *Provider) current(c City, u models.Units) *models.CurrentWeather {
	local := localTime(p.now(), c)
	isDay := "no"
	if h := local.Hour(); h >= 6 && h < 20 {
		isDay = "yes"
	}
	return &models.CurrentWeather{
		ObservationTime:     local.Format("03:04 PM"),
		Temperature:         temperature(u, c.BaseTemp),
		WeatherCode:         116,
		WeatherIcons:        []string{"https://cdn.worldweatheronline.com/images/wsymbols01_png_64/wsymbol_0002_sunny_intervals.png"},
		WeatherDescriptions: []string{"Partly cloudy"},
		WindSpeed:           speed(u, 13),
		WindDegree:          240,
		WindDir:             "WSW",
		Pressure:            1016,
		Precip:              0,
		Humidity:            64,
		Cloudcover:          50,
		Feelslike:           temperature(u, c.BaseTemp-1),
		UVIndex:             4,
		Visibility:          10,
		IsDay:               isDay,
	}
}

func daily(c City, u models.Units, date time.Time, offset int) models.DailyWeather {
	swing := float64(offset % 3)
	low := c.BaseTemp - 4 + swing
	high := c.BaseTemp + 5 + swing
	return models.DailyWeather{
		Date:      date.Format(models.DateLayout),
		DateEpoch: date.Unix(),
		MinTemp:   temperature(u, low),
		MaxTemp:   temperature(u, high),
		AvgTemp:   temperature(u, (low+high)/2),
		TotalSnow: 0,
		SunHour:   8.5,
		UVIndex:   4,
	}
}

func localTime(now time.Time, c City) time.Time {
	hours, err := strconv.ParseFloat(c.UTCOffset, 64)
	if err != nil {
		hours = 0
	}
	return now.UTC().Add(time.Duration(hours * float64(time.Hour)))
}

// temperature converts Celsius into the requested unit system. Scientific
// units report Kelvin.
func temperature(u models.Units, celsius float64) float64 {
	switch u {
	case models.UnitsFahrenheit:
		return round1(celsius*9/5 + 32)
	case models.UnitsScientific:
		return round1(celsius + 273.15)
	}
	return celsius
}

// speed converts km/h into the requested unit system.
func speed(u models.Units, kmh float64) float64 {
	switch u {
	case models.UnitsFahrenheit:
		return round1(kmh / 1.609)
	case models.UnitsScientific:
		return round1(kmh / 3.6)
	}
	return kmh
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
