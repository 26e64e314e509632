package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/models"
	"weatherstack-check/internal/services/stub"
)

// ErrorResponse is returned when the stub itself breaks, as opposed to a
// provider-style rejection.
type ErrorResponse struct {
	Error string `json:"error" example:"failed to build weather data"`
}

type fetchFunc func(stub.Query) (*models.WeatherResponse, error)

func queryFrom(c *fiber.Ctx) stub.Query {
	return stub.Query{
		AccessKey:      c.Query("access_key"),
		Location:       c.Query("query"),
		Units:          c.Query("units"),
		HistoricalDate: c.Query("historical_date"),
		ForecastDays:   c.Query("forecast_days"),
	}
}

// handleCurrent godoc
// @Summary Current weather
// @Description Returns the current observation for a catalogued city.
// @Tags Weather
// @Produce json
// @Param access_key query string true "Access key the stub was started with"
// @Param query query string true "City name, optionally followed by the country" example(London)
// @Param units query string false "m (metric), s (scientific) or f (fahrenheit)" Enums(m, s, f)
// @Success 200 {object} models.WeatherResponse "Weather data, or success=false with an error object"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /current [get]
func (r *routes) handleCurrent(c *fiber.Ctx) error {
	return r.serve(c, models.KindCurrent, r.provider.Current)
}

// handleHistorical godoc
// @Summary Historical weather
// @Description Returns the daily summary for a past date. Requires the paid plan.
// @Tags Weather
// @Produce json
// @Param access_key query string true "Access key the stub was started with"
// @Param query query string true "City name, optionally followed by the country" example(Cluj)
// @Param historical_date query string true "Date in YYYY-MM-DD, not in the future" example(2024-12-24)
// @Param units query string false "m (metric), s (scientific) or f (fahrenheit)" Enums(m, s, f)
// @Success 200 {object} models.WeatherResponse "Weather data, or success=false with an error object"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /historical [get]
func (r *routes) handleHistorical(c *fiber.Ctx) error {
	return r.serve(c, models.KindHistorical, r.provider.Historical)
}

// handleForecast godoc
// @Summary Weather forecast
// @Description Returns one entry per day starting today. Requires the paid plan.
// @Tags Weather
// @Produce json
// @Param access_key query string true "Access key the stub was started with"
// @Param query query string true "City name, optionally followed by the country" example(Cluj)
// @Param forecast_days query integer true "Number of days (1-14)" minimum(1) maximum(14) example(7)
// @Param units query string false "m (metric), s (scientific) or f (fahrenheit)" Enums(m, s, f)
// @Success 200 {object} models.WeatherResponse "Weather data, or success=false with an error object"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /forecast [get]
func (r *routes) handleForecast(c *fiber.Ctx) error {
	return r.serve(c, models.KindForecast, r.provider.Forecast)
}

// serve answers one endpoint kind. Rejections are sent with HTTP 200 and a
// success:false body, the way the provider reports them.
func (r *routes) serve(c *fiber.Ctx, kind models.Kind, fetch fetchFunc) error {
	q := queryFrom(c)

	resp, err := fetch(q)
	if err != nil {
		var f *stub.Failure
		if errors.As(err, &f) {
			r.l.Warning("stub request rejected", map[string]any{
				"endpoint": string(kind),
				"location": q.Location,
				"code":     f.Code,
				"type":     f.Type,
			})
			return c.Status(fiber.StatusOK).JSON(f.Body())
		}

		r.l.Error(err, map[string]any{"endpoint": string(kind), "location": q.Location})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "failed to build weather data",
		})
	}

	r.l.Debug("stub request served", map[string]any{
		"endpoint": string(kind),
		"location": resp.Location.Name,
	})

	return c.JSON(resp)
}

func (r *routes) handleUnknownFunction(c *fiber.Ctx) error {
	f := &stub.Failure{
		Code: apierr.CodeInvalidAPIFunction,
		Type: "invalid_api_function",
		Info: "This API Function does not exist.",
	}
	return c.Status(fiber.StatusOK).JSON(f.Body())
}
