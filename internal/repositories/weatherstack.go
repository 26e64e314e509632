package repositories

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"weatherstack-check/config"
	"weatherstack-check/internal/apierr"
	"weatherstack-check/internal/metrics"
	"weatherstack-check/internal/models"
	"weatherstack-check/internal/retry"
	"weatherstack-check/internal/validator"
	"weatherstack-check/pkg/logger"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 5 << 20
)

// WeatherstackRepository calls the weatherstack API and returns validated
// responses. It keeps only immutable configuration between calls and is safe
// for concurrent use.
type WeatherstackRepository struct {
	baseURL    string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	httpClient HTTPClient
	policy     *retry.Policy
	limiter    *rate.Limiter
	metrics    *metrics.Collector
	now        func() time.Time
	l          *logger.Logger
}

type Option func(*WeatherstackRepository)

func WithRetryPolicy(p *retry.Policy) Option {
	return func(w *WeatherstackRepository) { w.policy = p }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(w *WeatherstackRepository) { w.metrics = m }
}

// WithClock sets the time source used to reject future historical dates.
func WithClock(now func() time.Time) Option {
	return func(w *WeatherstackRepository) { w.now = now }
}

func NewWeatherstackRepository(
	cfg config.WeatherstackConfig,
	l *logger.Logger,
	httpClient HTTPClient,
	opts ...Option,
) (*WeatherstackRepository, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, apierr.Field(apierr.KindAuthentication, "access_key", "API key cannot be empty")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	if l == nil {
		l = logger.NewNop()
	}

	w := &WeatherstackRepository{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		policy:     retry.PolicyFromConfig(cfg, l),
		now:        time.Now,
		l:          l,
	}
	if w.timeout <= 0 {
		w.timeout = defaultTimeout
	}
	if cfg.RequestsPerSecond > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

func (w *WeatherstackRepository) Name() string {
	return "weatherstack"
}

// GetCurrentWeather runs the structure and type layers only; matching the
// returned place against an expected country is up to the caller.
func (w *WeatherstackRepository) GetCurrentWeather(
	ctx context.Context,
	location string,
	units models.Units,
) (*models.WeatherResponse, error) {
	return w.fetch(ctx, models.EndpointRequest{
		Kind:     models.KindCurrent,
		Location: location,
		Units:    unitsOrDefault(units),
	})
}

// GetHistoricalWeather requires date as YYYY-MM-DD, not after today. Plan
// restrictions surface as apierr.KindRateLimitOrPlan.
func (w *WeatherstackRepository) GetHistoricalWeather(
	ctx context.Context,
	location string,
	date string,
	units models.Units,
) (*models.WeatherResponse, error) {
	return w.fetch(ctx, models.EndpointRequest{
		Kind:     models.KindHistorical,
		Location: location,
		Units:    unitsOrDefault(units),
		Date:     date,
	})
}

// GetForecastWeather requires 1 <= forecastDays <= 14 and checks the answer
// holds exactly that many dated entries.
func (w *WeatherstackRepository) GetForecastWeather(
	ctx context.Context,
	location string,
	forecastDays int,
	units models.Units,
) (*models.WeatherResponse, error) {
	return w.fetch(ctx, models.EndpointRequest{
		Kind:         models.KindForecast,
		Location:     location,
		Units:        unitsOrDefault(units),
		ForecastDays: forecastDays,
	})
}

func unitsOrDefault(u models.Units) models.Units {
	if u == "" {
		return models.UnitsMetric
	}
	return u
}

type rawResponse struct {
	payload map[string]any
	body    []byte
}

func (w *WeatherstackRepository) fetch(ctx context.Context, req models.EndpointRequest) (*models.WeatherResponse, error) {
	start := time.Now()
	attempts := 0

	resp, err := w.execute(ctx, req, &attempts)

	latency := time.Since(start)
	outcome := outcomeOf(err)
	w.metrics.ObserveCall(string(req.Kind), outcome, attempts, latency)

	fields := req.LogFields()
	fields["request_id"] = uuid.NewString()
	fields["outcome"] = outcome
	fields["attempts"] = attempts
	fields["latency_ms"] = latency.Milliseconds()

	switch {
	case err == nil:
		w.l.Info("weatherstack call finished", fields)
	case apierr.Is(err, apierr.KindInvalidRequest), apierr.Is(err, apierr.KindRateLimitOrPlan):
		fields["error"] = err
		w.l.Warning("weatherstack call rejected", fields)
	default:
		w.l.Error(err, fields)
	}

	return resp, err
}

func (w *WeatherstackRepository) execute(ctx context.Context, req models.EndpointRequest, attempts *int) (*models.WeatherResponse, error) {
	if err := req.Validate(w.now()); err != nil {
		return nil, err
	}
	schema, _ := models.SchemaFor(req.Kind)

	raw, err := retry.Do(ctx, w.policy, func(ctx context.Context) (rawResponse, error) {
		*attempts++
		return w.attempt(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	if err := validator.ValidateBasicResponseStructure(raw.payload, schema); err != nil {
		return nil, withPayload(err, raw.body)
	}

	switch req.Kind {
	case models.KindHistorical:
		err = validator.ValidateHistoricalDate(raw.payload, req.Date)
	case models.KindForecast:
		err = validator.ValidateForecastDays(raw.payload, req.ForecastDays)
	}
	if err != nil {
		return nil, withPayload(err, raw.body)
	}

	var out models.WeatherResponse
	if err := json.Unmarshal(raw.body, &out); err != nil {
		return nil, apierr.Wrap(apierr.KindResponseStructure, err, "failed to decode typed response").WithPayload(raw.body)
	}
	out.Kind = req.Kind
	out.Payload = raw.payload

	return &out, nil
}

// attempt performs exactly one HTTP call.
func (w *WeatherstackRepository) attempt(ctx context.Context, req models.EndpointRequest) (rawResponse, error) {
	if w.limiter != nil {
		if err := w.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return rawResponse{}, ctx.Err()
			}
			// The wait alone would outlast the caller's deadline.
			return rawResponse{}, fmt.Errorf("%w: %v", context.DeadlineExceeded, err)
		}
	}

	attemptCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	endpoint := w.baseURL + req.Kind.Path()
	httpReq, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, endpoint+"?"+req.Params(w.apiKey).Encode(), nil)
	if err != nil {
		return rawResponse{}, apierr.Wrap(apierr.KindInvalidRequest, err, "failed to create request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if w.userAgent != "" {
		httpReq.Header.Set("User-Agent", w.userAgent)
	}

	resp, err := w.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return rawResponse{}, ctx.Err()
		}
		return rawResponse{}, apierr.Wrap(apierr.KindTransientNetwork, redactURL(err, endpoint), "failed to do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return rawResponse{}, ctx.Err()
		}
		return rawResponse{}, apierr.Wrap(apierr.KindTransientNetwork, err, "failed to read response body").WithStatus(resp.StatusCode)
	}

	// The provider reports business errors inside the JSON body, usually with
	// HTTP 200, so the body is inspected before the status code.
	payload, decodeErr := decodePayload(body)
	if decodeErr == nil {
		if perr := inBandError(payload); perr != nil {
			return rawResponse{}, perr.WithStatus(resp.StatusCode).WithPayload(body)
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return rawResponse{}, apierr.FromStatus(resp.StatusCode).WithPayload(body)
	}

	if decodeErr != nil {
		return rawResponse{}, apierr.Wrap(apierr.KindResponseStructure, decodeErr, "failed to parse JSON response").
			WithStatus(resp.StatusCode).
			WithPayload(body)
	}

	return rawResponse{payload: payload, body: body}, nil
}

func decodePayload(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload map[string]any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, errors.New("response is not a JSON object")
	}
	return payload, nil
}

// inBandError maps {"success": false, "error": {"code": ..., "type": ..., "info": ...}}.
func inBandError(payload map[string]any) *apierr.Error {
	errObj, hasError := payload["error"].(map[string]any)
	success, hasSuccess := payload["success"].(bool)
	if !hasError && (!hasSuccess || success) {
		return nil
	}

	var code int
	if n, ok := errObj["code"].(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			code = int(v)
		}
	}
	errType, _ := errObj["type"].(string)
	info, _ := errObj["info"].(string)

	return apierr.FromProviderCode(code, errType, info)
}

// redactURL drops the query string, which carries the access key, from
// transport errors.
func redactURL(err error, endpoint string) error {
	var ue *url.Error
	if errors.As(err, &ue) {
		return &url.Error{Op: ue.Op, URL: endpoint, Err: ue.Err}
	}
	return err
}

func withPayload(err error, body []byte) error {
	var e *apierr.Error
	if errors.As(err, &e) {
		return e.WithPayload(body)
	}
	return err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded) && apierr.KindOf(err) == apierr.KindUnknown:
		return "deadline_exceeded"
	}
	return apierr.KindOf(err).String()
}
