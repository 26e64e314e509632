package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second

	_timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// EventSink receives the events built by SentryHook. sentry.CaptureEvent in
// production, a recorder in tests.
type EventSink func(event *sentry.Event) *sentry.EventID

// SentryHook is an io.Writer plugged next to the JSON log output. It parses
// every line and forwards error-level entries as Sentry events.
type SentryHook struct {
	appEnv  string
	appName string
	capture EventSink
}

// NewSentryHook initialises the global Sentry client. With an empty dsn the
// client is a no-op but the hook still works.
func NewSentryHook(appEnv, appName string, isDebug bool, dsn string) (*SentryHook, error) {
	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout

	err := sentry.Init(sentry.ClientOptions{
		AttachStacktrace: true,
		Debug:            isDebug,
		Dsn:              dsn,
		Environment:      appEnv,
		MaxErrorDepth:    _sentryMaxErrorDepth,
		ServerName:       appName,
		Transport:        sentryTransport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to init sentry")
	}

	return NewSentryHookWithSink(appEnv, appName, sentry.CaptureEvent), nil
}

func NewSentryHookWithSink(appEnv, appName string, capture EventSink) *SentryHook {
	return &SentryHook{
		appEnv:  appEnv,
		appName: appName,
		capture: capture,
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	return sentry.Flush(_sentryFlushTimeout)
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}
	return sentry.LevelDebug
}

type logEntry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppEnv     string `json:"app_env"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Endpoint   string `json:"endpoint"`
	Outcome    string `json:"outcome"`
	Timestamp  string `json:"timestamp"`
}

// Write never fails; unparsable lines are reported to the standard logger.
func (h *SentryHook) Write(p []byte) (int, error) {
	var entry logEntry
	if err := json.Unmarshal(p, &entry); err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] json.Unmarshal data").Error())
		return len(p), nil
	}

	level, err := zapcore.ParseLevel(entry.Level)
	if err != nil {
		log.Println(errors.Wrap(err, "[SentryHook] parse zap level").Error())
		return len(p), nil
	}
	if level < zapcore.ErrorLevel || entry.Message == "" {
		return len(p), nil
	}

	timestamp, err := time.Parse(_timestampLayout, entry.Timestamp)
	if err != nil {
		timestamp = time.Now()
	}

	event := sentry.NewEvent()
	event.Environment = h.appEnv
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = entry.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = entry.Error
	event.Extra["CallerFile"] = entry.CallerFile
	event.Extra["CallerLine"] = entry.CallerLine
	event.Extra["CallerFunc"] = entry.CallerFunc
	event.Extra["Stack"] = entry.Stack
	if entry.Endpoint != "" {
		event.Tags["endpoint"] = entry.Endpoint
	}
	if entry.Outcome != "" {
		event.Tags["outcome"] = entry.Outcome
	}
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       entry.Message,
		Value:      entry.Error,
		Stacktrace: sentry.NewStacktrace(),
	})

	h.capture(event)

	return len(p), nil
}
