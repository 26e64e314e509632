package observe

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherstack-check/pkg/logger"
)

func recordingHook(events *[]*sentry.Event) *SentryHook {
	return NewSentryHookWithSink("test", "weatherstack-check", func(e *sentry.Event) *sentry.EventID {
		*events = append(*events, e)
		return nil
	})
}

func TestSentryHook_ForwardsErrors(t *testing.T) {
	var events []*sentry.Event
	hook := recordingHook(&events)
	l := logger.NewZapLogger(logger.Options{AppName: "weatherstack-check", AppEnv: "test"}, hook)

	l.Info("ignored")
	l.Warning("ignored too")
	l.Error(errors.New("weatherstack call failed"), map[string]any{
		"endpoint": "historical",
		"outcome":  "RateLimitOrPlanError",
	})

	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, sentry.LevelError, e.Level)
	assert.Equal(t, "weatherstack call failed", e.Message)
	assert.Equal(t, "historical", e.Tags["endpoint"])
	assert.Equal(t, "RateLimitOrPlanError", e.Tags["outcome"])
	assert.Equal(t, "weatherstack-check", e.Extra["AppName"])
	require.Len(t, e.Exception, 1)
	assert.Equal(t, "weatherstack call failed", e.Exception[0].Value)
}

func TestSentryHook_IgnoresGarbage(t *testing.T) {
	var events []*sentry.Event
	hook := recordingHook(&events)

	n, err := hook.Write([]byte("not json"))
	assert.NoError(t, err)
	assert.Equal(t, 8, n)

	n, err = hook.Write([]byte(`{"level":"loud","msg":"x"}`))
	assert.NoError(t, err)
	assert.Positive(t, n)
	assert.Empty(t, events)
}

func TestSentryHook_MapLevel(t *testing.T) {
	h := &SentryHook{}
	assert.Equal(t, sentry.LevelFatal, h.mapLevel(4))
	assert.Equal(t, sentry.LevelDebug, h.mapLevel(-1))
}
