//go:build live

package conformance_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherstack-check/config"
	"weatherstack-check/internal/repositories"
	"weatherstack-check/internal/services/conformance"
	"weatherstack-check/pkg/logger"
)

// Run with: WEATHERSTACK_API_KEY=... go test -tags live ./internal/services/conformance/
func TestLive_DefaultScenarios(t *testing.T) {
	key := os.Getenv("WEATHERSTACK_API_KEY")
	if key == "" {
		t.Skip("WEATHERSTACK_API_KEY is not set")
	}

	cfg := config.Defaults().Weatherstack
	cfg.APIKey = key
	if baseURL := os.Getenv("WEATHERSTACK_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	l := logger.NewZapLogger(logger.Options{AppName: "live-test", Level: "debug"})
	client, err := repositories.NewWeatherstackRepository(cfg, l, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report := conformance.NewService(client, nil, l).Run(ctx, conformance.DefaultScenarios(time.Now()))

	for _, res := range report.Results {
		assert.NotEqual(t, conformance.StatusFail, res.Status, "%s: %s", res.Scenario.Name, res.Reason)
	}
}
