package httpserver

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weatherstack-check/pkg/logger"
)

func TestInitFiberServer_Probes(t *testing.T) {
	app := InitFiberServer("test", logger.NewNop())

	for _, path := range []string{LivenessEndpoint, ReadinessEndpoint} {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func TestInitFiberServer_RecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	app := InitFiberServer("test", logger.NewZapLogger(logger.Options{AppName: "test"}, &buf))
	app.Get("/boom", func(*fiber.Ctx) error {
		panic("boom")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "boom")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestInitFiberServer_ClientErrorsAreJSON(t *testing.T) {
	app := InitFiberServer("test", logger.NewNop())
	app.Get("/teapot", func(*fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/teapot", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"error":"short and stout"}`, string(body))
}
