package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "weatherstack-check/docs"
	"weatherstack-check/internal/models"
	"weatherstack-check/internal/services/stub"
	"weatherstack-check/pkg/logger"
)

// SwaggerPath serves the UI; the document itself is at SwaggerPath + "doc.json".
const SwaggerPath = "/swagger/"

type routes struct {
	provider *stub.Provider
	l        *logger.Logger
}

// NewRouter mounts the weatherstack-compatible endpoints and their Swagger
// documentation. Anything else answers like the provider does for an
// unknown API function.
func NewRouter(
	app *fiber.App,
	provider *stub.Provider,
	l *logger.Logger,
) {
	r := &routes{
		provider: provider,
		l:        l,
	}

	app.Get(SwaggerPath+"*", swagger.HandlerDefault)

	app.Get(models.KindCurrent.Path(), r.handleCurrent)
	app.Get(models.KindHistorical.Path(), r.handleHistorical)
	app.Get(models.KindForecast.Path(), r.handleForecast)

	app.Use(r.handleUnknownFunction)
}
