package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Logger installs a zerolog access logger.
func Logger(app *fiber.App) {
	app.Use(func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		log.Info().
			Str("component", "httpreq").
			Str("method", ctx.Method()).
			Str("url", ctx.Path()).
			Str("ip", ctx.IP()).
			Int("status", ctx.Response().StatusCode()).
			Int("size", len(ctx.Response().Body())).
			Dur("duration", time.Since(start)).
			Msg("received request")

		return err
	})
}
