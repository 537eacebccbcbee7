package middlewares

import "github.com/gofiber/fiber/v2"

// SetupMiddlewares memasang middleware global berurutan.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
}
