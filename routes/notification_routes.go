package routes

import (
	"github.com/devcarkson/reserve-with-ease-backend-sub000/handlers"
	"github.com/devcarkson/reserve-with-ease-backend-sub000/middleware"
	"github.com/gofiber/fiber/v2"
)

func NotificationRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	notifications := api.Group("/notifications", middleware.Protected())
	notifications.Get("/me", handlers.ListMyNotifications)
	notifications.Post("/:id/read", handlers.MarkNotificationRead)
}
